package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys ending in "/" are directories,
// values starting with "->" create symlinks to the remainder.
func WriteTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()

	for rel, content := range tree {
		path := filepath.Join(root, rel)
		switch {
		case strings.HasSuffix(rel, "/"):
			require.NoError(t, os.MkdirAll(path, 0755))
		case strings.HasPrefix(content, "->"):
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.Symlink(strings.TrimSpace(strings.TrimPrefix(content, "->")), path))
		default:
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		}
	}
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// HomeEnv holds the isolated directories set up by Home
type HomeEnv struct {
	Root       string
	Home       string
	ConfigHome string
	StateHome  string
}

// Home points HOME and the XDG variables at fresh temp directories
func Home(t *testing.T) HomeEnv {
	t.Helper()

	root := t.TempDir()
	env := HomeEnv{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		ConfigHome: filepath.Join(root, "home", ".config"),
		StateHome:  filepath.Join(root, "home", ".local", "state"),
	}
	require.NoError(t, os.MkdirAll(env.Home, 0755))

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	return env
}
