package packagemanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkBinaries(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"env/bin/rg":      "",
		"env/bin/fd":      "",
		"local/bin/fd":    "existing",
		"local/bin/stale": "-> /nowhere",
	})
	src := filepath.Join(root, "env", "bin")
	bin := filepath.Join(root, "local", "bin")

	warnings := LinkBinaries(filesystem.NewOS(), src, bin, []string{"rg", "fd", "stale", "missing"})

	dest, err := os.Readlink(filepath.Join(bin, "rg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(src, "rg"), dest)

	assert.Equal(t, "existing", testutil.ReadFile(t, filepath.Join(bin, "fd")))

	require.Len(t, warnings, 1)
	assert.True(t, errors.IsErrorCode(warnings[0], errors.ErrSymlinkBestEffort))
	assert.Contains(t, warnings[0].Error(), "missing")
}

func TestLinkBinaries_CreatesBinDir(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"env/bin/btm": ""})
	bin := filepath.Join(root, "new", "bin")

	warnings := LinkBinaries(filesystem.NewOS(), filepath.Join(root, "env", "bin"), bin, []string{"btm"})

	assert.Empty(t, warnings)
	_, err := os.Lstat(filepath.Join(bin, "btm"))
	assert.NoError(t, err)
}
