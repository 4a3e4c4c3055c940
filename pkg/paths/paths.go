package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotstrap/pkg/errors"
)

const (
	// AppName is the directory name used under the XDG roots
	AppName = "dotstrap"

	EnvHome          = "HOME"
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
	EnvXDGStateHome  = "XDG_STATE_HOME"
)

// HomeDir returns $HOME, falling back to the OS user database
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
	}
	if home == "" {
		return "", errors.New(errors.ErrFileAccess, "cannot determine home directory")
	}
	return home, nil
}

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config
func ConfigHome() (string, error) {
	if dir := os.Getenv(EnvXDGConfigHome); dir != "" {
		return ExpandHome(dir), nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// StateHome returns $XDG_STATE_HOME or the platform default
func StateHome() string {
	if dir := os.Getenv(EnvXDGStateHome); dir != "" {
		return ExpandHome(dir)
	}
	return xdg.StateHome
}

// ConfigSearchDirs lists the directories searched for dotstrap's config
// file, most specific first
func ConfigSearchDirs() []string {
	var dirs []string
	if home, err := ConfigHome(); err == nil {
		dirs = append(dirs, filepath.Join(home, AppName))
	}
	for _, dir := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(dir, AppName))
	}
	return dirs
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// ~user is not supported
		return path
	}
	home, err := HomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], string(filepath.Separator)))
}

// Resolve expands ~ and makes a relative path absolute. A relative path is
// tried against each base in order; the first existing candidate wins, and
// the first base is used when none exists.
func Resolve(path string, bases ...string) string {
	path = ExpandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	for _, base := range bases {
		if base == "" {
			continue
		}
		candidate := filepath.Join(base, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	for _, base := range bases {
		if base != "" {
			return filepath.Join(base, path)
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// DefaultBases returns the working directory and the executable's directory,
// the bases relative config paths are resolved against
func DefaultBases() []string {
	var bases []string
	if wd, err := os.Getwd(); err == nil {
		bases = append(bases, wd)
	}
	if exe, err := os.Executable(); err == nil {
		bases = append(bases, filepath.Dir(exe))
	}
	return bases
}
