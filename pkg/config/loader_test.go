package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedOptions(t *testing.T) LoadOptions {
	t.Helper()
	t.Setenv("HOME", "/home/tester")
	return LoadOptions{
		SearchDirs: []string{t.TempDir()},
		Bases:      []string{"/work"},
		SkipEnv:    true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolatedOptions(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"defaults"}, cfg.Sources)
	assert.Equal(t, "/work/app_lists", cfg.Apps.ListsDir)
	assert.Equal(t, []string{"minimal", "optional"}, cfg.Apps.Lists)
	assert.Equal(t, []string{"nvim"}, cfg.Apps.Commands["neovim"])
	assert.Equal(t, "apps", cfg.Miniforge.EnvName)
	assert.Equal(t, "/home/tester/miniforge3", cfg.Miniforge.Prefix)
	assert.Equal(t, "/home/tester/.local/bin", cfg.Miniforge.LocalBin)
	assert.Equal(t, []string{"/home/tester/miniforge3/bin/mamba", "/opt/miniforge3/bin/mamba"}, cfg.Miniforge.SearchPaths)
	assert.Equal(t, "/home/tester/.dotfiles_backup", cfg.Dotfiles.BackupRoot)
	assert.Equal(t, "backup-list.txt", cfg.Dotfiles.ManifestName)
	assert.Equal(t, "home", cfg.Dotfiles.HomeSubtree)
	assert.Equal(t, "/work/dotfiles", cfg.Dotfiles.SourceDir)
	assert.Equal(t, []string{"/etc/os-release", "/usr/lib/os-release"}, cfg.Git.OSReleaseFiles)
}

func TestLoad_UserTOMLOverrides(t *testing.T) {
	opts := isolatedOptions(t)
	dir := opts.SearchDirs[0]
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[miniforge]
env_name = "tools"

[apps]
lists = ["core"]

[apps.commands]
bottom = ["btm"]
`), 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "tools", cfg.Miniforge.EnvName)
	assert.Equal(t, []string{"core"}, cfg.Apps.Lists)
	assert.Equal(t, []string{"btm"}, cfg.Apps.Commands["bottom"])
	assert.Equal(t, []string{"nvim"}, cfg.Apps.Commands["neovim"], "defaults survive map merge")
	assert.Equal(t, []string{"defaults", filepath.Join(dir, "config.toml")}, cfg.Sources)
}

func TestLoad_UserYAML(t *testing.T) {
	opts := isolatedOptions(t)
	dir := opts.SearchDirs[0]
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
dotfiles:
  backup_root: ~/backups
  ignore: [".git"]
`), 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/backups", cfg.Dotfiles.BackupRoot)
	assert.Equal(t, []string{".git"}, cfg.Dotfiles.Ignore)
}

func TestLoad_ExplicitFile(t *testing.T) {
	opts := isolatedOptions(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dotfiles]\nsource_dir = \"/srv/dots\"\n"), 0644))
	opts.ConfigFile = path

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "/srv/dots", cfg.Dotfiles.SourceDir)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	opts := isolatedOptions(t)
	opts.ConfigFile = "/definitely/not/here.toml"

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	opts := isolatedOptions(t)
	require.NoError(t, os.WriteFile(filepath.Join(opts.SearchDirs[0], "config.toml"), []byte("[[[nope"), 0644))

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvOverrides(t *testing.T) {
	opts := isolatedOptions(t)
	opts.SkipEnv = false
	t.Setenv("DOTSTRAP_MINIFORGE__ENV_NAME", "cli")
	t.Setenv("DOTSTRAP_APPS__LISTS", "minimal,extra")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "cli", cfg.Miniforge.EnvName)
	assert.Equal(t, []string{"minimal", "extra"}, cfg.Apps.Lists)
	assert.Contains(t, cfg.Sources, "env")
}

func TestLoad_EmptyRequiredValue(t *testing.T) {
	opts := isolatedOptions(t)
	require.NoError(t, os.WriteFile(filepath.Join(opts.SearchDirs[0], "config.toml"), []byte("[miniforge]\nenv_name = \"\"\n"), 0644))

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Equal(t, "miniforge.env_name", errors.GetErrorDetails(err)["key"])
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "miniforge.env_name", envKey("DOTSTRAP_MINIFORGE__ENV_NAME"))
	assert.Equal(t, "dotfiles.backup_root", envKey("DOTSTRAP_DOTFILES__BACKUP_ROOT"))
}

func TestLoad_OverridesWinOverFile(t *testing.T) {
	opts := isolatedOptions(t)
	require.NoError(t, os.WriteFile(filepath.Join(opts.SearchDirs[0], "config.toml"), []byte(`
[dotfiles]
source_dir = "/from/file"
`), 0644))
	opts.Overrides = map[string]interface{}{
		"dotfiles.source_dir": "/from/flag",
	}

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Dotfiles.SourceDir)
	assert.Equal(t, "flags", cfg.Sources[len(cfg.Sources)-1])
}
