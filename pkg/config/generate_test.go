package config

import (
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshal_TOML(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	data, err := cfg.Marshal(FormatTOML)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg.Miniforge.EnvName, decoded.Miniforge.EnvName)
	assert.Equal(t, cfg.Apps.Commands["neovim"], decoded.Apps.Commands["neovim"])
	assert.NotContains(t, string(data), "Sources")
}

func TestMarshal_YAML(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	data, err := cfg.Marshal(FormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "dotfiles")
	assert.Contains(t, decoded, "miniforge")
}

func TestMarshal_UnknownFormat(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	_, err = cfg.Marshal("ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestHeader(t *testing.T) {
	cfg := &Config{Sources: []string{"defaults", "/home/u/.config/dotstrap/config.toml"}}
	header := cfg.Header()
	assert.Contains(t, header, "# loaded from: defaults")
	assert.Contains(t, header, "config.toml")
}
