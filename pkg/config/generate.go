package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Marshal serialises the configuration in the given format. The output is
// a valid user config file.
func (c *Config) Marshal(format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatTOML, "":
		data, err = toml.Marshal(c)
	case FormatYAML, "yml":
		data, err = yaml.Marshal(c)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return data, nil
}

// Header returns a comment block describing where the configuration came from
func (c *Config) Header() string {
	var b strings.Builder
	b.WriteString("# dotstrap configuration\n")
	for _, src := range c.Sources {
		fmt.Fprintf(&b, "# loaded from: %s\n", src)
	}
	return b.String()
}
