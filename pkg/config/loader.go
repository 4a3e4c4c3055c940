package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "DOTSTRAP_"

// configFileNames are tried in order inside each search directory
var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit user config path; it must exist when set
	ConfigFile string
	// SearchDirs overrides paths.ConfigSearchDirs()
	SearchDirs []string
	// Bases overrides paths.DefaultBases() for relative directory resolution
	Bases []string
	// SkipEnv disables the environment variable layer
	SkipEnv bool
	// Overrides are dotted keys applied last, typically from command flags
	Overrides map[string]interface{}
}

// Load merges defaults, the user file and the environment into a Config
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	sources = append(sources, "defaults")

	// 2. User file
	userFile, err := findUserFile(opts)
	if err != nil {
		return nil, err
	}
	if userFile != "" {
		if err := k.Load(file.Provider(userFile), parserFor(userFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile)
		}
		sources = append(sources, userFile)
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
		sources = append(sources, "env")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
		sources = append(sources, "flags")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	bases := opts.Bases
	if bases == nil {
		bases = paths.DefaultBases()
	}
	if err := postProcess(cfg, bases); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults only, without resolving paths
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = []string{"defaults"}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps DOTSTRAP_MINIFORGE__ENV_NAME to miniforge.env_name
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func findUserFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		path := paths.ExpandHome(opts.ConfigFile)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path)
		}
		return path, nil
	}

	dirs := opts.SearchDirs
	if dirs == nil {
		dirs = paths.ConfigSearchDirs()
	}
	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}

func postProcess(cfg *Config, bases []string) error {
	cfg.Apps.ListsDir = paths.Resolve(cfg.Apps.ListsDir, bases...)
	cfg.Dotfiles.SourceDir = paths.Resolve(cfg.Dotfiles.SourceDir, bases...)
	cfg.Dotfiles.BackupRoot = paths.ExpandHome(cfg.Dotfiles.BackupRoot)
	cfg.Miniforge.Prefix = paths.ExpandHome(cfg.Miniforge.Prefix)
	cfg.Miniforge.LocalBin = paths.ExpandHome(cfg.Miniforge.LocalBin)
	for i, p := range cfg.Miniforge.SearchPaths {
		cfg.Miniforge.SearchPaths[i] = paths.ExpandHome(p)
	}
	for i, p := range cfg.Homebrew.Locations {
		cfg.Homebrew.Locations[i] = paths.ExpandHome(p)
	}

	required := map[string]string{
		"miniforge.env_name":        cfg.Miniforge.EnvName,
		"dotfiles.home_subtree":     cfg.Dotfiles.HomeSubtree,
		"dotfiles.manifest_name":    cfg.Dotfiles.ManifestName,
		"dotfiles.timestamp_format": cfg.Dotfiles.TimestampFormat,
		"dotfiles.backup_root":      cfg.Dotfiles.BackupRoot,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigParse, "%s must not be empty", key).WithDetail("key", key)
		}
	}
	return nil
}
