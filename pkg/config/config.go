package config

// Config is the fully merged dotstrap configuration
type Config struct {
	Apps      Apps      `koanf:"apps" toml:"apps" yaml:"apps"`
	Homebrew  Homebrew  `koanf:"homebrew" toml:"homebrew" yaml:"homebrew"`
	Miniforge Miniforge `koanf:"miniforge" toml:"miniforge" yaml:"miniforge"`
	Git       Git       `koanf:"git" toml:"git" yaml:"git"`
	Dotfiles  Dotfiles  `koanf:"dotfiles" toml:"dotfiles" yaml:"dotfiles"`

	// Sources lists the layers that were loaded, in order
	Sources []string `koanf:"-" toml:"-" yaml:"-"`
}

// Apps configures the app list loader
type Apps struct {
	ListsDir string `koanf:"lists_dir" toml:"lists_dir" yaml:"lists_dir"`
	// Lists is the concatenation order of the "full" list
	Lists []string `koanf:"lists" toml:"lists" yaml:"lists"`
	// Commands maps a package name to the executables it provides
	Commands map[string][]string `koanf:"commands" toml:"commands" yaml:"commands"`
}

// Homebrew configures the brew adapter
type Homebrew struct {
	InstallScriptURL string   `koanf:"install_script_url" toml:"install_script_url" yaml:"install_script_url"`
	Locations        []string `koanf:"locations" toml:"locations" yaml:"locations"`
}

// Miniforge configures the mamba adapter
type Miniforge struct {
	// InstallerURL may contain {os} and {arch} placeholders
	InstallerURL string   `koanf:"installer_url" toml:"installer_url" yaml:"installer_url"`
	Prefix       string   `koanf:"prefix" toml:"prefix" yaml:"prefix"`
	SearchPaths  []string `koanf:"search_paths" toml:"search_paths" yaml:"search_paths"`
	EnvName      string   `koanf:"env_name" toml:"env_name" yaml:"env_name"`
	LocalBin     string   `koanf:"local_bin" toml:"local_bin" yaml:"local_bin"`
}

// Git configures distribution detection for the git ensurer
type Git struct {
	OSReleaseFiles []string `koanf:"os_release_files" toml:"os_release_files" yaml:"os_release_files"`
}

// Dotfiles configures the symlink installer
type Dotfiles struct {
	SourceDir       string   `koanf:"source_dir" toml:"source_dir" yaml:"source_dir"`
	HomeSubtree     string   `koanf:"home_subtree" toml:"home_subtree" yaml:"home_subtree"`
	BackupRoot      string   `koanf:"backup_root" toml:"backup_root" yaml:"backup_root"`
	ManifestName    string   `koanf:"manifest_name" toml:"manifest_name" yaml:"manifest_name"`
	TimestampFormat string   `koanf:"timestamp_format" toml:"timestamp_format" yaml:"timestamp_format"`
	Ignore          []string `koanf:"ignore" toml:"ignore" yaml:"ignore"`
}
