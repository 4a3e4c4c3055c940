package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Bootstrap apps and dotfiles on a new machine"
	MsgAppsShort      = "Install the packages of an app list"
	MsgDotfilesShort  = "Link a dotfiles tree into place"
	MsgGitShort       = "Make sure git is installed"
	MsgEnvShort       = "Show what was detected about this machine"
	MsgListsShort     = "Show the available app lists"
	MsgListsLong      = "Lists shows every app list in the lists directory and the packages it names, in install order."
	MsgGenconfigShort = "Print the effective configuration"
	MsgGenconfigLong  = "Genconfig prints the configuration dotstrap would use, merged from defaults, your config file and the environment. The output is a valid config file."
	MsgTopicsShort    = "Display available documentation topics"
	MsgVersionShort   = "Print version information"
	MsgVersionLong    = "Print detailed version information including commit hash and build date"
	MsgManShort       = "Generate the man page"

	// Status messages
	MsgGitReady     = "git is ready"
	MsgNoLists      = "No app lists found in %s"
	MsgListsDir     = "App lists in %s"
	MsgAppsStarting = "Installing %s"

	// Version output
	MsgVersionFormat = "dotstrap version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Use this config file instead of the one in $XDG_CONFIG_HOME/dotstrap"
	MsgFlagMode           = "Package manager to use: %s"
	MsgFlagAppList        = "App list to install (a file in the lists directory, or full)"
	MsgFlagForceReinstall = "Reinstall packages even when their command is already on PATH"
	MsgFlagCustomBinPath  = "Directory holding the mamba binary, or where Miniforge binaries are linked"
	MsgFlagDryRun         = "Preview changes without making them"
	MsgFlagFormat         = "Output format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apps-long.txt
	msgAppsLongRaw string
	MsgAppsLong    = strings.TrimSpace(msgAppsLongRaw)

	//go:embed msgs/apps-example.txt
	msgAppsExampleRaw string
	MsgAppsExample    = strings.TrimRight(msgAppsExampleRaw, "\n")

	//go:embed msgs/dotfiles-long.txt
	msgDotfilesLongRaw string
	MsgDotfilesLong    = strings.TrimSpace(msgDotfilesLongRaw)

	//go:embed msgs/dotfiles-example.txt
	msgDotfilesExampleRaw string
	MsgDotfilesExample    = strings.TrimRight(msgDotfilesExampleRaw, "\n")

	//go:embed msgs/git-long.txt
	msgGitLongRaw string
	MsgGitLong    = strings.TrimSpace(msgGitLongRaw)
)
