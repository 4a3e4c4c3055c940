// Package paths resolves the directories dotstrap reads from and writes to.
//
// # Environment Variables
//
//   - HOME: link destination root for the dotfiles "home" subtree
//   - XDG_CONFIG_HOME: link destination root for every other dotfiles entry,
//     and the location of dotstrap's own config.toml (default: ~/.config)
//   - XDG_STATE_HOME: location of the log file (default: ~/.local/state)
//
// XDG_CONFIG_HOME deliberately falls back to ~/.config on every platform,
// including macOS, because that is where dotfiles expect to live.
package paths
