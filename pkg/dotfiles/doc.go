// Package dotfiles links a dotfiles source tree into the user's home and
// XDG config directories.
//
// Layout of the source tree:
//
//	<source>/home/<name>   ->  $HOME/<name>
//	<source>/<name>        ->  $XDG_CONFIG_HOME/<name>   (default ~/.config)
//
// Each target is classified before anything is touched. Missing targets are
// linked, correct links are left alone, and anything else is moved into a
// timestamped backup directory first:
//
//	<backup_root>/<timestamp>/<home|config>/<name>
//
// A symlink pointing elsewhere is backed up by copying what it points to,
// so the backup stays useful after the link is replaced. Every backup is
// recorded in a manifest inside the backup directory. Failures are isolated
// per entry: one unreadable target never stops the others.
package dotfiles
