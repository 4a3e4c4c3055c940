package dotfiles

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
)

// BackupAction says how a target was preserved
type BackupAction string

const (
	// ActionMovedFile: the file, directory or dangling link itself was moved
	ActionMovedFile BackupAction = "moved-file"
	// ActionDereferencedSymlink: the content behind a link was copied and
	// the link removed
	ActionDereferencedSymlink BackupAction = "dereferenced-symlink"
)

// BackupEntry records one preserved target
type BackupEntry struct {
	Source string
	Backup string
	Action BackupAction
}

// String renders the manifest line for the entry
func (b BackupEntry) String() string {
	return fmt.Sprintf("%s -> %s (%s)", b.Source, b.Backup, b.Action)
}

// Manifest renders entries as manifest file content
func Manifest(entries []BackupEntry) []byte {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// backupTarget moves whatever is at target to dest. target must exist.
func backupTarget(fsys filesystem.FS, target, dest string) (BackupEntry, error) {
	entry := BackupEntry{Source: target, Backup: dest, Action: ActionMovedFile}

	info, err := fsys.Lstat(target)
	if err != nil {
		return entry, backupErr(err, target, dest, "cannot inspect")
	}

	// Copying a tree into itself never terminates
	content := target
	if info.Mode()&fs.ModeSymlink != 0 {
		content = linkDestination(fsys, target)
	}
	if content != "" && within(dest, content) {
		return entry, errors.Newf(errors.ErrBackupWrite,
			"cannot back up %s: its content %s contains the backup location %s", target, content, dest).
			WithDetail("target", target).
			WithDetail("backup", dest)
	}

	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return entry, backupErr(err, target, dest, "cannot create backup directory for")
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		if _, err := fsys.Stat(target); err == nil {
			entry.Action = ActionDereferencedSymlink
			if err := copyPath(fsys, target, dest, true); err != nil {
				_ = fsys.RemoveAll(dest)
				return entry, backupErr(err, target, dest, "cannot copy link content of")
			}
			if err := fsys.Remove(target); err != nil {
				return entry, backupErr(err, target, dest, "cannot remove link")
			}
			return entry, nil
		}
		// Dangling: keep the link itself
	}

	if err := fsys.Rename(target, dest); err == nil {
		return entry, nil
	}

	// Rename fails across devices; fall back to copy and remove
	if err := copyPath(fsys, target, dest, false); err != nil {
		_ = fsys.RemoveAll(dest)
		return entry, backupErr(err, target, dest, "cannot copy")
	}
	if err := fsys.RemoveAll(target); err != nil {
		return entry, backupErr(err, target, dest, "cannot remove original")
	}
	return entry, nil
}

// copyPath copies src to dst recursively. When follow is true src itself is
// dereferenced; links found inside directories are always recreated as links.
func copyPath(fsys filesystem.FS, src, dst string, follow bool) error {
	var info fs.FileInfo
	var err error
	if follow {
		info, err = fsys.Stat(src)
	} else {
		info, err = fsys.Lstat(src)
	}
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := fsys.Readlink(src)
		if err != nil {
			return err
		}
		return fsys.Symlink(link, dst)

	case info.IsDir():
		if err := fsys.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := copyPath(fsys, filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()), false); err != nil {
				return err
			}
		}
		return nil

	default:
		data, err := fsys.ReadFile(src)
		if err != nil {
			return err
		}
		return fsys.WriteFile(dst, data, info.Mode().Perm())
	}
}

// linkDestination returns the absolute path a symlink points to, or "" when
// it cannot be read.
func linkDestination(fsys filesystem.FS, link string) string {
	dest, err := fsys.Readlink(link)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest)
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// uniqueDest returns dest, or dest with a numeric suffix when taken
func uniqueDest(fsys filesystem.FS, dest string) string {
	candidate := dest
	for i := 1; ; i++ {
		if _, err := fsys.Lstat(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", dest, i)
	}
}

func backupErr(err error, target, dest, msg string) error {
	return errors.Wrapf(err, errors.ErrBackupWrite, "%s %s", msg, target).
		WithDetail("target", target).
		WithDetail("backup", dest)
}
