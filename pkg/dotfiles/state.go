package dotfiles

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
)

// State classifies what currently sits at a mapping's target
type State string

const (
	TargetAbsent        State = "absent"
	TargetIsCorrectLink State = "linked"
	TargetIsOther       State = "other"
)

// Classify inspects m.Target without following it
func Classify(fsys filesystem.FS, m Mapping) (State, error) {
	info, err := fsys.Lstat(m.Target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TargetAbsent, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", m.Target).
			WithDetail("target", m.Target)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return TargetIsOther, nil
	}

	dest, err := fsys.Readlink(m.Target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", m.Target).
			WithDetail("target", m.Target)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(m.Target), dest)
	}
	if filepath.Clean(dest) == filepath.Clean(m.Source) {
		return TargetIsCorrectLink, nil
	}
	return TargetIsOther, nil
}
