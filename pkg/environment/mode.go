package environment

import (
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// Mode selects the package manager backend
type Mode string

// Package manager modes accepted by the apps command
const (
	ModeAuto      Mode = "auto"
	ModeBrew      Mode = "brew"
	ModeMiniforge Mode = "miniforge"
)

// SelectMode resolves "auto" against the classification. Explicit modes are
// returned unchanged, even when the host looks unsuitable for them.
func SelectMode(mode string, c Classification) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case ModeAuto, "":
		if c.HasSudo {
			return ModeBrew, nil
		}
		return ModeMiniforge, nil
	case ModeBrew:
		return ModeBrew, nil
	case ModeMiniforge:
		return ModeMiniforge, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown mode %q (expected auto, brew or miniforge)", mode).
			WithDetail("mode", mode)
	}
}
