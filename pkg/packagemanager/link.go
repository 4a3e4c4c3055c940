package packagemanager

import (
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
)

// LinkBinaries symlinks each command from srcDir into binDir. Nothing here
// fails an install: problems come back as SYMLINK_BEST_EFFORT warnings.
func LinkBinaries(fsys filesystem.FS, srcDir, binDir string, commands []string) []error {
	logger := logging.GetLogger("packagemanager")
	var warnings []error

	for _, name := range commands {
		source := filepath.Join(srcDir, name)
		target := filepath.Join(binDir, name)

		if _, err := fsys.Lstat(target); err == nil {
			logger.Info().Str("target", target).Msg("Binary already linked")
			continue
		}

		if !filesystem.Exists(fsys, source) {
			logger.Warn().Str("source", source).Msg("Binary missing from environment, skipping link")
			warnings = append(warnings, errors.Newf(errors.ErrSymlinkBestEffort,
				"%s does not exist, cannot link %s", source, name).
				WithDetail("source", source).
				WithDetail("target", target))
			continue
		}

		if err := fsys.MkdirAll(binDir, 0755); err != nil {
			warnings = append(warnings, errors.Wrapf(err, errors.ErrSymlinkBestEffort,
				"cannot create %s", binDir).
				WithDetail("target", target))
			continue
		}

		if err := fsys.Symlink(source, target); err != nil {
			logger.Warn().Err(err).Str("target", target).Msg("Failed to link binary")
			warnings = append(warnings, errors.Wrapf(err, errors.ErrSymlinkBestEffort,
				"cannot link %s -> %s", target, source).
				WithDetail("source", source).
				WithDetail("target", target))
			continue
		}

		logger.Info().Str("source", source).Str("target", target).Msg("Binary linked")
	}
	return warnings
}
