package dotfiles

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/rs/zerolog"
)

// TimestampPlaceholder stands in for the backup timestamp in dry runs
const TimestampPlaceholder = "<timestamp>"

// Outcome is what happened (or would happen) to one mapping
type Outcome string

const (
	Linked            Outcome = "linked"
	AlreadyLinked     Outcome = "already-linked"
	BackedUpAndLinked Outcome = "backed-up-and-linked"
	Failed            Outcome = "failed"

	// Dry run outcomes
	PlannedLink          Outcome = "would-link"
	PlannedBackupAndLink Outcome = "would-back-up-and-link"
)

// EntryResult reports one mapping
type EntryResult struct {
	Mapping Mapping
	State   State
	Outcome Outcome
	// Backup is set when the target was (or would be) backed up
	Backup *BackupEntry
	Err    error
}

// Report is the outcome of a dotfiles run
type Report struct {
	SourceDir string
	DryRun    bool
	// BackupDir is the timestamped directory; empty when nothing was backed up
	BackupDir    string
	ManifestPath string
	// ManifestErr is set when backups happened but the manifest could not be written
	ManifestErr error
	Entries     []EntryResult
}

// Backups returns the backup records of the run, in processing order. An
// entry whose link failed after its backup succeeded is still included.
func (r Report) Backups() []BackupEntry {
	var out []BackupEntry
	for _, e := range r.Entries {
		if e.Backup != nil {
			out = append(out, *e.Backup)
		}
	}
	return out
}

// Failed returns the entries that could not be completed
func (r Report) Failed() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Outcome == Failed {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries ended with outcome
func (r Report) Count(outcome Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Options control a dotfiles run
type Options struct {
	DryRun bool
}

// Installer links a dotfiles tree into place
type Installer struct {
	fs     filesystem.FS
	cfg    config.Dotfiles
	now    func() time.Time
	logger zerolog.Logger
}

// New creates an Installer
func New(fsys filesystem.FS, cfg config.Dotfiles) *Installer {
	return &Installer{
		fs:     fsys,
		cfg:    cfg,
		now:    time.Now,
		logger: logging.GetLogger("dotfiles"),
	}
}

// WithClock replaces the clock used for backup timestamps
func (i *Installer) WithClock(now func() time.Time) *Installer {
	i.now = now
	return i
}

// Run links every entry of the source tree. The error is reserved for
// problems that prevent the run from starting; entry failures are listed
// in the Report.
func (i *Installer) Run(opts Options) (Report, error) {
	defer logging.LogOperationStart(i.logger, "dotfiles")()

	layout, err := i.layout()
	if err != nil {
		return Report{}, err
	}
	report := Report{SourceDir: layout.SourceDir, DryRun: opts.DryRun}

	mappings, err := Discover(i.fs, layout)
	if err != nil {
		return report, err
	}
	i.logger.Info().Int("entries", len(mappings)).Str("source", layout.SourceDir).Bool("dryRun", opts.DryRun).Msg("Linking dotfiles")

	backupDir := filepath.Join(i.cfg.BackupRoot, TimestampPlaceholder)
	if !opts.DryRun {
		backupDir = filepath.Join(i.cfg.BackupRoot, i.now().Format(i.cfg.TimestampFormat))
	}

	for _, m := range mappings {
		var res EntryResult
		if opts.DryRun {
			res = i.plan(m, backupDir)
		} else {
			res = i.apply(m, backupDir)
		}
		i.logEntry(res)
		report.Entries = append(report.Entries, res)
	}

	backups := report.Backups()
	if len(backups) > 0 {
		report.BackupDir = backupDir
	}
	if !opts.DryRun && len(backups) > 0 {
		report.ManifestPath = filepath.Join(backupDir, i.cfg.ManifestName)
		// Runs within the same second share a backup directory
		content := Manifest(backups)
		if existing, err := i.fs.ReadFile(report.ManifestPath); err == nil {
			content = append(existing, content...)
		}
		if err := i.fs.WriteFile(report.ManifestPath, content, 0644); err != nil {
			report.ManifestErr = errors.Wrapf(err, errors.ErrBackupWrite, "cannot write manifest %s", report.ManifestPath)
			i.logger.Error().Err(err).Str("path", report.ManifestPath).Msg("Failed to write backup manifest")
		}
	}

	return report, nil
}

func (i *Installer) layout() (Layout, error) {
	home, err := paths.HomeDir()
	if err != nil {
		return Layout{}, err
	}
	configHome, err := paths.ConfigHome()
	if err != nil {
		return Layout{}, err
	}

	source := i.cfg.SourceDir
	if source == "" {
		return Layout{}, errors.New(errors.ErrInvalidInput, "no dotfiles source directory configured")
	}
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	info, err := i.fs.Stat(source)
	if err != nil {
		return Layout{}, errors.Wrapf(err, errors.ErrNotFound, "dotfiles source directory %s not found", source).
			WithDetail("path", source)
	}
	if !info.IsDir() {
		return Layout{}, errors.Newf(errors.ErrInvalidInput, "dotfiles source %s is not a directory", source).
			WithDetail("path", source)
	}

	return Layout{
		SourceDir:   source,
		HomeSubtree: i.cfg.HomeSubtree,
		Home:        home,
		ConfigHome:  configHome,
		Ignore:      i.cfg.Ignore,
	}, nil
}

func (i *Installer) plan(m Mapping, backupDir string) EntryResult {
	res := EntryResult{Mapping: m}
	state, err := Classify(i.fs, m)
	if err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}
	res.State = state

	switch state {
	case TargetAbsent:
		res.Outcome = PlannedLink
	case TargetIsCorrectLink:
		res.Outcome = AlreadyLinked
	default:
		res.Outcome = PlannedBackupAndLink
		res.Backup = &BackupEntry{
			Source: m.Target,
			Backup: filepath.Join(backupDir, string(m.Root), m.Name()),
			Action: i.plannedAction(m.Target),
		}
	}
	return res
}

func (i *Installer) plannedAction(target string) BackupAction {
	info, err := i.fs.Lstat(target)
	if err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if _, err := i.fs.Stat(target); err == nil {
			return ActionDereferencedSymlink
		}
	}
	return ActionMovedFile
}

func (i *Installer) apply(m Mapping, backupDir string) EntryResult {
	res := EntryResult{Mapping: m}
	state, err := Classify(i.fs, m)
	if err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}
	res.State = state

	switch state {
	case TargetIsCorrectLink:
		res.Outcome = AlreadyLinked
		return res

	case TargetIsOther:
		dest := uniqueDest(i.fs, filepath.Join(backupDir, string(m.Root), m.Name()))
		entry, err := backupTarget(i.fs, m.Target, dest)
		if err != nil {
			res.Outcome, res.Err = Failed, err
			return res
		}
		res.Backup = &entry
		res.Outcome = BackedUpAndLinked

	default:
		res.Outcome = Linked
	}

	if err := i.link(m); err != nil {
		res.Outcome, res.Err = Failed, err
	}
	return res
}

func (i *Installer) link(m Mapping) error {
	if err := i.fs.MkdirAll(filepath.Dir(m.Target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(m.Target)).
			WithDetail("target", m.Target)
	}
	if err := i.fs.Symlink(m.Source, m.Target); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s -> %s", m.Target, m.Source).
			WithDetail("target", m.Target).
			WithDetail("source", m.Source)
	}
	return nil
}

func (i *Installer) logEntry(res EntryResult) {
	event := i.logger.Info()
	if res.Err != nil {
		event = i.logger.Error().Err(res.Err)
	}
	event.
		Str("source", res.Mapping.Source).
		Str("target", res.Mapping.Target).
		Str("state", string(res.State)).
		Str("outcome", string(res.Outcome)).
		Msg("Dotfile processed")
}
