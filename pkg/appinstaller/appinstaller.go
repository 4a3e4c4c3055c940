// Package appinstaller drives an apps run: git check, mode selection, list
// loading, then one package manager Install per app.
package appinstaller

import (
	"context"

	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/gitensure"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/packagemanager"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"go.uber.org/multierr"
)

// Options are the user-facing knobs of an apps run
type Options struct {
	Mode           string
	AppList        string
	ForceReinstall bool
	CustomBinPath  string
	// OnResult, when set, is called after each app is processed
	OnResult func(packagemanager.Result)
}

// DetectFunc classifies the host
type DetectFunc func(ctx context.Context, opts environment.Options) (environment.Classification, error)

// Installer runs app installs
type Installer struct {
	runner runner.Runner
	fs     filesystem.FS
	cfg    *config.Config
	detect DetectFunc
}

// New creates an Installer backed by real host detection
func New(r runner.Runner, fsys filesystem.FS, cfg *config.Config) *Installer {
	return &Installer{runner: r, fs: fsys, cfg: cfg, detect: environment.Detect}
}

// WithDetect replaces host detection
func (i *Installer) WithDetect(detect DetectFunc) *Installer {
	i.detect = detect
	return i
}

// Summary is the outcome of a run, one Result per app in list order
type Summary struct {
	Mode    environment.Mode
	Env     environment.Classification
	Results []packagemanager.Result
}

// Run performs a full apps run. The returned error is reserved for problems
// that stop the run before any app is processed; per-app failures are in
// the Summary.
func (i *Installer) Run(ctx context.Context, opts Options) (Summary, error) {
	logger := logging.GetLogger("appinstaller")
	defer logging.LogOperationStart(logger, "apps")()

	env, err := i.Detect(ctx, opts.CustomBinPath)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Env: env}

	// A mistyped list must not cost a git install
	loader := applist.NewLoader(i.fs, i.cfg.Apps.ListsDir, i.cfg.Apps.Lists)
	list, err := loader.Load(opts.AppList)
	if err != nil {
		return summary, err
	}
	apps := applist.NewCatalog(i.cfg.Apps.Commands).Apps(list)

	if err := gitensure.New(i.runner, env).Ensure(ctx); err != nil {
		if !errors.IsErrorCode(err, errors.ErrGitUnavailable) {
			err = errors.Wrap(err, errors.ErrGitUnavailable, "git is required")
		}
		return summary, err
	}

	mode, err := environment.SelectMode(opts.Mode, env)
	if err != nil {
		return summary, err
	}
	summary.Mode = mode
	logger.Info().Str("requested", opts.Mode).Str("mode", string(mode)).Msg("Package manager selected")

	manager, err := packagemanager.New(mode, packagemanager.Deps{
		Runner:        i.runner,
		FS:            i.fs,
		Env:           env,
		Config:        i.cfg,
		CustomBinPath: opts.CustomBinPath,
	})
	if err != nil {
		return summary, err
	}

	for idx, app := range apps {
		if ctx.Err() != nil {
			for _, rest := range apps[idx:] {
				summary.add(opts, failed(rest, ctx.Err(), errors.ErrInternal, "run cancelled"))
			}
			break
		}

		res := manager.Install(ctx, app, opts.ForceReinstall)
		summary.add(opts, res)

		if res.Decision == packagemanager.Failed && packagemanager.IsBootstrapFailure(res.Err) {
			logger.Error().Err(res.Err).Str("manager", manager.Name()).Msg("Package manager unavailable, stopping")
			for _, rest := range apps[idx+1:] {
				summary.add(opts, failed(rest, res.Err, errors.ErrBootstrapFailed, "not attempted"))
			}
			break
		}
	}

	logger.Info().
		Int("skipped", len(summary.Skipped())).
		Int("installed", len(summary.Installed())).
		Int("failed", len(summary.Failed())).
		Msg("Apps run finished")
	return summary, nil
}

// Detect classifies the host using the installer's configuration
func (i *Installer) Detect(ctx context.Context, customBinPath string) (environment.Classification, error) {
	return i.detect(ctx, i.environmentOptions(customBinPath))
}

func (i *Installer) environmentOptions(customBinPath string) environment.Options {
	home, _ := paths.HomeDir()
	return environment.Options{
		Runner:           i.runner,
		FS:               i.fs,
		OSReleaseFiles:   i.cfg.Git.OSReleaseFiles,
		CustomBinPath:    customBinPath,
		MambaSearchPaths: i.cfg.Miniforge.SearchPaths,
		BrewLocations:    i.cfg.Homebrew.Locations,
		Home:             home,
		LocalBin:         i.cfg.Miniforge.LocalBin,
	}
}

func (s *Summary) add(opts Options, res packagemanager.Result) {
	s.Results = append(s.Results, res)
	if opts.OnResult != nil {
		opts.OnResult(res)
	}
}

func failed(app applist.App, cause error, code errors.ErrorCode, msg string) packagemanager.Result {
	return packagemanager.Result{
		App:      app,
		Decision: packagemanager.Failed,
		Err:      errors.Wrapf(cause, code, "%s: %s", app.Name, msg).WithDetail("app", app.Name),
	}
}

// Skipped returns the apps that were already present
func (s Summary) Skipped() []packagemanager.Result {
	return s.filter(func(r packagemanager.Result) bool { return r.Decision == packagemanager.Skipped })
}

// Installed returns the apps installed during the run
func (s Summary) Installed() []packagemanager.Result {
	return s.filter(packagemanager.Result.Installed)
}

// Failed returns the apps that could not be installed
func (s Summary) Failed() []packagemanager.Result {
	return s.filter(func(r packagemanager.Result) bool { return r.Decision == packagemanager.Failed })
}

// Warnings returns every soft failure reported during the run
func (s Summary) Warnings() []error {
	var warnings []error
	for _, r := range s.Results {
		warnings = append(warnings, r.Warnings...)
	}
	return warnings
}

// Err combines the per-app failures; nil when every app succeeded
func (s Summary) Err() error {
	var err error
	for _, r := range s.Failed() {
		err = multierr.Append(err, r.Err)
	}
	return err
}

func (s Summary) filter(keep func(packagemanager.Result) bool) []packagemanager.Result {
	var out []packagemanager.Result
	for _, r := range s.Results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
