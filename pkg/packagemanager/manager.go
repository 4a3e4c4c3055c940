package packagemanager

import (
	"context"

	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/runner"
)

// Decision is the outcome of installing one app
type Decision string

const (
	Skipped        Decision = "skipped"
	InstalledBrew  Decision = "installed-brew"
	InstalledMamba Decision = "installed-mamba"
	Failed         Decision = "failed"
)

// Result reports what happened to one app
type Result struct {
	App      applist.App
	Decision Decision
	// Err is set when Decision is Failed
	Err error
	// Warnings are soft failures that never change Decision
	Warnings []error
}

// Installed reports whether the app was installed during this run
func (r Result) Installed() bool {
	return r.Decision == InstalledBrew || r.Decision == InstalledMamba
}

// Manager is a package manager backend
type Manager interface {
	Name() string
	// EnsureAvailable bootstraps the package manager if needed
	EnsureAvailable(ctx context.Context) error
	// IsInstalled probes the command search path only
	IsInstalled(app applist.App) bool
	Install(ctx context.Context, app applist.App, force bool) Result
}

// Deps are the collaborators shared by every adapter
type Deps struct {
	Runner runner.Runner
	FS     filesystem.FS
	Env    environment.Classification
	Config *config.Config
	// CustomBinPath points at an existing mamba executable
	CustomBinPath string
	// TempDir holds downloaded installers; defaults to os.TempDir()
	TempDir string
}

// IsBootstrapFailure reports whether err means the package manager itself
// could not be made available
func IsBootstrapFailure(err error) bool {
	return errors.IsErrorCode(err, errors.ErrBootstrapFailed)
}

// once caches the result of a bootstrap so it runs at most one time
type once struct {
	done bool
	err  error
}

func (o *once) do(ctx context.Context, fn func(context.Context) error) error {
	if !o.done {
		o.err = fn(ctx)
		o.done = true
	}
	return o.err
}

// skipOrPrepare handles the part of Install shared by every adapter. It
// returns a finished Result and true when no install command should run.
func skipOrPrepare(ctx context.Context, m Manager, app applist.App, force bool) (Result, bool) {
	if !force && m.IsInstalled(app) {
		return Result{App: app, Decision: Skipped}, true
	}
	if err := m.EnsureAvailable(ctx); err != nil {
		return Result{App: app, Decision: Failed, Err: err}, true
	}
	return Result{App: app}, false
}

func installFailed(app applist.App, manager string, err error) Result {
	return Result{
		App:      app,
		Decision: Failed,
		Err: errors.Wrapf(err, errors.ErrPackageInstall, "%s failed to install %s", manager, app.Name).
			WithDetail("app", app.Name).
			WithDetail("manager", manager),
	}
}
