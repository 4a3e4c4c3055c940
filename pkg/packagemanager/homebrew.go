package packagemanager

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/rs/zerolog"
)

// Homebrew installs apps with brew
type Homebrew struct {
	runner   runner.Runner
	fs       filesystem.FS
	env      environment.Classification
	cfg      config.Homebrew
	brewPath string
	boot     once
	logger   zerolog.Logger
}

// NewHomebrew creates the brew adapter
func NewHomebrew(deps Deps) *Homebrew {
	return &Homebrew{
		runner:   deps.Runner,
		fs:       deps.FS,
		env:      deps.Env,
		cfg:      deps.Config.Homebrew,
		brewPath: deps.Env.BrewPath,
		logger:   logging.GetLogger("homebrew"),
	}
}

func (h *Homebrew) Name() string {
	return string(environment.ModeBrew)
}

func (h *Homebrew) IsInstalled(app applist.App) bool {
	return runner.Exists(h.runner, app.Probe())
}

func (h *Homebrew) EnsureAvailable(ctx context.Context) error {
	return h.boot.do(ctx, h.bootstrap)
}

func (h *Homebrew) bootstrap(ctx context.Context) error {
	if h.brewPath == "" {
		h.brewPath = environment.LocateBrew(h.fs, h.runner, h.cfg.Locations)
	}
	if h.brewPath != "" {
		h.logger.Info().Str("path", h.brewPath).Msg("Homebrew available")
		return nil
	}

	if !h.env.HasSudo {
		h.logger.Warn().Msg("Homebrew installation usually needs sudo privileges; continuing anyway")
	}

	h.logger.Info().Str("script", h.cfg.InstallScriptURL).Msg("Installing Homebrew")
	cmd := runner.Command{
		Name:   "/bin/bash",
		Args:   []string{"-c", fmt.Sprintf(`/bin/bash -c "$(curl -fsSL %s)"`, h.cfg.InstallScriptURL)},
		Env:    map[string]string{"NONINTERACTIVE": "1"},
		Stream: true,
	}
	if _, err := h.runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.ErrBootstrapFailed, "Homebrew installation failed").
			WithDetail("manager", h.Name())
	}

	// The installer does not touch the current PATH
	h.brewPath = environment.LocateBrew(h.fs, h.runner, h.cfg.Locations)
	if h.brewPath == "" {
		return errors.New(errors.ErrBootstrapFailed, "brew not found after installation").
			WithDetail("manager", h.Name())
	}
	h.logger.Info().Str("path", h.brewPath).Msg("Homebrew installed")
	return nil
}

func (h *Homebrew) Install(ctx context.Context, app applist.App, force bool) Result {
	if res, done := skipOrPrepare(ctx, h, app, force); done {
		return res
	}

	args := []string{"install"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, app.Name)

	if _, err := h.runner.Run(ctx, runner.Command{Name: h.brewPath, Args: args, Stream: true}); err != nil {
		return installFailed(app, h.Name(), err)
	}

	h.logger.Info().Str("app", app.Name).Msg("Installed with Homebrew")
	return Result{App: app, Decision: InstalledBrew}
}

var _ Manager = (*Homebrew)(nil)
