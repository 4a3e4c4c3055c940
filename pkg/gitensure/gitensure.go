// Package gitensure makes sure git is available before anything else runs.
package gitensure

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/rs/zerolog"
)

// Ensurer installs git through the distribution package manager when needed
type Ensurer struct {
	runner  runner.Runner
	env     environment.Classification
	recipes map[environment.Distro]Recipe
	logger  zerolog.Logger
}

// New creates an Ensurer using the default Recipes
func New(r runner.Runner, env environment.Classification) *Ensurer {
	return &Ensurer{
		runner:  r,
		env:     env,
		recipes: Recipes,
		logger:  logging.GetLogger("gitensure"),
	}
}

// Ensure returns nil when git is usable, installing it first if necessary
func (e *Ensurer) Ensure(ctx context.Context) error {
	if runner.Exists(e.runner, "git") {
		e.logVersion(ctx)
		return nil
	}

	e.logger.Info().Str("distro", string(e.env.Distro)).Msg("git not found, attempting install")

	recipe, ok := e.recipes[e.env.Distro]
	if !ok {
		return errors.Newf(errors.ErrUnknownDistro,
			"unsupported or unknown distribution %q; install git manually", e.env.Distro).
			WithDetail("distro", string(e.env.Distro))
	}

	if !e.env.HasSudo {
		cause := errors.New(errors.ErrNoPrivileges, "not root and sudo is unavailable")
		return errors.Wrap(cause, errors.ErrGitUnavailable, "git is not installed and cannot be installed")
	}

	alt, ok := e.pickAlternative(recipe)
	if !ok {
		return errors.Newf(errors.ErrGitUnavailable,
			"no supported package manager found for %s; install git manually", e.env.Distro).
			WithDetail("distro", string(e.env.Distro))
	}

	for _, step := range alt.Steps {
		cmd := e.privileged(step)
		if _, err := e.runner.Run(ctx, cmd); err != nil {
			return errors.Wrapf(err, errors.ErrGitUnavailable, "git install step failed: %s", cmd.String()).
				WithDetail("command", cmd.String())
		}
	}

	if !runner.Exists(e.runner, "git") {
		return errors.New(errors.ErrGitUnavailable, "git is still unavailable after installation")
	}

	e.logger.Info().Str("tool", alt.Tool).Msg("git installed")
	e.logVersion(ctx)
	return nil
}

func (e *Ensurer) pickAlternative(recipe Recipe) (Alternative, bool) {
	for _, alt := range recipe.Alternatives {
		if runner.Exists(e.runner, alt.Tool) {
			return alt, true
		}
	}
	return Alternative{}, false
}

// privileged prefixes step with sudo unless dotstrap already runs as root
func (e *Ensurer) privileged(step Step) runner.Command {
	if e.env.IsRoot {
		return runner.Command{Name: step[0], Args: step[1:], Stream: true}
	}
	return runner.Command{Name: "sudo", Args: step, Stream: true}
}

func (e *Ensurer) logVersion(ctx context.Context) {
	res, err := e.runner.Run(ctx, runner.Command{Name: "git", Args: []string{"--version"}})
	if err != nil {
		e.logger.Warn().Err(err).Msg("git --version failed")
		return
	}
	e.logger.Info().Str("version", strings.TrimSpace(res.Stdout)).Msg("git available")
}
