package packagemanager

import (
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/registry"
)

// Factory builds a Manager for a run
type Factory func(deps Deps) Manager

var managers = registry.New[Factory]("package manager")

func init() {
	registry.MustRegister(managers, string(environment.ModeBrew), func(deps Deps) Manager {
		return NewHomebrew(deps)
	})
	registry.MustRegister(managers, string(environment.ModeMiniforge), func(deps Deps) Manager {
		return NewMiniforge(deps)
	})
}

// Modes lists the registered package manager names, sorted
func Modes() []string {
	return managers.List()
}

// New builds the adapter registered under mode
func New(mode environment.Mode, deps Deps) (Manager, error) {
	factory, err := managers.Get(string(mode))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnknownManagerMode, "unsupported package manager %q", mode).
			WithDetail("mode", string(mode))
	}
	if deps.Runner == nil || deps.FS == nil || deps.Config == nil {
		return nil, errors.New(errors.ErrInternal, "package manager needs a runner, a filesystem and a config")
	}
	return factory(deps), nil
}
