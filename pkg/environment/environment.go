package environment

import (
	"context"
	"os"
	"runtime"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/runner"
)

// Classification is the read-only picture of the host for one run
type Classification struct {
	HasSudo   bool
	IsRoot    bool
	HasBrew   bool
	BrewPath  string
	HasMamba  bool
	MambaPath string
	Distro    Distro
	Home      string
	LocalBin  string
	OS        string
	Arch      string
}

// Options carries the collaborators and search locations used by Detect
type Options struct {
	Runner runner.Runner
	FS     filesystem.FS

	OSReleaseFiles   []string
	CustomBinPath    string
	MambaSearchPaths []string
	BrewLocations    []string
	Home             string
	LocalBin         string

	// Euid defaults to os.Geteuid
	Euid func() int
	// OS and Arch default to runtime.GOOS and runtime.GOARCH
	OS   string
	Arch string
}

// Detect inspects the host and returns its Classification
func Detect(ctx context.Context, opts Options) (Classification, error) {
	logger := logging.GetLogger("environment")

	if opts.Runner == nil || opts.FS == nil {
		return Classification{}, errors.New(errors.ErrInternal, "environment detection needs a runner and a filesystem")
	}
	euid := opts.Euid
	if euid == nil {
		euid = os.Geteuid
	}

	c := Classification{
		Home:     opts.Home,
		LocalBin: opts.LocalBin,
		OS:       valueOr(opts.OS, runtime.GOOS),
		Arch:     valueOr(opts.Arch, runtime.GOARCH),
	}

	c.IsRoot = euid() == 0
	c.HasSudo = c.IsRoot || canSudo(ctx, opts.Runner)
	c.Distro = DetectDistro(opts.FS, opts.Runner, opts.OSReleaseFiles)
	c.BrewPath = LocateBrew(opts.FS, opts.Runner, opts.BrewLocations)
	c.HasBrew = c.BrewPath != ""
	c.MambaPath = LocateMamba(opts.FS, opts.CustomBinPath, opts.MambaSearchPaths)
	c.HasMamba = c.MambaPath != ""

	logger.Info().
		Bool("root", c.IsRoot).
		Bool("sudo", c.HasSudo).
		Str("distro", string(c.Distro)).
		Str("brew", c.BrewPath).
		Str("mamba", c.MambaPath).
		Str("os", c.OS).
		Str("arch", c.Arch).
		Msg("Environment detected")

	return c, nil
}

// DetectDistro reads the first available os-release file and falls back to
// probing for a known package manager
func DetectDistro(fsys filesystem.FS, r runner.Runner, osReleaseFiles []string) Distro {
	logger := logging.GetLogger("environment")

	for _, path := range osReleaseFiles {
		data, err := fsys.ReadFile(path)
		if err != nil {
			continue
		}
		if d := DistroFromOSRelease(ParseOSRelease(data)); d != DistroUnknown {
			logger.Debug().Str("file", path).Str("distro", string(d)).Msg("Distro from os-release")
			return d
		}
		// An unrecognised os-release still lets the probe decide
		break
	}

	for _, probe := range fallbackProbes {
		if runner.Exists(r, probe.tool) {
			logger.Debug().Str("tool", probe.tool).Str("distro", string(probe.distro)).Msg("Distro from package manager probe")
			return probe.distro
		}
	}
	return DistroUnknown
}

// LocateBrew returns brew's path from the search path or the first existing
// known location, or "" when brew is absent
func LocateBrew(fsys filesystem.FS, r runner.Runner, locations []string) string {
	if path, err := r.LookPath("brew"); err == nil {
		return path
	}
	return firstExisting(fsys, locations)
}

// LocateMamba returns the custom bin path when it exists, otherwise the first
// existing search path, or "" when mamba is absent
func LocateMamba(fsys filesystem.FS, customBinPath string, searchPaths []string) string {
	if customBinPath != "" && filesystem.Exists(fsys, customBinPath) {
		return customBinPath
	}
	return firstExisting(fsys, searchPaths)
}

func canSudo(ctx context.Context, r runner.Runner) bool {
	if !runner.Exists(r, "sudo") {
		return false
	}
	_, err := r.Run(ctx, runner.Command{Name: "sudo", Args: []string{"true"}})
	return err == nil
}

func firstExisting(fsys filesystem.FS, candidates []string) string {
	for _, path := range candidates {
		if path != "" && filesystem.Exists(fsys, path) {
			return path
		}
	}
	return ""
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
