package packagemanager

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/rs/zerolog"
)

const installerName = "Miniforge3.sh"

// Miniforge installs apps into a dedicated mamba environment and links
// their executables into the local bin directory
type Miniforge struct {
	runner        runner.Runner
	fs            filesystem.FS
	env           environment.Classification
	cfg           config.Miniforge
	customBinPath string
	tempDir       string
	mambaPath     string
	boot          once
	logger        zerolog.Logger
}

// NewMiniforge creates the mamba adapter
func NewMiniforge(deps Deps) *Miniforge {
	tempDir := deps.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Miniforge{
		runner:        deps.Runner,
		fs:            deps.FS,
		env:           deps.Env,
		cfg:           deps.Config.Miniforge,
		customBinPath: deps.CustomBinPath,
		tempDir:       tempDir,
		mambaPath:     deps.Env.MambaPath,
		logger:        logging.GetLogger("miniforge"),
	}
}

func (m *Miniforge) Name() string {
	return string(environment.ModeMiniforge)
}

func (m *Miniforge) IsInstalled(app applist.App) bool {
	return runner.Exists(m.runner, app.Probe())
}

// MambaPath returns the mamba executable in use, once known
func (m *Miniforge) MambaPath() string {
	return m.mambaPath
}

// EnvBinDir is where the apps environment keeps its executables
func (m *Miniforge) EnvBinDir() string {
	root := filepath.Dir(filepath.Dir(m.mambaPath))
	return filepath.Join(root, "envs", m.cfg.EnvName, "bin")
}

func (m *Miniforge) EnsureAvailable(ctx context.Context) error {
	return m.boot.do(ctx, m.bootstrap)
}

func (m *Miniforge) bootstrap(ctx context.Context) error {
	if m.customBinPath != "" && !filesystem.Exists(m.fs, m.customBinPath) {
		m.logger.Warn().Str("path", m.customBinPath).Msg("Custom mamba path does not exist, searching standard locations")
	}
	if m.mambaPath == "" {
		m.mambaPath = environment.LocateMamba(m.fs, m.customBinPath, m.cfg.SearchPaths)
	}
	if m.mambaPath == "" {
		if err := m.installMiniforge(ctx); err != nil {
			return err
		}
	}
	m.logger.Info().Str("path", m.mambaPath).Msg("Mamba available")

	return m.ensureEnv(ctx)
}

func (m *Miniforge) installMiniforge(ctx context.Context) error {
	url := InstallerURL(m.cfg.InstallerURL, m.env.OS, m.env.Arch)
	dir := filepath.Join(m.tempDir, "dotstrap-miniforge")
	script := filepath.Join(dir, installerName)

	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBootstrapFailed, "cannot create %s", dir).
			WithDetail("manager", m.Name())
	}
	defer func() {
		if err := m.fs.RemoveAll(dir); err != nil {
			m.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove Miniforge installer")
		}
	}()

	m.logger.Info().Str("url", url).Msg("Downloading Miniforge")
	download := runner.Command{Name: "curl", Args: []string{"-fsSL", "-o", script, url}, Stream: true}
	if _, err := m.runner.Run(ctx, download); err != nil {
		return errors.Wrap(err, errors.ErrBootstrapFailed, "Miniforge download failed").
			WithDetail("manager", m.Name()).
			WithDetail("url", url)
	}

	prefix := m.cfg.Prefix
	install := runner.Command{Name: "bash", Args: []string{script, "-b", "-p", prefix}, Stream: true}
	if _, err := m.runner.Run(ctx, install); err != nil {
		return errors.Wrap(err, errors.ErrBootstrapFailed, "Miniforge installation failed").
			WithDetail("manager", m.Name())
	}

	m.mambaPath = filepath.Join(prefix, "bin", "mamba")
	if !filesystem.Exists(m.fs, m.mambaPath) {
		return errors.Newf(errors.ErrBootstrapFailed, "mamba not found at %s after installation", m.mambaPath).
			WithDetail("manager", m.Name())
	}
	m.logger.Info().Str("path", m.mambaPath).Msg("Miniforge installed")
	return nil
}

func (m *Miniforge) ensureEnv(ctx context.Context) error {
	name := m.cfg.EnvName
	res, err := m.runner.Run(ctx, runner.Command{Name: m.mambaPath, Args: []string{"env", "list"}})
	if err != nil {
		return errors.Wrap(err, errors.ErrBootstrapFailed, "cannot list mamba environments").
			WithDetail("manager", m.Name())
	}
	if HasEnv(res.Stdout, name) {
		m.logger.Debug().Str("env", name).Msg("Mamba environment exists")
		return nil
	}

	m.logger.Info().Str("env", name).Msg("Creating mamba environment")
	create := runner.Command{Name: m.mambaPath, Args: []string{"create", "-n", name, "-y"}, Stream: true}
	if _, err := m.runner.Run(ctx, create); err != nil {
		return errors.Wrapf(err, errors.ErrBootstrapFailed, "cannot create mamba environment %q", name).
			WithDetail("manager", m.Name())
	}
	return nil
}

func (m *Miniforge) Install(ctx context.Context, app applist.App, force bool) Result {
	if res, done := skipOrPrepare(ctx, m, app, force); done {
		return res
	}

	args := []string{"install", "-n", m.cfg.EnvName, "-y"}
	if force {
		args = append(args, "--force-reinstall")
	}
	args = append(args, app.Name)

	if _, err := m.runner.Run(ctx, runner.Command{Name: m.mambaPath, Args: args, Stream: true}); err != nil {
		return installFailed(app, m.Name(), err)
	}

	m.logger.Info().Str("app", app.Name).Msg("Installed with mamba")
	return Result{
		App:      app,
		Decision: InstalledMamba,
		Warnings: LinkBinaries(m.fs, m.EnvBinDir(), m.cfg.LocalBin, app.Commands),
	}
}

// HasEnv reports whether `mamba env list` output contains an environment
// named exactly name
func HasEnv(envList, name string) bool {
	scanner := bufio.NewScanner(strings.NewReader(envList))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == name {
			return true
		}
	}
	return false
}

// InstallerURL fills the {os} and {arch} placeholders with the names the
// Miniforge releases use
func InstallerURL(template, goos, goarch string) string {
	return strings.NewReplacer(
		"{os}", miniforgeOS(goos),
		"{arch}", miniforgeArch(goos, goarch),
	).Replace(template)
}

func miniforgeOS(goos string) string {
	switch goos {
	case "darwin":
		return "MacOSX"
	case "linux":
		return "Linux"
	default:
		return goos
	}
}

func miniforgeArch(goos, goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		if goos == "darwin" {
			return "arm64"
		}
		return "aarch64"
	case "ppc64le":
		return "ppc64le"
	default:
		return goarch
	}
}

var _ Manager = (*Miniforge)(nil)
