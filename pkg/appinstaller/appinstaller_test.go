package appinstaller

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/packagemanager"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/arthur-debert/dotstrap/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const minimal = "vim\nfzf\n# comment\n\nyazi"

type fixture struct {
	runner    *testutil.FakeRunner
	installer *Installer
	env       environment.Classification
}

func newFixture(t *testing.T, env environment.Classification, onPath ...string) *fixture {
	t.Helper()

	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/lists/minimal.txt", []byte(minimal), 0644))
	require.NoError(t, afero.WriteFile(mem, "/lists/optional.txt", []byte("btop\nvim\n"), 0644))

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Apps.ListsDir = "/lists"
	cfg.Homebrew.Locations = nil
	cfg.Miniforge.SearchPaths = nil

	f := &fixture{runner: testutil.NewFakeRunner(onPath...), env: env}
	f.installer = New(f.runner, filesystem.NewAferoFS(mem), cfg).
		WithDetect(func(ctx context.Context, opts environment.Options) (environment.Classification, error) {
			return f.env, nil
		})
	return f
}

func decisions(s Summary) map[string]packagemanager.Decision {
	out := make(map[string]packagemanager.Decision)
	for _, r := range s.Results {
		out[r.App.Name] = r.Decision
	}
	return out
}

func TestRun_BrewMinimal(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "brew", "fzf")

	summary, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "minimal"})
	require.NoError(t, err)

	assert.Equal(t, environment.ModeBrew, summary.Mode)
	assert.Equal(t, map[string]packagemanager.Decision{
		"vim":  packagemanager.InstalledBrew,
		"fzf":  packagemanager.Skipped,
		"yazi": packagemanager.InstalledBrew,
	}, decisions(summary))
	assert.Equal(t, []string{
		"git --version",
		"/usr/bin/brew install vim",
		"/usr/bin/brew install yazi",
	}, f.runner.CallLines())
	assert.Len(t, summary.Installed(), 2)
	assert.Len(t, summary.Skipped(), 1)
	assert.Empty(t, summary.Failed())
	assert.NoError(t, summary.Err())
}

func TestRun_ResultsKeepListOrder(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "brew")

	var seen []string
	summary, err := f.installer.Run(context.Background(), Options{
		Mode:     "brew",
		AppList:  "full",
		OnResult: func(r packagemanager.Result) { seen = append(seen, r.App.Name) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"vim", "fzf", "yazi", "btop"}, seen)
	assert.Len(t, summary.Results, 4)
}

func TestRun_AllInstalledRunsNoInstallCommand(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "vim", "fzf", "yazi")

	summary, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "minimal"})
	require.NoError(t, err)

	assert.Len(t, summary.Skipped(), 3)
	assert.Equal(t, []string{"git --version"}, f.runner.CallLines())
}

func TestRun_AutoWithoutSudoUsesMiniforge(t *testing.T) {
	mamba := "/opt/miniforge3/bin/mamba"
	f := newFixture(t, environment.Classification{MambaPath: mamba, HasMamba: true}, "git", "vim", "fzf")
	f.runner.Outputs[mamba+" env list"] = "apps  /opt/miniforge3/envs/apps\n"

	summary, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "minimal"})
	require.NoError(t, err)

	assert.Equal(t, environment.ModeMiniforge, summary.Mode)
	assert.Equal(t, packagemanager.InstalledMamba, decisions(summary)["yazi"])
	assert.Contains(t, f.runner.CallLines(), mamba+" install -n apps -y yazi")
}

func TestRun_FailureDoesNotStopOthers(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "brew")
	f.runner.Fail("/usr/bin/brew install --force vim")

	summary, err := f.installer.Run(context.Background(), Options{Mode: "brew", AppList: "minimal", ForceReinstall: true})
	require.NoError(t, err)

	assert.Equal(t, map[string]packagemanager.Decision{
		"vim":  packagemanager.Failed,
		"fzf":  packagemanager.InstalledBrew,
		"yazi": packagemanager.InstalledBrew,
	}, decisions(summary))
	assert.Contains(t, f.runner.CallLines(), "/usr/bin/brew install --force fzf")

	require.Error(t, summary.Err())
	errs := multierr.Errors(summary.Err())
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrPackageInstall))
}

func TestRun_BootstrapFailureFailsRemaining(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "fzf")
	f.runner.RunFunc = func(cmd runner.Command) (runner.Result, error) {
		if cmd.Name == "/bin/bash" {
			return runner.Result{ExitCode: 1}, errors.New(errors.ErrCommandFailed, "install script failed")
		}
		return runner.Result{}, nil
	}

	summary, err := f.installer.Run(context.Background(), Options{Mode: "brew", AppList: "minimal"})
	require.NoError(t, err)

	assert.Len(t, summary.Failed(), 3)
	for _, r := range summary.Results {
		assert.True(t, packagemanager.IsBootstrapFailure(r.Err), r.App.Name)
	}
	assert.Len(t, f.runner.CallsContaining("/bin/bash"), 1)
	assert.Len(t, multierr.Errors(summary.Err()), 3)
}

func TestRun_GitUnavailableAborts(t *testing.T) {
	f := newFixture(t, environment.Classification{Distro: environment.DistroDebian}, "apt-get")

	_, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "minimal"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitUnavailable))
	assert.Empty(t, f.runner.CallsContaining("brew"))
}

func TestRun_UnknownDistroIsGitUnavailable(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true})

	_, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "minimal"})

	require.Error(t, err)
	assert.Equal(t, errors.ErrGitUnavailable, errors.GetErrorCode(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownDistro))
}

func TestRun_InvalidMode(t *testing.T) {
	f := newFixture(t, environment.Classification{}, "git")

	_, err := f.installer.Run(context.Background(), Options{Mode: "apt", AppList: "minimal"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRun_MissingList(t *testing.T) {
	f := newFixture(t, environment.Classification{}, "git")

	_, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "nope"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrListNotFound))
}

func TestRun_MissingListFailsBeforeGit(t *testing.T) {
	f := newFixture(t, environment.Classification{Distro: environment.DistroDebian, HasSudo: true}, "apt-get")

	_, err := f.installer.Run(context.Background(), Options{Mode: "auto", AppList: "nope"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrListNotFound))
	assert.Empty(t, f.runner.Calls)
}

func TestRun_CancelledContext(t *testing.T) {
	f := newFixture(t, environment.Classification{HasSudo: true}, "git", "brew")
	ctx, cancel := context.WithCancel(context.Background())
	f.runner.RunFunc = func(cmd runner.Command) (runner.Result, error) {
		if cmd.String() == "/usr/bin/brew install vim" {
			cancel()
		}
		return runner.Result{}, nil
	}

	summary, err := f.installer.Run(ctx, Options{Mode: "brew", AppList: "minimal"})
	require.NoError(t, err)

	assert.Equal(t, packagemanager.InstalledBrew, decisions(summary)["vim"])
	assert.Len(t, summary.Failed(), 2)
}

func TestSummary_Warnings(t *testing.T) {
	w := errors.New(errors.ErrSymlinkBestEffort, "missing binary")
	s := Summary{Results: []packagemanager.Result{
		{Decision: packagemanager.InstalledMamba, Warnings: []error{w}},
		{Decision: packagemanager.Skipped},
	}}

	assert.Equal(t, []error{w}, s.Warnings())
	assert.NoError(t, s.Err())
}

func TestRun_BrewMinimalWithVimPresent(t *testing.T) {
	f := newFixture(t, environment.Classification{}, "git", "brew", "vim")

	summary, err := f.installer.Run(context.Background(), Options{Mode: "brew", AppList: "minimal"})
	require.NoError(t, err)

	assert.Empty(t, f.runner.CallsContaining("install vim"))
	assert.Len(t, f.runner.CallsContaining("install fzf"), 1)
	assert.Len(t, f.runner.CallsContaining("install yazi"), 1)
	assert.Equal(t, packagemanager.Skipped, decisions(summary)["vim"])
}

func TestDetect_PassesConfiguredLocations(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Homebrew.Locations = []string{"/brew/bin/brew"}
	cfg.Miniforge.SearchPaths = []string{"/mf/bin/mamba"}

	var got environment.Options
	installer := New(testutil.NewFakeRunner(), filesystem.NewAferoFS(afero.NewMemMapFs()), cfg).
		WithDetect(func(ctx context.Context, opts environment.Options) (environment.Classification, error) {
			got = opts
			return environment.Classification{Distro: environment.DistroArch}, nil
		})

	env, err := installer.Detect(context.Background(), "/custom/bin")
	require.NoError(t, err)

	assert.Equal(t, environment.DistroArch, env.Distro)
	assert.Equal(t, "/custom/bin", got.CustomBinPath)
	assert.Equal(t, []string{"/brew/bin/brew"}, got.BrewLocations)
	assert.Equal(t, []string{"/mf/bin/mamba"}, got.MambaSearchPaths)
	assert.Equal(t, cfg.Git.OSReleaseFiles, got.OSReleaseFiles)
}
