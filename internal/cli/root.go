package cli

import (
	"context"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/arthur-debert/dotstrap/internal/version"
	"github.com/arthur-debert/dotstrap/pkg/appinstaller"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/output"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/arthur-debert/dotstrap/pkg/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ExitInterrupted is returned by Execute when the run was cancelled by a signal
const ExitInterrupted = 130

// Options supplies the host dependencies of the command tree. Zero values
// select the real implementations.
type Options struct {
	Runner runner.Runner
	FS     filesystem.FS
	Detect appinstaller.DetectFunc
	Now    func() time.Time
	// Topics replaces the embedded help topics
	Topics fs.FS
}

// ReportedError marks a failure whose details were already written to the
// command's output. It still makes the process exit non-zero.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

type app struct {
	opts       Options
	verbosity  int
	configFile string
}

// NewRootCmd creates the command tree wired to the real host
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions creates the command tree with the given dependencies
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Detect == nil {
		opts.Detect = environment.Detect
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Topics == nil {
		opts.Topics = topics.Builtin()
	}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:     "dotstrap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddCommand(newAppsCmd(a))
	rootCmd.AddCommand(newDotfilesCmd(a))
	rootCmd.AddCommand(newGitCmd(a))
	rootCmd.AddCommand(newEnvCmd(a))
	rootCmd.AddCommand(newListsCmd(a))
	rootCmd.AddCommand(newGenconfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	// Help topics are optional; a broken topic set leaves cobra's help in place
	manager, err := topics.New(opts.Topics, topics.Options{Renderer: topicRenderer()})
	if err == nil {
		manager.Install(rootCmd)
		rootCmd.AddCommand(newTopicsCmd(manager, rootCmd.Name()))
	}

	return rootCmd
}

func topicRenderer() topics.Renderer {
	if output.ColorEnabled(os.Stdout) {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}

// Execute runs cmd and returns the process exit code. Errors that were not
// already reported are written to stderr.
func Execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var reported *ReportedError
	if !errors.As(err, &reported) {
		output.New(stderr).Error(err)
	}
	if ctx.Err() != nil {
		return ExitInterrupted
	}
	return 1
}

func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("sources", cfg.Sources).Msg("Configuration loaded")
	return cfg, nil
}

func (a *app) installer(cfg *config.Config) *appinstaller.Installer {
	return appinstaller.New(a.opts.Runner, a.opts.FS, cfg).WithDetect(a.opts.Detect)
}
