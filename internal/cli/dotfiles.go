package cli

import (
	"github.com/arthur-debert/dotstrap/pkg/dotfiles"
	"github.com/arthur-debert/dotstrap/pkg/output"
	"github.com/spf13/cobra"
)

func newDotfilesCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "dotfiles [source-dir]",
		Short:   MsgDotfilesShort,
		Long:    MsgDotfilesLong,
		Example: MsgDotfilesExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides map[string]interface{}
			if len(args) == 1 {
				overrides = map[string]interface{}{"dotfiles.source_dir": args[0]}
			}
			cfg, err := a.loadConfig(overrides)
			if err != nil {
				return err
			}

			report, err := dotfiles.New(a.opts.FS, cfg.Dotfiles).
				WithClock(a.opts.Now).
				Run(dotfiles.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			output.New(cmd.OutOrStdout()).DotfilesReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}
