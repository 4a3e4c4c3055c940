package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/appinstaller"
	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/output"
	"github.com/arthur-debert/dotstrap/pkg/packagemanager"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/spf13/cobra"
)

func newAppsCmd(a *app) *cobra.Command {
	var opts appinstaller.Options

	cmd := &cobra.Command{
		Use:     "apps",
		Short:   MsgAppsShort,
		Long:    MsgAppsLong,
		Example: MsgAppsExample,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateMode(opts.Mode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}

			r := output.New(cmd.OutOrStdout())
			r.Heading(fmt.Sprintf(MsgAppsStarting, opts.AppList))

			run := opts
			run.CustomBinPath = paths.ExpandHome(opts.CustomBinPath)
			run.OnResult = r.Result

			summary, err := a.installer(cfg).Run(cmd.Context(), run)
			if err != nil {
				return err
			}
			r.AppsSummary(summary)

			if err := summary.Err(); err != nil {
				return &ReportedError{Err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Mode, "mode", "m", string(environment.ModeAuto), fmt.Sprintf(MsgFlagMode, strings.Join(modeChoices(), ", ")))
	flags.StringVarP(&opts.AppList, "app-list", "a", "", MsgFlagAppList)
	flags.BoolVarP(&opts.ForceReinstall, "force-reinstall", "f", false, MsgFlagForceReinstall)
	flags.StringVarP(&opts.CustomBinPath, "custom-bin-path", "c", "", MsgFlagCustomBinPath)
	_ = cmd.MarkFlagRequired("app-list")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return modeChoices(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("app-list", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := a.loadConfig(nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, err := applist.NewLoader(a.opts.FS, cfg.Apps.ListsDir, cfg.Apps.Lists).Names()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return append(names, applist.FullList), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func modeChoices() []string {
	return append([]string{string(environment.ModeAuto)}, packagemanager.Modes()...)
}

func validateMode(mode string) error {
	for _, choice := range modeChoices() {
		if strings.EqualFold(mode, choice) {
			return nil
		}
	}
	return errors.Newf(errors.ErrInvalidInput, "invalid mode %q (choose from %s)", mode, strings.Join(modeChoices(), ", ")).
		WithDetail("mode", mode)
}
