package cli

import (
	"github.com/arthur-debert/dotstrap/pkg/gitensure"
	"github.com/arthur-debert/dotstrap/pkg/output"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/spf13/cobra"
)

func newGitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "git",
		Short: MsgGitShort,
		Long:  MsgGitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			env, err := a.installer(cfg).Detect(cmd.Context(), "")
			if err != nil {
				return err
			}
			if err := gitensure.New(a.opts.Runner, env).Ensure(cmd.Context()); err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Success(MsgGitReady)
			return nil
		},
	}
}

func newEnvCmd(a *app) *cobra.Command {
	var customBinPath string

	cmd := &cobra.Command{
		Use:   "env",
		Short: MsgEnvShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			env, err := a.installer(cfg).Detect(cmd.Context(), paths.ExpandHome(customBinPath))
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Environment(env)
			return nil
		},
	}

	cmd.Flags().StringVarP(&customBinPath, "custom-bin-path", "c", "", MsgFlagCustomBinPath)
	return cmd
}
