package cli

import (
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/spf13/cobra"
)

func newGenconfigCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Long:  MsgGenconfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal(format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, cfg.Header())
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatTOML, config.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
