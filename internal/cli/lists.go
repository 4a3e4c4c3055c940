package cli

import (
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/output"
	"github.com/spf13/cobra"
)

func newListsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lists [name...]",
		Short: MsgListsShort,
		Long:  MsgListsLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			loader := applist.NewLoader(a.opts.FS, cfg.Apps.ListsDir, cfg.Apps.Lists)
			r := output.New(cmd.OutOrStdout())

			names := args
			if len(names) == 0 {
				if names, err = loader.Names(); err != nil {
					return err
				}
				if len(names) == 0 {
					r.Info(fmt.Sprintf(MsgNoLists, loader.Dir()))
					return nil
				}
				r.Info(fmt.Sprintf(MsgListsDir, loader.Dir()))
			}

			for _, name := range names {
				list, err := loader.Load(name)
				if err != nil {
					return err
				}
				r.List(name, list)
			}
			return nil
		},
	}
}
