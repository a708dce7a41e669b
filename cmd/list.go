package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sadt/store"
	"sadt/ui"
)

func listCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the diagrams in a directory store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.Server.Dir
			}
			s, err := store.NewFileStore(dir)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			names, err := s.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, ui.Subtle.Sprintf("no diagrams in %s", dir))
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				d, err := s.Load(ctx, name)
				if err != nil {
					rows = append(rows, []string{name, "-", "-", ui.Bad.Sprint(err.Error())})
					continue
				}
				rows = append(rows, []string{name, strconv.Itoa(d.NodeCount()), strconv.Itoa(d.ArrowCount()), ""})
			}
			ui.Table(out, []string{"NAME", "ACTIVITIES", "ARROWS", ""}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Store directory (default from config)")
	return cmd
}
