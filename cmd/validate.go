package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sadt/ui"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that diagram files are well formed",
		Long: `Parse each file and check its invariants: unique ids, arrows between
two distinct existing activities, known arrow types and sides.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var rows [][]string
			failed := 0
			for _, path := range args {
				d, err := loadDiagram(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", ui.StatusIcon(false), path, err)
					continue
				}
				rows = append(rows, []string{
					ui.StatusIcon(true), path,
					strconv.Itoa(d.NodeCount()), strconv.Itoa(d.ArrowCount()),
				})
			}
			ui.Table(out, []string{"", "FILE", "ACTIVITIES", "ARROWS"}, rows)
			if failed > 0 {
				return errors.New(plural(failed, "invalid diagram"))
			}
			return nil
		},
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
