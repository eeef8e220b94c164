package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"filenest/internal/history"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize organization history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			summary, err := history.Aggregate(path, days)
			if err != nil {
				return err
			}
			if summary.Runs == 0 && summary.Moved == 0 && summary.Errors == 0 {
				fmt.Println("no history recorded yet")
				return nil
			}

			fmt.Printf("Last %d days: %d runs\n", days, summary.Runs)
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Moved", "Previewed", "Skipped", "Errors", "Bytes"})
			t.AppendRow(table.Row{
				summary.Moved, summary.Previewed, summary.Skipped, summary.Errors,
				humanize.Bytes(uint64(summary.TotalBytes)),
			})
			t.Render()

			if len(summary.PerCategory) > 0 {
				categories := make([]string, 0, len(summary.PerCategory))
				for category := range summary.PerCategory {
					categories = append(categories, category)
				}
				sort.Slice(categories, func(i, j int) bool {
					return summary.PerCategory[categories[i]] > summary.PerCategory[categories[j]]
				})

				ct := table.NewWriter()
				ct.SetOutputMirror(os.Stdout)
				ct.AppendHeader(table.Row{"Category", "Files"})
				for _, category := range categories {
					ct.AppendRow(table.Row{category, summary.PerCategory[category]})
				}
				ct.Render()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "window in days")
	return cmd
}
