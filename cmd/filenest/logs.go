package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"filenest/internal/history"
	"filenest/pkg/types"
)

// NewLogsCmd creates the logs command.
func NewLogsCmd() *cobra.Command {
	var (
		recent     int
		errorsOnly bool
		csvPath    string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent per-file outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			if csvPath != "" {
				n, err := history.ExportCSV(path, csvPath)
				if err != nil {
					return err
				}
				color.Green("exported %d events to %s", n, csvPath)
				return nil
			}
			events, err := history.Recent(path, recent, errorsOnly)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("no history recorded yet")
				return nil
			}
			for _, event := range events {
				printLogLine(event)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 20, "number of entries to show")
	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "show only error entries")
	cmd.Flags().StringVar(&csvPath, "csv", "", "export the full history to a CSV file instead of printing")
	return cmd
}

func printLogLine(event types.Event) {
	stamp := event.Timestamp.Local().Format("2006-01-02 15:04:05")
	switch event.Outcome {
	case types.OutcomeMoved, types.OutcomePending:
		fmt.Printf("%s  %-7s %s -> %s\n", stamp, event.Outcome, event.Source, event.Destination)
	case types.OutcomeFailed:
		color.Red("%s  %-7s %s: %s", stamp, event.Outcome, event.Source, event.Error)
	default:
		fmt.Printf("%s  %-7s %s\n", stamp, event.Outcome, event.Source)
	}
}
