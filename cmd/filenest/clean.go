package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"filenest/internal/history"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Prune old history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			dropped, err := history.Prune(path, days)
			if err != nil {
				return err
			}
			color.Green("pruned %d history entries older than %d days", dropped, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "keep entries newer than this many days")
	return cmd
}
