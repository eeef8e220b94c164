package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"filenest/internal/organize"
)

// NewUndoCmd creates the undo command.
func NewUndoCmd() *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "undo [directory]",
		Short: "Replay an undo journal, restoring the original layout",
		Long: `Undo moves every file recorded in a journal back to where it came
from, last move first. With no --journal flag, the most recent journal
under the given directory is used. On a fully successful replay the
journal is deleted; on partial failure it is kept for retry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := journalPath
			if path == "" {
				if len(args) == 0 {
					return fmt.Errorf("pass a directory or --journal")
				}
				target, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				path, err = organize.LatestJournal(target)
				if err != nil {
					return err
				}
				if path == "" {
					return fmt.Errorf("no undo journal found under %s", target)
				}
			}

			restored, errored, err := organize.Undo(path)
			if err != nil {
				return err
			}
			if errored == 0 {
				color.Green("restored %d files; journal deleted", restored)
			} else {
				color.Yellow("restored %d files, %d could not be restored; journal kept at %s",
					restored, errored, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "journal file to replay")
	return cmd
}
