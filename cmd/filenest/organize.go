package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gofrs/flock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"filenest/internal/history"
	"filenest/internal/log"
	"filenest/internal/organize"
	"filenest/pkg/types"
)

// NewOrganizeCmd creates the organize command.
func NewOrganizeCmd() *cobra.Command {
	var (
		profileName string
		dryRun      bool
		duplicates  bool
		undo        bool
		workers     int
		noLock      bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Organize a directory according to a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile(profileName)
			if err != nil {
				return err
			}

			target := profile.TargetDirectory
			if len(args) > 0 {
				target = args[0]
			}
			if target == "" {
				return fmt.Errorf("no target directory: pass one or set target_directory in the profile")
			}
			target, err = filepath.Abs(target)
			if err != nil {
				return err
			}

			// Concurrent runs against one target are not coordinated by
			// the engine; serialize them here.
			if cfg.Settings.LockTarget && !noLock && !dryRun {
				unlock, err := lockTarget(target)
				if err != nil {
					return err
				}
				defer unlock()
			}

			sink, closeSink := buildSink(verbose)
			defer closeSink()

			stats, err := organize.New(sink).Organize(cmd.Context(), target, profile, organize.Options{
				DryRun:           dryRun,
				DetectDuplicates: duplicates,
				CreateUndo:       undo,
				MaxWorkers:       pickWorkers(workers),
			})
			renderStats(stats, dryRun)
			return err
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile to organize with (default: active profile)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview without touching the filesystem")
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "fingerprint contents and report duplicate groups")
	cmd.Flags().BoolVar(&undo, "undo", false, "write an undo journal for this run")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool cap (default: sized from CPU count)")
	cmd.Flags().BoolVar(&noLock, "no-lock", false, "skip the per-target lock")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file outcome")

	return cmd
}

// pickWorkers resolves the worker cap from flag then config.
func pickWorkers(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Settings.Workers
}

// lockTarget takes an exclusive flock under the target's journal
// directory and returns the release function.
func lockTarget(target string) (func(), error) {
	lockDir := filepath.Join(target, ".filenest")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(lockDir, "lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("cannot lock target: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("another filenest run holds %s", target)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("cannot release target lock: %v", err)
		}
	}, nil
}

// buildSink wires the engine's event stream into the history log and,
// when verbose, the console.
func buildSink(verbose bool) (types.EventSink, func()) {
	var writer *history.Writer
	if path, err := history.DefaultPath(); err == nil {
		if w, err := history.NewWriter(path); err == nil {
			writer = w
		} else {
			log.Warn("history disabled: %v", err)
		}
	}

	sink := types.EventSinkFunc(func(event types.Event) {
		if writer != nil {
			writer.Emit(event)
		}
		if verbose {
			printEvent(event)
		}
	})
	closeSink := func() {
		if writer != nil {
			writer.Close()
		}
	}
	return sink, closeSink
}

func printEvent(event types.Event) {
	switch event.Outcome {
	case types.OutcomeMoved:
		color.Green("  moved   %s -> %s", event.Source, event.Destination)
	case types.OutcomePending:
		color.Cyan("  would   %s -> %s", event.Source, event.Destination)
	case types.OutcomeSkipped:
		color.Yellow("  skipped %s", event.Source)
	case types.OutcomeFailed:
		color.Red("  error   %s: %s", event.Source, event.Error)
	}
}

// renderStats prints the run summary table.
func renderStats(stats *types.Stats, dryRun bool) {
	if stats == nil {
		return
	}
	if dryRun {
		color.Cyan("dry run: no changes were made")
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Files", "Moved", "Skipped", "Errors", "Duplicates", "Bytes"})
	t.AppendRow(table.Row{
		stats.TotalFiles, stats.Moved, stats.Skipped, stats.Errors,
		stats.DuplicatesFound, humanize.Bytes(uint64(stats.TotalBytes)),
	})
	t.Render()

	if len(stats.PerCategory) > 0 {
		categories := make([]string, 0, len(stats.PerCategory))
		for category := range stats.PerCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		ct := table.NewWriter()
		ct.SetOutputMirror(os.Stdout)
		ct.AppendHeader(table.Row{"Category", "Files"})
		for _, category := range categories {
			ct.AppendRow(table.Row{category, stats.PerCategory[category]})
		}
		ct.Render()
	}
}
