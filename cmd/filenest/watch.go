package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"filenest/internal/log"
	"filenest/internal/organize"
	"filenest/internal/watch"
)

// NewWatchCmd creates the watch command: a thin trigger loop that
// re-invokes the engine whenever the target settles after changes.
func NewWatchCmd() *cobra.Command {
	var (
		profileName string
		interval    int
		duplicates  bool
		undo        bool
		noLock      bool
	)

	cmd := &cobra.Command{
		Use:   "watch DIRECTORY",
		Short: "Watch a directory and organize it as files arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile(profileName)
			if err != nil {
				return err
			}
			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			sink, closeSink := buildSink(true)
			defer closeSink()
			engine := organize.New(sink)

			runOnce := func() {
				if cfg.Settings.LockTarget && !noLock {
					unlock, err := lockTarget(target)
					if err != nil {
						log.Warn("skipping run: %v", err)
						return
					}
					defer unlock()
				}

				stats, err := engine.Organize(cmd.Context(), target, profile, organize.Options{
					DetectDuplicates: duplicates,
					CreateUndo:       undo,
					MaxWorkers:       cfg.Settings.Workers,
				})
				if err != nil && cmd.Context().Err() == nil {
					log.Error("organization failed: %v", err)
					return
				}
				if stats != nil && stats.TotalFiles > 0 {
					log.Info("organized %d files (%d moved, %d errors)",
						stats.TotalFiles, stats.Moved, stats.Errors)
				}
			}

			// Organize whatever is already there before waiting for
			// events.
			runOnce()

			if interval <= 0 {
				interval = cfg.WatchMode.Interval
			}
			debounce := time.Duration(cfg.WatchMode.Debounce) * time.Second

			watcher, err := watch.New(target, debounce)
			if err != nil {
				log.Warn("filesystem notifications unavailable (%v); polling every %ds", err, interval)
				err = watch.Poll(cmd.Context(), time.Duration(interval)*time.Second, runOnce)
			} else {
				fmt.Printf("watching %s (Ctrl+C to stop)\n", target)
				err = watcher.Run(cmd.Context(), runOnce)
			}
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile to organize with (default: active profile)")
	cmd.Flags().IntVar(&interval, "interval", 0, "polling interval in seconds when notifications are unavailable")
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "fingerprint contents and report duplicate groups")
	cmd.Flags().BoolVar(&undo, "undo", false, "write an undo journal per run")
	cmd.Flags().BoolVar(&noLock, "no-lock", false, "skip the per-target lock")

	return cmd
}
