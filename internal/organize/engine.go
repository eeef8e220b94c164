// Package organize implements the organization engine: scan a target
// tree, match files against an ordered rule set, optionally fingerprint
// contents for duplicate reporting, plan destinations, execute moves
// concurrently, and journal them for exact reversal.
package organize

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"filenest/internal/config"
	"filenest/internal/errors"
	"filenest/internal/log"
	"filenest/pkg/types"
)

// Options control one Organize run.
type Options struct {
	DryRun           bool
	DetectDuplicates bool
	CreateUndo       bool
	MaxWorkers       int // cap for both worker pools, 0 = auto
}

// Engine coordinates the pipeline stages for one run at a time. It
// emits one Event per terminal file outcome to its sink; Stats is the
// only aggregate that leaves it. Concurrent runs against the same
// target directory must be serialized by the caller.
type Engine struct {
	sink types.EventSink
}

// New creates an engine. A nil sink discards events.
func New(sink types.EventSink) *Engine {
	if sink == nil {
		sink = types.DiscardEvents
	}
	return &Engine{sink: sink}
}

// Organize runs the full pipeline against target using an immutable
// snapshot of profile. Per-file errors never abort the batch; the
// returned error is non-nil only for catastrophic conditions or
// cancellation, and partial Stats are returned even then.
func (e *Engine) Organize(ctx context.Context, target string, profile *config.Profile, opts Options) (*types.Stats, error) {
	stats := types.NewStats()

	info, err := os.Stat(target)
	if err != nil {
		return stats, errors.NewFileError("cannot access target", target, errors.ScanFailed, err)
	}
	if !info.IsDir() {
		return stats, errors.NewFileError("target is not a directory", target, errors.ScanFailed, nil)
	}

	snapshot := profile.Clone()
	snapshot.Normalize()
	if err := snapshot.Validate(); err != nil {
		return stats, err
	}

	runID := uuid.NewString()
	logger := log.LogWithFields(log.F("run", runID), log.F("target", target), log.F("profile", snapshot.Name))
	logger.Info("organization run started")

	scanner, err := NewScanner(snapshot)
	if err != nil {
		return stats, err
	}
	records, scanFailures, scanErr := scanner.Scan(ctx, target)
	for _, failure := range scanFailures {
		stats.TotalFiles++
		stats.Errors++
		e.emit(runID, types.Event{
			Outcome: types.OutcomeFailed,
			Source:  failure.Path,
			Error:   errors.NewFileError("unreadable entry", failure.Path, errors.ScanFailed, failure.Err).Error(),
		})
	}
	if scanErr != nil && ctx.Err() == nil {
		// The walk itself failed (target disappeared mid-run); return
		// what was counted so far rather than discarding it.
		return stats, scanErr
	}

	// Match and plan. Files with no matching rule are recorded as
	// errors and left untouched, never silently dropped.
	planned := records[:0]
	for _, rec := range records {
		rule, ok := Match(rec, snapshot)
		if !ok {
			stats.TotalFiles++
			stats.Errors++
			e.emit(runID, types.Event{
				Outcome: types.OutcomeFailed,
				Source:  rec.Path,
				Size:    rec.Size,
				Error:   errors.NewFileError("no rule matched and no catch-all configured", rec.Path, errors.NoRuleMatched, nil).Error(),
			})
			continue
		}
		rec.MatchedRule = rule
		rec.RelDestination = Plan(rec, rule, snapshot)
		planned = append(planned, rec)
	}

	if opts.DetectDuplicates && ctx.Err() == nil {
		fingerprinter := NewFingerprinter(opts.MaxWorkers)
		groups, failures := fingerprinter.Fingerprint(ctx, planned)
		for _, failure := range failures {
			// The file stays in the pipeline; it is only excluded from
			// duplicate grouping, and its terminal outcome is what
			// Stats will count.
			log.Warn("fingerprint failed for %s: %v", failure.Record.Path, failure.Err)
		}
		stats.DuplicatesFound = CountDuplicates(groups)
		for hash, group := range groups {
			paths := make([]string, len(group))
			for i, rec := range group {
				paths[i] = rec.Path
			}
			logger.WithField("hash", hash[:12]).Debugf("duplicate group: %v", paths)
		}
	}

	var journal *Journal
	if opts.CreateUndo && !opts.DryRun {
		journal = NewJournal(target, runID)
	}

	executor := NewExecutor(snapshot.DuplicatePolicy, opts.DryRun, opts.MaxWorkers)
	executor.Execute(ctx, target, planned, func(rec *types.FileRecord, op types.MoveOperation) {
		stats.TotalFiles++
		event := types.Event{
			Outcome:     op.Outcome,
			Source:      op.Source,
			Destination: op.Destination,
			Size:        rec.Size,
			Category:    rec.Category(),
			Error:       op.Error,
		}
		switch op.Outcome {
		case types.OutcomeMoved:
			stats.Moved++
			stats.TotalBytes += rec.Size
			stats.CountCategory(rec.Category())
			if journal != nil {
				journal.Append(op.Source, op.Destination)
			}
		case types.OutcomePending:
			// Dry run: the file would move.
			stats.Moved++
			stats.TotalBytes += rec.Size
			stats.CountCategory(rec.Category())
		case types.OutcomeSkipped:
			stats.Skipped++
		case types.OutcomeFailed:
			stats.Errors++
		}
		e.emit(runID, event)
	})

	if journal != nil && len(journal.Operations) > 0 {
		path, err := journal.Write()
		if err != nil {
			// Moves already performed are reflected in stats; the
			// failure to persist their journal is catastrophic for a
			// run that promised undo.
			return stats, err
		}
		logger.Infof("undo journal written: %s", path)
	}

	logger.Infof("organization run finished: %d moved, %d skipped, %d errors",
		stats.Moved, stats.Skipped, stats.Errors)
	return stats, ctx.Err()
}

// Undo replays a journal, restoring every recorded move. It is
// independent of any Engine instance.
func Undo(journalPath string) (restored, errored int, err error) {
	if journalPath == "" {
		return 0, 0, fmt.Errorf("no journal path given")
	}
	return Replay(journalPath)
}

func (e *Engine) emit(runID string, event types.Event) {
	event.Timestamp = time.Now().UTC()
	event.RunID = runID
	e.sink.Emit(event)
}
