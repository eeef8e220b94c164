package organize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"filenest/internal/log"
	"filenest/pkg/types"
)

// maxRenameAttempts bounds the _<n> counter when resolving collisions
// under the rename policy.
const maxRenameAttempts = 10000

// Executor performs the planned moves on a bounded worker pool. Each
// file's move is independent: one failure is recorded and never blocks
// or aborts the others.
type Executor struct {
	policy  types.CollisionPolicy
	dryRun  bool
	workers int

	// Serializes collision resolution and destination-name
	// reservation, so two files racing for the same name cannot both
	// win it. The rename itself runs outside the lock.
	mu sync.Mutex
}

// NewExecutor builds an executor. Moves parallelize worse than hashing,
// so the pool is deliberately smaller than the fingerprinter's.
func NewExecutor(policy types.CollisionPolicy, dryRun bool, maxWorkers int) *Executor {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	if maxWorkers > 0 && maxWorkers < workers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return &Executor{policy: policy.OrDefault(), dryRun: dryRun, workers: workers}
}

// Execute moves every planned record into the target tree and returns
// one MoveOperation per record. onResult, when non-nil, is invoked
// serially from a single collector goroutine as operations complete,
// which is where the engine accumulates Stats and journal entries.
// Cancellation stops dispatch between files; in-flight moves finish.
func (e *Executor) Execute(ctx context.Context, target string, records []*types.FileRecord, onResult func(*types.FileRecord, types.MoveOperation)) []types.MoveOperation {
	dirFailures := e.ensureDirectories(target, records)

	type result struct {
		rec *types.FileRecord
		op  types.MoveOperation
	}
	results := make(chan result, len(records))

	var collectorWG sync.WaitGroup
	ops := make([]types.MoveOperation, 0, len(records))
	collectorWG.Add(1)
	go func() {
		defer collectorWG.Done()
		for r := range results {
			ops = append(ops, r.op)
			if onResult != nil {
				onResult(r.rec, r.op)
			}
		}
	}()

	pool, poolErr := ants.NewPool(e.workers)
	if poolErr != nil {
		log.Warn("move pool unavailable, executing inline: %v", poolErr)
	} else {
		defer pool.Release()
	}

	var workerWG sync.WaitGroup
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		rec := rec
		dest := filepath.Join(target, rec.RelDestination)

		if err, ok := dirFailures[filepath.Dir(dest)]; ok {
			results <- result{rec: rec, op: types.MoveOperation{
				Source:      rec.Path,
				Destination: dest,
				Outcome:     types.OutcomeFailed,
				Error:       fmt.Sprintf("cannot create destination directory: %v", err),
			}}
			continue
		}

		run := func() {
			defer workerWG.Done()
			results <- result{rec: rec, op: e.moveOne(rec, dest)}
		}
		workerWG.Add(1)
		if pool != nil {
			if err := pool.Submit(run); err != nil {
				// Pool rejected the task; run it on the dispatcher.
				run()
			}
		} else {
			run()
		}
	}
	workerWG.Wait()
	close(results)
	collectorWG.Wait()

	return ops
}

// ensureDirectories creates every distinct destination directory once,
// before any move into it. Returns the directories that could not be
// created; moves into those are failed without dispatch.
func (e *Executor) ensureDirectories(target string, records []*types.FileRecord) map[string]error {
	failures := make(map[string]error)
	if e.dryRun {
		return failures
	}
	seen := make(map[string]struct{})
	for _, rec := range records {
		dir := filepath.Dir(filepath.Join(target, rec.RelDestination))
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			failures[dir] = err
		}
	}
	return failures
}

// moveOne applies the collision policy and performs (or, in dry-run
// mode, simulates) one move.
func (e *Executor) moveOne(rec *types.FileRecord, dest string) types.MoveOperation {
	op := types.MoveOperation{Source: rec.Path, Destination: dest}

	src := filepath.Clean(rec.Path)
	dest = filepath.Clean(dest)
	if src == dest {
		// Already where it belongs.
		op.Outcome = types.OutcomeSkipped
		return op
	}

	e.mu.Lock()
	finalDest, skip, err := e.resolveCollision(src, dest)
	var reserved bool
	if err == nil && !skip && !e.dryRun {
		reserved, err = reserveName(finalDest)
	}
	e.mu.Unlock()

	if err != nil {
		op.Outcome = types.OutcomeFailed
		op.Error = err.Error()
		return op
	}
	if skip {
		op.Outcome = types.OutcomeSkipped
		return op
	}
	op.Destination = finalDest

	if e.dryRun {
		op.Outcome = types.OutcomePending
		return op
	}

	if err := os.Rename(src, finalDest); err != nil {
		if reserved {
			os.Remove(finalDest)
		}
		op.Outcome = types.OutcomeFailed
		op.Error = err.Error()
		return op
	}

	// Keep the original timestamps where the filesystem allows it.
	// Failing to do so is not an error.
	if err := os.Chtimes(finalDest, rec.ModTime, rec.ModTime); err != nil {
		log.Debug("could not preserve timestamps on %s: %v", finalDest, err)
	}

	op.Outcome = types.OutcomeMoved
	return op
}

// resolveCollision decides the final destination under the configured
// policy. Caller holds the executor mutex. skip is true when the policy
// leaves the file at its source.
func (e *Executor) resolveCollision(src, dest string) (finalDest string, skip bool, err error) {
	if _, statErr := os.Stat(dest); os.IsNotExist(statErr) {
		return dest, false, nil
	} else if statErr != nil {
		return "", false, fmt.Errorf("cannot check destination %s: %w", dest, statErr)
	}

	switch e.policy {
	case types.CollisionSkip:
		log.Debug("skipping %s: destination exists", src)
		return "", true, nil
	case types.CollisionOverwrite:
		return dest, false, nil
	default: // rename
		return uniqueDestName(dest)
	}
}

// reserveName creates an empty placeholder at dest so concurrent
// collision resolution sees the name as taken; the move's rename then
// replaces the placeholder. Under the overwrite policy dest already
// exists and the rename replaces it directly, with no placeholder.
func reserveName(dest string) (bool, error) {
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cannot reserve destination %s: %w", dest, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(dest)
		return false, fmt.Errorf("cannot reserve destination %s: %w", dest, err)
	}
	return true, nil
}

// uniqueDestName appends _<n> to the filename stem until a free name is
// found, re-checking existence on every candidate to tolerate
// concurrent writers.
func uniqueDestName(dest string) (string, bool, error) {
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for n := 1; n <= maxRenameAttempts; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, false, nil
		} else if err != nil {
			return "", false, fmt.Errorf("cannot check destination %s: %w", candidate, err)
		}
	}
	return "", false, fmt.Errorf("no free name for %s after %d attempts", dest, maxRenameAttempts)
}
