package organize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"filenest/internal/errors"
	"filenest/internal/log"
	"filenest/pkg/types"
)

// fingerprintChunk is the read size used while streaming file contents
// into the hash.
const fingerprintChunk = 64 * 1024

// Fingerprinter computes content hashes across a bounded worker pool so
// byte-identical files can be grouped. Detection is advisory: groups
// are reported, destinations never change because of them.
type Fingerprinter struct {
	workers int
}

// FingerprintFailure is one file whose hash could not be computed. The
// file is excluded from duplicate grouping but continues through the
// rest of the pipeline.
type FingerprintFailure struct {
	Record *types.FileRecord
	Err    error
}

// NewFingerprinter sizes the pool from available parallelism, capped by
// maxWorkers when it is positive.
func NewFingerprinter(maxWorkers int) *Fingerprinter {
	workers := runtime.NumCPU() + 2
	if maxWorkers > 0 && maxWorkers < workers {
		workers = maxWorkers
	}
	return &Fingerprinter{workers: workers}
}

// Fingerprint hashes every record concurrently and returns the groups
// of two or more records sharing a hash. Each worker owns its record
// exclusively, so Hash is written without locking; only the failure
// list is shared.
func (f *Fingerprinter) Fingerprint(ctx context.Context, records []*types.FileRecord) (map[string][]*types.FileRecord, []FingerprintFailure) {
	pool, err := ants.NewPool(f.workers)
	if err != nil {
		// Pool creation only fails on nonsensical sizes; fall back to
		// inline hashing rather than losing the stage.
		log.Warn("fingerprint pool unavailable, hashing inline: %v", err)
		return f.fingerprintInline(ctx, records)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []FingerprintFailure
	)
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		rec := rec
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			hash, err := hashFile(rec.Path)
			if err != nil {
				mu.Lock()
				failures = append(failures, FingerprintFailure{Record: rec, Err: err})
				mu.Unlock()
				return
			}
			rec.Hash = hash
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, FingerprintFailure{Record: rec, Err: submitErr})
			mu.Unlock()
		}
	}
	wg.Wait()

	return groupByHash(records), failures
}

func (f *Fingerprinter) fingerprintInline(ctx context.Context, records []*types.FileRecord) (map[string][]*types.FileRecord, []FingerprintFailure) {
	var failures []FingerprintFailure
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		hash, err := hashFile(rec.Path)
		if err != nil {
			failures = append(failures, FingerprintFailure{Record: rec, Err: err})
			continue
		}
		rec.Hash = hash
	}
	return groupByHash(records), failures
}

// hashFile streams the file through SHA-256 in fixed-size chunks.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.NewFileError("cannot open file for hashing", path, errors.FingerprintFailed, err)
	}
	defer file.Close()

	h := sha256.New()
	buf := make([]byte, fingerprintChunk)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", errors.NewFileError("hashing failed", path, errors.FingerprintFailed, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// groupByHash buckets records by hash and keeps only buckets with at
// least two members.
func groupByHash(records []*types.FileRecord) map[string][]*types.FileRecord {
	buckets := make(map[string][]*types.FileRecord)
	for _, rec := range records {
		if rec.Hash == "" {
			continue
		}
		buckets[rec.Hash] = append(buckets[rec.Hash], rec)
	}
	for hash, group := range buckets {
		if len(group) < 2 {
			delete(buckets, hash)
		}
	}
	return buckets
}

// CountDuplicates returns the number of redundant members across the
// groups: every member beyond the first in each bucket.
func CountDuplicates(groups map[string][]*types.FileRecord) int {
	total := 0
	for _, group := range groups {
		total += len(group) - 1
	}
	return total
}
