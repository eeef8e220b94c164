package organize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"filenest/internal/errors"
	"filenest/internal/log"
)

// journalDirName is the per-target directory undo journals are written
// to. The scanner never descends into it.
const journalDirName = ".filenest"

// JournalEntry is one recorded move. The exact source and destination
// strings used at move time are load-bearing: replay uses them verbatim
// and never re-derives paths.
type JournalEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Journal is the durable record of one run's successful moves, in move
// order. Replaying it in reverse restores the original layout.
type Journal struct {
	CreatedAt  time.Time      `json:"created_at"`
	RunID      string         `json:"run_id"`
	Target     string         `json:"target"`
	Operations []JournalEntry `json:"operations"`
}

// NewJournal starts an empty journal for one run against target.
func NewJournal(target, runID string) *Journal {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Journal{CreatedAt: time.Now().UTC(), RunID: runID, Target: target}
}

// Append records one successful move.
func (j *Journal) Append(source, destination string) {
	j.Operations = append(j.Operations, JournalEntry{Source: source, Destination: destination})
}

// Path returns the file this journal will be written to.
func (j *Journal) Path() string {
	name := fmt.Sprintf("undo-%s-%s.json", j.CreatedAt.Format("20060102-150405"), j.RunID)
	return filepath.Join(j.Target, journalDirName, name)
}

// Write persists the journal atomically: the document is staged in a
// temp file and renamed into place, so a crash never leaves a partial
// journal behind.
func (j *Journal) Write() (string, error) {
	path := j.Path()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewFileError("cannot create journal directory", dir, errors.JournalFailed, err)
	}
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return "", errors.NewFileError("cannot encode journal", path, errors.JournalFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".journal-*")
	if err != nil {
		return "", errors.NewFileError("cannot stage journal", path, errors.JournalFailed, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.NewFileError("cannot write journal", path, errors.JournalFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.NewFileError("cannot sync journal", path, errors.JournalFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.NewFileError("cannot close journal", path, errors.JournalFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", errors.NewFileError("cannot finalize journal", path, errors.JournalFailed, err)
	}
	return path, nil
}

// ReadJournal loads a journal document from disk.
func ReadJournal(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewFileError("cannot read journal", path, errors.JournalFailed, err)
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.NewFileError("cannot parse journal", path, errors.JournalFailed, err)
	}
	return &j, nil
}

// LatestJournal returns the most recent journal file under target, or
// "" when none exist.
func LatestJournal(target string) (string, error) {
	dir := filepath.Join(target, journalDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "undo-") && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// Replay unwinds a journal: entries are processed in reverse of move
// order, moving each destination back to its source. An entry whose
// destination no longer exists is counted as an error, not fatal to the
// batch. On a fully successful replay the journal file is deleted;
// otherwise it is retained for inspection or retry.
func Replay(path string) (restored, errored int, err error) {
	journal, err := ReadJournal(path)
	if err != nil {
		return 0, 0, err
	}

	for i := len(journal.Operations) - 1; i >= 0; i-- {
		entry := journal.Operations[i]
		if _, statErr := os.Stat(entry.Destination); statErr != nil {
			log.Warn("cannot restore %s: %v", entry.Destination, statErr)
			errored++
			continue
		}
		if mkErr := os.MkdirAll(filepath.Dir(entry.Source), 0o755); mkErr != nil {
			log.Warn("cannot recreate directory for %s: %v", entry.Source, mkErr)
			errored++
			continue
		}
		if mvErr := os.Rename(entry.Destination, entry.Source); mvErr != nil {
			log.Warn("cannot restore %s: %v", entry.Source, mvErr)
			errored++
			continue
		}
		restored++
	}

	if errored == 0 {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn("replay complete but journal not deleted: %v", rmErr)
		}
	} else {
		log.Info("journal retained at %s (%d entries not restored)", path, errored)
	}
	return restored, errored, nil
}
