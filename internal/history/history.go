// Package history is the append sink consuming engine events. Each
// event becomes one JSON line in a history log, which the logs and
// stats commands read back.
package history

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"filenest/internal/log"
	"filenest/pkg/types"
)

// Writer appends events to the history log. It is single-writer per
// run; a mutex covers the watch loop sharing one writer across runs.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// DefaultPath returns the history log location
// (~/.local/state/filenest/history.log).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "filenest", "history.log"), nil
}

// NewWriter opens (creating if necessary) the history log at path.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create history directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open history log: %w", err)
	}
	return &Writer{file: file}, nil
}

// Emit appends one event. History failures must never disturb the run
// that produced the event, so they are logged and swallowed.
func (w *Writer) Emit(event types.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Warn("cannot encode history event: %v", err)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(append(data, '\n')); err != nil {
		log.Warn("cannot append history event: %v", err)
	}
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// Read returns all events in the log, oldest first. Unparseable lines
// are skipped.
func Read(path string) ([]types.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []types.Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event types.Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

// Recent returns the last n events, optionally only errors.
func Recent(path string, n int, errorsOnly bool) ([]types.Event, error) {
	events, err := Read(path)
	if err != nil {
		return nil, err
	}
	if errorsOnly {
		filtered := events[:0]
		for _, event := range events {
			if event.Outcome == types.OutcomeFailed {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// Summary aggregates history over a window. Dry-run previews are
// counted separately from real moves so repeated previews cannot
// inflate the totals.
type Summary struct {
	Runs        int
	Moved       int
	Previewed   int
	Skipped     int
	Errors      int
	TotalBytes  int64
	PerCategory map[string]int
}

// Aggregate summarizes events from the last days days. days <= 0 means
// the whole log.
func Aggregate(path string, days int) (*Summary, error) {
	events, err := Read(path)
	if err != nil {
		return nil, err
	}
	var cutoff time.Time
	if days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -days)
	}

	summary := &Summary{PerCategory: make(map[string]int)}
	runs := make(map[string]struct{})
	for _, event := range events {
		if !cutoff.IsZero() && event.Timestamp.Before(cutoff) {
			continue
		}
		if event.RunID != "" {
			runs[event.RunID] = struct{}{}
		}
		switch event.Outcome {
		case types.OutcomeMoved:
			summary.Moved++
			summary.TotalBytes += event.Size
			if event.Category != "" {
				summary.PerCategory[event.Category]++
			}
		case types.OutcomePending:
			summary.Previewed++
		case types.OutcomeSkipped:
			summary.Skipped++
		case types.OutcomeFailed:
			summary.Errors++
		}
	}
	summary.Runs = len(runs)
	return summary, nil
}

// ExportCSV writes every event in the log to a CSV document at out,
// one row per event plus a header, and returns the number of event
// rows written.
func ExportCSV(path, out string) (int, error) {
	events, err := Read(path)
	if err != nil {
		return 0, err
	}

	file, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	writer := csv.NewWriter(file)
	writer.Write([]string{"timestamp", "run_id", "outcome", "source", "destination", "size", "category", "error"})
	for _, event := range events {
		writer.Write([]string{
			event.Timestamp.Format(time.RFC3339),
			event.RunID,
			string(event.Outcome),
			event.Source,
			event.Destination,
			strconv.FormatInt(event.Size, 10),
			event.Category,
			event.Error,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return 0, err
	}
	return len(events), file.Close()
}

// Prune rewrites the log keeping only events newer than days days.
// Returns the number of entries dropped.
func Prune(path string, days int) (int, error) {
	events, err := Read(path)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	kept := make([]types.Event, 0, len(events))
	for _, event := range events {
		if !event.Timestamp.Before(cutoff) {
			kept = append(kept, event)
		}
	}
	dropped := len(events) - len(kept)
	if dropped == 0 {
		return 0, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".history-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	writer := bufio.NewWriter(tmp)
	for _, event := range kept {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		writer.Write(data)
		writer.WriteByte('\n')
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	return dropped, nil
}
