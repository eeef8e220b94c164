package history_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filenest/internal/history"
	"filenest/pkg/types"
)

func event(runID string, outcome types.Outcome, age time.Duration) types.Event {
	return types.Event{
		Timestamp: time.Now().UTC().Add(-age),
		RunID:     runID,
		Outcome:   outcome,
		Source:    "/src/file.txt",
		Size:      100,
		Category:  "Docs",
	}
}

func writeEvents(t *testing.T, path string, events ...types.Event) {
	t.Helper()
	writer, err := history.NewWriter(path)
	require.NoError(t, err)
	for _, e := range events {
		writer.Emit(e)
	}
	require.NoError(t, writer.Close())
}

func TestWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.log")

	writeEvents(t, path, event("run-1", types.OutcomeMoved, 0))
	writeEvents(t, path, event("run-2", types.OutcomeSkipped, 0))

	events, err := history.Read(path)
	require.NoError(t, err)
	require.Len(t, events, 2, "reopening the log appends, never truncates")
	assert.Equal(t, "run-1", events[0].RunID)
	assert.Equal(t, "run-2", events[1].RunID)
}

func TestReadMissingLog(t *testing.T) {
	events, err := history.Read(filepath.Join(t.TempDir(), "none.log"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	writeEvents(t, path, event("run-1", types.OutcomeMoved, 0))

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = file.WriteString("not json at all\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	writeEvents(t, path, event("run-2", types.OutcomeMoved, 0))

	events, err := history.Read(path)
	require.NoError(t, err)
	assert.Len(t, events, 2, "a torn or corrupt line never hides later events")
}

func TestRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	writeEvents(t, path,
		event("run-1", types.OutcomeMoved, 0),
		event("run-1", types.OutcomeFailed, 0),
		event("run-1", types.OutcomeMoved, 0),
		event("run-1", types.OutcomeFailed, 0),
	)

	last, err := history.Recent(path, 2, false)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, types.OutcomeFailed, last[1].Outcome)

	failures, err := history.Recent(path, 10, true)
	require.NoError(t, err)
	assert.Len(t, failures, 2)
	for _, e := range failures {
		assert.Equal(t, types.OutcomeFailed, e.Outcome)
	}
}

func TestAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	writeEvents(t, path,
		event("run-1", types.OutcomeMoved, time.Hour),
		event("run-1", types.OutcomePending, time.Hour),
		event("run-1", types.OutcomeSkipped, time.Hour),
		event("run-2", types.OutcomeFailed, time.Hour),
		event("run-old", types.OutcomeMoved, 40*24*time.Hour),
	)

	summary, err := history.Aggregate(path, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Runs, "the out-of-window run does not count")
	assert.Equal(t, 1, summary.Moved)
	assert.Equal(t, 1, summary.Previewed, "dry-run previews never count as moves")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, int64(100), summary.TotalBytes, "previewed bytes did not actually move")
	assert.Equal(t, 1, summary.PerCategory["Docs"])

	all, err := history.Aggregate(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Runs)
	assert.Equal(t, 2, all.Moved)
	assert.Equal(t, 1, all.Previewed)
}

func TestExportCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "history.log")
	moved := event("run-1", types.OutcomeMoved, 0)
	moved.Destination = "/dst/Docs/file.txt"
	failed := event("run-1", types.OutcomeFailed, 0)
	failed.Error = "permission denied"
	writeEvents(t, path, moved, failed)

	out := filepath.Join(tmpDir, "history.csv")
	n, err := history.ExportCSV(path, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "header plus one row per event")
	assert.Equal(t, []string{"timestamp", "run_id", "outcome", "source", "destination", "size", "category", "error"}, rows[0])
	assert.Equal(t, "moved", rows[1][2])
	assert.Equal(t, "/dst/Docs/file.txt", rows[1][4])
	assert.Equal(t, "100", rows[1][5])
	assert.Equal(t, "permission denied", rows[2][7])
}

func TestExportCSVEmptyLog(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "history.csv")

	n, err := history.ExportCSV(filepath.Join(tmpDir, "none.log"), out)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.FileExists(t, out, "an empty log still yields a header-only document")
}

func TestPrune(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	writeEvents(t, path,
		event("run-old", types.OutcomeMoved, 40*24*time.Hour),
		event("run-old", types.OutcomeMoved, 40*24*time.Hour),
		event("run-new", types.OutcomeMoved, time.Hour),
	)

	dropped, err := history.Prune(path, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)

	events, err := history.Read(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "run-new", events[0].RunID)

	dropped, err = history.Prune(path, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped, "pruning again drops nothing")
}
