package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filenest/internal/watch"
)

func TestNewRejectsBadDirectory(t *testing.T) {
	_, err := watch.New(filepath.Join(t.TempDir(), "missing"), time.Second)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = watch.New(file, time.Second)
	assert.Error(t, err)
}

func TestRunFiresAfterQuietPeriod(t *testing.T) {
	tmpDir := t.TempDir()
	watcher, err := watch.New(tmpDir, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var fired atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, func() {
			fired.Add(1)
			cancel()
		})
	}()

	// Give the watch loop a moment to start before producing events.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "incoming.txt"), []byte("data"), 0o644))

	err = <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), fired.Load())
}

func TestRunIgnoresHiddenAndTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	watcher, err := watch.New(tmpDir, 30*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var fired atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, func() { fired.Add(1) })
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "draft.txt~"), []byte("x"), 0o644))

	<-done
	assert.Equal(t, int32(0), fired.Load(), "hidden and editor temp files never trigger a run")
}

func TestPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch.Poll(ctx, 20*time.Millisecond, func() {
			if ticks.Add(1) >= 3 {
				cancel()
			}
		})
	}()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
}
