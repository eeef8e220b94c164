package organize_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filenest/internal/organize"
)

func scanPaths(t *testing.T, scanner *organize.Scanner, root string) []string {
	t.Helper()
	records, failures, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Empty(t, failures)
	paths := make([]string, len(records))
	for i, rec := range records {
		rel, err := filepath.Rel(root, rec.Path)
		require.NoError(t, err)
		paths[i] = rel
	}
	return paths
}

func TestScanRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.jpg"), "a")
	writeFile(t, filepath.Join(tmpDir, "nested", "deep", "b.txt"), "b")

	scanner, err := organize.NewScanner(testProfile())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.jpg", filepath.Join("nested", "deep", "b.txt")}, scanPaths(t, scanner, tmpDir))
}

func TestScanSkipsCategoryFolders(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "new.jpg"), "new")
	writeFile(t, filepath.Join(tmpDir, "Images", "done.jpg"), "done")
	writeFile(t, filepath.Join(tmpDir, "Others", "done.bin"), "done")

	scanner, err := organize.NewScanner(testProfile())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"new.jpg"}, scanPaths(t, scanner, tmpDir),
		"category output folders are never rescanned")
}

func TestScanHiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "visible.txt"), "v")
	writeFile(t, filepath.Join(tmpDir, ".hidden.txt"), "h")
	writeFile(t, filepath.Join(tmpDir, ".hiddendir", "inside.txt"), "i")

	profile := testProfile()
	scanner, err := organize.NewScanner(profile)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"visible.txt"}, scanPaths(t, scanner, tmpDir))

	profile.IncludeHidden = true
	scanner, err = organize.NewScanner(profile)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"visible.txt", ".hidden.txt", filepath.Join(".hiddendir", "inside.txt")},
		scanPaths(t, scanner, tmpDir))
}

func TestScanExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "keep.txt"), "k")
	writeFile(t, filepath.Join(tmpDir, "skip.lock"), "l")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "dep.js"), "d")

	profile := testProfile()
	profile.ExcludePatterns = []string{"*.lock", "node_modules"}
	scanner, err := organize.NewScanner(profile)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"keep.txt"}, scanPaths(t, scanner, tmpDir))
}

func TestScanMaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "small.bin"), "1234")
	writeFile(t, filepath.Join(tmpDir, "large.bin"), "123456789012345678901234567890")

	profile := testProfile()
	profile.MaxFileSize = 10
	scanner, err := organize.NewScanner(profile)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"small.bin"}, scanPaths(t, scanner, tmpDir),
		"oversized files are out of scope, not errors")
}

func TestScanSkipsJournalDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, ".filenest", "undo-x.json"), "{}")

	profile := testProfile()
	profile.IncludeHidden = true
	scanner, err := organize.NewScanner(profile)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt"}, scanPaths(t, scanner, tmpDir),
		"journal directory is invisible even with hidden files included")
}

func TestScanCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner, err := organize.NewScanner(testProfile())
	require.NoError(t, err)

	_, _, scanErr := scanner.Scan(ctx, tmpDir)
	assert.ErrorIs(t, scanErr, context.Canceled)
}
