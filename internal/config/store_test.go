package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filenest/internal/config"
	"filenest/internal/errors"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	p := validProfile()
	p.Description = "round trip"
	p.ExcludePatterns = []string{"*.tmp"}
	require.NoError(t, store.Save(p))

	loaded, err := store.Load("valid")
	require.NoError(t, err)
	assert.Equal(t, "round trip", loaded.Description)
	assert.Equal(t, []string{"*.tmp"}, loaded.ExcludePatterns)
	require.Len(t, loaded.Rules, 1)
	assert.Equal(t, []string{".jpg"}, loaded.Rules[0].Extensions)
	require.NotNil(t, loaded.CatchAll)
	assert.Equal(t, "Others", loaded.CatchAll.Name)
}

func TestStoreList(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names, "missing store directory lists as empty")

	for _, name := range []string{"zeta", "alpha"} {
		p := validProfile()
		p.Name = name
		require.NoError(t, store.Save(p))
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names, "sorted, yaml files only")
}

func TestStoreLoadFallsBackToBuiltin(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	p, err := store.Load("photographer")
	require.NoError(t, err)
	assert.Equal(t, "photographer", p.Name)

	_, err = store.Load("no-such-profile")
	assert.True(t, errors.IsKind(err, errors.ProfileNotFound))
}

func TestStoreSaveShadowsBuiltin(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	p, err := store.Load("default")
	require.NoError(t, err)
	p.Description = "customized"
	require.NoError(t, store.Save(p))

	loaded, err := store.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "customized", loaded.Description, "a stored file wins over the builtin of the same name")
}

func TestStoreSaveRejectsInvalid(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	p := validProfile()
	p.Name = ""
	assert.Error(t, store.Save(p))
}

func TestStoreDelete(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	require.NoError(t, store.Save(validProfile()))
	require.NoError(t, store.Delete("valid"))

	err := store.Delete("valid")
	assert.True(t, errors.IsKind(err, errors.ProfileNotFound))
}

func TestStoreCopy(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "profiles"))

	require.NoError(t, store.Save(validProfile()))
	require.NoError(t, store.Copy("valid", "derived"))

	cp, err := store.Load("derived")
	require.NoError(t, err)
	assert.Equal(t, "derived", cp.Name)
	assert.Equal(t, "Copy of valid", cp.Description)
	require.Len(t, cp.Rules, 1)
	assert.Equal(t, "Images", cp.Rules[0].Name)
}

func TestStoreExportImport(t *testing.T) {
	tmpDir := t.TempDir()
	source := config.NewStore(filepath.Join(tmpDir, "source"))
	dest := config.NewStore(filepath.Join(tmpDir, "dest"))

	require.NoError(t, source.Save(validProfile()))
	exportPath := filepath.Join(tmpDir, "valid-export.yaml")
	require.NoError(t, source.Export("valid", exportPath))

	imported, err := dest.Import(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "valid", imported.Name)

	loaded, err := dest.Load("valid")
	require.NoError(t, err)
	require.Len(t, loaded.Rules, 1)
	assert.Equal(t, []string{".jpg"}, loaded.Rules[0].Extensions)
}
