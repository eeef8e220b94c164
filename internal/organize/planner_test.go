package organize_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filenest/internal/config"
	"filenest/internal/organize"
	"filenest/pkg/types"
)

func TestPlanBaseOnly(t *testing.T) {
	profile := &config.Profile{Name: "plain"}
	rule := &types.Rule{Name: "Images", Enabled: true}
	rec := record("photo.jpg", 500, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, filepath.Join("Images", "photo.jpg"), organize.Plan(rec, rule, profile))
}

func TestPlanTargetFolderOverride(t *testing.T) {
	profile := &config.Profile{Name: "plain"}
	rule := &types.Rule{Name: "Images", TargetFolder: "Pictures", Enabled: true}
	rec := record("photo.jpg", 500, time.Now())

	assert.Equal(t, filepath.Join("Pictures", "photo.jpg"), organize.Plan(rec, rule, profile))
}

func TestPlanDateFolders(t *testing.T) {
	profile := &config.Profile{Name: "dated", CreateDateFolders: true}
	rule := &types.Rule{Name: "Images", Enabled: true}
	rec := record("photo.jpg", 500, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, filepath.Join("Images", "2025-03", "photo.jpg"), organize.Plan(rec, rule, profile))
}

func TestPlanSizeFolders(t *testing.T) {
	profile := &config.Profile{Name: "sized", CreateSizeFolders: true}
	rule := &types.Rule{Name: "Archives", Enabled: true}

	cases := []struct {
		size int64
		band string
	}{
		{0, "Small"},
		{1<<20 - 1, "Small"},
		{1 << 20, "Medium"},
		{100<<20 - 1, "Medium"},
		{100 << 20, "Large"},
		{1<<30 - 1, "Large"},
		{1 << 30, "XLarge"},
		{50 << 30, "XLarge"},
	}
	for _, tc := range cases {
		rec := record("dump.zip", tc.size, time.Now())
		assert.Equal(t, filepath.Join("Archives", tc.band, "dump.zip"), organize.Plan(rec, rule, profile), "size %d", tc.size)
	}
}

func TestPlanDateThenSize(t *testing.T) {
	profile := &config.Profile{Name: "mixed", CreateDateFolders: true, CreateSizeFolders: true}
	rule := &types.Rule{Name: "Videos", Enabled: true}
	rec := record("clip.mp4", 200<<20, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, filepath.Join("Videos", "2024-12", "Large", "clip.mp4"), organize.Plan(rec, rule, profile),
		"date segment always precedes the size segment")
}

func TestPlanDeterministic(t *testing.T) {
	profile := &config.Profile{Name: "mixed", CreateDateFolders: true, CreateSizeFolders: true}
	rule := &types.Rule{Name: "Docs", Enabled: true}
	rec := record("report.pdf", 42, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	first := organize.Plan(rec, rule, profile)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, organize.Plan(rec, rule, profile))
	}
}
