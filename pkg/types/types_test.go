package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filenest/pkg/types"
)

func TestCollisionPolicy(t *testing.T) {
	assert.NoError(t, types.CollisionPolicy("").Validate())
	assert.NoError(t, types.CollisionRename.Validate())
	assert.NoError(t, types.CollisionSkip.Validate())
	assert.NoError(t, types.CollisionOverwrite.Validate())
	assert.Error(t, types.CollisionPolicy("ask").Validate())

	assert.Equal(t, types.CollisionRename, types.CollisionPolicy("").OrDefault())
	assert.Equal(t, types.CollisionSkip, types.CollisionSkip.OrDefault())
}

func TestRuleNormalizeAndMatchHelpers(t *testing.T) {
	rule := types.Rule{Name: "Images", Extensions: []string{"JPG", ".PNG"}}
	rule.Normalize()
	assert.Equal(t, []string{".jpg", ".png"}, rule.Extensions)

	assert.True(t, rule.HasExtension(".jpg"))
	assert.True(t, rule.HasExtension(".JPG"))
	assert.False(t, rule.HasExtension(".gif"))

	open := types.Rule{Name: "Anything"}
	assert.True(t, open.HasExtension(".whatever"), "an empty extension set matches any extension")
	assert.True(t, open.IsCatchAll())
	assert.False(t, rule.IsCatchAll())
}

func TestRuleTarget(t *testing.T) {
	plain := types.Rule{Name: "Images"}
	assert.Equal(t, "Images", plain.Target())

	override := types.Rule{Name: "Images", TargetFolder: "Pictures"}
	assert.Equal(t, "Pictures", override.Target())
}

func TestFileRecordAccessors(t *testing.T) {
	rec := &types.FileRecord{Path: "/downloads/photo.jpg"}
	assert.Equal(t, "photo.jpg", rec.Name())
	assert.Equal(t, "", rec.Category())

	rec.MatchedRule = &types.Rule{Name: "Images"}
	assert.Equal(t, "Images", rec.Category())
}

func TestStatsCountCategory(t *testing.T) {
	stats := types.NewStats()
	stats.CountCategory("Images")
	stats.CountCategory("Images")
	stats.CountCategory("Docs")
	assert.Equal(t, 2, stats.PerCategory["Images"])
	assert.Equal(t, 1, stats.PerCategory["Docs"])
}
