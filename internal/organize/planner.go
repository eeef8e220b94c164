package organize

import (
	"path/filepath"

	"filenest/internal/config"
	"filenest/pkg/types"
)

// Size bucket bounds, binary units, strict less-than upper bound.
const (
	mib = 1 << 20
	gib = 1 << 30
)

// Plan computes the file's destination relative to the target root:
// base/[date]/[size]/filename. It performs no I/O and is deterministic
// given identical inputs, so a dry-run preview matches real execution
// up to collision handling.
func Plan(rec *types.FileRecord, rule *types.Rule, profile *config.Profile) string {
	segments := []string{rule.Target()}
	if profile.CreateDateFolders {
		segments = append(segments, rec.ModTime.Format("2006-01"))
	}
	if profile.CreateSizeFolders {
		segments = append(segments, sizeBand(rec.Size))
	}
	segments = append(segments, rec.Name())
	return filepath.Join(segments...)
}

// sizeBand buckets a byte count into the named size folders. The top
// band is unbounded.
func sizeBand(size int64) string {
	switch {
	case size < 1*mib:
		return "Small"
	case size < 100*mib:
		return "Medium"
	case size < 1*gib:
		return "Large"
	default:
		return "XLarge"
	}
}
