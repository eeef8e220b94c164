package organize

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"filenest/internal/config"
	"filenest/internal/errors"
	"filenest/internal/log"
	"filenest/pkg/types"
)

// Scanner walks a directory tree and produces the FileRecords the rest
// of the pipeline operates on. It applies the profile's exclusion
// filters up front, so excluded files never enter the run at all.
type Scanner struct {
	profile    *config.Profile
	excludes   []glob.Glob
	categories map[string]struct{}
}

// ScanFailure is one unreadable entry encountered during the walk.
type ScanFailure struct {
	Path string
	Err  error
}

// NewScanner builds a scanner for one profile snapshot.
func NewScanner(profile *config.Profile) (*Scanner, error) {
	excludes, err := profile.CompileExcludes()
	if err != nil {
		return nil, err
	}
	return &Scanner{
		profile:    profile,
		excludes:   excludes,
		categories: profile.CategoryFolders(),
	}, nil
}

// Scan walks root and returns the records of every file eligible for
// organization, plus the entries that could not be read. A single bad
// entry never aborts the walk; cancellation stops it between entries.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*types.FileRecord, []ScanFailure, error) {
	var (
		records  []*types.FileRecord
		failures []ScanFailure
	)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			failures = append(failures, ScanFailure{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		hidden := strings.HasPrefix(name, ".")

		if d.IsDir() {
			// Never descend into already-organized category output or
			// the journal directory.
			if _, ok := s.categories[name]; ok {
				return filepath.SkipDir
			}
			if name == journalDirName {
				return filepath.SkipDir
			}
			if hidden && !s.profile.IncludeHidden {
				return filepath.SkipDir
			}
			if s.excluded(path, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden && !s.profile.IncludeHidden {
			return nil
		}
		if s.excluded(path, name) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// Broken symlink or entry vanished mid-walk.
			failures = append(failures, ScanFailure{Path: path, Err: err})
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if s.profile.MaxFileSize > 0 && info.Size() > s.profile.MaxFileSize {
			// Over the size cap: silently out of scope, not an error.
			log.Debug("skipping %s: exceeds max file size", path)
			return nil
		}

		records = append(records, &types.FileRecord{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Ext:     strings.ToLower(filepath.Ext(name)),
		})
		return nil
	})

	if walkErr != nil {
		return records, failures, errors.NewFileError("scan failed", root, errors.ScanFailed, walkErr)
	}
	return records, failures, ctx.Err()
}

// excluded matches the profile's glob patterns against both the base
// name and the full slash path of an entry.
func (s *Scanner) excluded(path, name string) bool {
	if len(s.excludes) == 0 {
		return false
	}
	full := filepath.ToSlash(path)
	for _, g := range s.excludes {
		if g.Match(name) || g.Match(full) {
			return true
		}
	}
	return false
}
