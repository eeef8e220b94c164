package types

import (
	"path/filepath"
	"time"
)

// FileRecord carries one file through the organization pipeline. The
// scanner creates it, the matcher and planner fill in MatchedRule and
// RelDestination, and the executor consumes it. Records live only for
// the duration of a single run.
type FileRecord struct {
	Path           string    // absolute path at scan time
	Size           int64     // bytes
	ModTime        time.Time // modification time at scan time
	Ext            string    // lowercased extension including the dot, "" if none
	Hash           string    // content fingerprint, set only when duplicate detection ran
	MatchedRule    *Rule     // set by the matcher
	RelDestination string    // destination relative to the target root, set by the planner
}

// Name returns the base name of the file.
func (f *FileRecord) Name() string {
	return filepath.Base(f.Path)
}

// Category returns the name of the matched rule, or "" before matching.
func (f *FileRecord) Category() string {
	if f.MatchedRule == nil {
		return ""
	}
	return f.MatchedRule.Name
}
