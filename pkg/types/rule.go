package types

import (
	"strings"
	"time"
)

// Rule is a single matching predicate plus the folder matched files
// are routed to. Fields left unset do not constrain the match: a rule
// with no extensions, no size bounds and no date bounds accepts every
// file and can serve as a catch-all.
type Rule struct {
	Name         string     `yaml:"name"`
	Extensions   []string   `yaml:"extensions,omitempty"`    // lowercased, with leading dot; empty = any extension
	MinSize      *int64     `yaml:"min_size,omitempty"`      // bytes, inclusive
	MaxSize      *int64     `yaml:"max_size,omitempty"`      // bytes, inclusive
	After        *time.Time `yaml:"after,omitempty"`         // modified on or after
	Before       *time.Time `yaml:"before,omitempty"`        // modified on or before
	TargetFolder string     `yaml:"target_folder,omitempty"` // defaults to Name when empty
	Enabled      bool       `yaml:"enabled"`
}

// Normalize lowercases the rule's extensions and guarantees a leading
// dot, so matching can compare them directly against filepath.Ext output.
func (r *Rule) Normalize() {
	for i, ext := range r.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.Extensions[i] = ext
	}
}

// HasExtension reports whether ext (lowercased, with leading dot) is in
// the rule's extension set. An empty set matches any extension.
func (r *Rule) HasExtension(ext string) bool {
	if len(r.Extensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// IsCatchAll reports whether the rule constrains nothing at all, i.e.
// it would accept any file handed to it.
func (r *Rule) IsCatchAll() bool {
	return len(r.Extensions) == 0 && r.MinSize == nil && r.MaxSize == nil &&
		r.After == nil && r.Before == nil
}

// Target returns the folder files matched by this rule land in.
func (r *Rule) Target() string {
	if r.TargetFolder != "" {
		return r.TargetFolder
	}
	return r.Name
}
