package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"filenest/internal/errors"
	"filenest/pkg/types"
)

// OrganizeBy values are a closed enum understood by the front end for
// display. The engine never consults the method tag; it applies
// whichever rule fields are populated.
const (
	ByExtension = "extension"
	BySize      = "size"
	ByDate      = "date"
	ByMixed     = "mixed"
)

// Profile is a named, persisted bundle of rules and organization
// options. The engine receives an immutable snapshot (Clone) for the
// duration of one run.
type Profile struct {
	Name              string                `yaml:"name"`
	Description       string                `yaml:"description,omitempty"`
	TargetDirectory   string                `yaml:"target_directory"`
	OrganizeBy        string                `yaml:"organize_by,omitempty"`
	Rules             []types.Rule          `yaml:"rules"`
	CatchAll          *types.Rule           `yaml:"catch_all,omitempty"`
	CreateDateFolders bool                  `yaml:"create_date_folders"`
	CreateSizeFolders bool                  `yaml:"create_size_folders"`
	DuplicatePolicy   types.CollisionPolicy `yaml:"duplicate_policy"`
	ExcludePatterns   []string              `yaml:"exclude_patterns,omitempty"`
	IncludeHidden     bool                  `yaml:"include_hidden"`
	MaxFileSize       int64                 `yaml:"max_file_size,omitempty"` // bytes, 0 = unlimited
}

// Normalize lowercases rule extensions in place. Called on load so the
// matcher can compare extensions directly.
func (p *Profile) Normalize() {
	for i := range p.Rules {
		p.Rules[i].Normalize()
	}
	if p.CatchAll != nil {
		p.CatchAll.Normalize()
	}
}

// Validate checks the profile for problems that would make a run
// unpredictable. Rules are validated at load, not at match time.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.NewProfileError("profile name is required", "", "", errors.InvalidProfile, nil)
	}
	switch p.OrganizeBy {
	case "", ByExtension, BySize, ByDate, ByMixed:
	default:
		return errors.NewProfileError(
			fmt.Sprintf("unknown organize_by value %q", p.OrganizeBy),
			p.Name, "", errors.InvalidProfile, nil)
	}
	if err := p.DuplicatePolicy.Validate(); err != nil {
		return errors.NewProfileError("invalid duplicate policy", p.Name, "", errors.InvalidProfile, err)
	}
	if p.MaxFileSize < 0 {
		return errors.NewProfileError("max_file_size must be >= 0", p.Name, "", errors.InvalidProfile, nil)
	}

	seen := make(map[string]bool, len(p.Rules))
	for i := range p.Rules {
		r := &p.Rules[i]
		if r.Name == "" {
			return errors.NewProfileError(
				fmt.Sprintf("rule %d has no name", i), p.Name, "", errors.InvalidRule, nil)
		}
		if seen[r.Name] {
			return errors.NewProfileError("duplicate rule name", p.Name, r.Name, errors.InvalidRule, nil)
		}
		seen[r.Name] = true
		if r.MinSize != nil && *r.MinSize < 0 {
			return errors.NewProfileError("min_size must be >= 0", p.Name, r.Name, errors.InvalidRule, nil)
		}
		if r.MinSize != nil && r.MaxSize != nil && *r.MinSize > *r.MaxSize {
			return errors.NewProfileError("min_size exceeds max_size", p.Name, r.Name, errors.InvalidRule, nil)
		}
		if r.After != nil && r.Before != nil && r.After.After(*r.Before) {
			return errors.NewProfileError("after exceeds before", p.Name, r.Name, errors.InvalidRule, nil)
		}
	}
	if p.CatchAll != nil {
		if p.CatchAll.Name == "" {
			return errors.NewProfileError("catch-all rule has no name", p.Name, "", errors.InvalidRule, nil)
		}
		if !p.CatchAll.IsCatchAll() {
			return errors.NewProfileError(
				"catch-all rule must have no extension, size, or date constraints",
				p.Name, p.CatchAll.Name, errors.InvalidRule, nil)
		}
	}

	if _, err := p.CompileExcludes(); err != nil {
		return errors.NewProfileError("invalid exclude pattern", p.Name, "", errors.InvalidProfile, err)
	}
	return nil
}

// Clone returns a deep copy. The engine snapshots the profile this way
// so that concurrent profile edits cannot affect a running organization.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Rules = make([]types.Rule, len(p.Rules))
	for i, r := range p.Rules {
		cp.Rules[i] = cloneRule(r)
	}
	if p.CatchAll != nil {
		ca := cloneRule(*p.CatchAll)
		cp.CatchAll = &ca
	}
	cp.ExcludePatterns = append([]string(nil), p.ExcludePatterns...)
	return &cp
}

func cloneRule(r types.Rule) types.Rule {
	r.Extensions = append([]string(nil), r.Extensions...)
	if r.MinSize != nil {
		v := *r.MinSize
		r.MinSize = &v
	}
	if r.MaxSize != nil {
		v := *r.MaxSize
		r.MaxSize = &v
	}
	if r.After != nil {
		v := *r.After
		r.After = &v
	}
	if r.Before != nil {
		v := *r.Before
		r.Before = &v
	}
	return r
}

// CompileExcludes compiles the profile's exclusion globs.
func (p *Profile) CompileExcludes() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(p.ExcludePatterns))
	for _, pat := range p.ExcludePatterns {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pat, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// CategoryFolders returns the set of top-level folder names the profile
// can route files into. The scanner skips these directories so a second
// run does not descend into already-organized output.
func (p *Profile) CategoryFolders() map[string]struct{} {
	folders := make(map[string]struct{}, len(p.Rules)+1)
	add := func(target string) {
		target = filepath.ToSlash(target)
		if first := strings.SplitN(target, "/", 2)[0]; first != "" && first != "." {
			folders[first] = struct{}{}
		}
	}
	for i := range p.Rules {
		add(p.Rules[i].Target())
	}
	if p.CatchAll != nil {
		add(p.CatchAll.Target())
	}
	return folders
}
