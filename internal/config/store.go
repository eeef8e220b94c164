package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"filenest/internal/errors"
)

// Store persists named profiles as YAML documents, one file per
// profile, under a single directory.
type Store struct {
	dir string
}

// NewStore creates a profile store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns the store at ~/.config/filenest/profiles.
func DefaultStore() (*Store, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, "profiles")), nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

// List returns the names of all stored profiles, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates one profile. Loading a name with no stored
// file falls back to the builtin profile of that name, if one exists.
func (s *Store) Load(name string) (*Profile, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			if builtin := BuiltinProfile(name); builtin != nil {
				return builtin.Clone(), nil
			}
			return nil, errors.NewProfileError("profile not found", name, "", errors.ProfileNotFound, nil)
		}
		return nil, fmt.Errorf("failed to read profile %q: %w", name, err)
	}
	return parseProfile(data, name)
}

func parseProfile(data []byte, name string) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.NewProfileError("failed to parse profile", name, "", errors.InvalidProfile, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes one profile, creating the store directory if necessary.
func (s *Store) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	return nil
}

// Delete removes a stored profile.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.NewProfileError("profile not found", name, "", errors.ProfileNotFound, nil)
		}
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}
	return nil
}

// Copy duplicates a profile under a new name.
func (s *Store) Copy(src, dst string) error {
	p, err := s.Load(src)
	if err != nil {
		return err
	}
	cp := p.Clone()
	cp.Name = dst
	cp.Description = fmt.Sprintf("Copy of %s", src)
	return s.Save(cp)
}

// Export writes a profile to an arbitrary path outside the store.
func (s *Store) Export(name, path string) error {
	p, err := s.Load(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %q: %w", name, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Import reads a profile document from path and stores it under the
// name it declares.
func (s *Store) Import(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	p, err := parseProfile(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}
