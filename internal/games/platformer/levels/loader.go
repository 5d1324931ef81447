package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// LoadDir reads level override files from dir. Files that fail to parse or
// validate are reported in the returned error and left out; the levels
// that did load are still returned.
func LoadDir(dir string) ([]*Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var (
		lvls     []*Level
		problems []error
	)
	for _, name := range names {
		l, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			problems = append(problems, err)
			continue
		}
		lvls = append(lvls, l)
	}
	return lvls, errors.Join(problems...)
}

// LoadFile reads and validates a single level file.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	if err := Validate(l); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// WithDir returns a catalog with the override levels from dir applied on
// top of base. Errors from individual files are returned alongside the
// catalog.
func WithDir(base *Catalog, dir string) (*Catalog, error) {
	lvls, err := LoadDir(dir)
	if len(lvls) == 0 {
		return base, err
	}
	return base.With(lvls...), err
}

// IsLevelFile reports whether the name has a level file extension.
func IsLevelFile(name string) bool {
	return slices.Contains(FormatExtensions(), strings.ToLower(filepath.Ext(name)))
}
