package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed data/*.yaml
var embedded embed.FS

// Catalog is an immutable set of levels keyed by level number.
type Catalog struct {
	levels  map[int]*Level
	numbers []int
}

// NewCatalog builds a catalog from level templates. Later levels with the
// same number replace earlier ones. Templates are copied.
func NewCatalog(lvls ...*Level) *Catalog {
	c := &Catalog{levels: make(map[int]*Level, len(lvls))}
	for _, l := range lvls {
		if l == nil {
			continue
		}
		c.levels[l.Number] = l.Clone()
	}
	c.reindex()
	return c
}

func (c *Catalog) reindex() {
	c.numbers = c.numbers[:0]
	for n := range c.levels {
		c.numbers = append(c.numbers, n)
	}
	sort.Ints(c.numbers)
}

// Embedded returns the built-in 12-level campaign.
func Embedded() (*Catalog, error) {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded data: %w", err)
	}

	lvls := make([]*Level, 0, len(entries))
	for _, e := range entries {
		name := path.Join("data", e.Name())
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", name, err)
		}
		l, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing %s: %w", name, err)
		}
		lvls = append(lvls, l)
	}
	return NewCatalog(lvls...), nil
}

// MustEmbedded is Embedded for package-level setup; the embedded files
// are part of the binary so a failure is a build defect.
func MustEmbedded() *Catalog {
	c, err := Embedded()
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns a validated copy of level n.
func (c *Catalog) Get(n int) (*Level, error) {
	l, ok := c.levels[n]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownLevel, n)
	}
	if err := Validate(l); err != nil {
		return nil, err
	}
	return l.Clone(), nil
}

// Count returns the number of levels in the catalog.
func (c *Catalog) Count() int {
	return len(c.numbers)
}

// Numbers returns level numbers in ascending order.
func (c *Catalog) Numbers() []int {
	return append([]int(nil), c.numbers...)
}

// First returns the lowest level number, or 0 for an empty catalog.
func (c *Catalog) First() int {
	if len(c.numbers) == 0 {
		return 0
	}
	return c.numbers[0]
}

// Last returns the highest level number, or 0 for an empty catalog.
func (c *Catalog) Last() int {
	if len(c.numbers) == 0 {
		return 0
	}
	return c.numbers[len(c.numbers)-1]
}

// IsLast reports whether n is the final level of the campaign.
func (c *Catalog) IsLast(n int) bool {
	return n == c.Last()
}

// Next returns the level number after n.
func (c *Catalog) Next(n int) (int, bool) {
	for _, m := range c.numbers {
		if m > n {
			return m, true
		}
	}
	return 0, false
}

// Name returns the display name of level n.
func (c *Catalog) Name(n int) string {
	if l, ok := c.levels[n]; ok {
		return l.Name
	}
	return ""
}

// ValidateAll validates every level and returns per-level errors.
func (c *Catalog) ValidateAll() map[int]error {
	problems := make(map[int]error)
	for _, n := range c.numbers {
		if err := Validate(c.levels[n]); err != nil {
			problems[n] = err
		}
	}
	return problems
}

// With returns a new catalog where the given levels replace entries with
// the same number.
func (c *Catalog) With(overrides ...*Level) *Catalog {
	all := make([]*Level, 0, len(c.levels)+len(overrides))
	for _, n := range c.numbers {
		all = append(all, c.levels[n])
	}
	all = append(all, overrides...)
	return NewCatalog(all...)
}
