package shelldeck

import (
	"fmt"

	"github.com/reoring/shelldeck/render"
)

// Statement is a typed deck record. Implementations are plain structs built
// by callers; once accepted by a Model they must not be mutated.
type Statement interface {
	// Tag returns the statement type keyword.
	Tag() Tag
	// Identity returns the raw identity value (an int, a string, or a composite
	// string built from several fields). Ignored for IDSequence types.
	Identity() any
	// Record returns the rendering descriptor and values.
	Record() render.Record
}

// TypeSpec registers one statement type with the catalog.
type TypeSpec struct {
	Tag Tag
	ID  IDKind
	// Secondary, when set, derives a non-unique lookup value (e.g. part name).
	Secondary func(Statement) string
}

// Catalog is the fixed routing table: tag to container, in output order.
type Catalog struct {
	specs []TypeSpec
	index map[Tag]int
}

// NewCatalog validates the specs and keeps their order as the output order.
func NewCatalog(specs ...TypeSpec) (*Catalog, error) {
	c := &Catalog{index: make(map[Tag]int, len(specs))}
	for _, s := range specs {
		if s.Tag == "" {
			return nil, fmt.Errorf("catalog: empty tag")
		}
		if _, dup := c.index[s.Tag]; dup {
			return nil, fmt.Errorf("catalog: duplicate tag %s", s.Tag)
		}
		c.index[s.Tag] = len(c.specs)
		c.specs = append(c.specs, s)
	}
	return c, nil
}

// MustCatalog is NewCatalog that panics on error, for static tables.
func MustCatalog(specs ...TypeSpec) *Catalog {
	c, err := NewCatalog(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Spec returns the registration for tag.
func (c *Catalog) Spec(tag Tag) (TypeSpec, bool) {
	i, ok := c.index[tag]
	if !ok {
		return TypeSpec{}, false
	}
	return c.specs[i], true
}

// Tags lists the routable tags in output order.
func (c *Catalog) Tags() []Tag {
	out := make([]Tag, len(c.specs))
	for i, s := range c.specs {
		out[i] = s.Tag
	}
	return out
}
