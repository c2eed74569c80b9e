package shelldeck

import (
	"strconv"

	"github.com/reoring/shelldeck/render"
)

// Container is an ordered map of statements of one tag keyed by normalized
// identity. Iteration follows insertion order.
type Container struct {
	spec      TypeSpec
	entries   []entry
	index     map[Key]int
	secondary map[string][]int
	seq       int
}

type entry struct {
	key  Key
	stmt Statement
	// checked is the level instance and container rules last passed at,
	// under rule control generation gen. LevelDisabled means they never ran.
	checked Level
	gen     uint64
}

// NewContainer returns an empty container for spec.
func NewContainer(spec TypeSpec) *Container {
	return &Container{spec: spec, index: map[Key]int{}, secondary: map[string][]int{}}
}

func (c *Container) Tag() Tag { return c.spec.Tag }

func (c *Container) Len() int { return len(c.entries) }

// KeyOf normalizes the identity of s. Sequence types get the key the next
// insertion would assign.
func (c *Container) KeyOf(s Statement) (Key, error) {
	if c.spec.ID.Sequenced() {
		return Key("#" + strconv.Itoa(c.seq+1)), nil
	}
	k, err := Normalize(c.spec.ID, s.Identity())
	if err != nil {
		if ie, ok := err.(*IdentifierError); ok {
			ie.Tag = c.spec.Tag
		}
		return "", err
	}
	return k, nil
}

// Add stores s, failing with *DuplicateError when its key is taken. A failed
// Add leaves the container unchanged. Statements added directly are treated
// as already validated.
func (c *Container) Add(s Statement) error {
	k, err := c.reserve(s)
	if err != nil {
		return err
	}
	c.insert(k, s, LevelStrict, 0)
	return nil
}

// reserve computes the key of s and checks it is free.
func (c *Container) reserve(s Statement) (Key, error) {
	if s.Tag() != c.spec.Tag {
		return "", &UnroutableError{Tag: s.Tag()}
	}
	k, err := c.KeyOf(s)
	if err != nil {
		return "", err
	}
	if _, dup := c.index[k]; dup {
		return "", &DuplicateError{Tag: c.spec.Tag, Key: k}
	}
	return k, nil
}

func (c *Container) insert(k Key, s Statement, checked Level, gen uint64) {
	if c.spec.ID.Sequenced() {
		c.seq++
	}
	c.index[k] = len(c.entries)
	if c.spec.Secondary != nil {
		v := c.spec.Secondary(s)
		c.secondary[v] = append(c.secondary[v], len(c.entries))
	}
	c.entries = append(c.entries, entry{key: k, stmt: s, checked: checked, gen: gen})
}

// Get returns the statement whose key matches id after normalization, so 1,
// 1.0, "1" and Key("1.0") find the same integer-keyed statement. Sequence
// containers are looked up by their assigned Key only.
func (c *Container) Get(id any) (Statement, bool) {
	if c.spec.ID.Sequenced() {
		k, ok := id.(Key)
		if !ok {
			return nil, false
		}
		return c.get(k)
	}
	if k, ok := id.(Key); ok {
		id = string(k)
	}
	k, err := Normalize(c.spec.ID, id)
	if err != nil {
		return nil, false
	}
	return c.get(k)
}

func (c *Container) get(k Key) (Statement, bool) {
	i, ok := c.index[k]
	if !ok {
		return nil, false
	}
	return c.entries[i].stmt, true
}

func (c *Container) Contains(id any) bool {
	_, ok := c.Get(id)
	return ok
}

// BySecondary returns every statement whose secondary value equals v, in
// insertion order. Containers without a secondary index return nil.
func (c *Container) BySecondary(v string) []Statement {
	idx := c.secondary[v]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Statement, len(idx))
	for i, j := range idx {
		out[i] = c.entries[j].stmt
	}
	return out
}

// Statements returns the stored statements in insertion order.
func (c *Container) Statements() []Statement {
	out := make([]Statement, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.stmt
	}
	return out
}

// Keys returns the stored keys in insertion order.
func (c *Container) Keys() []Key {
	out := make([]Key, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.key
	}
	return out
}

// Lines renders every statement, one or more physical lines each.
func (c *Container) Lines(width int) []string {
	var out []string
	for _, e := range c.entries {
		out = append(out, render.Render(e.stmt.Record(), width))
	}
	return out
}
