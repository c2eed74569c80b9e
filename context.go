package shelldeck

import (
	"io/fs"
	"os"
)

// StatFunc reports file metadata; rules that check referenced files use it.
type StatFunc func(name string) (fs.FileInfo, error)

// Context gives a running rule its subject and a read-only view of the
// model. It is provided by the executor; rules must not retain it.
type Context struct {
	Level Level
	// Scope of the rule currently running.
	Scope Scope

	subject    Statement
	key        Key
	containers map[Tag]*Container
	stat       StatFunc
	// settings carries the rule controls; nil enables every rule.
	settings *Settings
}

// NewContext builds a context over the given containers. The subject's key
// is derived from its own container when present.
func NewContext(level Level, subject Statement, containers ...*Container) *Context {
	ctx := &Context{Level: level, subject: subject, containers: map[Tag]*Container{}, stat: os.Stat}
	for _, c := range containers {
		ctx.containers[c.Tag()] = c
	}
	if c := ctx.containers[subject.Tag()]; c != nil {
		if k, err := c.KeyOf(subject); err == nil {
			ctx.key = k
		}
	}
	return ctx
}

// WithStat replaces the file lookup used by Stat.
func (c *Context) WithStat(fn StatFunc) *Context {
	if fn != nil {
		c.stat = fn
	}
	return c
}

// WithSettings applies the rule switches and severity overrides of s.
func (c *Context) WithSettings(s *Settings) *Context {
	c.settings = s
	return c
}

func (c *Context) ruleEnabled(id string) bool {
	return c.settings == nil || c.settings.RuleEnabled(id)
}

func (c *Context) ruleSeverity(id string) (Severity, bool) {
	if c.settings == nil {
		return SeverityUnset, false
	}
	return c.settings.RuleSeverity(id)
}

func (c *Context) Subject() Statement { return c.subject }

// Key is the normalized identity of the subject.
func (c *Context) Key() Key { return c.key }

// Loc is the location of the subject, the root for its issues.
func (c *Context) Loc() Location { return At(c.subject.Tag(), c.key) }

// Issue creates an issue at the subject location.
func (c *Context) Issue(code, msg string, kv ...any) Issue { return c.Loc().Issue(code, msg, kv...) }

// Lookup finds a statement of tag by identity, normalizing id with the
// target type's rules.
func (c *Context) Lookup(tag Tag, id any) (Statement, bool) {
	ct := c.containers[tag]
	if ct == nil {
		return nil, false
	}
	return ct.Get(id)
}

func (c *Context) Contains(tag Tag, id any) bool {
	_, ok := c.Lookup(tag, id)
	return ok
}

// All returns every statement of tag in insertion order.
func (c *Context) All(tag Tag) []Statement {
	ct := c.containers[tag]
	if ct == nil {
		return nil
	}
	return ct.Statements()
}

// BySecondary queries the secondary index of tag.
func (c *Context) BySecondary(tag Tag, v string) []Statement {
	ct := c.containers[tag]
	if ct == nil {
		return nil
	}
	return ct.BySecondary(v)
}

// Peers returns the other statements of the subject's container.
func (c *Context) Peers() []Statement {
	ct := c.containers[c.subject.Tag()]
	if ct == nil {
		return nil
	}
	out := make([]Statement, 0, ct.Len())
	for _, e := range ct.entries {
		if e.key == c.key && c.key != "" {
			continue
		}
		out = append(out, e.stmt)
	}
	return out
}

// Stat looks up a file through the configured StatFunc.
func (c *Context) Stat(name string) (fs.FileInfo, error) { return c.stat(name) }
