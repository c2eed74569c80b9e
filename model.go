package shelldeck

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Model aggregates statements into per-tag containers, validates them and
// writes the deck. A Model is not safe for concurrent use.
type Model struct {
	catalog     *Catalog
	registry    *Registry
	settings    *Settings
	crossObject bool
	width       int
	stat        StatFunc
	logger      *slog.Logger

	containers []*Container
	byTag      map[Tag]*Container
	state      State

	// warnings from adds, and from the last successful finalize.
	addWarnings   Issues
	finalWarnings Issues
	// level and rule control generation of the last successful finalize.
	passed    Level
	passedGen uint64
}

type options struct {
	cfg      Config
	registry *Registry
	settings *Settings
	stat     StatFunc
	logger   *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithConfig replaces the whole configuration. The level and the rule
// controls are ignored when WithSettings is also given.
func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

func WithLevel(l Level) Option { return func(o *options) { o.cfg.Level = l } }

func WithCrossObject(on bool) Option { return func(o *options) { o.cfg.CrossObject = on } }

func WithLineWidth(n int) Option { return func(o *options) { o.cfg.LineWidth = n } }

func WithRegistry(r *Registry) Option { return func(o *options) { o.registry = r } }

// WithSettings shares s (for example Global) instead of a private level.
func WithSettings(s *Settings) Option { return func(o *options) { o.settings = s } }

// WithStat replaces os.Stat for rules that check referenced files.
func WithStat(fn StatFunc) Option { return func(o *options) { o.stat = fn } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// New creates an empty model with one container per catalog tag.
func New(cat *Catalog, opts ...Option) *Model {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	m := &Model{
		catalog:     cat,
		registry:    o.registry,
		settings:    o.settings,
		crossObject: o.cfg.CrossObject,
		width:       o.cfg.LineWidth,
		stat:        o.stat,
		logger:      o.logger,
		byTag:       map[Tag]*Container{},
	}
	if m.registry == nil {
		m.registry = DefaultRegistry
	}
	if m.settings == nil {
		m.settings = NewSettings(o.cfg.Level)
		o.cfg.apply(m.settings)
	}
	if m.stat == nil {
		m.stat = os.Stat
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	for _, spec := range cat.specs {
		c := NewContainer(spec)
		m.containers = append(m.containers, c)
		m.byTag[spec.Tag] = c
	}
	return m
}

func (m *Model) Settings() *Settings { return m.settings }

func (m *Model) Level() Level { return m.settings.Level() }

func (m *Model) State() State { return m.state }

// Warnings returns the warn and info issues collected by adds and the last
// finalize.
func (m *Model) Warnings() Issues {
	out := append(Issues(nil), m.addWarnings...)
	return append(out, m.finalWarnings...)
}

// Container returns the container routed for tag.
func (m *Model) Container(tag Tag) (*Container, bool) {
	c, ok := m.byTag[tag]
	return c, ok
}

// Lookup finds a stored statement by tag and identity.
func (m *Model) Lookup(tag Tag, id any) (Statement, bool) {
	c, ok := m.byTag[tag]
	if !ok {
		return nil, false
	}
	return c.Get(id)
}

// WithoutValidation runs fn with the model's level disabled and restores it
// on every exit path. Statements added meanwhile are checked at finalize.
func (m *Model) WithoutValidation(fn func() error) error { return m.settings.Suspend(fn) }

// Add routes s with the model's validation policy.
func (m *Model) Add(s Statement) error { return m.AddWith(s, AddInherit) }

// AddAll adds statements in order and stops at the first failure.
func (m *Model) AddAll(ss ...Statement) error {
	for i, s := range ss {
		if err := m.Add(s); err != nil {
			return fmt.Errorf("statement %d (%s): %w", i, s.Tag(), err)
		}
	}
	return nil
}

// AddWith routes s, validates it according to mode and stores it. On any
// error nothing is stored.
func (m *Model) AddWith(s Statement, mode AddMode) error {
	if m.state == StateSerialized {
		return ErrSealed
	}
	c, ok := m.byTag[s.Tag()]
	if !ok {
		return &UnroutableError{Tag: s.Tag()}
	}
	key, err := c.reserve(s)
	if err != nil {
		return err
	}
	level, gen := m.settings.snapshot()
	var scopes []Scope
	switch {
	case mode == AddDeferred || level == LevelDisabled:
	case m.crossObject:
		scopes = []Scope{ScopeInstance, ScopeContainer, ScopeModel}
	default:
		scopes = []Scope{ScopeInstance, ScopeContainer}
	}
	var iss Issues
	checked := LevelDisabled
	if len(scopes) > 0 {
		iss = m.registry.Execute(m.context(level, s, key), s, scopes...)
		if err := validationFailure(iss); err != nil {
			m.logger.Debug("statement rejected", "tag", s.Tag(), "key", key, "errors", len(iss.Errors()))
			return err
		}
		checked = level
	}
	c.insert(key, s, checked, gen)
	m.state = StateBuilding
	m.addWarnings = append(m.addWarnings, m.note(iss)...)
	m.logger.Debug("statement stored", "tag", s.Tag(), "key", key, "validated", checked != LevelDisabled)
	return nil
}

// Finalize runs the model-scope rules over the whole aggregate, plus the
// instance and container rules of statements not yet checked at the current
// level. It is read-only and idempotent once it has succeeded, until an add,
// a higher level or a rule control change makes the last pass stale. A pass
// at LevelDisabled checks nothing and is never reused.
func (m *Model) Finalize() (Issues, error) {
	level, gen := m.settings.snapshot()
	if m.state != StateBuilding && m.passed != LevelDisabled && level <= m.passed && gen == m.passedGen {
		return nil, nil
	}
	if level == LevelDisabled {
		m.passed = LevelDisabled
		m.finalWarnings = nil
		if m.state == StateBuilding {
			m.state = StateFinalized
		}
		return nil, nil
	}
	var all Issues
	n := 0
	for _, c := range m.containers {
		for _, e := range c.entries {
			scopes := []Scope{ScopeModel}
			if e.checked < level || e.gen != gen {
				scopes = []Scope{ScopeInstance, ScopeContainer, ScopeModel}
			}
			all = append(all, m.registry.Execute(m.context(level, e.stmt, e.key), e.stmt, scopes...)...)
			n++
		}
	}
	if err := validationFailure(all); err != nil {
		if m.state == StateFinalized {
			m.state = StateBuilding
		}
		m.logger.Info("finalize failed", "statements", n, "errors", len(all.Errors()), "level", level)
		return all.Warnings(), err
	}
	for _, c := range m.containers {
		for i := range c.entries {
			if c.entries[i].checked < level || c.entries[i].gen != gen {
				c.entries[i].checked, c.entries[i].gen = level, gen
			}
		}
	}
	warn := m.note(all)
	m.finalWarnings = warn
	m.passed, m.passedGen = level, gen
	if m.state == StateBuilding {
		m.state = StateFinalized
	}
	m.logger.Info("model finalized", "statements", n, "warnings", len(warn), "level", level)
	return warn, nil
}

// Validate runs every scope on every stored statement without changing the
// model state, returning all issues (a full audit). It returns nil when the
// level is disabled.
func (m *Model) Validate() Issues {
	level := m.settings.Level()
	var all Issues
	for _, c := range m.containers {
		for _, e := range c.entries {
			all = append(all, m.registry.Execute(m.context(level, e.stmt, e.key), e.stmt, ScopeInstance, ScopeContainer, ScopeModel)...)
		}
	}
	return all
}

// WriteTo finalizes the model and writes every container in catalog order,
// one statement per line. It implements io.WriterTo.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	if _, err := m.Finalize(); err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	var total int64
	lines := 0
	for _, c := range m.containers {
		for _, ln := range c.Lines(m.width) {
			n, err := bw.WriteString(ln)
			total += int64(n)
			if err != nil {
				return total, err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return total, err
			}
			total++
			lines++
		}
	}
	if err := bw.Flush(); err != nil {
		return total, err
	}
	m.state = StateSerialized
	m.logger.Info("deck written", "statements", lines, "bytes", total)
	return total, nil
}

// Render is WriteTo into a string.
func (m *Model) Render() (string, error) {
	var b strings.Builder
	if _, err := m.WriteTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Counts returns the number of statements per tag, in catalog order of tags
// that hold at least one.
func (m *Model) Counts() map[Tag]int {
	out := map[Tag]int{}
	for _, c := range m.containers {
		if c.Len() > 0 {
			out[c.Tag()] = c.Len()
		}
	}
	return out
}

func (m *Model) context(level Level, s Statement, key Key) *Context {
	return &Context{Level: level, subject: s, key: key, containers: m.byTag, stat: m.stat, settings: m.settings}
}

// note logs the non-blocking issues of iss and returns them.
func (m *Model) note(iss Issues) Issues {
	warn := iss.Warnings()
	for _, it := range warn {
		lvl := slog.LevelWarn
		if it.Severity == SeverityInfo {
			lvl = slog.LevelInfo
		}
		m.logger.Log(context.Background(), lvl, it.Message, "rule", it.Rule, "location", it.Location)
	}
	return warn
}
