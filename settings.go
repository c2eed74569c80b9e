package shelldeck

import "sync"

// Settings is mutable validation configuration shared by the models that
// reference it: the level plus per-rule switches and severity overrides.
// All access is serialized.
type Settings struct {
	mu       sync.Mutex
	level    Level
	disabled map[string]bool
	severity map[string]Severity
	// gen counts rule control changes so finalize can tell a stale pass.
	gen uint64
}

func NewSettings(level Level) *Settings { return &Settings{level: level} }

// Global is the process-wide settings instance. Models use it only when
// built with WithSettings(Global).
var Global = NewSettings(LevelNormal)

func (s *Settings) Level() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel stores l and returns the previous level.
func (s *Settings) SetLevel(l Level) Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.level
	s.level = l
	return prev
}

// Override switches to l until the returned restore func is called. Use it
// with defer so the previous level comes back on every exit path.
func (s *Settings) Override(l Level) (restore func()) {
	prev := s.SetLevel(l)
	var once sync.Once
	return func() { once.Do(func() { s.SetLevel(prev) }) }
}

// Suspend runs fn with validation disabled and restores the previous level
// afterwards, including when fn panics.
func (s *Settings) Suspend(fn func() error) error {
	restore := s.Override(LevelDisabled)
	defer restore()
	return fn()
}

// DisableRule stops the rule with the given id from running at any level.
// Unknown ids are remembered, so a rule registered later starts disabled.
func (s *Settings) DisableRule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled == nil {
		s.disabled = map[string]bool{}
	}
	if !s.disabled[id] {
		s.disabled[id] = true
		s.gen++
	}
}

func (s *Settings) EnableRule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled[id] {
		delete(s.disabled, id)
		s.gen++
	}
}

// RuleEnabled reports whether id may run. It does not consult the level.
func (s *Settings) RuleEnabled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disabled[id]
}

// SetRuleSeverity forces the severity of every issue the rule id reports,
// so an error rule can be downgraded to a warning or the reverse.
// SeverityUnset removes the override.
func (s *Settings) SetRuleSeverity(id string, sev Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sev == SeverityUnset {
		if _, ok := s.severity[id]; ok {
			delete(s.severity, id)
			s.gen++
		}
		return
	}
	if s.severity == nil {
		s.severity = map[string]Severity{}
	}
	if s.severity[id] != sev {
		s.severity[id] = sev
		s.gen++
	}
}

// RuleSeverity returns the override for id, if any.
func (s *Settings) RuleSeverity(id string) (Severity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sev, ok := s.severity[id]
	return sev, ok
}

// snapshot returns the level and the rule control generation together.
func (s *Settings) snapshot() (Level, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level, s.gen
}
