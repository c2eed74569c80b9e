package shelldeck

import (
	"fmt"
	"strings"
)

// Tag is the statement type keyword, e.g. "SHSEC".
type Tag string

// Severity expresses the severity level for issues.
type Severity int

const (
	SeverityUnset Severity = iota // Resolved to the rule's severity by the executor.
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return "unset"
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseSeverity accepts info, warn (or warning) and error, case-insensitively.
func ParseSeverity(v string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityUnset, fmt.Errorf("unknown severity %q", v)
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Level selects which rules run.
type Level int

const (
	LevelDisabled Level = iota // No rules run.
	LevelNormal                // All rules except strict-only ones.
	LevelStrict                // Every rule.
)

func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelNormal:
		return "normal"
	case LevelStrict:
		return "strict"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts the level names case-insensitively ("off" is an alias
// for disabled).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled", "off", "none":
		return LevelDisabled, nil
	case "normal", "":
		return LevelNormal, nil
	case "strict":
		return LevelStrict, nil
	}
	return LevelNormal, fmt.Errorf("unknown validation level %q", s)
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// allows reports whether a rule with the given strict flag runs at this level.
func (l Level) allows(strictOnly bool) bool {
	switch l {
	case LevelDisabled:
		return false
	case LevelNormal:
		return !strictOnly
	}
	return true
}

// Scope tells the executor what a rule may look at.
type Scope int

const (
	ScopeInstance  Scope = iota // The statement alone.
	ScopeContainer              // The statement against its own container.
	ScopeModel                  // The statement against other containers.
)

func (s Scope) String() string {
	switch s {
	case ScopeInstance:
		return "instance"
	case ScopeContainer:
		return "container"
	case ScopeModel:
		return "model"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// AddMode overrides the model's validation policy for one Add call.
type AddMode int

const (
	AddInherit  AddMode = iota // Follow the model's level and cross-object setting.
	AddValidate                // Run rules now; model rules only with cross-object on. A disabled level still runs none.
	AddDeferred                // Store without running rules; finalize checks it later.
)

// State is the aggregator lifecycle.
type State int

const (
	StateBuilding State = iota
	StateFinalized
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateFinalized:
		return "finalized"
	case StateSerialized:
		return "serialized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
