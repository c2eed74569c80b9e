package shelldeck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidValue     = "invalid_value"
	CodeRequired         = "required"
	CodeTooLong          = "too_long"
	CodeOutOfRange       = "out_of_range"
	CodeRangeOrder       = "range_order"
	CodeExclusive        = "exclusive"
	CodeDuplicate        = "duplicate"
	CodeReferenceMissing = "reference_missing"
	CodeCircular         = "circular"
	CodeUnused           = "unused"
	CodeFileMissing      = "file_missing"
	CodeRulePanic        = "rule_panic"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrUnroutable          = errors.New("unroutable statement")
	ErrValidationFailed    = errors.New("validation failed")
	ErrSealed              = errors.New("model already serialized")
)

// Issue represents a single validation entry.
type Issue struct {
	Location string // e.g. SHAXE[PLATE_fs1-10].pa
	Code     string // One of the codes listed above.
	Message  string
	Severity Severity
	Hint     string // Optional: remediation hint.
	Cause    error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"ref":101, "target":"BASCO"})
	// for i18n and reports.
	Params map[string]any
	// Rule records the id of the rule that produced this issue. The executor
	// stamps it, rules do not need to.
	Rule string
}

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error lists every issue as "[rule] location: message", one per line.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, it := range iss {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(it.String())
	}
	return b.String()
}

func (it Issue) String() string {
	rule := it.Rule
	if rule == "" {
		rule = it.Code
	}
	return fmt.Sprintf("[%s] %s: %s", rule, it.Location, it.Message)
}

// Errors returns the error-severity subset in input order.
func (iss Issues) Errors() Issues { return iss.filter(func(s Severity) bool { return s == SeverityError }) }

// Warnings returns the warn and info subset in input order.
func (iss Issues) Warnings() Issues { return iss.filter(func(s Severity) bool { return s != SeverityError }) }

func (iss Issues) filter(keep func(Severity) bool) Issues {
	var out Issues
	for _, it := range iss {
		if keep(it.Severity) {
			out = append(out, it)
		}
	}
	return out
}

// HasErrors reports whether any issue carries error severity.
func (iss Issues) HasErrors() bool {
	for _, it := range iss {
		if it.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sorted returns a copy ordered by location, then rule, then message.
func (iss Issues) Sorted() Issues {
	out := append(Issues(nil), iss...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationError aggregates every error-severity issue of one validation pass.
type ValidationError struct {
	Issues Issues
}

func (e *ValidationError) Error() string {
	return "validation failed:\n" + e.Issues.Error()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// Unwrap exposes the issues so AsIssues works on a *ValidationError.
func (e *ValidationError) Unwrap() error { return e.Issues }

// IdentifierError reports an identity value that cannot be normalized.
type IdentifierError struct {
	Tag    Tag
	Value  any
	Reason string
}

func (e *IdentifierError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("invalid identifier %#v: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: invalid identifier %#v: %s", e.Tag, e.Value, e.Reason)
}

func (e *IdentifierError) Is(target error) bool { return target == ErrInvalidIdentifier }

// DuplicateError reports a second statement with an already stored identity key.
type DuplicateError struct {
	Tag Tag
	Key Key
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: duplicate identifier %q", e.Tag, string(e.Key))
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicateIdentifier }

// UnroutableError reports a statement whose tag has no registered container.
type UnroutableError struct {
	Tag Tag
}

func (e *UnroutableError) Error() string {
	return fmt.Sprintf("unsupported statement type %q", string(e.Tag))
}

func (e *UnroutableError) Is(target error) bool { return target == ErrUnroutable }

func validationFailure(iss Issues) error {
	errs := iss.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Issues: errs}
}
