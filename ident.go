package shelldeck

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key is a normalized identity key. Two statements of one tag collide iff
// their keys are equal.
type Key string

type idKind uint8

const (
	idSequence idKind = iota
	idInteger
	idAlnum
	idComposite
)

// IDKind describes how a statement type is identified. The zero value is
// IDSequence.
type IDKind struct {
	kind   idKind
	maxLen int
}

var (
	// IDInteger: ints, integral floats and numeric strings map to one decimal key.
	IDInteger = IDKind{kind: idInteger}
	// IDComposite: the statement builds its own key string from several fields.
	IDComposite = IDKind{kind: idComposite}
	// IDSequence: the statement has no identity; the container numbers it.
	IDSequence = IDKind{kind: idSequence}
)

// IDAlnum accepts letters, digits and underscores up to maxLen characters
// (0 means unlimited). Integer values are accepted and rendered in decimal.
func IDAlnum(maxLen int) IDKind { return IDKind{kind: idAlnum, maxLen: maxLen} }

func (k IDKind) String() string {
	switch k.kind {
	case idInteger:
		return "integer"
	case idAlnum:
		if k.maxLen > 0 {
			return fmt.Sprintf("alnum(%d)", k.maxLen)
		}
		return "alnum"
	case idComposite:
		return "composite"
	}
	return "sequence"
}

// Sequenced reports whether the kind carries no identity of its own.
func (k IDKind) Sequenced() bool { return k.kind == idSequence }

// Normalize maps a raw identity value to its canonical key. It is pure and
// deterministic: equal inputs always yield equal keys.
func Normalize(kind IDKind, v any) (Key, error) {
	fail := func(reason string) (Key, error) {
		return "", &IdentifierError{Value: v, Reason: reason}
	}
	switch kind.kind {
	case idSequence:
		return "", nil
	case idComposite:
		s, ok := v.(string)
		if !ok {
			return fail("composite identity must be a string")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return fail("empty composite identity")
		}
		return Key(s), nil
	case idInteger:
		n, reason := integerOf(v)
		if reason != "" {
			return fail(reason)
		}
		return Key(strconv.FormatInt(n, 10)), nil
	case idAlnum:
		var s string
		switch x := v.(type) {
		case string:
			s = strings.TrimSpace(x)
		case fmt.Stringer:
			s = strings.TrimSpace(x.String())
		default:
			n, reason := integerOf(v)
			if reason != "" {
				return fail(reason)
			}
			s = strconv.FormatInt(n, 10)
		}
		if s == "" {
			return fail("empty identity")
		}
		if kind.maxLen > 0 && len(s) > kind.maxLen {
			return fail(fmt.Sprintf("longer than %d characters", kind.maxLen))
		}
		for _, r := range s {
			if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return fail(fmt.Sprintf("character %q not allowed", r))
			}
		}
		return Key(s), nil
	}
	return fail("unknown identity kind")
}

// integerOf returns the integral value of v or a non-empty reason.
func integerOf(v any) (int64, string) {
	switch x := v.(type) {
	case int:
		return int64(x), ""
	case int8:
		return int64(x), ""
	case int16:
		return int64(x), ""
	case int32:
		return int64(x), ""
	case int64:
		return x, ""
	case uint:
		return uintOf(uint64(x))
	case uint8:
		return int64(x), ""
	case uint16:
		return int64(x), ""
	case uint32:
		return int64(x), ""
	case uint64:
		return uintOf(x)
	case float32:
		return floatOf(float64(x))
	case float64:
		return floatOf(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, "empty identity"
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, ""
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, "not a number"
		}
		return floatOf(f)
	case nil:
		return 0, "missing identity"
	}
	return 0, fmt.Sprintf("unsupported identity type %T", v)
}

func uintOf(u uint64) (int64, string) {
	if u > math.MaxInt64 {
		return 0, "out of range"
	}
	return int64(u), ""
}

func floatOf(f float64) (int64, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "not a finite number"
	}
	if f != math.Trunc(f) {
		return 0, "fractional value"
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, "out of range"
	}
	return int64(f), ""
}
