// Package render turns statement records into the line-oriented deck text.
//
// A statement type declares its output once, as a Layout: an ordered table of
// Field descriptors (key, kind, join style, precision, default). Rendering a
// Record walks that table, formats every present value and omits absent or
// default ones. Passing a value that does not match its field kind is a
// programming error and panics.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWidth is the column budget used when packing repeating groups.
const DefaultWidth = 100

// DefaultPrecision is the number of decimals floats are rounded to before
// trailing zeros are stripped.
const DefaultPrecision = 6

// Kind is the value shape of a field.
type Kind uint8

const (
	KindInt    Kind = iota + 1 // int, int64 or pointers to them
	KindFloat                  // float64 or *float64
	KindString                 // string, *string or fmt.Stringer; rendered verbatim
	KindFlag                   // bool or *bool; true renders as bare KEY=
	KindPair                   // [2]int or [2]float64, optionally by pointer
	KindTriple                 // [3]int or [3]float64, optionally by pointer
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFlag:
		return "flag"
	case KindPair:
		return "pair"
	case KindTriple:
		return "triple"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Join selects how the elements of a pair are separated.
type Join uint8

const (
	JoinHyphen Join = iota // lo-hi
	JoinComma              // lo,hi
	JoinSpan               // lo-hi, or a single lo when both bounds are equal
)

// Field describes one KEY=value token.
type Field struct {
	// Key is the output keyword. An empty key renders the bare value.
	Key  string
	Kind Kind
	// Join applies to pairs; triples are always comma-joined.
	Join Join
	// Precision is the float rounding; zero means DefaultPrecision.
	Precision int
	// Default, when non-nil, suppresses values equal to it.
	Default any
	// Tail fields follow the repeating group and are not repeated on
	// continuation lines.
	Tail bool
}

// Layout is the rendering descriptor of one statement type.
type Layout struct {
	Tag    string
	Fields []Field
}

// NewLayout builds a layout and panics on duplicate keys.
func NewLayout(tag string, fields ...Field) *Layout {
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Kind == 0 {
			panic(fmt.Sprintf("render: %s.%s: missing kind", tag, f.Key))
		}
		if f.Key == "" {
			continue
		}
		if seen[f.Key] {
			panic(fmt.Sprintf("render: %s: duplicate field %s", tag, f.Key))
		}
		seen[f.Key] = true
	}
	return &Layout{Tag: tag, Fields: fields}
}

// Record is one statement ready for rendering.
type Record struct {
	Layout *Layout
	// Values is parallel to Layout.Fields; nil entries are omitted.
	Values []any
	// Group holds pre-formatted repeating sub-records, packed after the
	// non-tail fields.
	Group []string
	// Comment is appended to the final line as "% text".
	Comment string
}

// Of is shorthand for a Record without group or comment.
func (l *Layout) Of(values ...any) Record { return Record{Layout: l, Values: values} }

// Line renders values on the layout with the default width.
func (l *Layout) Line(values ...any) string { return Render(l.Of(values...), 0) }

// Render produces the text of r. Records without a group always yield one
// line; grouped records are packed under width (DefaultWidth when <= 0) with
// the header re-emitted on every line.
func Render(r Record, width int) string {
	if r.Layout == nil {
		panic("render: record without layout")
	}
	if len(r.Values) != len(r.Layout.Fields) {
		panic(fmt.Sprintf("render: %s: %d values for %d fields", r.Layout.Tag, len(r.Values), len(r.Layout.Fields)))
	}
	if width <= 0 {
		width = DefaultWidth
	}
	head := []string{r.Layout.Tag}
	var tail []string
	for i, f := range r.Layout.Fields {
		tok, ok := Token(f, r.Values[i])
		if !ok {
			continue
		}
		if f.Tail {
			tail = append(tail, tok)
		} else {
			head = append(head, tok)
		}
	}
	prefix := strings.Join(head, " ")
	var lines []string
	if len(r.Group) == 0 {
		lines = []string{joinNonEmpty(prefix, strings.Join(tail, " "))}
	} else {
		lines = Pack(prefix, r.Group, width)
		if len(tail) > 0 {
			t := strings.Join(tail, " ")
			last := lines[len(lines)-1]
			if len(last)+1+len(t) <= width {
				lines[len(lines)-1] = last + " " + t
			} else {
				lines = append(lines, prefix+" "+t)
			}
		}
	}
	if c := strings.TrimSpace(r.Comment); c != "" {
		lines[len(lines)-1] += " % " + c
	}
	return strings.Join(lines, "\n")
}

// Pack greedily fills lines with items, each line starting with prefix. A
// line always carries at least one item even if that overflows width.
func Pack(prefix string, items []string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	if len(items) == 0 {
		return []string{prefix}
	}
	var lines []string
	cur := prefix
	n := 0
	for _, it := range items {
		if n > 0 && len(cur)+1+len(it) > width {
			lines = append(lines, cur)
			cur, n = prefix, 0
		}
		cur = joinNonEmpty(cur, it)
		n++
	}
	return append(lines, cur)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// Token formats one field. ok is false when the value is absent or equals
// the field default.
func Token(f Field, v any) (string, bool) {
	v, ok := deref(v)
	if !ok {
		return "", false
	}
	if f.Default != nil && v == f.Default {
		return "", false
	}
	val, ok := format(f, v)
	if !ok {
		return "", false
	}
	if f.Key == "" {
		return val, true
	}
	return f.Key + "=" + val, true
}

func format(f Field, v any) (string, bool) {
	prec := f.Precision
	if prec == 0 {
		prec = DefaultPrecision
	}
	switch f.Kind {
	case KindInt:
		switch x := v.(type) {
		case int:
			return strconv.Itoa(x), true
		case int64:
			return strconv.FormatInt(x, 10), true
		}
	case KindFloat:
		if x, ok := v.(float64); ok {
			return FormatFloat(x, prec), true
		}
	case KindString:
		switch x := v.(type) {
		case string:
			return x, x != ""
		case fmt.Stringer:
			s := x.String()
			return s, s != ""
		}
	case KindFlag:
		if x, ok := v.(bool); ok {
			return "", x
		}
	case KindPair:
		sep := "-"
		if f.Join == JoinComma {
			sep = ","
		}
		switch x := v.(type) {
		case [2]int:
			if f.Join == JoinSpan && x[0] == x[1] {
				return strconv.Itoa(x[0]), true
			}
			return strconv.Itoa(x[0]) + sep + strconv.Itoa(x[1]), true
		case [2]float64:
			if f.Join == JoinSpan && x[0] == x[1] {
				return FormatFloat(x[0], prec), true
			}
			return FormatFloat(x[0], prec) + sep + FormatFloat(x[1], prec), true
		}
	case KindTriple:
		switch x := v.(type) {
		case [3]int:
			return strconv.Itoa(x[0]) + "," + strconv.Itoa(x[1]) + "," + strconv.Itoa(x[2]), true
		case [3]float64:
			return FormatFloat(x[0], prec) + "," + FormatFloat(x[1], prec) + "," + FormatFloat(x[2], prec), true
		}
	}
	panic(fmt.Sprintf("render: field %s: unsupported value %T for kind %s", f.Key, v, f.Kind))
}

// deref unwraps the supported pointer types; ok is false for nil.
func deref(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *int:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *int64:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *float64:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *string:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *bool:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *[2]int:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *[2]float64:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *[3]int:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *[3]float64:
		if x == nil {
			return nil, false
		}
		return *x, true
	}
	return v, true
}

// FormatFloat rounds to prec decimals, strips trailing zeros and the point,
// and renders any zero as "0".
func FormatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
