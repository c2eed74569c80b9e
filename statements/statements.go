// Package statements holds the deck statement types: plain structs with
// YAML tags, a rendering layout each, and the rules that guard them.
//
// Call Register once at startup to add every rule to a registry, and use
// Catalog to build models that route these types.
package statements

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Span is an inclusive case range; a single case has equal bounds.
type Span [2]int

// Cases is a list of load case numbers and ranges, rendered as
// "21,22,31-34".
type Cases []Span

// CasesOf builds Cases from single numbers.
func CasesOf(ns ...int) Cases {
	out := make(Cases, len(ns))
	for i, n := range ns {
		out[i] = Span{n, n}
	}
	return out
}

// Range is a single lo-hi entry.
func Range(lo, hi int) Cases { return Cases{{lo, hi}} }

func (c Cases) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		if s[0] == s[1] {
			parts[i] = strconv.Itoa(s[0])
		} else {
			parts[i] = strconv.Itoa(s[0]) + "-" + strconv.Itoa(s[1])
		}
	}
	return strings.Join(parts, ",")
}

// Expand lists every case number in order.
func (c Cases) Expand() []int {
	var out []int
	for _, s := range c {
		lo, hi := s[0], s[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
	}
	return out
}

// Has reports whether n is covered.
func (c Cases) Has(n int) bool {
	for _, s := range c {
		if n >= min(s[0], s[1]) && n <= max(s[0], s[1]) {
			return true
		}
	}
	return false
}

// Single reports whether c is one plain case number.
func (c Cases) Single() (int, bool) {
	if len(c) == 1 && c[0][0] == c[0][1] {
		return c[0][0], true
	}
	return 0, false
}

// ParseCases reads "1,2-6,10".
func ParseCases(s string) (Cases, error) {
	var out Cases
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("cases %q: %w", s, err)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("cases %q: %w", s, err)
			}
		}
		out = append(out, Span{a, b})
	}
	return out, nil
}

// UnmarshalYAML accepts a number, a "1,2-6" string or a list of numbers and
// [lo, hi] pairs.
func (c *Cases) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := ParseCases(n.Value)
		if err != nil {
			return err
		}
		*c = v
		return nil
	case yaml.SequenceNode:
		var out Cases
		for _, item := range n.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				v, err := strconv.Atoi(item.Value)
				if err != nil {
					return fmt.Errorf("line %d: case %q: %w", item.Line, item.Value, err)
				}
				out = append(out, Span{v, v})
			case yaml.SequenceNode:
				var pair [2]int
				if err := item.Decode(&pair); err != nil {
					return err
				}
				out = append(out, Span(pair))
			default:
				return fmt.Errorf("line %d: unsupported case entry", item.Line)
			}
		}
		*c = out
		return nil
	}
	return fmt.Errorf("line %d: cases must be a number, string or list", n.Line)
}

// UnmarshalYAML accepts a single number or a [lo, hi] pair.
func (s *Span) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v, err := strconv.Atoi(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %q is not a case number", n.Line, n.Value)
		}
		*s = Span{v, v}
		return nil
	}
	var pair [2]int
	if err := n.Decode(&pair); err != nil {
		return err
	}
	*s = Span(pair)
	return nil
}

// pair converts an optional span for rendering.
func (s *Span) pair() *[2]int {
	if s == nil {
		return nil
	}
	p := [2]int(*s)
	return &p
}

func rangeKey(prefix string, r *[2]int) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s%d-%d", prefix, r[0], r[1])
}

// compositeKey joins non-empty parts with "_".
func compositeKey(parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, "_")
}
