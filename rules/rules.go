// Package rules provides typed building blocks for statement rules: field
// limits, exclusive modes, ordered ranges and cross-container references.
// Every helper returns a Func over one concrete statement type; Typed adapts
// it to shelldeck.Check for registration.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/i18n"
)

// Func is a typed rule function.
type Func[S shelldeck.Statement] func(ctx *shelldeck.Context, s S) shelldeck.Issues

// Typed adapts fn to shelldeck.Check. Statements of another type yield no
// issues.
func Typed[S shelldeck.Statement](fn Func[S]) shelldeck.Check {
	return func(ctx *shelldeck.Context, st shelldeck.Statement) shelldeck.Issues {
		s, ok := st.(S)
		if !ok {
			return nil
		}
		return fn(ctx, s)
	}
}

// And executes all rules and concatenates Issues.
func And[S shelldeck.Statement](fns ...Func[S]) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		var out shelldeck.Issues
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			out = append(out, fn(ctx, s)...)
		}
		return out
	}
}

// Or succeeds if any rule returns no Issues. When all fail it returns the
// branch with the fewest issues.
func Or[S shelldeck.Statement](fns ...Func[S]) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		var best shelldeck.Issues
		bestSet := false
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			iss := fn(ctx, s)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best, bestSet = iss, true
			}
		}
		return best
	}
}

// When runs fns only if pred holds.
func When[S shelldeck.Statement](pred func(S) bool, fns ...Func[S]) Func[S] {
	all := And(fns...)
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		if !pred(s) {
			return nil
		}
		return all(ctx, s)
	}
}

// MaxLen limits a string field to n bytes. Empty values pass.
func MaxLen[S shelldeck.Statement](field string, n int, get func(S) string) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		v := get(s)
		if len(v) <= n {
			return nil
		}
		return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeTooLong,
			msg(shelldeck.CodeTooLong, "field", upper(field), "max", n, "got", len(v)),
			"max", n, "got", len(v))}
	}
}

// Required fails when present reports false.
func Required[S shelldeck.Statement](field string, present func(S) bool) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		if present(s) {
			return nil
		}
		return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeRequired,
			msg(shelldeck.CodeRequired, "field", upper(field)))}
	}
}

// IntRange bounds an optional integer field inclusively.
func IntRange[S shelldeck.Statement](field string, lo, hi int, get func(S) *int) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		v := get(s)
		if v == nil || *v >= lo && *v <= hi {
			return nil
		}
		return shelldeck.Issues{outOfRange(ctx, field, lo, hi, *v)}
	}
}

// FloatRange bounds an optional float field inclusively.
func FloatRange[S shelldeck.Statement](field string, lo, hi float64, get func(S) *float64) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		v := get(s)
		if v == nil || *v >= lo && *v <= hi {
			return nil
		}
		return shelldeck.Issues{outOfRange(ctx, field, lo, hi, *v)}
	}
}

// Positive requires each present value to be > 0. Pass getters in output
// order; issues name fields[i].
func Positive[S shelldeck.Statement](fields []string, get func(S) []*float64) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		var out shelldeck.Issues
		for i, v := range get(s) {
			if v == nil || *v > 0 {
				continue
			}
			out = append(out, ctx.Loc().Field(fields[i]).Issue(shelldeck.CodeOutOfRange,
				fmt.Sprintf("%s must be positive, got %v", upper(fields[i]), *v), "got", *v))
		}
		return out
	}
}

func outOfRange(ctx *shelldeck.Context, field string, lo, hi, got any) shelldeck.Issue {
	return ctx.Loc().Field(field).Issue(shelldeck.CodeOutOfRange,
		msg(shelldeck.CodeOutOfRange, "field", upper(field), "min", lo, "max", hi, "got", got),
		"min", lo, "max", hi, "got", got)
}

// Ordered requires lo <= hi on an optional pair.
func Ordered[S shelldeck.Statement](field string, get func(S) *[2]int) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		r := get(s)
		if r == nil || r[0] <= r[1] {
			return nil
		}
		return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeRangeOrder,
			msg(shelldeck.CodeRangeOrder, "field", upper(field), "lo", r[0], "hi", r[1]),
			"lo", r[0], "hi", r[1])}
	}
}

// OneOf restricts a string field to allowed values. Empty values pass.
func OneOf[S shelldeck.Statement](field string, allowed []string, get func(S) string) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		v := get(s)
		if v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeInvalidValue,
			msg(shelldeck.CodeInvalidValue, "field", upper(field), "allowed", strings.Join(allowed, "|"), "got", v),
			"got", v)}
	}
}

// ExactlyOne requires exactly one of several alternative definitions. set
// reports, per name in modes, whether that alternative is supplied.
func ExactlyOne[S shelldeck.Statement](modes []string, set func(S) []bool) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		n := 0
		var given []string
		for i, ok := range set(s) {
			if ok {
				n++
				given = append(given, modes[i])
			}
		}
		if n == 1 {
			return nil
		}
		return shelldeck.Issues{ctx.Issue(shelldeck.CodeExclusive,
			msg(shelldeck.CodeExclusive, "fields", "("+strings.Join(modes, " | ")+")", "got", n),
			"given", given)}
	}
}

// Exists requires every id returned by get to be stored in at least one of
// the target containers. Lookups normalize ids with each target's rules.
func Exists[S shelldeck.Statement](field string, targets []shelldeck.Tag, get func(S) []any) Func[S] {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	target := strings.Join(names, "/")
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		var out shelldeck.Issues
		for i, id := range get(s) {
			found := false
			for _, t := range targets {
				if ctx.Contains(t, id) {
					found = true
					break
				}
			}
			if found {
				continue
			}
			loc := ctx.Loc().Field(field)
			if len(get(s)) > 1 {
				loc = loc.Index(i)
			}
			it := loc.Issue(shelldeck.CodeReferenceMissing,
				msg(shelldeck.CodeReferenceMissing, "field", upper(field), "target", target, "ref", id),
				"ref", id, "target", target)
			it.Hint = "define " + target + " " + fmt.Sprint(id) + " or fix the reference"
			out = append(out, it)
		}
		return out
	}
}

// PartExists requires the part name returned by get to appear in the
// secondary index of target. Empty names pass.
func PartExists[S shelldeck.Statement](field string, target shelldeck.Tag, get func(S) string) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		p := get(s)
		if p == "" || len(ctx.BySecondary(target, p)) > 0 {
			return nil
		}
		return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeReferenceMissing,
			msg(shelldeck.CodeReferenceMissing, "field", upper(field), "target", target, "ref", p),
			"ref", p, "target", string(target))}
	}
}

// UniqueBy rejects a statement whose derived key equals that of another
// statement in its container. Use it for uniqueness beyond the identity.
func UniqueBy[S shelldeck.Statement](field string, key func(S) string) Func[S] {
	return func(ctx *shelldeck.Context, s S) shelldeck.Issues {
		k := key(s)
		if k == "" {
			return nil
		}
		for _, p := range ctx.Peers() {
			o, ok := p.(S)
			if !ok || key(o) != k {
				continue
			}
			return shelldeck.Issues{ctx.Loc().Field(field).Issue(shelldeck.CodeDuplicate,
				msg(shelldeck.CodeDuplicate, "field", upper(field), "value", k, "other", fmt.Sprint(o.Identity())),
				"value", k)}
		}
		return nil
	}
}

// msg renders a message through the i18n translator; kv alternate names and
// values.
func msg(code string, kv ...any) string {
	data := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[fmt.Sprint(kv[i])] = str(kv[i+1])
	}
	return i18n.T(code, data)
}

// Message is msg for statement packages that build their own issues.
func Message(code string, kv ...any) string { return msg(code, kv...) }

func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

func upper(field string) string { return strings.ToUpper(field) }
