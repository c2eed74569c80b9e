package statements

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagBASCO shelldeck.Tag = "BASCO"

// Load case sources a BASCO factor can apply to.
const (
	LoadILC = "ILC"
	LoadOLC = "OLC"
	LoadELC = "ELC"
	LoadBAS = "BAS"
	LoadPLC = "PLC"
	LoadBLC = "BLC"
)

var loadTypes = []string{LoadILC, LoadOLC, LoadELC, LoadBAS, LoadPLC, LoadBLC}

// Load is one factor/case pair of a BASCO.
type Load struct {
	LF   float64 `yaml:"lf"`
	Type string  `yaml:"type"`
	Case int     `yaml:"case"`
}

func (l Load) String() string {
	return "LF=" + render.FormatFloat(l.LF, render.DefaultPrecision) + " " + l.Type + "=" + strconv.Itoa(l.Case)
}

// BASCO is a basic load combination: a list of factored load cases that
// may include other combinations (BAS).
type BASCO struct {
	ID    int    `yaml:"id"`
	LDF   *int   `yaml:"ldf"`
	TYP   string `yaml:"typ"` // R real, I imaginary, F factored
	TXT   string `yaml:"txt"`
	Loads []Load `yaml:"loads"`
}

var bascoLayout = render.NewLayout("BASCO",
	render.Field{Key: "ID", Kind: render.KindInt},
	render.Field{Key: "LDF", Kind: render.KindInt},
	render.Field{Key: "TYP", Kind: render.KindString},
	render.Field{Key: "TXT", Kind: render.KindString, Tail: true},
)

func (*BASCO) Tag() shelldeck.Tag { return TagBASCO }
func (b *BASCO) Identity() any    { return b.ID }

// Record packs the loads as a repeating group after ID, LDF and TYP.
func (b *BASCO) Record() render.Record {
	group := make([]string, len(b.Loads))
	for i, l := range b.Loads {
		group[i] = l.String()
	}
	rec := bascoLayout.Of(b.ID, b.LDF, b.TYP, b.TXT)
	rec.Group = group
	return rec
}

// Refs returns the case numbers of loads of type t, in order.
func (b *BASCO) Refs(t string) []int {
	var out []int
	for _, l := range b.Loads {
		if l.Type == t {
			out = append(out, l.Case)
		}
	}
	return out
}

func anyInts(ns []int) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

func bascoRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "BASCO-ID-001", Tag: TagBASCO, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.IntRange("id", 1, 99999999, func(b *BASCO) *int { return &b.ID }),
				rules.OneOf("typ", []string{"R", "I", "F"}, func(b *BASCO) string { return b.TYP }),
				rules.MaxLen("txt", 80, func(b *BASCO) string { return b.TXT }),
			)),
		},
		{
			ID: "BASCO-LOADCASES-001", Tag: TagBASCO, Scope: shelldeck.ScopeInstance,
			Description: "1 to 300 load cases of a known type",
			Check: rules.Typed(func(ctx *shelldeck.Context, b *BASCO) shelldeck.Issues {
				var out shelldeck.Issues
				if n := len(b.Loads); n < 1 || n > 300 {
					out = append(out, ctx.Loc().Field("loads").Issue(shelldeck.CodeOutOfRange,
						rules.Message(shelldeck.CodeOutOfRange, "field", "load cases", "min", 1, "max", 300, "got", n)))
				}
				for i, l := range b.Loads {
					if !slices.Contains(loadTypes, l.Type) {
						out = append(out, ctx.Loc().Field("loads").Index(i).Issue(shelldeck.CodeInvalidValue,
							rules.Message(shelldeck.CodeInvalidValue, "field", "type", "allowed", strings.Join(loadTypes, "|"), "got", l.Type)))
					}
					if l.Case < 1 {
						out = append(out, ctx.Loc().Field("loads").Index(i).Issue(shelldeck.CodeOutOfRange,
							fmt.Sprintf("load case number must be positive, got %d", l.Case)))
					}
				}
				return out
			}),
		},
		{
			ID: "BASCO-DUP-001", Tag: TagBASCO, Scope: shelldeck.ScopeContainer, Severity: shelldeck.SeverityWarn,
			Description: "two combinations with identical loads",
			Check: rules.Typed(rules.UniqueBy("loads", func(b *BASCO) string {
				parts := make([]string, len(b.Loads))
				for i, l := range b.Loads {
					parts[i] = l.String()
				}
				return strings.Join(parts, " ")
			})),
		},
		{
			ID: "BASCO-BAS-REF-001", Tag: TagBASCO, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.Exists("bas", []shelldeck.Tag{TagBASCO}, func(b *BASCO) []any {
				return anyInts(b.Refs(LoadBAS))
			})),
		},
		{
			ID: "BASCO-OLC-REF-001", Tag: TagBASCO, Scope: shelldeck.ScopeModel,
			Description: "OLC references are mapped by some LOADC",
			Check: rules.Typed(func(ctx *shelldeck.Context, b *BASCO) shelldeck.Issues {
				var out shelldeck.Issues
				for _, n := range b.Refs(LoadOLC) {
					if definesOLC(ctx, n) {
						continue
					}
					it := ctx.Loc().Field("olc").Issue(shelldeck.CodeReferenceMissing,
						rules.Message(shelldeck.CodeReferenceMissing, "field", "OLC", "target", TagLOADC, "ref", n), "ref", n)
					it.Hint = "map the output load case in a LOADC statement"
					out = append(out, it)
				}
				return out
			}),
		},
		{
			ID: "BASCO-CIRCULAR-001", Tag: TagBASCO, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(func(ctx *shelldeck.Context, b *BASCO) shelldeck.Issues {
				if path := bascoCycle(ctx, b); path != nil {
					return shelldeck.Issues{ctx.Loc().Field("bas").Issue(shelldeck.CodeCircular,
						rules.Message(shelldeck.CodeCircular, "path", joinInts(path, " -> ")))}
				}
				return nil
			}),
		},
	}
}

// bascoCycle returns the id chain leading back to b, or nil.
func bascoCycle(ctx *shelldeck.Context, b *BASCO) []int {
	visited := map[int]bool{}
	var walk func(cur *BASCO, path []int) []int
	walk = func(cur *BASCO, path []int) []int {
		for _, ref := range cur.Refs(LoadBAS) {
			if ref == b.ID {
				return append(path, ref)
			}
			if visited[ref] {
				continue
			}
			visited[ref] = true
			next, ok := ctx.Lookup(TagBASCO, ref)
			if !ok {
				continue
			}
			if found := walk(next.(*BASCO), append(path, ref)); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(b, []int{b.ID})
}

func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
