package statements

import (
	"fmt"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagLOADC shelldeck.Tag = "LOADC"

// LOADC maps analysis load cases (ALC) of one result run (RN) to output
// load cases (OLC). A single ALC with a single OLC renders as LC=alc,olc.
type LOADC struct {
	RN  int   `yaml:"rn"`
	ALC Cases `yaml:"alc"`
	OLC Cases `yaml:"olc"`
}

var (
	loadcLayout = render.NewLayout("LOADC",
		render.Field{Key: "RN", Kind: render.KindInt},
		render.Field{Key: "LC", Kind: render.KindString},
		render.Field{Key: "OLC", Kind: render.KindString},
	)
	loadcPairLayout = render.NewLayout("LOADC",
		render.Field{Key: "RN", Kind: render.KindInt},
		render.Field{Key: "LC", Kind: render.KindPair, Join: render.JoinComma},
	)
)

func (*LOADC) Tag() shelldeck.Tag { return TagLOADC }

func (l *LOADC) Identity() any { return fmt.Sprintf("RN%d_LC%s", l.RN, l.ALC) }

func (l *LOADC) Record() render.Record {
	a, okA := l.ALC.Single()
	o, okO := l.OLC.Single()
	if okA && okO {
		return loadcPairLayout.Of(l.RN, [2]int{a, o})
	}
	return loadcLayout.Of(l.RN, l.ALC, l.OLC)
}

// HasOLC reports whether n is one of the mapped output load cases.
func (l *LOADC) HasOLC(n int) bool { return l.OLC.Has(n) }

// definesOLC scans every LOADC of the model.
func definesOLC(ctx *shelldeck.Context, n int) bool {
	for _, st := range ctx.All(TagLOADC) {
		if st.(*LOADC).HasOLC(n) {
			return true
		}
	}
	return false
}

func loadcRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "LOADC-RUN-001", Tag: TagLOADC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.IntRange("rn", 1, 99999999, func(l *LOADC) *int { return &l.RN }),
				rules.Required("alc", func(l *LOADC) bool { return len(l.ALC) > 0 }),
				rules.Required("olc", func(l *LOADC) bool { return len(l.OLC) > 0 }),
			)),
		},
		{
			ID: "LOADC-COUNT-001", Tag: TagLOADC, Scope: shelldeck.ScopeInstance,
			Description: "ALC and OLC lists have equal length",
			Check: rules.Typed(func(ctx *shelldeck.Context, l *LOADC) shelldeck.Issues {
				na, no := len(l.ALC.Expand()), len(l.OLC.Expand())
				if na == no || na == 0 || no == 0 {
					return nil
				}
				return shelldeck.Issues{ctx.Loc().Field("olc").Issue(shelldeck.CodeOutOfRange,
					fmt.Sprintf("%d analysis load cases map to %d output load cases", na, no), "alc", na, "olc", no)}
			}),
		},
		{
			ID: "LOADC-OLC-DUP-001", Tag: TagLOADC, Scope: shelldeck.ScopeContainer,
			Description: "an output load case is mapped once",
			Check: rules.Typed(func(ctx *shelldeck.Context, l *LOADC) shelldeck.Issues {
				var out shelldeck.Issues
				for _, p := range ctx.Peers() {
					o := p.(*LOADC)
					for _, n := range l.OLC.Expand() {
						if o.HasOLC(n) {
							out = append(out, ctx.Loc().Field("olc").Issue(shelldeck.CodeDuplicate,
								rules.Message(shelldeck.CodeDuplicate, "field", "OLC", "value", n, "other", o.Identity())))
							break
						}
					}
				}
				return out
			}),
		},
	}
}
