package statements

import (
	"fmt"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagGRECO shelldeck.Tag = "GRECO"

// GRECO scales reactions of a set of six basic combinations (BAS) and
// optionally restricts them to a set of output load cases (ELC). The id is a
// single letter.
type GRECO struct {
	ID  string `yaml:"id"`
	BAS Cases  `yaml:"bas"`
	ELC Cases  `yaml:"elc"`
}

var grecoLayout = render.NewLayout("GRECO",
	render.Field{Key: "ID", Kind: render.KindString},
	render.Field{Key: "BAS", Kind: render.KindString},
	render.Field{Key: "ELC", Kind: render.KindString},
)

func (*GRECO) Tag() shelldeck.Tag { return TagGRECO }
func (g *GRECO) Identity() any    { return g.ID }

func (g *GRECO) Record() render.Record { return grecoLayout.Of(g.ID, g.BAS, g.ELC) }

func grecoRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "GRECO-ID-001", Tag: TagGRECO, Scope: shelldeck.ScopeInstance,
			Description: "id is one uppercase letter",
			Check: rules.Typed(func(ctx *shelldeck.Context, g *GRECO) shelldeck.Issues {
				if len(g.ID) == 1 && g.ID[0] >= 'A' && g.ID[0] <= 'Z' {
					return nil
				}
				return shelldeck.Issues{ctx.Loc().Field("id").Issue(shelldeck.CodeInvalidValue,
					rules.Message(shelldeck.CodeInvalidValue, "field", "ID", "allowed", "A..Z", "got", g.ID))}
			}),
		},
		{
			ID: "GRECO-BAS-001", Tag: TagGRECO, Scope: shelldeck.ScopeInstance, Severity: shelldeck.SeverityWarn,
			Description: "a reaction set has six basic combinations",
			Check: rules.Typed(func(ctx *shelldeck.Context, g *GRECO) shelldeck.Issues {
				if n := len(g.BAS.Expand()); n != 6 {
					return shelldeck.Issues{ctx.Loc().Field("bas").Issue(shelldeck.CodeOutOfRange,
						fmt.Sprintf("GRECO %s lists %d BAS cases, expected 6", g.ID, n), "got", n)}
				}
				return nil
			}),
		},
		{
			ID: "GRECO-BAS-REF-001", Tag: TagGRECO, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.Exists("bas", []shelldeck.Tag{TagBASCO}, func(g *GRECO) []any {
				return anyInts(g.BAS.Expand())
			})),
		},
		{
			ID: "GRECO-ELC-REF-001", Tag: TagGRECO, Scope: shelldeck.ScopeModel,
			Description: "ELC cases are mapped by some LOADC",
			Check: rules.Typed(func(ctx *shelldeck.Context, g *GRECO) shelldeck.Issues {
				var out shelldeck.Issues
				for i, n := range g.ELC.Expand() {
					if !definesOLC(ctx, n) {
						out = append(out, ctx.Loc().Field("elc").Index(i).Issue(shelldeck.CodeReferenceMissing,
							rules.Message(shelldeck.CodeReferenceMissing, "field", "ELC", "target", TagLOADC, "ref", n), "ref", n))
					}
				}
				return out
			}),
		},
	}
}
