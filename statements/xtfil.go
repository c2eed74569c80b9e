package statements

import (
	"slices"
	"strings"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagXTFIL shelldeck.Tag = "XTFIL"

// Plot items accepted by XTFIL.
var plotItems = []string{
	"AX", "FH", "TH", "RE", "TE", "ST", "ND", "DF", "PF", "PM", "PS", "PE",
	"CS", "RS", "TS", "SC", "CW", "TW", "CZ", "CT", "MS", "LF", "PV",
}

// XTFIL requests a plot file for a part. Each plot item renders as a bare
// flag; long lists wrap with FN and PA repeated.
type XTFIL struct {
	FN    string   `yaml:"fn"`
	PA    string   `yaml:"pa"`
	FS    *Span    `yaml:"fs"`
	HS    *Span    `yaml:"hs"`
	Plots []string `yaml:"plots"`
}

var xtfilLayout = render.NewLayout("XTFIL",
	render.Field{Key: "FN", Kind: render.KindString},
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "FS", Kind: render.KindPair, Join: render.JoinSpan},
	render.Field{Key: "HS", Kind: render.KindPair, Join: render.JoinSpan},
)

func (*XTFIL) Tag() shelldeck.Tag { return TagXTFIL }
func (x *XTFIL) Identity() any    { return compositeKey(x.FN, x.PA) }

func (x *XTFIL) Record() render.Record {
	rec := xtfilLayout.Of(x.FN, x.PA, x.FS.pair(), x.HS.pair())
	for _, p := range x.Plots {
		rec.Group = append(rec.Group, strings.ToUpper(p)+"=")
	}
	return rec
}

func xtfilRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "XTFIL-FIELD-001", Tag: TagXTFIL, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.Required("fn", func(x *XTFIL) bool { return x.FN != "" }),
				rules.MaxLen("fn", 32, func(x *XTFIL) string { return x.FN }),
				rules.Required("pa", func(x *XTFIL) bool { return x.PA != "" }),
				rules.MaxLen("pa", 8, func(x *XTFIL) string { return x.PA }),
			)),
		},
		{
			ID: "XTFIL-PLOT-001", Tag: TagXTFIL, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(func(ctx *shelldeck.Context, x *XTFIL) shelldeck.Issues {
				var out shelldeck.Issues
				for i, p := range x.Plots {
					if !slices.Contains(plotItems, strings.ToUpper(p)) {
						out = append(out, ctx.Loc().Field("plots").Index(i).Issue(shelldeck.CodeInvalidValue,
							rules.Message(shelldeck.CodeInvalidValue, "field", "plot item", "allowed", strings.Join(plotItems, "|"), "got", p)))
					}
				}
				return out
			}),
		},
		{
			ID: "XTFIL-FN-DUP-001", Tag: TagXTFIL, Scope: shelldeck.ScopeContainer, Severity: shelldeck.SeverityWarn,
			Description: "plot file names are unique across parts",
			Check: rules.Typed(rules.UniqueBy("fn", func(x *XTFIL) string { return x.FN })),
		},
		{
			ID: "XTFIL-PA-REF-001", Tag: TagXTFIL, Scope: shelldeck.ScopeModel,
			Description: "the plotted part has design sections",
			Check: rules.Typed(rules.PartExists("pa", TagDESEC, func(x *XTFIL) string { return x.PA })),
		},
	}
}
