package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagRELOC shelldeck.Tag = "RELOC"

// RELOC places rebar types (RT, see RETYP) in shell sections, either by part
// and section ranges or by a location area (LA).
type RELOC struct {
	ID  string   `yaml:"id"`
	RT  Span     `yaml:"rt"`
	COV *float64 `yaml:"cov"`
	FA  int      `yaml:"fa"` // 0 centre, 1 face 1, 2 face 2
	AL  float64  `yaml:"al"`
	OS  *float64 `yaml:"os"`
	RP  string   `yaml:"rp"`
	PA  string   `yaml:"pa"`
	FS  *Span    `yaml:"fs"`
	HS  *Span    `yaml:"hs"`
	LA  *int     `yaml:"la"`
}

var relocLayout = render.NewLayout("RELOC",
	render.Field{Key: "ID", Kind: render.KindString},
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "RT", Kind: render.KindPair, Join: render.JoinSpan},
	render.Field{Key: "COV", Kind: render.KindFloat},
	render.Field{Key: "FA", Kind: render.KindInt, Default: 0},
	render.Field{Key: "AL", Kind: render.KindFloat, Default: 0.0},
	render.Field{Key: "OS", Kind: render.KindFloat},
	render.Field{Key: "RP", Kind: render.KindString, Default: "12"},
	render.Field{Key: "LA", Kind: render.KindInt},
	render.Field{Key: "FS", Kind: render.KindPair, Join: render.JoinSpan},
	render.Field{Key: "HS", Kind: render.KindPair, Join: render.JoinSpan},
)

func (*RELOC) Tag() shelldeck.Tag { return TagRELOC }
func (r *RELOC) Identity() any    { return r.ID }

func (r *RELOC) Record() render.Record {
	return relocLayout.Of(r.ID, r.PA, [2]int(r.RT), r.COV, r.FA, r.AL, r.OS, r.RP, r.LA, r.FS.pair(), r.HS.pair())
}

func relocRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "RELOC-FIELD-001", Tag: TagRELOC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.FloatRange("al", -90, 90, func(r *RELOC) *float64 { return &r.AL }),
				rules.IntRange("fa", 0, 2, func(r *RELOC) *int { return &r.FA }),
				rules.OneOf("rp", []string{"12", "XY", "XZ", "YZ"}, func(r *RELOC) string { return r.RP }),
				rules.MaxLen("pa", 8, func(r *RELOC) string { return r.PA }),
				rules.Ordered("rt", func(r *RELOC) *[2]int { return r.RT.pair() }),
			)),
		},
		{
			ID: "RELOC-LA-001", Tag: TagRELOC, Scope: shelldeck.ScopeInstance,
			Description: "LA excludes PA/FS/HS",
			Check: rules.Typed(func(ctx *shelldeck.Context, r *RELOC) shelldeck.Issues {
				if r.LA != nil && (r.PA != "" || r.FS != nil || r.HS != nil) {
					return shelldeck.Issues{ctx.Loc().Field("la").Issue(shelldeck.CodeExclusive, "LA cannot be combined with PA, FS or HS")}
				}
				return nil
			}),
		},
		{
			ID: "RELOC-RT-REF-001", Tag: TagRELOC, Scope: shelldeck.ScopeModel,
			Description: "both RT bounds are defined rebar types",
			Check: rules.Typed(rules.Exists("rt", []shelldeck.Tag{TagRETYP}, func(r *RELOC) []any {
				if r.RT[0] == r.RT[1] {
					return []any{r.RT[0]}
				}
				return []any{r.RT[0], r.RT[1]}
			})),
		},
		{
			ID: "RELOC-PA-REF-001", Tag: TagRELOC, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.PartExists("pa", TagSHSEC, func(r *RELOC) string { return r.PA })),
		},
	}
}
