package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagDESEC shelldeck.Tag = "DESEC"

// DESEC selects design sections of a part, optionally with thickness,
// thickness gradients and a reference point.
type DESEC struct {
	PA  string   `yaml:"pa"`
	FS  *Span    `yaml:"fs"`
	HS  *Span    `yaml:"hs"`
	TH  *float64 `yaml:"th"`
	T11 *float64 `yaml:"t11"`
	T12 *float64 `yaml:"t12"`
	T21 *float64 `yaml:"t21"`
	T22 *float64 `yaml:"t22"`
	X   *float64 `yaml:"x"`
	Y   *float64 `yaml:"y"`
	Z   *float64 `yaml:"z"`
}

var desecLayout = render.NewLayout("DESEC",
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "HS", Kind: render.KindPair, Join: render.JoinSpan},
	render.Field{Key: "FS", Kind: render.KindPair, Join: render.JoinSpan},
	render.Field{Key: "TH", Kind: render.KindFloat},
	render.Field{Key: "T11", Kind: render.KindFloat},
	render.Field{Key: "T12", Kind: render.KindFloat},
	render.Field{Key: "T21", Kind: render.KindFloat},
	render.Field{Key: "T22", Kind: render.KindFloat},
	render.Field{Key: "X", Kind: render.KindFloat},
	render.Field{Key: "Y", Kind: render.KindFloat},
	render.Field{Key: "Z", Kind: render.KindFloat},
)

func (*DESEC) Tag() shelldeck.Tag { return TagDESEC }

func (d *DESEC) Identity() any {
	return compositeKey(d.PA, rangeKey("hs", d.HS.pair()), rangeKey("fs", d.FS.pair()))
}

func (d *DESEC) Record() render.Record {
	return desecLayout.Of(d.PA, d.HS.pair(), d.FS.pair(), d.TH, d.T11, d.T12, d.T21, d.T22, d.X, d.Y, d.Z)
}

func desecPart(st shelldeck.Statement) string { return st.(*DESEC).PA }

func desecRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "DESEC-FIELD-001", Tag: TagDESEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.Required("pa", func(d *DESEC) bool { return d.PA != "" }),
				rules.MaxLen("pa", 8, func(d *DESEC) string { return d.PA }),
				rules.Ordered("fs", func(d *DESEC) *[2]int { return d.FS.pair() }),
				rules.Ordered("hs", func(d *DESEC) *[2]int { return d.HS.pair() }),
				rules.Positive([]string{"th"}, func(d *DESEC) []*float64 { return []*float64{d.TH} }),
			)),
		},
		{
			ID: "DESEC-PA-REF-001", Tag: TagDESEC, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.PartExists("pa", TagSHSEC, func(d *DESEC) string { return d.PA })),
		},
	}
}
