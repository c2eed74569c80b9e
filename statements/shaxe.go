package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagSHAXE shelldeck.Tag = "SHAXE"

// SHAXE sets the local axes of a part. Exactly one mode is used:
// X1/X2/X3 explicit axes, XP/XA point and approximate 1-axis, or XC/XA
// polar centre and shell normal.
type SHAXE struct {
	PA string      `yaml:"pa"`
	X1 *[3]float64 `yaml:"x1"`
	X2 *[3]float64 `yaml:"x2"`
	X3 *[3]float64 `yaml:"x3"`
	XP *[3]float64 `yaml:"xp"`
	XA *[3]float64 `yaml:"xa"`
	XC *[3]float64 `yaml:"xc"`
	SY string      `yaml:"sy"` // R or L; R is the default
	AL *float64    `yaml:"al"`
	FS *[2]int     `yaml:"fs"`
	HS *[2]int     `yaml:"hs"`
}

var shaxeLayout = render.NewLayout("SHAXE",
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "X1", Kind: render.KindTriple},
	render.Field{Key: "X2", Kind: render.KindTriple},
	render.Field{Key: "X3", Kind: render.KindTriple},
	render.Field{Key: "XP", Kind: render.KindTriple},
	render.Field{Key: "XC", Kind: render.KindTriple},
	render.Field{Key: "XA", Kind: render.KindTriple},
	render.Field{Key: "SY", Kind: render.KindString, Default: "R"},
	render.Field{Key: "AL", Kind: render.KindFloat, Default: 0.0},
	render.Field{Key: "FS", Kind: render.KindPair},
	render.Field{Key: "HS", Kind: render.KindPair},
)

func (*SHAXE) Tag() shelldeck.Tag { return TagSHAXE }

func (s *SHAXE) Identity() any {
	return compositeKey(s.PA, rangeKey("fs", s.FS), rangeKey("hs", s.HS))
}

func (s *SHAXE) Record() render.Record {
	return shaxeLayout.Of(s.PA, s.X1, s.X2, s.X3, s.XP, s.XC, s.XA, s.SY, s.AL, s.FS, s.HS)
}

func shaxeRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "SHAXE-MODE-001", Tag: TagSHAXE, Scope: shelldeck.ScopeInstance,
			Description: "exactly one axis definition mode",
			Check: rules.Typed(rules.ExactlyOne(
				[]string{"X1/X2/X3", "XP/XA", "XC/XA"},
				func(s *SHAXE) []bool {
					return []bool{
						s.X1 != nil && s.X2 != nil && s.X3 != nil,
						s.XP != nil && s.XA != nil,
						s.XC != nil && s.XA != nil,
					}
				},
			)),
		},
		{
			ID: "SHAXE-MODE-002", Tag: TagSHAXE, Scope: shelldeck.ScopeInstance,
			Description: "explicit axes are not mixed with point or centre modes",
			Check: rules.Typed(func(ctx *shelldeck.Context, s *SHAXE) shelldeck.Issues {
				explicit := s.X1 != nil || s.X2 != nil || s.X3 != nil
				if explicit && (s.XP != nil || s.XC != nil || s.XA != nil) || s.XP != nil && s.XC != nil {
					return shelldeck.Issues{ctx.Issue(shelldeck.CodeExclusive, "axis definition modes are mixed")}
				}
				return nil
			}),
		},
		{
			ID: "SHAXE-FIELD-001", Tag: TagSHAXE, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.Required("pa", func(s *SHAXE) bool { return s.PA != "" }),
				rules.MaxLen("pa", 8, func(s *SHAXE) string { return s.PA }),
				rules.OneOf("sy", []string{"R", "L"}, func(s *SHAXE) string { return s.SY }),
				rules.Ordered("fs", func(s *SHAXE) *[2]int { return s.FS }),
				rules.Ordered("hs", func(s *SHAXE) *[2]int { return s.HS }),
			)),
		},
		{
			ID: "SHAXE-PA-REF-001", Tag: TagSHAXE, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.PartExists("pa", TagSHSEC, func(s *SHAXE) string { return s.PA })),
		},
	}
}
