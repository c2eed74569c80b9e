package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagSHSEC shelldeck.Tag = "SHSEC"

// SHSEC defines a shell section of a structural part. Its identity is the
// part name plus the section ranges; parts are found through the secondary
// index on PA.
type SHSEC struct {
	PA        string      `yaml:"pa"`
	SE        *int        `yaml:"se"`
	EL        *int        `yaml:"el"`
	XP        *[3]float64 `yaml:"xp"`
	ELSET     *int        `yaml:"elset"`
	ELSETNAME string      `yaml:"elsetname"`
	TE        *[2]int     `yaml:"te"`
	TD        *[3]float64 `yaml:"td"`
	XF        *[3]float64 `yaml:"xf"`
	XH        *[3]float64 `yaml:"xh"`
	FS        *[2]int     `yaml:"fs"`
	HS        *[2]int     `yaml:"hs"`
	NE        *int        `yaml:"ne"`
	ET        string      `yaml:"et"`
	NS        *int        `yaml:"ns"`
}

var shsecLayout = render.NewLayout("SHSEC",
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "SE", Kind: render.KindInt},
	render.Field{Key: "EL", Kind: render.KindInt},
	render.Field{Key: "XP", Kind: render.KindTriple},
	render.Field{Key: "ELSET", Kind: render.KindInt},
	render.Field{Key: "ELSETNAME", Kind: render.KindString},
	render.Field{Key: "TE", Kind: render.KindPair},
	render.Field{Key: "TD", Kind: render.KindTriple},
	render.Field{Key: "XF", Kind: render.KindTriple},
	render.Field{Key: "XH", Kind: render.KindTriple},
	render.Field{Key: "FS", Kind: render.KindPair},
	render.Field{Key: "HS", Kind: render.KindPair},
	render.Field{Key: "NE", Kind: render.KindInt},
	render.Field{Key: "ET", Kind: render.KindString},
	render.Field{Key: "NS", Kind: render.KindInt},
)

func (*SHSEC) Tag() shelldeck.Tag { return TagSHSEC }

func (s *SHSEC) Identity() any {
	return compositeKey(s.PA, rangeKey("hs", s.HS), rangeKey("fs", s.FS))
}

func (s *SHSEC) Record() render.Record {
	return shsecLayout.Of(s.PA, s.SE, s.EL, s.XP, s.ELSET, s.ELSETNAME, s.TE, s.TD, s.XF, s.XH, s.FS, s.HS, s.NE, s.ET, s.NS)
}

func shsecPart(st shelldeck.Statement) string { return st.(*SHSEC).PA }

func shsecRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "SHSEC-PA-001", Tag: TagSHSEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.Required("pa", func(s *SHSEC) bool { return s.PA != "" }),
				rules.MaxLen("pa", 8, func(s *SHSEC) string { return s.PA }),
			)),
		},
		{
			ID: "SHSEC-RANGE-001", Tag: TagSHSEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.Ordered("fs", func(s *SHSEC) *[2]int { return s.FS }),
				rules.Ordered("hs", func(s *SHSEC) *[2]int { return s.HS }),
				rules.Ordered("te", func(s *SHSEC) *[2]int { return s.TE }),
			)),
		},
		{
			ID: "SHSEC-NE-001", Tag: TagSHSEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.IntRange("ne", 1, 10, func(s *SHSEC) *int { return s.NE }),
				rules.OneOf("et", []string{"LI", "VS"}, func(s *SHSEC) string { return s.ET }),
			)),
		},
		{
			ID: "SHSEC-ELSET-001", Tag: TagSHSEC, Scope: shelldeck.ScopeContainer, Severity: shelldeck.SeverityWarn,
			Description: "an element group is assigned to one part only",
			Check: rules.Typed(func(ctx *shelldeck.Context, s *SHSEC) shelldeck.Issues {
				if s.ELSET == nil {
					return nil
				}
				for _, p := range ctx.Peers() {
					o := p.(*SHSEC)
					if o.ELSET != nil && *o.ELSET == *s.ELSET && o.PA != s.PA {
						return shelldeck.Issues{ctx.Loc().Field("elset").Issue(shelldeck.CodeDuplicate,
							rules.Message(shelldeck.CodeDuplicate, "field", "ELSET", "value", *s.ELSET, "other", o.PA))}
					}
				}
				return nil
			}),
		},
	}
}
