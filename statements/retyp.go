package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagRETYP shelldeck.Tag = "RETYP"

// RETYP defines a rebar layer type, referenced from RELOC. The layer is
// given either by area (AR) or by bar count and diameter (NR and DI).
type RETYP struct {
	ID      int      `yaml:"id"`
	MP      *int     `yaml:"mp"` // rebar material, RMPEC or RMPNS
	LB      string   `yaml:"lb"`
	AR      *float64 `yaml:"ar"`
	NR      *int     `yaml:"nr"`
	DI      *float64 `yaml:"di"`
	CC      *float64 `yaml:"cc"`
	C2      *float64 `yaml:"c2"`
	TH      *float64 `yaml:"th"`
	OS      *float64 `yaml:"os"`
	BC      *float64 `yaml:"bc"`
	Comment string   `yaml:"comment"`
}

var retypLayout = render.NewLayout("RETYP",
	render.Field{Key: "ID", Kind: render.KindInt},
	render.Field{Key: "MP", Kind: render.KindInt},
	render.Field{Key: "LB", Kind: render.KindString},
	render.Field{Key: "AR", Kind: render.KindFloat},
	render.Field{Key: "NR", Kind: render.KindInt},
	render.Field{Key: "DI", Kind: render.KindFloat},
	render.Field{Key: "CC", Kind: render.KindFloat},
	render.Field{Key: "C2", Kind: render.KindFloat},
	render.Field{Key: "TH", Kind: render.KindFloat},
	render.Field{Key: "OS", Kind: render.KindFloat},
	render.Field{Key: "BC", Kind: render.KindFloat},
)

func (*RETYP) Tag() shelldeck.Tag { return TagRETYP }
func (r *RETYP) Identity() any    { return r.ID }

func (r *RETYP) Record() render.Record {
	rec := retypLayout.Of(r.ID, r.MP, r.LB, r.AR, r.NR, r.DI, r.CC, r.C2, r.TH, r.OS, r.BC)
	rec.Comment = r.Comment
	return rec
}

func retypRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "RETYP-ID-001", Tag: TagRETYP, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.IntRange("id", 1, 99999999, func(r *RETYP) *int { return &r.ID }),
				rules.MaxLen("lb", 16, func(r *RETYP) string { return r.LB }),
			)),
		},
		{
			ID: "RETYP-METHOD-001", Tag: TagRETYP, Scope: shelldeck.ScopeInstance,
			Description: "AR, or NR with DI",
			Check: rules.Typed(func(ctx *shelldeck.Context, r *RETYP) shelldeck.Issues {
				if r.AR != nil || r.NR != nil && r.DI != nil {
					return nil
				}
				it := ctx.Issue(shelldeck.CodeRequired, "either AR (method 1) or NR and DI (method 2) must be given")
				it.Hint = "set AR, or both NR and DI"
				return shelldeck.Issues{it}
			}),
		},
		{
			ID: "RETYP-VALUE-001", Tag: TagRETYP, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.Positive(
				[]string{"ar", "di", "cc", "c2", "th", "bc"},
				func(r *RETYP) []*float64 { return []*float64{r.AR, r.DI, r.CC, r.C2, r.TH, r.BC} },
			)),
		},
		{
			ID: "RETYP-MP-REF-001", Tag: TagRETYP, Scope: shelldeck.ScopeModel,
			Description: "MP references a rebar material",
			Check: rules.Typed(rules.Exists("mp", []shelldeck.Tag{TagRMPEC, TagRMPNS}, func(r *RETYP) []any {
				if r.MP == nil {
					return nil
				}
				return []any{*r.MP}
			})),
		},
		{
			ID: "RETYP-USED-001", Tag: TagRETYP, Scope: shelldeck.ScopeModel, Severity: shelldeck.SeverityWarn, StrictOnly: true,
			Description: "every rebar type is placed by some RELOC",
			Check: rules.Typed(func(ctx *shelldeck.Context, r *RETYP) shelldeck.Issues {
				for _, st := range ctx.All(TagRELOC) {
					rt := st.(*RELOC).RT
					if r.ID >= rt[0] && r.ID <= rt[1] {
						return nil
					}
				}
				return shelldeck.Issues{ctx.Issue(shelldeck.CodeUnused,
					rules.Message(shelldeck.CodeUnused, "subject", ctx.Loc().String(), "by", "RELOC"))}
			}),
		},
	}
}
