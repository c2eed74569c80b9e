package statements

import (
	"fmt"
	"strings"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const (
	TagRMPEC shelldeck.Tag = "RMPEC"
	TagRMPNS shelldeck.Tag = "RMPNS"
)

// RebarMaterial holds the properties shared by the rebar material property
// sets. RMPEC follows EN 1992, RMPNS follows NS 3473; RETYP.MP may reference
// either.
type RebarMaterial struct {
	ID  int      `yaml:"id"`
	GR  *float64 `yaml:"gr"`
	ESK *float64 `yaml:"esk"`
	FYK *float64 `yaml:"fyk"`
	FSK *float64 `yaml:"fsk"`
	DEN *float64 `yaml:"den"`
	MFU *float64 `yaml:"mfu"`
	EPU *float64 `yaml:"epu"`
	MFA *float64 `yaml:"mfa"`
	EPA *float64 `yaml:"epa"`
	MFS *float64 `yaml:"mfs"`
	EPS *float64 `yaml:"eps"`
}

type RMPEC struct {
	RebarMaterial `yaml:",inline"`
}

type RMPNS struct {
	RebarMaterial `yaml:",inline"`
	MFF           *float64 `yaml:"mff"`
	CCF           *float64 `yaml:"ccf"`
}

func rebarFields(extra ...render.Field) []render.Field {
	f := []render.Field{
		{Key: "ID", Kind: render.KindInt},
		{Key: "GR", Kind: render.KindFloat},
		{Key: "ESK", Kind: render.KindFloat},
		{Key: "FYK", Kind: render.KindFloat},
		{Key: "FSK", Kind: render.KindFloat},
		{Key: "DEN", Kind: render.KindFloat},
		{Key: "MFU", Kind: render.KindFloat},
		{Key: "EPU", Kind: render.KindFloat},
		{Key: "MFA", Kind: render.KindFloat},
		{Key: "EPA", Kind: render.KindFloat},
		{Key: "MFS", Kind: render.KindFloat},
		{Key: "EPS", Kind: render.KindFloat},
	}
	return append(f, extra...)
}

var (
	rmpecLayout = render.NewLayout("RMPEC", rebarFields()...)
	rmpnsLayout = render.NewLayout("RMPNS", rebarFields(
		render.Field{Key: "MFF", Kind: render.KindFloat},
		render.Field{Key: "CCF", Kind: render.KindFloat},
	)...)
)

func (m *RebarMaterial) values() []any {
	return []any{m.ID, m.GR, m.ESK, m.FYK, m.FSK, m.DEN, m.MFU, m.EPU, m.MFA, m.EPA, m.MFS, m.EPS}
}

func (*RMPEC) Tag() shelldeck.Tag { return TagRMPEC }
func (m *RMPEC) Identity() any    { return m.ID }

func (m *RMPEC) Record() render.Record {
	return render.Record{Layout: rmpecLayout, Values: m.values()}
}

func (*RMPNS) Tag() shelldeck.Tag { return TagRMPNS }
func (m *RMPNS) Identity() any    { return m.ID }

func (m *RMPNS) Record() render.Record {
	return render.Record{Layout: rmpnsLayout, Values: append(m.values(), m.MFF, m.CCF)}
}

func rebarMaterialChecks(tag shelldeck.Tag) shelldeck.Check {
	return func(ctx *shelldeck.Context, st shelldeck.Statement) shelldeck.Issues {
		var m *RebarMaterial
		switch x := st.(type) {
		case *RMPEC:
			m = &x.RebarMaterial
		case *RMPNS:
			m = &x.RebarMaterial
		default:
			return nil
		}
		var out shelldeck.Issues
		if m.ID < 1 || m.ID > 99999999 {
			out = append(out, ctx.Loc().Field("id").Issue(shelldeck.CodeOutOfRange,
				rules.Message(shelldeck.CodeOutOfRange, "field", "ID", "min", 1, "max", 99999999, "got", m.ID)))
		}
		names := []string{"gr", "esk", "fyk", "fsk", "den", "mfu", "mfa", "mfs"}
		for i, v := range []*float64{m.GR, m.ESK, m.FYK, m.FSK, m.DEN, m.MFU, m.MFA, m.MFS} {
			if v != nil && *v <= 0 {
				out = append(out, ctx.Loc().Field(names[i]).Issue(shelldeck.CodeOutOfRange,
					fmt.Sprintf("%s %s must be positive, got %v", tag, strings.ToUpper(names[i]), *v)))
			}
		}
		if m.FYK != nil && m.FSK != nil && *m.FSK < *m.FYK {
			out = append(out, ctx.Loc().Field("fsk").Issue(shelldeck.CodeOutOfRange,
				fmt.Sprintf("ultimate strength FSK=%v is below yield strength FYK=%v", *m.FSK, *m.FYK)))
		}
		return out
	}
}

func rmpecRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{ID: "RMPEC-PROP-001", Tag: TagRMPEC, Scope: shelldeck.ScopeInstance, Check: rebarMaterialChecks(TagRMPEC)},
		{ID: "RMPNS-PROP-001", Tag: TagRMPNS, Scope: shelldeck.ScopeInstance, Check: rebarMaterialChecks(TagRMPNS)},
	}
}
