package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagHEADL shelldeck.Tag = "HEADL"

// HEADL is the deck heading line.
type HEADL struct {
	Text string `yaml:"text"`
}

var headlLayout = render.NewLayout("HEADL", render.Field{Kind: render.KindString})

func (*HEADL) Tag() shelldeck.Tag { return TagHEADL }
func (*HEADL) Identity() any      { return nil }

func (h *HEADL) Record() render.Record { return headlLayout.Of(h.Text) }

func headlRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "HEADL-TEXT-001", Tag: TagHEADL, Scope: shelldeck.ScopeInstance,
			Description: "heading text is required and at most 64 characters",
			Check: rules.Typed(rules.And(
				rules.Required("text", func(h *HEADL) bool { return h.Text != "" }),
				rules.MaxLen("text", 64, func(h *HEADL) string { return h.Text }),
			)),
		},
	}
}
