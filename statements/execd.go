package statements

import (
	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagEXECD shelldeck.Tag = "EXECD"

// EXECD starts execution. An empty DM renders as the bare "DM=" flag, which
// means no design.
type EXECD struct {
	DM string `yaml:"dm"` // V verify, S search, A area search
}

var (
	execdLayout     = render.NewLayout("EXECD", render.Field{Key: "DM", Kind: render.KindString})
	execdBareLayout = render.NewLayout("EXECD", render.Field{Key: "DM", Kind: render.KindFlag})
)

func (*EXECD) Tag() shelldeck.Tag { return TagEXECD }
func (*EXECD) Identity() any      { return nil }

func (e *EXECD) Record() render.Record {
	if e.DM == "" {
		return execdBareLayout.Of(true)
	}
	return execdLayout.Of(e.DM)
}

func execdRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "EXECD-DM-001", Tag: TagEXECD, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.OneOf("dm", []string{"V", "S", "A"}, func(e *EXECD) string { return e.DM })),
		},
		{
			ID: "EXECD-ONCE-001", Tag: TagEXECD, Scope: shelldeck.ScopeContainer,
			Description: "a deck has one execution directive",
			Check: func(ctx *shelldeck.Context, _ shelldeck.Statement) shelldeck.Issues {
				if len(ctx.Peers()) == 0 {
					return nil
				}
				return shelldeck.Issues{ctx.Issue(shelldeck.CodeDuplicate, "EXECD given more than once")}
			},
		},
	}
}
