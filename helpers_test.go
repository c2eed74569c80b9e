package shelldeck_test

import (
	"fmt"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
)

const (
	tagPart shelldeck.Tag = "PART"
	tagLink shelldeck.Tag = "LINK"
	tagNote shelldeck.Tag = "NOTE"
)

// part is a numerically identified statement with a group name.
type part struct {
	ID    any
	Group string
	Size  float64
}

// link references a part by id.
type link struct {
	Name string
	To   any
}

// note has no identity.
type note struct{ Text string }

var (
	partLayout = render.NewLayout("PART",
		render.Field{Key: "ID", Kind: render.KindString},
		render.Field{Key: "GR", Kind: render.KindString},
		render.Field{Key: "SZ", Kind: render.KindFloat, Default: 0.0},
	)
	linkLayout = render.NewLayout("LINK",
		render.Field{Key: "NM", Kind: render.KindString},
		render.Field{Key: "TO", Kind: render.KindString},
	)
	noteLayout = render.NewLayout("NOTE", render.Field{Kind: render.KindString})
)

func (*part) Tag() shelldeck.Tag      { return tagPart }
func (p *part) Identity() any         { return p.ID }
func (p *part) Record() render.Record { return partLayout.Of(fmt.Sprint(p.ID), p.Group, p.Size) }

func (*link) Tag() shelldeck.Tag      { return tagLink }
func (l *link) Identity() any         { return l.Name }
func (l *link) Record() render.Record { return linkLayout.Of(l.Name, fmt.Sprint(l.To)) }

func (*note) Tag() shelldeck.Tag      { return tagNote }
func (*note) Identity() any           { return nil }
func (n *note) Record() render.Record { return noteLayout.Of(n.Text) }

// stray has no container in the test catalog.
type stray struct{}

func (stray) Tag() shelldeck.Tag    { return "STRAY" }
func (stray) Identity() any         { return 1 }
func (stray) Record() render.Record { return render.Record{} }

func testCatalog() *shelldeck.Catalog {
	return shelldeck.MustCatalog(
		shelldeck.TypeSpec{Tag: tagNote, ID: shelldeck.IDSequence},
		shelldeck.TypeSpec{Tag: tagPart, ID: shelldeck.IDInteger, Secondary: func(s shelldeck.Statement) string { return s.(*part).Group }},
		shelldeck.TypeSpec{Tag: tagLink, ID: shelldeck.IDAlnum(8)},
	)
}

// testRegistry: sizes must be non-negative (instance), groups hold at most
// two parts (container, warn), links must point at a part (model), and in
// strict mode notes must not be empty.
func testRegistry() *shelldeck.Registry {
	reg := shelldeck.NewRegistry()
	reg.MustRegister(
		shelldeck.Rule{ID: "PART-SIZE", Tag: tagPart, Scope: shelldeck.ScopeInstance,
			Check: func(ctx *shelldeck.Context, s shelldeck.Statement) shelldeck.Issues {
				if s.(*part).Size < 0 {
					return shelldeck.Issues{ctx.Loc().Field("sz").Issue(shelldeck.CodeOutOfRange, "size must not be negative")}
				}
				return nil
			}},
		shelldeck.Rule{ID: "PART-GROUP", Tag: tagPart, Scope: shelldeck.ScopeContainer, Severity: shelldeck.SeverityWarn,
			Check: func(ctx *shelldeck.Context, s shelldeck.Statement) shelldeck.Issues {
				n := 0
				for _, p := range ctx.Peers() {
					if p.(*part).Group == s.(*part).Group {
						n++
					}
				}
				if n >= 2 {
					return shelldeck.Issues{ctx.Issue(shelldeck.CodeDuplicate, "group is crowded")}
				}
				return nil
			}},
		shelldeck.Rule{ID: "LINK-REF", Tag: tagLink, Scope: shelldeck.ScopeModel,
			Check: func(ctx *shelldeck.Context, s shelldeck.Statement) shelldeck.Issues {
				if ctx.Contains(tagPart, s.(*link).To) {
					return nil
				}
				return shelldeck.Issues{ctx.Loc().Field("to").Issue(shelldeck.CodeReferenceMissing, fmt.Sprintf("part %v is not defined", s.(*link).To))}
			}},
		shelldeck.Rule{ID: "NOTE-TEXT", Tag: tagNote, Scope: shelldeck.ScopeInstance, StrictOnly: true,
			Check: func(ctx *shelldeck.Context, s shelldeck.Statement) shelldeck.Issues {
				if s.(*note).Text == "" {
					return shelldeck.Issues{ctx.Issue(shelldeck.CodeRequired, "note is empty")}
				}
				return nil
			}},
	)
	return reg
}

func newTestModel(opts ...shelldeck.Option) *shelldeck.Model {
	base := []shelldeck.Option{shelldeck.WithRegistry(testRegistry())}
	return shelldeck.New(testCatalog(), append(base, opts...)...)
}
