package rules_test

import (
	"testing"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

type beam struct {
	ID    int
	Name  string
	Span  *[2]int
	Depth *float64
	Ref   []any
	Part  string
}

var beamLayout = render.NewLayout("BEAM", render.Field{Key: "ID", Kind: render.KindInt})

func (*beam) Tag() shelldeck.Tag      { return "BEAM" }
func (b *beam) Identity() any         { return b.ID }
func (b *beam) Record() render.Record { return beamLayout.Of(b.ID) }

type wall struct{ Part string }

func (*wall) Tag() shelldeck.Tag      { return "WALL" }
func (w *wall) Identity() any         { return w.Part }
func (w *wall) Record() render.Record { return render.Record{} }

var (
	beamSpec = shelldeck.TypeSpec{Tag: "BEAM", ID: shelldeck.IDInteger}
	wallSpec = shelldeck.TypeSpec{Tag: "WALL", ID: shelldeck.IDComposite,
		Secondary: func(s shelldeck.Statement) string { return s.(*wall).Part }}
)

func fp(v float64) *float64 { return &v }

// ctxFor stores b (and the given walls) and returns a context for b.
func ctxFor(t *testing.T, b *beam, peers []*beam, walls ...*wall) *shelldeck.Context {
	t.Helper()
	beams := shelldeck.NewContainer(beamSpec)
	for _, p := range append(peers, b) {
		if err := beams.Add(p); err != nil {
			t.Fatalf("add beam: %v", err)
		}
	}
	ws := shelldeck.NewContainer(wallSpec)
	for _, w := range walls {
		if err := ws.Add(w); err != nil {
			t.Fatalf("add wall: %v", err)
		}
	}
	return shelldeck.NewContext(shelldeck.LevelNormal, b, beams, ws)
}

func codes(iss shelldeck.Issues) []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code + "@" + it.Location
	}
	return out
}

func TestFieldHelpers(t *testing.T) {
	b := &beam{ID: 1, Name: "TOO_LONG_NAME", Span: &[2]int{5, 2}, Depth: fp(-1)}
	fn := rules.And(
		rules.MaxLen("name", 8, func(b *beam) string { return b.Name }),
		rules.Required("part", func(b *beam) bool { return b.Part != "" }),
		rules.IntRange("id", 1, 10, func(b *beam) *int { return &b.ID }),
		rules.Ordered("span", func(b *beam) *[2]int { return b.Span }),
		rules.FloatRange("depth", 0, 2, func(b *beam) *float64 { return b.Depth }),
		rules.Positive([]string{"depth"}, func(b *beam) []*float64 { return []*float64{b.Depth} }),
	)
	got := codes(fn(ctxFor(t, b, nil), b))
	want := []string{
		"too_long@BEAM[1].name",
		"required@BEAM[1].part",
		"range_order@BEAM[1].span",
		"out_of_range@BEAM[1].depth",
		"out_of_range@BEAM[1].depth",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("issue %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestMessages(t *testing.T) {
	b := &beam{ID: 20}
	iss := rules.IntRange("id", 1, 10, func(b *beam) *int { return &b.ID })(ctxFor(t, b, nil), b)
	if len(iss) != 1 || iss[0].Message != "ID must be between 1 and 10, got 20" {
		t.Fatalf("unexpected %v", iss)
	}
	if iss[0].Params["max"] != 10 {
		t.Fatalf("params = %v", iss[0].Params)
	}
}

func TestOneOfAndExactlyOne(t *testing.T) {
	b := &beam{ID: 1, Name: "Q"}
	ctx := ctxFor(t, b, nil)
	oneOf := rules.OneOf("name", []string{"A", "B"}, func(b *beam) string { return b.Name })
	if iss := oneOf(ctx, b); len(iss) != 1 || iss[0].Message != "NAME must be one of A|B, got Q" {
		t.Fatalf("unexpected %v", iss)
	}
	if iss := oneOf(ctx, &beam{ID: 1}); len(iss) != 0 {
		t.Fatalf("empty value should pass: %v", iss)
	}
	modes := func(set ...bool) rules.Func[*beam] {
		return rules.ExactlyOne([]string{"a", "b", "c"}, func(*beam) []bool { return set })
	}
	if iss := modes(false, true, false)(ctx, b); len(iss) != 0 {
		t.Fatalf("one mode should pass: %v", iss)
	}
	for _, set := range [][]bool{{false, false, false}, {true, true, false}} {
		iss := modes(set...)(ctx, b)
		if len(iss) != 1 || iss[0].Code != shelldeck.CodeExclusive {
			t.Fatalf("%v: unexpected %v", set, iss)
		}
	}
}

func TestOrAndWhen(t *testing.T) {
	b := &beam{ID: 1}
	ctx := ctxFor(t, b, nil)
	fail := rules.Required("name", func(*beam) bool { return false })
	failTwice := rules.And(fail, fail)
	pass := rules.Func[*beam](func(*shelldeck.Context, *beam) shelldeck.Issues { return nil })

	if iss := rules.Or(failTwice, pass)(ctx, b); len(iss) != 0 {
		t.Fatalf("Or should pass when a branch passes: %v", iss)
	}
	if iss := rules.Or(failTwice, fail)(ctx, b); len(iss) != 1 {
		t.Fatalf("Or should keep the smallest failure: %v", iss)
	}
	if iss := rules.When(func(b *beam) bool { return b.ID > 5 }, fail)(ctx, b); len(iss) != 0 {
		t.Fatalf("When ran with a false predicate: %v", iss)
	}
	if iss := rules.When(func(b *beam) bool { return b.ID == 1 }, fail)(ctx, b); len(iss) != 1 {
		t.Fatalf("When skipped with a true predicate: %v", iss)
	}
}

func TestTyped(t *testing.T) {
	check := rules.Typed(rules.Required("name", func(*beam) bool { return false }))
	w := &wall{Part: "P"}
	if iss := check(shelldeck.NewContext(shelldeck.LevelNormal, w), w); iss != nil {
		t.Fatalf("other statement types must be ignored: %v", iss)
	}
	b := &beam{ID: 1}
	if iss := check(ctxFor(t, b, nil), b); len(iss) != 1 {
		t.Fatalf("expected an issue for beam: %v", iss)
	}
}

func TestExists(t *testing.T) {
	b := &beam{ID: 3, Ref: []any{1, "2", 9}}
	ctx := ctxFor(t, b, []*beam{{ID: 1}, {ID: 2}})
	iss := rules.Exists("ref", []shelldeck.Tag{"WALL", "BEAM"}, func(b *beam) []any { return b.Ref })(ctx, b)
	if len(iss) != 1 {
		t.Fatalf("expected one missing ref, got %v", iss)
	}
	it := iss[0]
	if it.Location != "BEAM[3].ref[2]" || it.Code != shelldeck.CodeReferenceMissing {
		t.Fatalf("unexpected %+v", it)
	}
	if it.Message != "REF references WALL/BEAM 9 which is not defined" || it.Hint == "" {
		t.Fatalf("message %q hint %q", it.Message, it.Hint)
	}
}

func TestPartExists(t *testing.T) {
	get := func(b *beam) string { return b.Part }
	b := &beam{ID: 1, Part: "SLAB"}
	if iss := rules.PartExists("part", "WALL", get)(ctxFor(t, b, nil, &wall{Part: "SLAB"}), b); len(iss) != 0 {
		t.Fatalf("part should be found: %v", iss)
	}
	b = &beam{ID: 1, Part: "ROOF"}
	if iss := rules.PartExists("part", "WALL", get)(ctxFor(t, b, nil, &wall{Part: "SLAB"}), b); len(iss) != 1 {
		t.Fatalf("missing part not reported: %v", iss)
	}
}

func TestUniqueBy(t *testing.T) {
	key := func(b *beam) string { return b.Name }
	b := &beam{ID: 2, Name: "X"}
	ctx := ctxFor(t, b, []*beam{{ID: 1, Name: "X"}})
	iss := rules.UniqueBy("name", key)(ctx, b)
	if len(iss) != 1 || iss[0].Message != "NAME X is already used by 1" {
		t.Fatalf("unexpected %v", iss)
	}
	b = &beam{ID: 2, Name: "Y"}
	if iss := rules.UniqueBy("name", key)(ctxFor(t, b, []*beam{{ID: 1, Name: "X"}}), b); len(iss) != 0 {
		t.Fatalf("unexpected %v", iss)
	}
}
