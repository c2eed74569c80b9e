package render_test

import (
	"strings"
	"testing"

	"github.com/reoring/shelldeck/render"
)

func ptr[T any](v T) *T { return &v }

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		prec int
		want string
	}{
		{1250.0, 6, "1250"},
		{0.0035, 6, "0.0035"},
		{0, 6, "0"},
		{-0.0, 6, "0"},
		{1e-9, 6, "0"},
		{-1e-9, 6, "0"},
		{1.11, 2, "1.11"},
		{2094e-6, 6, "0.002094"},
		{40000, 6, "40000"},
		{-1, 6, "-1"},
		{0.1234567, 4, "0.1235"},
	}
	for _, c := range cases {
		if got := render.FormatFloat(c.in, c.prec); got != c.want {
			t.Fatalf("FormatFloat(%v,%d)=%q want %q", c.in, c.prec, got, c.want)
		}
	}
}

func TestRender_FieldKinds(t *testing.T) {
	l := render.NewLayout("SHAXE",
		render.Field{Key: "PA", Kind: render.KindString},
		render.Field{Key: "X1", Kind: render.KindTriple},
		render.Field{Key: "AL", Kind: render.KindFloat, Default: 0.0},
		render.Field{Key: "SY", Kind: render.KindString, Default: "R"},
		render.Field{Key: "FS", Kind: render.KindPair},
		render.Field{Key: "HS", Kind: render.KindPair, Join: render.JoinComma},
		render.Field{Key: "PRI", Kind: render.KindFlag},
		render.Field{Key: "ID", Kind: render.KindInt},
	)
	got := l.Line("A1", &[3]float64{1, 0, 0}, 0.0, "R", &[2]int{1, 10}, [2]int{2, 3}, true, 7)
	want := "SHAXE PA=A1 X1=1,0,0 FS=1-10 HS=2,3 PRI= ID=7"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	got = l.Line("A1", nil, ptr(12.5), "L", (*[2]int)(nil), nil, false, nil)
	want = "SHAXE PA=A1 AL=12.5 SY=L"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRender_SpanCollapsesEqualBounds(t *testing.T) {
	l := render.NewLayout("RELOC",
		render.Field{Key: "ID", Kind: render.KindString},
		render.Field{Key: "RT", Kind: render.KindPair, Join: render.JoinSpan},
	)
	if got := l.Line("B1", [2]int{101, 101}); got != "RELOC ID=B1 RT=101" {
		t.Fatalf("got %q", got)
	}
	if got := l.Line("X11", [2]int{16101, 20101}); got != "RELOC ID=X11 RT=16101-20101" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_IntegersKeepNoDecimalPoint(t *testing.T) {
	l := render.NewLayout("CMPEC",
		render.Field{Key: "ID", Kind: render.KindInt},
		render.Field{Key: "RH", Kind: render.KindFloat},
	)
	if got := l.Line(2, 1250.0); got != "CMPEC ID=2 RH=1250" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_CommentOnFinalLineOnly(t *testing.T) {
	l := render.NewLayout("BASCO",
		render.Field{Key: "ID", Kind: render.KindInt},
		render.Field{Key: "TXT", Kind: render.KindString, Tail: true},
	)
	var group []string
	for i := 1; i <= 30; i++ {
		group = append(group, "LF=1 ELC="+strings.Repeat("9", 3))
	}
	out := render.Render(render.Record{Layout: l, Values: []any{101, "wind"}, Group: group, Comment: "note"}, 60)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", out)
	}
	for i, ln := range lines {
		if !strings.HasPrefix(ln, "BASCO ID=101 ") {
			t.Fatalf("line %d lacks header: %q", i, ln)
		}
		if len(ln) > 60 && !strings.HasSuffix(ln, "% note") {
			t.Fatalf("line %d over budget: %q", i, ln)
		}
		hasComment := strings.Contains(ln, "% note")
		if hasComment != (i == len(lines)-1) {
			t.Fatalf("comment placement wrong on line %d: %q", i, ln)
		}
	}
	if !strings.Contains(lines[len(lines)-1], "TXT=wind") {
		t.Fatalf("tail missing from last line: %q", lines[len(lines)-1])
	}
	if strings.Count(out, "TXT=") != 1 {
		t.Fatalf("tail repeated: %q", out)
	}
}

func TestPack_Greedy(t *testing.T) {
	items := []string{"aaaa", "bbbb", "cccc", "dddd"}
	got := render.Pack("H", items, 11)
	want := []string{"H aaaa bbbb", "H cccc dddd"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", got, want)
	}
	// an item longer than the budget still gets its own line
	got = render.Pack("H", []string{"xxxxxxxxxxxxxxxx"}, 5)
	if len(got) != 1 || got[0] != "H xxxxxxxxxxxxxxxx" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_ContractViolationsPanic(t *testing.T) {
	l := render.NewLayout("X", render.Field{Key: "A", Kind: render.KindInt})
	mustPanic(t, func() { l.Line(1, 2) })
	mustPanic(t, func() { l.Line("one") })
	mustPanic(t, func() { l.Line(1.5) })
	mustPanic(t, func() {
		render.NewLayout("X", render.Field{Key: "A", Kind: render.KindInt}, render.Field{Key: "A", Kind: render.KindInt})
	})
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}
