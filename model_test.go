package shelldeck_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	shelldeck "github.com/reoring/shelldeck"
)

func TestAdd_Unroutable(t *testing.T) {
	m := newTestModel()
	err := m.Add(stray{})
	if !errors.Is(err, shelldeck.ErrUnroutable) {
		t.Fatalf("expected ErrUnroutable, got %v", err)
	}
	var ue *shelldeck.UnroutableError
	if !errors.As(err, &ue) || ue.Tag != "STRAY" {
		t.Fatalf("expected UnroutableError for STRAY, got %#v", err)
	}
}

func TestAdd_FailureStoresNothing(t *testing.T) {
	m := newTestModel()
	err := m.Add(&part{ID: 1, Size: -1})
	if !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	iss, ok := shelldeck.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Rule != "PART-SIZE" || iss[0].Location != "PART[1].sz" {
		t.Fatalf("unexpected issues %v", iss)
	}
	if _, ok := m.Lookup(tagPart, 1); ok {
		t.Fatalf("rejected statement was stored")
	}
	if err := m.Add(&part{ID: 1, Size: 2}); err != nil {
		t.Fatalf("key should still be free: %v", err)
	}
}

func TestAdd_Duplicate(t *testing.T) {
	for _, level := range []shelldeck.Level{shelldeck.LevelNormal, shelldeck.LevelDisabled} {
		m := newTestModel(shelldeck.WithLevel(level))
		if err := m.Add(&part{ID: 7}); err != nil {
			t.Fatalf("%s: %v", level, err)
		}
		err := m.Add(&part{ID: "7.0"})
		if !errors.Is(err, shelldeck.ErrDuplicateIdentifier) {
			t.Fatalf("%s: expected duplicate, got %v", level, err)
		}
	}
}

func TestAdd_CrossObjectModes(t *testing.T) {
	// Immediate: the missing part is reported on add.
	m := newTestModel()
	if err := m.Add(&link{Name: "L1", To: 5}); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected reference failure on add, got %v", err)
	}

	// Cross-object off: the add succeeds and finalize decides.
	m = newTestModel(shelldeck.WithCrossObject(false))
	if err := m.Add(&link{Name: "L1", To: 5}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := m.Finalize(); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected finalize failure, got %v", err)
	}
	if err := m.Add(&part{ID: 5}); err != nil {
		t.Fatalf("add part: %v", err)
	}
	if _, err := m.Finalize(); err != nil {
		t.Fatalf("finalize after fix: %v", err)
	}

	// AddValidate runs instance rules but leaves model rules to finalize
	// while cross-object checks are off.
	m = newTestModel(shelldeck.WithCrossObject(false))
	if err := m.AddWith(&link{Name: "L1", To: 5}, shelldeck.AddValidate); err != nil {
		t.Fatalf("AddValidate ran model rules with cross-object off: %v", err)
	}
	if err := m.AddWith(&part{ID: 1, Size: -1}, shelldeck.AddValidate); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected instance failure on AddValidate, got %v", err)
	}
	if _, err := m.Finalize(); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected finalize to catch the link, got %v", err)
	}

	// With cross-object on AddValidate checks the reference at once.
	m = newTestModel()
	if err := m.AddWith(&link{Name: "L1", To: 5}, shelldeck.AddValidate); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("expected AddValidate failure, got %v", err)
	}

	// A disabled level runs nothing, whatever the mode.
	m = newTestModel(shelldeck.WithLevel(shelldeck.LevelDisabled))
	if err := m.AddWith(&part{ID: 1, Size: -1}, shelldeck.AddValidate); err != nil {
		t.Fatalf("AddValidate at disabled level: %v", err)
	}
}

func TestAdd_DeferredCheckedAtFinalize(t *testing.T) {
	m := newTestModel()
	for _, s := range []shelldeck.Statement{&part{ID: 1, Size: -3}, &link{Name: "L", To: 9}} {
		if err := m.AddWith(s, shelldeck.AddDeferred); err != nil {
			t.Fatalf("deferred add failed: %v", err)
		}
	}
	_, err := m.Finalize()
	iss, _ := shelldeck.AsIssues(err)
	var rules []string
	for _, it := range iss {
		rules = append(rules, it.Rule)
	}
	if diff := cmp.Diff([]string{"PART-SIZE", "LINK-REF"}, rules); diff != "" {
		t.Fatalf("deferred finalize issues mismatch (-want +got):\n%s", diff)
	}
	if m.State() != shelldeck.StateBuilding {
		t.Fatalf("failed finalize changed state to %s", m.State())
	}
}

func TestAdd_DisabledNeverFails(t *testing.T) {
	m := newTestModel(shelldeck.WithLevel(shelldeck.LevelDisabled))
	if err := m.AddAll(&part{ID: 1, Size: -1}, &link{Name: "L", To: 42}); err != nil {
		t.Fatalf("disabled add failed: %v", err)
	}
	if _, err := m.Finalize(); err != nil {
		t.Fatalf("disabled finalize failed: %v", err)
	}
	if m.State() != shelldeck.StateFinalized {
		t.Fatalf("state=%s", m.State())
	}
}

func TestWithoutValidation_Restores(t *testing.T) {
	m := newTestModel()
	err := m.WithoutValidation(func() error {
		if m.Level() != shelldeck.LevelDisabled {
			t.Fatalf("level inside=%s", m.Level())
		}
		if err := m.Add(&part{ID: 1, Size: -1}); err != nil {
			return err
		}
		return errors.New("stop")
	})
	if err == nil || err.Error() != "stop" {
		t.Fatalf("callback error not returned: %v", err)
	}
	if m.Level() != shelldeck.LevelNormal {
		t.Fatalf("level not restored: %s", m.Level())
	}
	// The statement added while suspended is checked at finalize.
	_, err = m.Finalize()
	iss, _ := shelldeck.AsIssues(err)
	if len(iss) != 1 || iss[0].Rule != "PART-SIZE" {
		t.Fatalf("suspended add not checked at finalize: %v", err)
	}

	func() {
		defer func() { _ = recover() }()
		_ = m.WithoutValidation(func() error { panic("boom") })
	}()
	if m.Level() != shelldeck.LevelNormal {
		t.Fatalf("level not restored after panic: %s", m.Level())
	}
}

func TestFinalize_DisabledPassIsNotReused(t *testing.T) {
	m := newTestModel()
	if err := m.AddWith(&link{Name: "L1", To: 5}, shelldeck.AddDeferred); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := m.WithoutValidation(func() error {
		_, err := m.Finalize()
		return err
	})
	if err != nil {
		t.Fatalf("disabled finalize: %v", err)
	}
	if m.State() != shelldeck.StateFinalized {
		t.Fatalf("state=%s", m.State())
	}
	// Back at normal level the unresolved link must block output.
	if _, err := m.Render(); !errors.Is(err, shelldeck.ErrValidationFailed) {
		t.Fatalf("render wrote an unvalidated deck: %v", err)
	}
	if m.State() != shelldeck.StateBuilding {
		t.Fatalf("failed finalize left state %s", m.State())
	}
}

func TestFinalize_RaisedLevelRunsStrictRules(t *testing.T) {
	m := newTestModel()
	if err := m.Add(&note{Text: ""}); err != nil {
		t.Fatalf("strict-only rule ran at normal level: %v", err)
	}
	if _, err := m.Finalize(); err != nil {
		t.Fatalf("normal finalize: %v", err)
	}
	m.Settings().SetLevel(shelldeck.LevelStrict)
	_, err := m.Finalize()
	iss, _ := shelldeck.AsIssues(err)
	if len(iss) != 1 || iss[0].Rule != "NOTE-TEXT" {
		t.Fatalf("strict finalize after a normal pass: %v", err)
	}
	// Lowering the level again reuses nothing stale: the normal pass is fresh.
	m.Settings().SetLevel(shelldeck.LevelNormal)
	if _, err := m.Finalize(); err != nil {
		t.Fatalf("normal finalize: %v", err)
	}
	if warn, err := m.Finalize(); err != nil || warn != nil {
		t.Fatalf("repeated finalize: %v %v", warn, err)
	}
}

func TestFinalize_RuleControlChangeRevalidates(t *testing.T) {
	m := newTestModel()
	m.Settings().DisableRule("PART-SIZE")
	if err := m.Add(&part{ID: 1, Size: -1}); err != nil {
		t.Fatalf("disabled rule ran: %v", err)
	}
	if _, err := m.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	m.Settings().EnableRule("PART-SIZE")
	_, err := m.Finalize()
	iss, _ := shelldeck.AsIssues(err)
	if len(iss) != 1 || iss[0].Rule != "PART-SIZE" {
		t.Fatalf("re-enabled rule not applied at finalize: %v", err)
	}
}

func TestModel_RuleSeverityFromConfig(t *testing.T) {
	cfg := shelldeck.DefaultConfig()
	cfg.RuleSeverity = map[string]shelldeck.Severity{"LINK-REF": shelldeck.SeverityWarn}
	cfg.DisabledRules = []string{"PART-SIZE"}
	m := newTestModel(shelldeck.WithConfig(cfg))
	if err := m.AddAll(&part{ID: 1, Size: -1}, &link{Name: "L1", To: 9}); err != nil {
		t.Fatalf("add: %v", err)
	}
	warn := m.Warnings()
	if len(warn) != 1 || warn[0].Rule != "LINK-REF" || warn[0].Severity != shelldeck.SeverityWarn {
		t.Fatalf("downgraded rule should warn: %v", warn)
	}
	if _, err := m.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestSettings_RuleControls(t *testing.T) {
	s := shelldeck.NewSettings(shelldeck.LevelNormal)
	if !s.RuleEnabled("ANY") {
		t.Fatalf("rules start enabled")
	}
	s.DisableRule("ANY")
	if s.RuleEnabled("ANY") {
		t.Fatalf("rule still enabled")
	}
	s.EnableRule("ANY")
	if !s.RuleEnabled("ANY") {
		t.Fatalf("rule not re-enabled")
	}
	s.SetRuleSeverity("ANY", shelldeck.SeverityInfo)
	if sev, ok := s.RuleSeverity("ANY"); !ok || sev != shelldeck.SeverityInfo {
		t.Fatalf("override = %s, %v", sev, ok)
	}
	s.SetRuleSeverity("ANY", shelldeck.SeverityUnset)
	if _, ok := s.RuleSeverity("ANY"); ok {
		t.Fatalf("override not cleared")
	}
}

func TestSettings_Override(t *testing.T) {
	s := shelldeck.NewSettings(shelldeck.LevelStrict)
	restore := s.Override(shelldeck.LevelNormal)
	if s.Level() != shelldeck.LevelNormal {
		t.Fatalf("override not applied")
	}
	restore()
	s.SetLevel(shelldeck.LevelDisabled)
	restore()
	if s.Level() != shelldeck.LevelDisabled {
		t.Fatalf("restore ran twice")
	}
}

func TestFinalize_WarningsAndIdempotence(t *testing.T) {
	m := newTestModel(shelldeck.WithCrossObject(false))
	for i := 1; i <= 3; i++ {
		if err := m.Add(&part{ID: i, Group: "A"}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	// PART-GROUP warns on the third add.
	if got := len(m.Warnings()); got != 1 {
		t.Fatalf("add warnings=%d", got)
	}
	warn, err := m.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if len(warn) != 0 {
		t.Fatalf("finalize ran container rules on checked entries: %v", warn)
	}
	if m.State() != shelldeck.StateFinalized {
		t.Fatalf("state=%s", m.State())
	}
	if warn, err := m.Finalize(); err != nil || warn != nil {
		t.Fatalf("second finalize: %v %v", warn, err)
	}
	// Validate is a full audit and sees all three crowded parts.
	if got := len(m.Validate().Warnings()); got != 3 {
		t.Fatalf("audit warnings=%d", got)
	}
}

func TestRender_CatalogOrderAndSeal(t *testing.T) {
	m := newTestModel()
	err := m.AddAll(
		&link{Name: "L1", To: 2},
		&note{Text: "hello"},
		&note{Text: "world"},
		&part{ID: 2, Size: 1.5},
		&part{ID: 1, Group: "G"},
	)
	if err == nil {
		t.Fatalf("link before its part should fail with cross-object checks")
	}
	m = newTestModel()
	if err := m.AddAll(
		&note{Text: "hello"},
		&part{ID: 2, Size: 1.5},
		&part{ID: 1, Group: "G"},
		&link{Name: "L1", To: "2"},
		&note{Text: "world"},
	); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := m.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"NOTE hello",
		"NOTE world",
		"PART ID=2 SZ=1.5",
		"PART ID=1 GR=G",
		"LINK NM=L1 TO=2",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
	if m.State() != shelldeck.StateSerialized {
		t.Fatalf("state=%s", m.State())
	}
	if err := m.Add(&note{Text: "late"}); !errors.Is(err, shelldeck.ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}

func TestAddAll_WrapsIndex(t *testing.T) {
	m := newTestModel()
	err := m.AddAll(&part{ID: 1}, &part{ID: 1})
	if err == nil || !strings.HasPrefix(err.Error(), "statement 1 (PART): ") {
		t.Fatalf("unexpected error %v", err)
	}
	if !errors.Is(err, shelldeck.ErrDuplicateIdentifier) {
		t.Fatalf("wrapped error lost its identity: %v", err)
	}
}

func TestCounts(t *testing.T) {
	m := newTestModel()
	if err := m.AddAll(&part{ID: 1}, &part{ID: 2}, &note{Text: "x"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	want := map[shelldeck.Tag]int{tagPart: 2, tagNote: 1}
	if diff := cmp.Diff(want, m.Counts()); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}
