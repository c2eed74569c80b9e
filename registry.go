package shelldeck

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/reoring/shelldeck/i18n"
)

// Check inspects one statement and returns its issues. Issues left without
// severity take the rule's severity; issues without location take the
// subject's.
type Check func(ctx *Context, s Statement) Issues

// Rule binds a check to a statement tag and scope.
type Rule struct {
	ID    string
	Tag   Tag
	Scope Scope
	// Severity applied to issues that do not set one; zero means error.
	Severity Severity
	// StrictOnly rules run only at LevelStrict.
	StrictOnly  bool
	Description string
	Check       Check
}

// Registry is an append-only table of rules keyed by (tag, scope). Populate
// it once at startup; execution order is registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	ids   map[string]struct{}
}

func NewRegistry() *Registry { return &Registry{ids: map[string]struct{}{}} }

// DefaultRegistry is used by models built without WithRegistry.
var DefaultRegistry = NewRegistry()

// Register appends a rule. Rules need an id, a tag and a check; ids are
// unique across the registry.
func (r *Registry) Register(rule Rule) error {
	var problems []string
	if rule.ID == "" {
		problems = append(problems, "missing rule id")
	}
	if rule.Tag == "" {
		problems = append(problems, "missing tag")
	}
	if rule.Check == nil {
		problems = append(problems, "missing check")
	}
	if len(problems) > 0 {
		return fmt.Errorf("rule %q: %s", rule.ID, strings.Join(problems, ", "))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ids[rule.ID]; dup {
		return fmt.Errorf("rule %q already registered", rule.ID)
	}
	slog.Debug("Registering rule", "id", rule.ID, "tag", rule.Tag, "scope", rule.Scope, "strict_only", rule.StrictOnly)
	r.ids[rule.ID] = struct{}{}
	r.rules = append(r.rules, rule)
	return nil
}

// MustRegister registers every rule and panics on the first failure.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// Rules returns the rules for (tag, scope) in registration order.
func (r *Registry) Rules(tag Tag, scope Scope) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Rule
	for _, rule := range r.rules {
		if rule.Tag == tag && rule.Scope == scope {
			out = append(out, rule)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Execute runs every applicable rule for s, scope by scope in the order
// given and rules in registration order. It never stops early: the result
// holds the issues of all rules, errors and warnings alike.
func (r *Registry) Execute(ctx *Context, s Statement, scopes ...Scope) Issues {
	if !ctx.Level.allows(false) {
		return nil
	}
	var out Issues
	for _, scope := range scopes {
		for _, rule := range r.Rules(s.Tag(), scope) {
			if !ctx.Level.allows(rule.StrictOnly) || !ctx.ruleEnabled(rule.ID) {
				continue
			}
			ctx.Scope = scope
			out = append(out, runRule(ctx, rule, s)...)
		}
	}
	return out
}

// runRule stamps rule id, severity and location on a copy of what the check
// returned, and turns a panic into an error issue so the rest of the pass
// still runs. A severity override from the settings wins over both the rule
// and the issue severity.
func runRule(ctx *Context, rule Rule, s Statement) (iss Issues) {
	defer func() {
		if p := recover(); p != nil {
			iss = Issues{{
				Location: ctx.Loc().String(),
				Code:     CodeRulePanic,
				Message:  i18n.T(CodeRulePanic, map[string]string{"rule": rule.ID, "error": fmt.Sprint(p)}),
				Severity: SeverityError,
				Rule:     rule.ID,
			}}
		}
	}()
	got := rule.Check(ctx, s)
	if len(got) == 0 {
		return nil
	}
	sev := rule.Severity
	if sev == SeverityUnset {
		sev = SeverityError
	}
	forced, override := ctx.ruleSeverity(rule.ID)
	out := make(Issues, len(got))
	for i, it := range got {
		if it.Rule == "" {
			it.Rule = rule.ID
		}
		switch {
		case override:
			it.Severity = forced
		case it.Severity == SeverityUnset:
			it.Severity = sev
		}
		if it.Location == "" {
			it.Location = ctx.Loc().String()
		}
		params := make(map[string]any, len(it.Params)+1)
		maps.Copy(params, it.Params)
		params["rule"] = rule.ID
		it.Params = params
		out[i] = it
	}
	return out
}
