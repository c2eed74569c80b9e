package shelldeck

import (
	"errors"
	"fmt"
	"io"

	"github.com/reoring/shelldeck/render"
	"gopkg.in/yaml.v3"
)

// Config is the construction-time configuration of a Model.
type Config struct {
	Level Level `yaml:"level" json:"level"`
	// CrossObject runs model-scope rules on every add. When false they run
	// only at finalize.
	CrossObject bool `yaml:"cross_object" json:"cross_object"`
	// LineWidth is the column budget for repeating groups.
	LineWidth int `yaml:"line_width" json:"line_width"`
	// DisabledRules lists rule ids that never run.
	DisabledRules []string `yaml:"disabled_rules,omitempty" json:"disabled_rules,omitempty"`
	// RuleSeverity forces the severity of the issues of individual rules.
	RuleSeverity map[string]Severity `yaml:"rule_severity,omitempty" json:"rule_severity,omitempty"`
}

// apply copies the rule controls of c into s.
func (c Config) apply(s *Settings) {
	for _, id := range c.DisabledRules {
		s.DisableRule(id)
	}
	for id, sev := range c.RuleSeverity {
		s.SetRuleSeverity(id, sev)
	}
}

// DefaultConfig: normal level, cross-object checks on add, 100 columns.
func DefaultConfig() Config {
	return Config{Level: LevelNormal, CrossObject: true, LineWidth: render.DefaultWidth}
}

// LoadConfig decodes a YAML document over DefaultConfig. Unknown keys are
// rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.LineWidth < 0 {
		return Config{}, fmt.Errorf("config: line_width must not be negative, got %d", cfg.LineWidth)
	}
	if cfg.LineWidth == 0 {
		cfg.LineWidth = render.DefaultWidth
	}
	return cfg, nil
}
