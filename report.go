package shelldeck

import (
	"io"

	j "github.com/goccy/go-json"
)

// Report is the validation summary of a model, suitable for JSON output.
type Report struct {
	Level    Level          `json:"level"`
	State    string         `json:"state"`
	Counts   map[Tag]int    `json:"counts"`
	Errors   []ReportIssue  `json:"errors"`
	Warnings []ReportIssue  `json:"warnings"`
	Summary  map[string]int `json:"summary"`
}

// ReportIssue is the serialized form of an Issue.
type ReportIssue struct {
	Rule     string         `json:"rule"`
	Code     string         `json:"code,omitempty"`
	Location string         `json:"location"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Hint     string         `json:"hint,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// Report audits the model (see Validate) and summarizes the result.
func (m *Model) Report() Report {
	iss := m.Validate().Sorted()
	r := Report{
		Level:    m.Level(),
		State:    m.state.String(),
		Counts:   m.Counts(),
		Errors:   []ReportIssue{},
		Warnings: []ReportIssue{},
		Summary:  map[string]int{"error": 0, "warn": 0, "info": 0},
	}
	for _, it := range iss {
		ri := ReportIssue{
			Rule:     it.Rule,
			Code:     it.Code,
			Location: it.Location,
			Message:  it.Message,
			Severity: it.Severity,
			Hint:     it.Hint,
			Params:   it.Params,
		}
		r.Summary[it.Severity.String()]++
		if it.Severity == SeverityError {
			r.Errors = append(r.Errors, ri)
		} else {
			r.Warnings = append(r.Warnings, ri)
		}
	}
	return r
}

// OK reports whether the audit found no errors.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// WriteReport encodes r as indented JSON.
func WriteReport(w io.Writer, r Report) error {
	enc := j.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
