// Package report renders a computed scan into its output formats:
// machine JSON, a colored terminal summary, and greppable lines.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/craigbalding/sandboxscore/pkg/findings"
	"github.com/craigbalding/sandboxscore/pkg/grading"
	"github.com/craigbalding/sandboxscore/pkg/policy"
)

// Category is the per-category slice of the JSON document.
type Category struct {
	Grade      string `json:"grade"`
	PointsLost int    `json:"points_lost"`
	Exposed    int    `json:"exposed"`
}

// Document is the machine-readable scan result written by --format json
// and consumed by the gate subcommand.
type Document struct {
	ScanID       string              `json:"scan_id"`
	GeneratedAt  string              `json:"generated_at"`
	Profile      string              `json:"profile"`
	Grade        string              `json:"grade"`
	PointsLost   int                 `json:"points_lost"`
	Exposures    int                 `json:"exposures"`
	Categories   map[string]Category `json:"categories"`
	CapsApplied  []string            `json:"caps_applied"`
	Findings     map[string]string   `json:"findings"`
	CrossProfile map[string]string   `json:"cross_profile"`
}

// Build assembles the JSON document from the findings and the computed
// report for the active profile.
func Build(fs []findings.Finding, r grading.Report) Document {
	doc := Document{
		ScanID:       uuid.NewString(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Profile:      string(r.Profile),
		Grade:        string(r.FinalGrade),
		PointsLost:   r.TotalPoints,
		Exposures:    r.Exposures,
		Categories:   make(map[string]Category),
		CapsApplied:  []string{},
		Findings:     make(map[string]string),
		CrossProfile: make(map[string]string),
	}

	for name, cs := range r.Categories {
		doc.Categories[name] = Category{
			Grade:      string(cs.Grade),
			PointsLost: cs.Points,
			Exposed:    cs.Exposed,
		}
	}
	for _, ac := range r.AppliedCaps {
		doc.CapsApplied = append(doc.CapsApplied, ac.Reason)
	}
	for _, f := range fs {
		doc.Findings[f.TestName] = string(f.Status)
	}
	for p, g := range grading.CrossProfile(fs) {
		doc.CrossProfile[string(p)] = string(g)
	}

	return doc
}

// WriteJSON encodes doc to w.
func WriteJSON(w io.Writer, doc Document, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// ReadJSON decodes a previously written document, for gate re-evaluation
// without a re-scan.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	err := json.NewDecoder(r).Decode(&doc)
	return doc, err
}

// GateReport projects the document back into the report shape the gate
// evaluator compares against.
func (d Document) GateReport() grading.Report {
	return grading.Report{
		Profile:     policy.Profile(d.Profile),
		TotalPoints: d.PointsLost,
		Exposures:   d.Exposures,
		FinalGrade:  grading.Grade(d.Grade),
	}
}
