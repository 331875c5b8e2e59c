package grading

import (
	"github.com/craigbalding/sandboxscore/pkg/findings"
	"github.com/craigbalding/sandboxscore/pkg/policy"
)

// CategoryScore is the per-category view of a report.
type CategoryScore struct {
	Points   int   `json:"points"`
	Grade    Grade `json:"grade"`
	Exposed  int   `json:"exposed"`
	Findings int   `json:"findings"`
}

// Report is the computed result for one profile. It is a derived view:
// recomputed on demand from the findings, never persisted independently.
type Report struct {
	Profile     policy.Profile           `json:"profile"`
	TotalPoints int                      `json:"total_points"`
	Exposures   int                      `json:"exposures"`
	Categories  map[string]CategoryScore `json:"categories"`
	BaseGrade   Grade                    `json:"base_grade"`
	AppliedCaps []AppliedCap             `json:"applied_caps"`
	FinalGrade  Grade                    `json:"final_grade"`
}

// Compute derives the report for fs as seen under profile. It is a pure
// function of its arguments: the same findings and profile always yield
// the same report.
func Compute(fs []findings.Finding, profile policy.Profile) Report {
	r := Report{
		Profile:    profile,
		Categories: make(map[string]CategoryScore),
	}
	for _, cat := range findings.Categories() {
		r.Categories[cat] = CategoryScore{Grade: GradeAPlus}
	}

	exposedTests := make(map[string]bool)
	for _, f := range fs {
		cs := r.Categories[f.Category]
		cs.Findings++

		if f.Status == findings.StatusExposed {
			r.Exposures++
			cs.Exposed++
			exposedTests[f.TestName] = true

			pts := f.PointsUnder(profile)
			r.TotalPoints += pts
			cs.Points += pts
		}

		cs.Grade = FromPoints(cs.Points)
		r.Categories[f.Category] = cs
	}

	r.BaseGrade = FromPoints(r.TotalPoints)
	r.FinalGrade = r.BaseGrade
	for _, rule := range capRules {
		if !exposedTests[rule.TestName] {
			continue
		}
		if rule.OnlyProfile != "" && rule.OnlyProfile != profile {
			continue
		}
		r.AppliedCaps = append(r.AppliedCaps, AppliedCap{
			TestName: rule.TestName,
			Cap:      rule.Cap,
			Reason:   rule.Reason,
		})
		r.FinalGrade = WorseOf(r.FinalGrade, rule.Cap)
	}

	return r
}

// ProjectUnder answers "what would this scan grade as under another
// profile" from the findings already recorded. Probes are not re-run;
// some of them write to the host, so a scan must probe exactly once.
// Profile is an explicit parameter throughout, so projection needs no
// save and restore of any active-profile state.
func ProjectUnder(fs []findings.Finding, profile policy.Profile) Report {
	return Compute(fs, profile)
}

// CrossProfile computes the grade under every known profile.
func CrossProfile(fs []findings.Finding) ProfileGrades {
	out := make(ProfileGrades, len(policy.Profiles()))
	for _, p := range policy.Profiles() {
		out[p] = ProjectUnder(fs, p).FinalGrade
	}
	return out
}
