package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/craigbalding/sandboxscore/pkg/findings"
	"github.com/craigbalding/sandboxscore/pkg/grading"
	"github.com/craigbalding/sandboxscore/pkg/policy"
)

func gradeColor(g grading.Grade) *color.Color {
	switch g {
	case grading.GradeAPlus, grading.GradeA:
		return color.New(color.FgHiGreen, color.Bold)
	case grading.GradeB:
		return color.New(color.FgGreen)
	case grading.GradeC:
		return color.New(color.FgYellow, color.Bold)
	case grading.GradeD:
		return color.New(color.FgRed)
	}
	return color.New(color.FgHiRed, color.Bold)
}

// WriteSummary prints the human-readable scan summary: grade banner,
// per-category table, cap reasons and cross-profile grades.
func WriteSummary(w io.Writer, fs []findings.Finding, r grading.Report) {
	header := color.New(color.FgHiCyan, color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintln(w, header("Sandbox Exposure Report"))
	fmt.Fprintln(w, dim(strings.Repeat("-", 60)))

	fmt.Fprintf(w, "%-18s %s\n", "Profile:", r.Profile)
	fmt.Fprintf(w, "%-18s %s\n", "Grade:", gradeColor(r.FinalGrade).Sprint(r.FinalGrade))
	fmt.Fprintf(w, "%-18s %d\n", "Points lost:", r.TotalPoints)
	fmt.Fprintf(w, "%-18s %d of %d findings\n", "Exposures:", r.Exposures, len(fs))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-22s %-7s %-12s %s\n",
		color.HiBlueString("Category"),
		color.HiBlueString("Grade"),
		color.HiBlueString("Points"),
		color.HiBlueString("Exposed"))
	for _, cat := range findings.Categories() {
		cs := r.Categories[cat]
		fmt.Fprintf(w, "%-22s %-7s %-12d %d\n",
			cat, gradeColor(cs.Grade).Sprint(cs.Grade), cs.Points, cs.Exposed)
	}

	if len(r.AppliedCaps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.YellowString("Grade caps applied:"))
		for _, ac := range r.AppliedCaps {
			fmt.Fprintf(w, "  [%s] %s\n", gradeColor(ac.Cap).Sprint(ac.Cap), ac.Reason)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dim("Grade under other profiles:"))
	cross := grading.CrossProfile(fs)
	for _, p := range policy.Profiles() {
		marker := " "
		if p == r.Profile {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-14s %s\n", marker, p, gradeColor(cross[p]).Sprint(cross[p]))
	}
}

// WriteLines emits one "test_name status value" line per finding, in
// insertion order, for shell pipelines.
func WriteLines(w io.Writer, fs []findings.Finding) {
	for _, f := range fs {
		if f.Value != "" {
			fmt.Fprintf(w, "%s %s %s\n", f.TestName, f.Status, f.Value)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", f.TestName, f.Status)
	}
}
