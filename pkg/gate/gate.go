// Package gate evaluates the small comparison expressions used to turn
// a computed report into a CI pass/fail signal, e.g. --fail-on
// "score>=50". The semantics are uniform and literal: whatever the
// comparison evaluates to is "this run should fail". That holds for the
// grade metric too, so callers encode the failure condition they want
// ("grade>=C" fails on C or worse), not the passing condition.
package gate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/craigbalding/sandboxscore/pkg/grading"
)

// Metric names a value a gate can compare against.
type Metric string

const (
	MetricScore     Metric = "score"     // total points lost
	MetricGrade     Metric = "grade"     // overall letter grade
	MetricExposures Metric = "exposures" // count of exposed findings
)

// Op is a comparison operator.
type Op string

const (
	OpGE Op = ">="
	OpLE Op = "<="
	OpEQ Op = "=="
)

// ErrParse marks an unparseable gate expression. A broken release gate
// that silently passes is worse than one that fails loudly, so parse
// failures are hard configuration errors.
var ErrParse = errors.New("invalid gate expression")

// Expr is a parsed gate expression: <metric><op><threshold> with no
// whitespace.
type Expr struct {
	Metric Metric
	Op     Op

	// Threshold holds the integer bound for score and exposures.
	Threshold int
	// GradeThreshold holds the grade bound for the grade metric.
	GradeThreshold grading.Grade
}

// Parse parses an expression like "score>=50", "exposures==0" or
// "grade>=C".
func Parse(expr string) (Expr, error) {
	var out Expr

	opIdx := -1
	for i := 0; i+1 < len(expr); i++ {
		switch Op(expr[i : i+2]) {
		case OpGE, OpLE, OpEQ:
			opIdx = i
		}
		if opIdx >= 0 {
			break
		}
	}
	if opIdx < 0 {
		return out, fmt.Errorf("%w: %q has no comparator (want >=, <= or ==)", ErrParse, expr)
	}
	out.Op = Op(expr[opIdx : opIdx+2])

	metric := Metric(expr[:opIdx])
	threshold := expr[opIdx+2:]
	if threshold == "" {
		return out, fmt.Errorf("%w: %q has no threshold", ErrParse, expr)
	}

	switch metric {
	case MetricScore, MetricExposures:
		n, err := strconv.Atoi(threshold)
		if err != nil || n < 0 {
			return out, fmt.Errorf("%w: %q needs a non-negative integer threshold, got %q", ErrParse, metric, threshold)
		}
		out.Metric = metric
		out.Threshold = n
	case MetricGrade:
		g := grading.Grade(strings.ToUpper(threshold))
		switch g {
		case grading.GradeAPlus, grading.GradeA, grading.GradeB, grading.GradeC, grading.GradeD, grading.GradeF:
			out.Metric = metric
			out.GradeThreshold = g
		default:
			return out, fmt.Errorf("%w: %q is not a grade (want A+, A, B, C, D or F)", ErrParse, threshold)
		}
	default:
		return out, fmt.Errorf("%w: unknown metric %q (want score, grade or exposures)", ErrParse, metric)
	}

	return out, nil
}

// Eval reports whether the gate condition holds against r. True means
// the run should fail.
func (e Expr) Eval(r grading.Report) bool {
	switch e.Metric {
	case MetricScore:
		return compareInt(r.TotalPoints, e.Op, e.Threshold)
	case MetricExposures:
		return compareInt(r.Exposures, e.Op, e.Threshold)
	case MetricGrade:
		// Grades compare by badness: grade>=C holds when the actual
		// grade is C or worse.
		return compareInt(grading.Compare(r.FinalGrade, e.GradeThreshold), e.Op, 0)
	}
	return false
}

// ExitCode maps a gate outcome to the process contract: 1 when the gate
// failed, 0 when it passed.
func ExitCode(failed bool) int {
	if failed {
		return 1
	}
	return 0
}

func compareInt(actual int, op Op, threshold int) bool {
	switch op {
	case OpGE:
		return actual >= threshold
	case OpLE:
		return actual <= threshold
	case OpEQ:
		return actual == threshold
	}
	return false
}
