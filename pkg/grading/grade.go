// Package grading converts recorded findings into point totals and
// letter grades, applies hard floor caps for specific critical
// exposures, and supports projecting the same findings under any
// profile without re-running a probe.
package grading

import "github.com/craigbalding/sandboxscore/pkg/policy"

// Grade is a letter grade. Ordering is strictly increasing badness:
// A+ < A < B < C < D < F. Unrecognized grades sort worse than F.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// rank maps a grade to its badness. Unknown grades rank past F so a
// corrupted grade string can never compare as safe.
func rank(g Grade) int {
	switch g {
	case GradeAPlus:
		return 0
	case GradeA:
		return 1
	case GradeB:
		return 2
	case GradeC:
		return 3
	case GradeD:
		return 4
	case GradeF:
		return 5
	}
	return 6
}

// Compare returns -1, 0 or 1 as a is better than, equal to, or worse
// than b.
func Compare(a, b Grade) int {
	ra, rb := rank(a), rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

// WorseOf returns the worse of two grades.
func WorseOf(a, b Grade) Grade {
	if rank(a) >= rank(b) {
		return a
	}
	return b
}

// FromPoints maps points lost to a letter grade. These are the engine's
// boundaries; the product README quotes a looser table (0 / 1-5 / 6-20 /
// 21-50 / 51-100 / 101+) that has never matched the code. The engine
// table wins here, see DESIGN.md.
func FromPoints(points int) Grade {
	switch {
	case points <= 0:
		return GradeAPlus
	case points <= 10:
		return GradeA
	case points <= 30:
		return GradeB
	case points <= 60:
		return GradeC
	case points <= 100:
		return GradeD
	}
	return GradeF
}

// ProfileGrades is the grade a scan would receive under each profile,
// computed from one set of findings.
type ProfileGrades map[policy.Profile]Grade
