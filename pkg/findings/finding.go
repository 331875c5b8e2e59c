// Package findings is the append-only store of probe outcomes. A Finding
// is created once by a probe's record call and never mutated or deleted;
// scoring, projection and rendering all read the same snapshot.
package findings

import (
	"strings"

	"github.com/craigbalding/sandboxscore/pkg/policy"
)

// Status is the outcome of one probe. Only exposed findings can ever
// cost points; the rest exist for coverage accounting.
type Status string

const (
	StatusExposed  Status = "exposed"
	StatusBlocked  Status = "blocked"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
	StatusSkipped  Status = "skipped"
)

// ParseStatus reports whether s names a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusExposed, StatusBlocked, StatusNotFound, StatusError, StatusSkipped:
		return Status(s), true
	}
	return "", false
}

// Categories are the fixed grouping keys findings are partitioned into
// for per-category grades. Category is free-form on record, but reports
// always carry these keys.
func Categories() []string {
	return []string{
		"credentials",
		"personal_data",
		"system_visibility",
		"persistence",
		"network",
		"intelligence",
	}
}

// Finding is one immutable record of a single probe outcome. Effective
// severity and points are frozen at record time for the profile that was
// active; projection under another profile recomputes from BaseSeverity.
type Finding struct {
	Category     string
	TestName     string
	Status       Status
	Value        string
	BaseSeverity policy.Severity

	EffectiveSeverity policy.Severity
	Points            int
}

// SeverityUnder returns the severity that counts for this finding when
// evaluated under p. Anything that is not an exposure is info.
func (f Finding) SeverityUnder(p policy.Profile) policy.Severity {
	if f.Status != StatusExposed {
		return policy.SeverityInfo
	}
	return policy.EffectiveSeverity(f.TestName, f.BaseSeverity, p)
}

// PointsUnder returns the points this finding costs under p.
func (f Finding) PointsUnder(p policy.Profile) int {
	return policy.Points(f.SeverityUnder(p))
}

// sanitizeValue strips control characters so a stored value can never
// corrupt line-oriented output. Values are short non-sensitive tags.
func sanitizeValue(v string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
}
