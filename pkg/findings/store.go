package findings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/craigbalding/sandboxscore/pkg/policy"
)

// ErrInvalidFinding is returned when a record call is missing required
// fields. The call is rejected outright; nothing degenerate is stored.
var ErrInvalidFinding = errors.New("invalid finding")

// Store collects findings for one scan. It grows monotonically and is
// never partially unwound: a rejected record call leaves previously
// recorded findings untouched. Record is safe under concurrent append so
// probe runners may parallelize.
type Store struct {
	mu      sync.Mutex
	profile policy.Profile
	items   []Finding

	// Warn receives unknown-status warnings. Defaults to stderr.
	Warn io.Writer
}

// NewStore returns an empty store whose frozen effective severities are
// computed for the given active profile.
func NewStore(profile policy.Profile) *Store {
	return &Store{profile: profile, Warn: os.Stderr}
}

// Profile returns the active profile the store was created for.
func (s *Store) Profile() policy.Profile { return s.profile }

// Record appends one finding. Empty category, test name or status is an
// invalid-input error surfaced to the caller. An unrecognized status is
// coerced to error with a warning so one malformed probe never aborts a
// whole scan.
func (s *Store) Record(category, testName, status, value string, base policy.Severity) error {
	if category == "" || testName == "" || status == "" {
		return fmt.Errorf("%w: category, test name and status are required (category=%q test=%q status=%q)",
			ErrInvalidFinding, category, testName, status)
	}

	st, ok := ParseStatus(status)
	if !ok {
		s.mu.Lock()
		fmt.Fprintf(s.Warn, "warning: test %s reported unknown status %q, recording as error\n", testName, status)
		s.mu.Unlock()
		st = StatusError
	}

	f := Finding{
		Category:     category,
		TestName:     testName,
		Status:       st,
		Value:        sanitizeValue(value),
		BaseSeverity: base,
	}
	f.EffectiveSeverity = f.SeverityUnder(s.profile)
	f.Points = policy.Points(f.EffectiveSeverity)

	s.mu.Lock()
	s.items = append(s.items, f)
	s.mu.Unlock()
	return nil
}

// ForEach visits findings in insertion order.
func (s *Store) ForEach(fn func(Finding)) {
	for _, f := range s.Snapshot() {
		fn(f)
	}
}

// Snapshot returns a copy of the current findings. Scoring works on the
// copy so a report is a pure function of what was recorded.
func (s *Store) Snapshot() []Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Finding, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of recorded findings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
