// Package probes defines the contract between the grading engine and
// the platform probes that feed it. The probes themselves live outside
// this module; they implement Probe, register with a Runner, and report
// outcomes through the Recorder they are handed.
package probes

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/craigbalding/sandboxscore/pkg/policy"
)

// Recorder is the single call a probe makes per outcome. The findings
// store implements it.
type Recorder interface {
	Record(category, testName, status, value string, base policy.Severity) error
}

// Probe is one read/write/query check against the host. Run reports its
// outcome through rec; a returned error means the probe itself broke,
// not that the host is exposed.
type Probe interface {
	Name() string
	Category() string
	Run(ctx context.Context, rec Recorder) error
}

// Runner executes registered probes. Sequential by default; set
// MaxWorkers above 1 to run probes concurrently, which the findings
// store supports. Finding order is not semantically significant.
type Runner struct {
	MaxWorkers int
	probes     []Probe
}

// NewRunner returns an empty sequential runner.
func NewRunner() *Runner {
	return &Runner{MaxWorkers: 1}
}

// Register adds a probe. Registration order is execution order when the
// runner is sequential.
func (r *Runner) Register(p Probe) {
	r.probes = append(r.probes, p)
}

// Len returns the number of registered probes.
func (r *Runner) Len() int { return len(r.probes) }

// Run executes every registered probe exactly once. A probe error is
// recorded as an error-status finding and does not stop the scan; some
// probes write to the host, so nothing is ever retried.
func (r *Runner) Run(ctx context.Context, rec Recorder) error {
	if r.MaxWorkers > 1 {
		return r.runParallel(ctx, rec)
	}
	for _, p := range r.probes {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.runOne(ctx, p, rec)
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, rec Recorder) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.MaxWorkers)
	for _, p := range r.probes {
		p := p
		eg.Go(func() error {
			r.runOne(ctx, p, rec)
			return nil
		})
	}
	return eg.Wait()
}

func (r *Runner) runOne(ctx context.Context, p Probe, rec Recorder) {
	defer func() {
		if v := recover(); v != nil {
			fmt.Fprintf(os.Stderr, "probe %s panicked: %v\n", p.Name(), v)
			_ = rec.Record(p.Category(), p.Name(), "error", "", policy.SeverityInfo)
		}
	}()
	if err := p.Run(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "probe %s failed: %v\n", p.Name(), err)
		_ = rec.Record(p.Category(), p.Name(), "error", "", policy.SeverityInfo)
	}
}

// Default is the runner the scan command executes. External probe
// packages register themselves here from init.
var Default = NewRunner()
