package solver

import (
	"fmt"

	"github.com/san-kum/odekit/internal/logging"
	"github.com/san-kum/odekit/internal/newton"
)

// Options configures one integration run. The record is read-only once
// handed to a Solver; two concurrent runs must not share a mutable instance.
type Options struct {
	// Tolerance bounds the local error estimate of embedded pairs.
	Tolerance float64
	// InitialDT overrides the tableau's default initial step when > 0.
	InitialDT float64
	// MinDT aborts the run when adaptive stepping underflows it; MaxDT is
	// the upper clamp handed to the step-size controller.
	MinDT float64
	MaxDT float64
	// MaxSteps caps the number of attempted steps.
	MaxSteps int
	// Newton configures the corrector for the implicit family. Defaults
	// leave it unset: attaching one is an explicit caller decision, and
	// Verify refuses implicit stepping without it.
	Newton *newton.Options
}

// DefaultOptions returns the baseline configuration. Newton is left nil on
// purpose; see Options.Newton.
func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-6,
		MinDT:     1e-12,
		MaxDT:     1.0,
		MaxSteps:  1000000,
	}
}

// Verify reports whether the options are complete enough for implicit
// time-stepping: the corrector configuration must be present. On failure it
// logs a diagnostic identifying the offending instance and returns false;
// callers are expected to abort the run rather than fall back to an
// uncorrected step.
func (o *Options) Verify() bool {
	if o.Newton != nil {
		return true
	}
	logger := logging.Logger()
	logger.Error().
		Str("options", fmt.Sprintf("%p", o)).
		Msg("solver options lack newton corrector options")
	return false
}
