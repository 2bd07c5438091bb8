package solver

import (
	"testing"

	"github.com/san-kum/odekit/internal/tableau"
)

func TestNextStep_FixedPoint(t *testing.T) {
	// err == errOld == tol collapses both ratios to 1: the step is kept.
	tab := tableau.For(tableau.DormandPrince54)
	opts := DefaultOptions()

	got := NextStep(0.1, 0.5, 0.5, 0.5, opts, tab, 1.0)
	if got != 0.1 {
		t.Errorf("NextStep = %v, want 0.1", got)
	}
}

func TestNextStep_MonotoneInError(t *testing.T) {
	tab := tableau.For(tableau.DormandPrince54)
	opts := DefaultOptions()

	prev := NextStep(0.1, 0.1, 0.5, 0.5, opts, tab, 1e6)
	for _, err := range []float64{0.2, 0.3, 0.5, 0.8, 1.3, 2.1} {
		got := NextStep(0.1, err, 0.5, 0.5, opts, tab, 1e6)
		if got >= prev {
			t.Errorf("NextStep not decreasing: err=%v gave %v after %v", err, got, prev)
		}
		prev = got
	}
}

func TestNextStep_ClampedByMax(t *testing.T) {
	tab := tableau.For(tableau.CashKarp54)
	opts := DefaultOptions()

	for _, dtMax := range []float64{0.01, 0.1, 1.0} {
		got := NextStep(0.1, 1e-8, 1e-8, 0.5, opts, tab, dtMax)
		if got > dtMax {
			t.Errorf("NextStep = %v exceeds dtMax = %v", got, dtMax)
		}
	}
}

func TestNextStep_NoEmbeddedPair(t *testing.T) {
	// order2 == 0 kills the history term: the previous error must not
	// matter.
	tab := tableau.For(tableau.RungeKutta4)
	opts := DefaultOptions()

	a := NextStep(0.1, 0.25, 0.1, 0.5, opts, tab, 1.0)
	b := NextStep(0.1, 0.25, 17.0, 0.5, opts, tab, 1.0)
	if a != b {
		t.Errorf("errOld leaked into a single-order controller: %v vs %v", a, b)
	}
}

func TestNextStep_NoLowerClamp(t *testing.T) {
	tab := tableau.For(tableau.DormandPrince54)
	opts := DefaultOptions()

	got := NextStep(0.1, 1e3, 0.5, 0.5, opts, tab, 1.0)
	if got <= 0 {
		t.Fatalf("NextStep = %v", got)
	}
	if got > 1e-20 {
		t.Errorf("huge error should shrink the step hard, got %v", got)
	}
}
