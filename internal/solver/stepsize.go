package solver

import (
	"math"

	"github.com/san-kum/odekit/internal/tableau"
)

// NextStep computes the step size for the next integration step from the
// current and previous error estimates, using formula 2.43c from Hairer &
// Wanner, Solving ODEs II. With α = order + order2 and β = min(order,
// order2),
//
//	dtNew = dtOld · (tol/err)^α · (errOld/tol)^β
//
// The β term weighs the previous step's error, which damps the oscillating
// step-size sequences a single-exponent controller produces on embedded
// pairs whose two orders differ.
//
// The result is clamped from above by dtMax and not clamped from below;
// err == 0 is not special-cased either. Callers floor the error estimate to
// a small positive value and apply their own minimum-step policy.
func NextStep(dtOld, err, errOld, tol float64, opts Options, tab tableau.Tableau, dtMax float64) float64 {
	alpha := float64(tab.Order + tab.Order2)
	beta := float64(min(tab.Order, tab.Order2))

	dtNew := dtOld * math.Pow(tol/err, alpha) * math.Pow(errOld/tol, beta)

	return math.Min(dtNew, dtMax)
}
