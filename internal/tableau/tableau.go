// Package tableau holds the Butcher tableaux of the built-in Runge-Kutta
// methods and the lookups that resolve them by name or identifier.
//
// A tableau is pure data: every call to [For] assembles a fresh copy from
// the coefficient table, so concurrent integration runs can share nothing.
package tableau

import "gonum.org/v1/gonum/mat"

// Tableau is the (A, b, c) triple of a Runge-Kutta method, plus the second
// weight vector B2 of an embedded pair when the method has one.
type Tableau struct {
	// A couples the stages: stage i sees dt * sum_j A[i,j] * k_j. Strictly
	// lower triangular for explicit methods, full for implicit ones.
	A *mat.Dense
	// B holds the weights of the solution update, B2 those of the embedded
	// lower-order estimate. B2 is nil when the method has no embedded pair.
	B  *mat.VecDense
	B2 *mat.VecDense
	// C holds the abscissae, the stage time fractions within a step.
	C *mat.VecDense

	// Order is the convergence order of the primary formula, Order2 that of
	// the embedded one (0 when there is no embedded pair).
	Order  int
	Order2 int

	// FSAL marks methods whose last stage doubles as the first stage of the
	// next step. Consumed by the driver as an optimization hint.
	FSAL bool

	Name string

	// DT is the default initial step size.
	DT float64
}

// Stages returns the number of stages, 0 for an empty tableau.
func (t Tableau) Stages() int {
	if t.B == nil {
		return 0
	}
	return t.B.Len()
}

// IsEmbedded reports whether the tableau carries an embedded error
// estimator.
func (t Tableau) IsEmbedded() bool {
	return t.B2 != nil && t.Order2 > 0
}

// IsConsistent checks the structural invariant of a tableau: b, c and both
// dimensions of A must agree. It is a pure predicate; the softer per-stage
// row-sum check lives in the database, which emits it as a warning rather
// than a verdict.
func (t Tableau) IsConsistent() bool {
	if t.A == nil || t.B == nil || t.C == nil {
		return false
	}
	r, c := t.A.Dims()
	n := t.B.Len()
	return n == t.C.Len() && n == r && n == c
}
