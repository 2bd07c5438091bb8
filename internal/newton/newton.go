// Package newton implements the corrector that solves the nonlinear stage
// equations of an implicit Runge-Kutta step.
//
// For a method with stage matrix A and abscissae c, one step from (t, y)
// requires the stage slopes K to satisfy
//
//	K_i = f(t + c_i·dt, y + dt·Σ_j A_ij·K_j)
//
// which is solved here by Newton iteration on the collected system. The
// residual Jacobian is assembled blockwise: block (i,j) is
// δ_ij·I - dt·A_ij·∂f/∂y, with ∂f/∂y evaluated at stage i's state.
package newton

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/problems"
	"github.com/san-kum/odekit/internal/tableau"
)

// Options configures the corrector. A solver options record must carry a
// non-nil reference to one of these before implicit stepping can proceed.
type Options struct {
	// Tolerance is the max-norm residual below which the iteration stops.
	Tolerance float64
	// MaxIterations caps the Newton loop.
	MaxIterations int
	// RefreshJacobian rebuilds the stage Jacobian every iteration. When
	// false the Jacobian from the first iteration is reused (simplified
	// Newton), trading convergence rate for factorization work.
	RefreshJacobian bool
}

func DefaultOptions() *Options {
	return &Options{
		Tolerance:       1e-10,
		MaxIterations:   25,
		RefreshJacobian: true,
	}
}

// Result reports how the iteration went.
type Result struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// SolveStages computes the stage slopes of one implicit step. The returned
// matrix holds one stage per row. A non-converged iteration or a singular
// stage Jacobian is an error; the caller decides whether to shrink the step
// or abort.
func SolveStages(sys problems.System, tab tableau.Tableau, t, dt float64, y *mat.VecDense, opts *Options) (*mat.Dense, Result, error) {
	n := sys.Dim()
	s := tab.Stages()
	dim := s * n

	// Initial guess: every stage starts from the slope at (t, y).
	k := mat.NewVecDense(dim, nil)
	f0 := sys.Fun(t, y)
	for i := 0; i < s; i++ {
		for p := 0; p < n; p++ {
			k.SetVec(i*n+p, f0.AtVec(p))
		}
	}

	res := mat.NewVecDense(dim, nil)
	jac := mat.NewDense(dim, dim, nil)
	stageY := make([]*mat.VecDense, s)
	for i := range stageY {
		stageY[i] = mat.NewVecDense(n, nil)
	}

	result := Result{}
	for iter := 0; iter < opts.MaxIterations; iter++ {
		result.Iterations = iter + 1

		// Stage states Y_i = y + dt·Σ_j A_ij·K_j.
		for i := 0; i < s; i++ {
			for p := 0; p < n; p++ {
				acc := y.AtVec(p)
				for j := 0; j < s; j++ {
					acc += dt * tab.A.At(i, j) * k.AtVec(j*n+p)
				}
				stageY[i].SetVec(p, acc)
			}
		}

		maxRes := 0.0
		for i := 0; i < s; i++ {
			fi := sys.Fun(t+tab.C.AtVec(i)*dt, stageY[i])
			for p := 0; p < n; p++ {
				r := k.AtVec(i*n+p) - fi.AtVec(p)
				res.SetVec(i*n+p, r)
				if ar := math.Abs(r); ar > maxRes {
					maxRes = ar
				}
			}
		}
		result.Residual = maxRes
		if maxRes <= opts.Tolerance {
			result.Converged = true
			return stageMatrix(k, s, n), result, nil
		}

		if iter == 0 || opts.RefreshJacobian {
			buildJacobian(jac, sys, tab, t, dt, stageY)
		}

		var delta mat.VecDense
		if err := delta.SolveVec(jac, res); err != nil {
			return nil, result, fmt.Errorf("stage jacobian solve failed: %w", err)
		}
		k.SubVec(k, &delta)
	}

	return nil, result, fmt.Errorf("corrector did not converge after %d iterations (residual %.3e)",
		result.Iterations, result.Residual)
}

// buildJacobian assembles the residual Jacobian blockwise. Residual row i
// only involves f at stage i's state, so block (i,j) is
// δ_ij·I - dt·A_ij·J_f(t + c_i·dt, Y_i) and every block of row i shares one
// system Jacobian evaluation.
func buildJacobian(jac *mat.Dense, sys problems.System, tab tableau.Tableau, t, dt float64, stageY []*mat.VecDense) {
	n := sys.Dim()
	s := len(stageY)

	jac.Zero()
	for i := 0; i < s; i++ {
		jf := sys.Jac(t+tab.C.AtVec(i)*dt, stageY[i])
		for j := 0; j < s; j++ {
			aij := tab.A.At(i, j)
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					v := -dt * aij * jf.At(p, q)
					if i == j && p == q {
						v += 1.0
					}
					jac.Set(i*n+p, j*n+q, v)
				}
			}
		}
	}
}

func stageMatrix(k *mat.VecDense, s, n int) *mat.Dense {
	out := mat.NewDense(s, n, nil)
	for i := 0; i < s; i++ {
		for p := 0; p < n; p++ {
			out.Set(i, p, k.AtVec(i*n+p))
		}
	}
	return out
}
