// Package solver drives Runge-Kutta time stepping: it owns the step-size
// controller, the run options, and the loop that advances a system from t0
// to t1 with a chosen tableau, delegating implicit stage equations to the
// newton corrector.
package solver

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/logging"
	"github.com/san-kum/odekit/internal/newton"
	"github.com/san-kum/odekit/internal/problems"
	"github.com/san-kum/odekit/internal/tableau"
)

// errFloor keeps a vanishing error estimate from reaching the controller,
// whose power law has no defense against a zero ratio.
const errFloor = 1e-14

// facMin and facMax bound how far one controller proposal may move the
// step size. The dual-order exponents react violently to transients; the
// controller itself applies no lower clamp, so this is driver policy.
const (
	facMin = 0.2
	facMax = 5.0
)

// Result is the recorded trajectory of one integration run plus its
// counters.
type Result struct {
	Times  []float64
	States [][]float64

	Steps       int // accepted steps
	Rejected    int
	Evaluations int // right-hand-side evaluations
	LastDT      float64
}

// Solver advances one System with one method. Construct a fresh one per
// run; it holds no state that outlives Run.
type Solver struct {
	sys      problems.System
	tab      tableau.Tableau
	opts     Options
	implicit bool
}

// New resolves the method's tableau and checks the run can proceed. An
// unknown method is an error here (the lookups below this layer only return
// sentinels), as are incomplete options for an implicit method. A tableau
// failing the structural consistency check is logged and used anyway.
func New(sys problems.System, m tableau.Method, opts Options) (*Solver, error) {
	tab := tableau.For(m)
	if tab.Stages() == 0 {
		return nil, fmt.Errorf("unknown method: %s", m)
	}
	if !tab.IsConsistent() {
		logger := logging.Logger()
		logger.Warn().Str("method", tab.Name).Msg("tableau failed consistency check")
	}

	implicit := !strictlyLowerTriangular(tab.A)
	if implicit && !opts.Verify() {
		return nil, fmt.Errorf("method %s needs a newton corrector configuration", tab.Name)
	}

	return &Solver{sys: sys, tab: tab, opts: opts, implicit: implicit}, nil
}

// Run integrates from t0 to t1 starting at y0 and records the trajectory.
// Embedded pairs step adaptively through the error controller; single
// methods step at fixed size. The context is checked between steps.
func (s *Solver) Run(ctx context.Context, t0, t1 float64, y0 *mat.VecDense) (*Result, error) {
	if t1 <= t0 {
		return nil, fmt.Errorf("empty time span [%g, %g]", t0, t1)
	}
	if y0.Len() != s.sys.Dim() {
		return nil, fmt.Errorf("state dimension %d, system wants %d", y0.Len(), s.sys.Dim())
	}

	dt := s.opts.InitialDT
	if dt <= 0 {
		dt = s.tab.DT
	}

	t := t0
	y := mat.VecDenseCopyOf(y0)
	res := &Result{}
	res.record(t, y)

	adaptive := s.tab.IsEmbedded()
	errOld := s.opts.Tolerance
	var fsalK *mat.VecDense

	for attempts := 0; t < t1; attempts++ {
		if attempts >= s.opts.MaxSteps {
			return res, fmt.Errorf("gave up after %d step attempts at t = %g", attempts, t)
		}
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if t+dt > t1 {
			dt = t1 - t
		}

		var (
			yNew   *mat.VecDense
			errEst float64
			kLast  *mat.VecDense
		)
		if s.implicit {
			var stepErr error
			yNew, errEst, stepErr = s.implicitStep(t, dt, y, res)
			if stepErr != nil {
				return res, fmt.Errorf("step at t = %g failed: %w", t, stepErr)
			}
		} else {
			yNew, errEst, kLast = s.explicitStep(t, dt, y, fsalK, res)
		}

		if adaptive {
			errEst = math.Max(errEst, errFloor)
			dtNext := NextStep(dt, errEst, errOld, s.opts.Tolerance, s.opts, s.tab, s.opts.MaxDT)
			dtNext = math.Min(math.Max(dtNext, facMin*dt), facMax*dt)

			if errEst > s.opts.Tolerance {
				res.Rejected++
				if dtNext < s.opts.MinDT {
					return res, fmt.Errorf("step size underflow at t = %g (dt = %g)", t, dtNext)
				}
				dt = dtNext
				continue
			}
			errOld = errEst
			t += dt
			res.LastDT = dt
			dt = math.Max(dtNext, s.opts.MinDT)
		} else {
			t += dt
			res.LastDT = dt
		}

		y = yNew
		if s.tab.FSAL {
			fsalK = kLast
		}
		res.Steps++
		res.record(t, y)
	}

	return res, nil
}

// explicitStep performs one step of an explicit method by forward stage
// recursion. k0, when non-nil, is the already known first slope of an FSAL
// method; the last stage slope is returned so the driver can reuse it.
func (s *Solver) explicitStep(t, dt float64, y, k0 *mat.VecDense, res *Result) (*mat.VecDense, float64, *mat.VecDense) {
	n := s.sys.Dim()
	stages := s.tab.Stages()
	k := make([]*mat.VecDense, stages)

	for i := 0; i < stages; i++ {
		if i == 0 && k0 != nil {
			k[0] = k0
			continue
		}
		yi := mat.NewVecDense(n, nil)
		for p := 0; p < n; p++ {
			acc := y.AtVec(p)
			for j := 0; j < i; j++ {
				acc += dt * s.tab.A.At(i, j) * k[j].AtVec(p)
			}
			yi.SetVec(p, acc)
		}
		k[i] = s.sys.Fun(t+s.tab.C.AtVec(i)*dt, yi)
		res.Evaluations++
	}

	yNew, errEst := s.combine(dt, y, func(i, p int) float64 { return k[i].AtVec(p) })
	return yNew, errEst, k[stages-1]
}

// implicitStep hands the coupled stage system to the newton corrector.
func (s *Solver) implicitStep(t, dt float64, y *mat.VecDense, res *Result) (*mat.VecDense, float64, error) {
	stageK, nr, err := newton.SolveStages(s.sys, s.tab, t, dt, y, s.opts.Newton)
	res.Evaluations += nr.Iterations * s.tab.Stages()
	if err != nil {
		return nil, 0, err
	}

	yNew, errEst := s.combine(dt, y, stageK.At)
	return yNew, errEst, nil
}

// combine forms the solution update y + dt·Σ b_i·k_i and, for embedded
// pairs, the max-norm of the difference against the lower-order update.
func (s *Solver) combine(dt float64, y *mat.VecDense, k func(i, p int) float64) (*mat.VecDense, float64) {
	n := y.Len()
	stages := s.tab.Stages()

	yNew := mat.NewVecDense(n, nil)
	errEst := 0.0
	for p := 0; p < n; p++ {
		acc := y.AtVec(p)
		diff := 0.0
		for i := 0; i < stages; i++ {
			acc += dt * s.tab.B.AtVec(i) * k(i, p)
			if s.tab.B2 != nil {
				diff += dt * (s.tab.B.AtVec(i) - s.tab.B2.AtVec(i)) * k(i, p)
			}
		}
		yNew.SetVec(p, acc)
		if d := math.Abs(diff); d > errEst {
			errEst = d
		}
	}
	return yNew, errEst
}

func (r *Result) record(t float64, y *mat.VecDense) {
	r.Times = append(r.Times, t)
	state := make([]float64, y.Len())
	copy(state, y.RawVector().Data)
	r.States = append(r.States, state)
}

// Component extracts one state component across the whole trajectory, for
// plotting and export.
func (r *Result) Component(idx int) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s[idx]
	}
	return out
}

func strictlyLowerTriangular(a *mat.Dense) bool {
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := i; j < cols; j++ {
			if a.At(i, j) != 0.0 {
				return false
			}
		}
	}
	return true
}
