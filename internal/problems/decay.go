package problems

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Decay is exponential decay y' = -λy. It has a closed-form solution, which
// makes it the reference problem for convergence tests.
type Decay struct {
	Lambda float64
	Y0     float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: 1.0, Y0: 1.0}
}

func (d *Decay) Dim() int { return 1 }

func (d *Decay) Fun(t float64, y *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(1, []float64{-d.Lambda * y.AtVec(0)})
}

func (d *Decay) Jac(t float64, y *mat.VecDense) *mat.Dense {
	return mat.NewDense(1, 1, []float64{-d.Lambda})
}

// Exact evaluates the analytic solution at time t.
func (d *Decay) Exact(t float64) float64 {
	return d.Y0 * math.Exp(-d.Lambda*t)
}

func (d *Decay) InitialState() *mat.VecDense {
	return mat.NewVecDense(1, []float64{d.Y0})
}
