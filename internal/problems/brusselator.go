package problems

import "gonum.org/v1/gonum/mat"

// Brusselator is the classic two-species autocatalytic oscillator,
//
//	x' = a + x²y - bx - x
//	y' = bx - x²y
//
// The default b sits just past the Hopf bifurcation at b = a² + 1, so the
// system settles into a limit cycle.
type Brusselator struct {
	A, B float64
}

func NewBrusselator() *Brusselator {
	a := 2.0
	return &Brusselator{A: a, B: a*a + 2.5}
}

func (br *Brusselator) Dim() int { return 2 }

func (br *Brusselator) Fun(t float64, y *mat.VecDense) *mat.VecDense {
	x0 := y.AtVec(0)
	x1 := y.AtVec(1)
	return mat.NewVecDense(2, []float64{
		br.A + x0*x0*x1 - br.B*x0 - x0,
		br.B*x0 - x0*x0*x1,
	})
}

func (br *Brusselator) Jac(t float64, y *mat.VecDense) *mat.Dense {
	x0 := y.AtVec(0)
	x1 := y.AtVec(1)
	return mat.NewDense(2, 2, []float64{
		2.0*x0*x1 - br.B - 1.0, x0 * x0,
		br.B - 2.0*x0*x1, -x0 * x0,
	})
}

func (br *Brusselator) InitialState() *mat.VecDense {
	return mat.NewVecDense(2, []float64{2.0, 2.0})
}
