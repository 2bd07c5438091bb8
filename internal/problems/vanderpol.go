package problems

import "gonum.org/v1/gonum/mat"

// VanDerPol is the Van der Pol oscillator
//
//	x' = v
//	v' = μ(1 - x²)v - x
//
// Large μ makes it stiff, which is where the implicit Radau and Lobatto
// methods earn their keep.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 5.0}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Fun(t float64, y *mat.VecDense) *mat.VecDense {
	x := y.AtVec(0)
	vel := y.AtVec(1)
	return mat.NewVecDense(2, []float64{
		vel,
		v.Mu*(1.0-x*x)*vel - x,
	})
}

func (v *VanDerPol) Jac(t float64, y *mat.VecDense) *mat.Dense {
	x := y.AtVec(0)
	vel := y.AtVec(1)
	return mat.NewDense(2, 2, []float64{
		0.0, 1.0,
		-2.0*v.Mu*x*vel - 1.0, v.Mu * (1.0 - x*x),
	})
}

func (v *VanDerPol) InitialState() *mat.VecDense {
	return mat.NewVecDense(2, []float64{2.0, 0.0})
}
