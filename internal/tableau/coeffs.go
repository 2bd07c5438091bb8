package tableau

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/logging"
)

// defaultDT is the initial step size handed out with every tableau.
const defaultDT = 0.05

// rowSumTolerance bounds |c_i - sum_j A_ij|. The check is a transcription
// sanity check over hand-copied literature constants, not a runtime guard:
// a few published Lobatto/Radau tables only satisfy it approximately, so a
// violation warns and the tableau stays usable. Kept absolute on purpose.
const rowSumTolerance = 1e-5

// Irrational tableau entries are derived from these at construction time.
// Spelling them as decimal literals instead would compound rounding error
// across the table.
var (
	sqrt3  = math.Sqrt(3.0)
	sqrt5  = math.Sqrt(5.0)
	sqrt6  = math.Sqrt(6.0)
	sqrt15 = math.Sqrt(15.0)
)

// builders maps each method to its coefficient constructor. Built once at
// init, read-only afterwards.
var builders = map[Method]func() Tableau{
	ExplicitEuler:     explicitEuler,
	RungeKutta4:       rungeKutta4,
	BogackiShampine32: bogackiShampine32,
	CashKarp54:        cashKarp54,
	DormandPrince54:   dormandPrince54,
	Fehlberg54:        fehlberg54,
	ImplicitEuler:     implicitEuler,
	ImplicitMidpoint:  implicitMidpoint,
	LobattoIIIA21:     lobattoIIIA21,
	LobattoIIIC21:     lobattoIIIC21,
	RadauIA32:         radauIA32,
	RadauIIA32:        radauIIA32,
	LobattoIIIA43:     lobattoIIIA43,
	LobattoIIIC43:     lobattoIIIC43,
	GaussLegendre42:   gaussLegendre42,
	RadauIA54:         radauIA54,
	RadauIIA54:        radauIIA54,
	GaussLegendre63:   gaussLegendre63,
	LobattoIIIA65:     lobattoIIIA65,
	LobattoIIIC65:     lobattoIIIC65,
}

// For assembles the Butcher tableau of the given method. Each call returns
// a fresh copy owned by the caller. An unrecognized identifier yields an
// empty tableau and a diagnostic rather than an error, so callers may probe
// several method families in sequence.
func For(m Method) Tableau {
	log := logging.Logger()
	log.Debug().Str("method", m.String()).Msg("setting up coefficients")

	build, ok := builders[m]
	if !ok {
		log.Error().Int("method", int(m)).Msg("method not supported")
		return Tableau{Name: m.String(), DT: defaultDT}
	}

	t := build()
	t.Name = m.String()
	t.DT = defaultDT

	for _, i := range RowSumMismatches(t) {
		log.Warn().
			Str("method", t.Name).
			Int("stage", i).
			Msg("mismatch between c and row sum of A")
	}
	return t
}

// RowSumMismatches returns the stages whose abscissa differs from the
// corresponding row sum of A by more than the 1e-5 transcription tolerance.
// An empty result means the tableau passes the soft invariant.
func RowSumMismatches(t Tableau) []int {
	if t.A == nil || t.C == nil {
		return nil
	}
	var bad []int
	for i := 0; i < t.C.Len(); i++ {
		sum := 0.0
		for j := 0; j < t.C.Len(); j++ {
			sum += t.A.At(i, j)
		}
		if math.Abs(sum-t.C.AtVec(i)) > rowSumTolerance {
			bad = append(bad, i)
		}
	}
	return bad
}

func explicitEuler() Tableau {
	return Tableau{
		A:     mat.NewDense(1, 1, []float64{0}),
		B:     mat.NewVecDense(1, []float64{1}),
		C:     mat.NewVecDense(1, []float64{0}),
		Order: 1,
	}
}

func rungeKutta4() Tableau {
	return Tableau{
		A: mat.NewDense(4, 4, []float64{
			0.0, 0.0, 0.0, 0.0,
			0.5, 0.0, 0.0, 0.0,
			0.0, 0.5, 0.0, 0.0,
			0.0, 0.0, 1.0, 0.0,
		}),
		B:     mat.NewVecDense(4, []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0}),
		C:     mat.NewVecDense(4, []float64{0.0, 0.5, 0.5, 1.0}),
		Order: 4,
	}
}

func bogackiShampine32() Tableau {
	return Tableau{
		A: mat.NewDense(4, 4, []float64{
			0.0, 0.0, 0.0, 0.0,
			0.5, 0.0, 0.0, 0.0,
			0.0, 0.75, 0.0, 0.0,
			2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0.0,
		}),
		B:      mat.NewVecDense(4, []float64{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0.0}),
		B2:     mat.NewVecDense(4, []float64{7.0 / 24.0, 0.25, 1.0 / 3.0, 1.0 / 8.0}),
		C:      mat.NewVecDense(4, []float64{0.0, 0.5, 0.75, 1.0}),
		Order:  3,
		Order2: 2,
		FSAL:   true,
	}
}

func cashKarp54() Tableau {
	a := mat.NewDense(6, 6, nil)

	a.Set(1, 0, 1.0/5.0)
	a.Set(2, 0, 3.0/40.0)
	a.Set(3, 0, 3.0/10.0)
	a.Set(4, 0, -11.0/54.0)
	a.Set(5, 0, 1631.0/55296.0)

	a.Set(2, 1, 9.0/40.0)
	a.Set(3, 1, -9.0/10.0)
	a.Set(4, 1, 5.0/2.0)
	a.Set(5, 1, 175.0/512.0)

	a.Set(3, 2, 6.0/5.0)
	a.Set(4, 2, -70.0/27.0)
	a.Set(5, 2, 575.0/13824.0)

	a.Set(4, 3, 35.0/27.0)
	a.Set(5, 3, 44275.0/110592.0)

	a.Set(5, 4, 253.0/4096.0)

	return Tableau{
		A: a,
		B: mat.NewVecDense(6, []float64{
			37.0 / 378.0, 0.0, 250.0 / 621.0, 125.0 / 594.0, 0.0, 512.0 / 1771.0,
		}),
		B2: mat.NewVecDense(6, []float64{
			2825.0 / 27648.0, 0.0, 18575.0 / 48384.0, 13525.0 / 55296.0,
			277.0 / 14336.0, 1.0 / 4.0,
		}),
		C:      mat.NewVecDense(6, []float64{0.0, 0.2, 0.3, 0.6, 1.0, 7.0 / 8.0}),
		Order:  5,
		Order2: 4,
	}
}

func dormandPrince54() Tableau {
	a := mat.NewDense(7, 7, nil)

	a.Set(1, 0, 1.0/5.0)
	a.Set(2, 0, 3.0/40.0)
	a.Set(3, 0, 44.0/45.0)
	a.Set(4, 0, 19372.0/6561.0)
	a.Set(5, 0, 9017.0/3168.0)
	a.Set(6, 0, 35.0/384.0)

	a.Set(2, 1, 9.0/40.0)
	a.Set(3, 1, -56.0/15.0)
	a.Set(4, 1, -25360.0/2187.0)
	a.Set(5, 1, -355.0/33.0)
	a.Set(6, 1, 0.0)

	a.Set(3, 2, 32.0/9.0)
	a.Set(4, 2, 64448.0/6561.0)
	a.Set(5, 2, 46732.0/5247.0)
	a.Set(6, 2, 500.0/1113.0)

	a.Set(4, 3, -212.0/729.0)
	a.Set(5, 3, 49.0/176.0)
	a.Set(6, 3, 125.0/192.0)

	a.Set(5, 4, -5103.0/18656.0)
	a.Set(6, 4, -2187.0/6784.0)

	a.Set(6, 5, 11.0/84.0)

	return Tableau{
		A: a,
		B: mat.NewVecDense(7, []float64{
			35.0 / 384.0, 0.0, 500.0 / 1113.0, 125.0 / 192.0,
			-2187.0 / 6784.0, 11.0 / 84.0, 0.0,
		}),
		B2: mat.NewVecDense(7, []float64{
			5179.0 / 57600.0, 0.0, 7571.0 / 16695.0, 393.0 / 640.0,
			-92097.0 / 339200.0, 187.0 / 2100.0, 1.0 / 40.0,
		}),
		C:      mat.NewVecDense(7, []float64{0.0, 0.2, 0.3, 0.8, 8.0 / 9.0, 1.0, 1.0}),
		Order:  5,
		Order2: 4,
		FSAL:   true,
	}
}

func fehlberg54() Tableau {
	a := mat.NewDense(6, 6, nil)

	a.Set(1, 0, 1.0/4.0)
	a.Set(2, 0, 3.0/32.0)
	a.Set(3, 0, 1932.0/2197.0)
	a.Set(4, 0, 439.0/216.0)
	a.Set(5, 0, -8.0/27.0)

	a.Set(2, 1, 9.0/32.0)
	a.Set(3, 1, -7200.0/2197.0)
	a.Set(4, 1, -8.0)
	a.Set(5, 1, 2.0)

	a.Set(3, 2, 7296.0/2197.0)
	a.Set(4, 2, 3680.0/513.0)
	a.Set(5, 2, -3544.0/2565.0)

	a.Set(4, 3, -845.0/4104.0)
	a.Set(5, 3, 1859.0/4104.0)

	a.Set(5, 4, -11.0/40.0)

	return Tableau{
		A: a,
		B: mat.NewVecDense(6, []float64{
			16.0 / 135.0, 0.0, 6656.0 / 12825.0, 28561.0 / 56430.0,
			-9.0 / 50.0, 2.0 / 55.0,
		}),
		B2: mat.NewVecDense(6, []float64{
			25.0 / 216.0, 0.0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0.0,
		}),
		C:      mat.NewVecDense(6, []float64{0.0, 1.0 / 4.0, 3.0 / 8.0, 12.0 / 13.0, 1.0, 0.5}),
		Order:  5,
		Order2: 4,
	}
}

func implicitEuler() Tableau {
	return Tableau{
		A:     mat.NewDense(1, 1, []float64{1}),
		B:     mat.NewVecDense(1, []float64{1}),
		C:     mat.NewVecDense(1, []float64{1}),
		Order: 1,
	}
}

func implicitMidpoint() Tableau {
	return Tableau{
		A:     mat.NewDense(1, 1, []float64{0.5}),
		B:     mat.NewVecDense(1, []float64{1}),
		C:     mat.NewVecDense(1, []float64{0.5}),
		Order: 2,
	}
}

func lobattoIIIA21() Tableau {
	return Tableau{
		A: mat.NewDense(2, 2, []float64{
			0.0, 0.0,
			0.5, 0.5,
		}),
		B:      mat.NewVecDense(2, []float64{0.5, 0.5}),
		B2:     mat.NewVecDense(2, []float64{0.25, 0.75}),
		C:      mat.NewVecDense(2, []float64{0.0, 1.0}),
		Order:  2,
		Order2: 1,
	}
}

func lobattoIIIC21() Tableau {
	return Tableau{
		A: mat.NewDense(2, 2, []float64{
			0.5, -0.5,
			0.5, 0.5,
		}),
		B:      mat.NewVecDense(2, []float64{0.5, 0.5}),
		B2:     mat.NewVecDense(2, []float64{1.0 / 3.0, 2.0 / 3.0}),
		C:      mat.NewVecDense(2, []float64{0.0, 1.0}),
		Order:  2,
		Order2: 1,
	}
}

func radauIA32() Tableau {
	return Tableau{
		A: mat.NewDense(2, 2, []float64{
			1.0 / 4.0, -1.0 / 4.0,
			1.0 / 4.0, 5.0 / 12.0,
		}),
		B:     mat.NewVecDense(2, []float64{1.0 / 4.0, 3.0 / 4.0}),
		C:     mat.NewVecDense(2, []float64{0.0, 2.0 / 3.0}),
		Order: 3,
	}
}

func radauIIA32() Tableau {
	return Tableau{
		A: mat.NewDense(2, 2, []float64{
			5.0 / 12.0, -1.0 / 12.0,
			3.0 / 4.0, 1.0 / 4.0,
		}),
		B:     mat.NewVecDense(2, []float64{3.0 / 4.0, 1.0 / 4.0}),
		C:     mat.NewVecDense(2, []float64{1.0 / 3.0, 1.0}),
		Order: 3,
	}
}

func lobattoIIIA43() Tableau {
	return Tableau{
		A: mat.NewDense(3, 3, []float64{
			0.0, 0.0, 0.0,
			5.0 / 24.0, 1.0 / 3.0, -1.0 / 24.0,
			1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0,
		}),
		B:      mat.NewVecDense(3, []float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0}),
		B2:     mat.NewVecDense(3, []float64{-0.5, 2.0, -0.5}),
		C:      mat.NewVecDense(3, []float64{0.0, 0.5, 1.0}),
		Order:  4,
		Order2: 3,
		FSAL:   true,
	}
}

func lobattoIIIC43() Tableau {
	return Tableau{
		A: mat.NewDense(3, 3, []float64{
			1.0 / 6.0, -1.0 / 3.0, 1.0 / 6.0,
			1.0 / 6.0, 5.0 / 12.0, -1.0 / 12.0,
			1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0,
		}),
		B:      mat.NewVecDense(3, []float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0}),
		B2:     mat.NewVecDense(3, []float64{-0.5, 2.0, -0.5}),
		C:      mat.NewVecDense(3, []float64{0.0, 0.5, 1.0}),
		Order:  4,
		Order2: 3,
	}
}

func gaussLegendre42() Tableau {
	return Tableau{
		A: mat.NewDense(2, 2, []float64{
			0.25, 0.25 - sqrt3/6.0,
			0.25 + sqrt3/6.0, 0.25,
		}),
		B:      mat.NewVecDense(2, []float64{0.5, 0.5}),
		B2:     mat.NewVecDense(2, []float64{0.5 + 0.5*sqrt3, 0.5 - 0.5*sqrt3}),
		C:      mat.NewVecDense(2, []float64{0.5 - sqrt3/6.0, 0.5 + sqrt3/6.0}),
		Order:  4,
		Order2: 2,
	}
}

func radauIA54() Tableau {
	return Tableau{
		A: mat.NewDense(3, 3, []float64{
			1.0 / 9.0, (-1.0 - sqrt6) / 18.0, (-1.0 + sqrt6) / 18.0,
			1.0 / 9.0, (88.0 + 7.0*sqrt6) / 360.0, (88.0 - 43.0*sqrt6) / 360.0,
			1.0 / 9.0, (88.0 + 43.0*sqrt6) / 360.0, (88.0 - 7.0*sqrt6) / 360.0,
		}),
		B:     mat.NewVecDense(3, []float64{1.0 / 9.0, (16.0 + sqrt6) / 36.0, (16.0 - sqrt6) / 36.0}),
		C:     mat.NewVecDense(3, []float64{0.0, (6.0 - sqrt6) / 10.0, (6.0 + sqrt6) / 10.0}),
		Order: 5,
	}
}

func radauIIA54() Tableau {
	return Tableau{
		A: mat.NewDense(3, 3, []float64{
			(88.0 - 7.0*sqrt6) / 360.0, (296.0 - 169.0*sqrt6) / 1800.0, (-2.0 + 3.0*sqrt6) / 225.0,
			(296.0 + 169.0*sqrt6) / 1800.0, (88.0 + 7.0*sqrt6) / 360.0, (-2.0 - 3.0*sqrt6) / 225.0,
			(16.0 - sqrt6) / 36.0, (16.0 + sqrt6) / 36.0, 1.0 / 9.0,
		}),
		B:     mat.NewVecDense(3, []float64{(16.0 - sqrt6) / 36.0, (16.0 + sqrt6) / 36.0, 1.0 / 9.0}),
		C:     mat.NewVecDense(3, []float64{(4.0 - sqrt6) / 10.0, (4.0 + sqrt6) / 10.0, 1.0}),
		Order: 5,
	}
}

func gaussLegendre63() Tableau {
	return Tableau{
		A: mat.NewDense(3, 3, []float64{
			5.0 / 36.0, 2.0/9.0 - sqrt15/15.0, 5.0/36.0 - sqrt15/30.0,
			5.0/36.0 + sqrt15/24.0, 2.0 / 9.0, 5.0/36.0 - sqrt15/24.0,
			5.0/36.0 + sqrt15/30.0, 2.0/9.0 + sqrt15/15.0, 5.0 / 36.0,
		}),
		B:     mat.NewVecDense(3, []float64{5.0 / 18.0, 4.0 / 9.0, 5.0 / 18.0}),
		C:     mat.NewVecDense(3, []float64{0.5 - sqrt15/10.0, 0.5, 0.5 + sqrt15/10.0}),
		Order: 6,
	}
}

func lobattoIIIA65() Tableau {
	a1 := 11.0 / 120.0
	a2 := 25.0 / 120.0
	a3 := sqrt5 / 120.0
	a4 := 1.0 / 120.0

	return Tableau{
		A: mat.NewDense(4, 4, []float64{
			0.0, 0.0, 0.0, 0.0,
			a1 + a3, a2 - a3, a2 - 13.0*a3, -a4 + a3,
			a1 - a3, a2 + 13.0*a3, a2 + a3, -a4 - a3,
			1.0 / 12.0, 5.0 / 12.0, 5.0 / 12.0, 1.0 / 12.0,
		}),
		B:     mat.NewVecDense(4, []float64{1.0 / 12.0, 5.0 / 12.0, 5.0 / 12.0, 1.0 / 12.0}),
		C:     mat.NewVecDense(4, []float64{0.0, 0.5 - sqrt5/10.0, 0.5 + sqrt5/10.0, 1.0}),
		Order: 6,
	}
}

func lobattoIIIC65() Tableau {
	a1 := 1.0 / 12.0
	a2 := sqrt5 / 12.0
	a3 := 0.25
	a4 := 1.0 / 6.0
	a5 := sqrt5 / 60.0

	return Tableau{
		A: mat.NewDense(4, 4, []float64{
			a1, -a2, a2, -a1,
			a1, a3, a4 - 7.0*a5, a5,
			a1, a4 + 7.0*a5, a3, -a5,
			a1, 5.0 * a1, 5.0 * a1, a1,
		}),
		B:     mat.NewVecDense(4, []float64{a1, 5.0 * a1, 5.0 * a1, a1}),
		C:     mat.NewVecDense(4, []float64{0.0, 0.5 - sqrt5/10.0, 0.5 + sqrt5/10.0, 1.0}),
		Order: 6,
	}
}
