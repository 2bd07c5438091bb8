package problems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// jacobianMatchesFiniteDifferences checks Jac against a central difference
// of Fun, column by column.
func jacobianMatchesFiniteDifferences(t *testing.T, sys System, y *mat.VecDense) {
	t.Helper()

	const h = 1e-6
	n := sys.Dim()
	jac := sys.Jac(0, y)

	for j := 0; j < n; j++ {
		plus := mat.VecDenseCopyOf(y)
		minus := mat.VecDenseCopyOf(y)
		plus.SetVec(j, y.AtVec(j)+h)
		minus.SetVec(j, y.AtVec(j)-h)

		fp := sys.Fun(0, plus)
		fm := sys.Fun(0, minus)
		for i := 0; i < n; i++ {
			fd := (fp.AtVec(i) - fm.AtVec(i)) / (2 * h)
			if math.Abs(fd-jac.At(i, j)) > 1e-5 {
				t.Errorf("J[%d][%d] = %v, finite difference %v", i, j, jac.At(i, j), fd)
			}
		}
	}
}

func TestBrusselator_Jacobian(t *testing.T) {
	sys := NewBrusselator()
	jacobianMatchesFiniteDifferences(t, sys, sys.InitialState())
}

func TestVanDerPol_Jacobian(t *testing.T) {
	sys := NewVanDerPol()
	jacobianMatchesFiniteDifferences(t, sys, sys.InitialState())
}

func TestDecay_Exact(t *testing.T) {
	sys := NewDecay()
	if got := sys.Exact(0); got != sys.Y0 {
		t.Errorf("Exact(0) = %v, want %v", got, sys.Y0)
	}
	if got := sys.Exact(1); math.Abs(got-math.Exp(-1)) > 1e-15 {
		t.Errorf("Exact(1) = %v", got)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		sys, err := New(name)
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if sys.Dim() <= 0 {
			t.Errorf("%q has dimension %d", name, sys.Dim())
		}
	}

	if _, err := New("three_body_ballet"); err == nil {
		t.Error("expected error for unknown problem")
	}
}
