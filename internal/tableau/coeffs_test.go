package tableau

import (
	"math"
	"testing"
)

func TestFor_AllBuiltinsConsistent(t *testing.T) {
	for _, m := range Methods() {
		tab := For(m)
		if !tab.IsConsistent() {
			t.Errorf("%s: inconsistent tableau", m)
		}
		if tab.Name != m.String() {
			t.Errorf("%s: tableau named %q", m, tab.Name)
		}
		if tab.DT <= 0 {
			t.Errorf("%s: default step size %f", m, tab.DT)
		}
	}
}

func TestFor_RowSums(t *testing.T) {
	for _, m := range Methods() {
		tab := For(m)
		if bad := RowSumMismatches(tab); len(bad) != 0 {
			// Soft invariant: worth surfacing, not worth rejecting.
			t.Errorf("%s: abscissae differ from row sums at stages %v", m, bad)
		}
	}
}

func TestFor_EmbeddedPairs(t *testing.T) {
	for _, m := range Methods() {
		tab := For(m)
		if tab.Order2 > 0 {
			if tab.B2 == nil {
				t.Errorf("%s: order2 = %d but no second weight vector", m, tab.Order2)
				continue
			}
			if tab.B2.Len() != tab.B.Len() {
				t.Errorf("%s: len(b2) = %d, len(b) = %d", m, tab.B2.Len(), tab.B.Len())
			}
		} else if tab.B2 != nil {
			t.Errorf("%s: second weight vector present without an embedded order", m)
		}
	}
}

func TestFor_WeightsSumToOne(t *testing.T) {
	for _, m := range Methods() {
		tab := For(m)
		sum := 0.0
		for i := 0; i < tab.B.Len(); i++ {
			sum += tab.B.AtVec(i)
		}
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("%s: weights sum to %.16f", m, sum)
		}
	}
}

func TestFor_RungeKutta4(t *testing.T) {
	tab := For(RungeKutta4)

	if tab.Order != 4 || tab.Order2 != 0 {
		t.Errorf("orders %d/%d, want 4/0", tab.Order, tab.Order2)
	}
	wantB := []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0}
	wantC := []float64{0.0, 0.5, 0.5, 1.0}
	for i := range wantB {
		if tab.B.AtVec(i) != wantB[i] {
			t.Errorf("b[%d] = %v, want %v", i, tab.B.AtVec(i), wantB[i])
		}
		if tab.C.AtVec(i) != wantC[i] {
			t.Errorf("c[%d] = %v, want %v", i, tab.C.AtVec(i), wantC[i])
		}
	}
}

func TestFor_DormandPrince54(t *testing.T) {
	tab := For(DormandPrince54)

	if tab.Order != 5 || tab.Order2 != 4 {
		t.Errorf("orders %d/%d, want 5/4", tab.Order, tab.Order2)
	}
	if !tab.FSAL {
		t.Error("DORMAND_PRINCE_54 is first-same-as-last")
	}
	if got := tab.A.At(6, 1); got != 0.0 {
		t.Errorf("A[6][1] = %v, want 0", got)
	}
	if got := tab.B.AtVec(6); got != 0.0 {
		t.Errorf("b[6] = %v, want 0", got)
	}
	// FSAL structure: the last row of A repeats b.
	for j := 0; j < tab.Stages(); j++ {
		if tab.A.At(6, j) != tab.B.AtVec(j) {
			t.Errorf("A[6][%d] = %v, want b[%d] = %v", j, tab.A.At(6, j), j, tab.B.AtVec(j))
		}
	}
}

func TestFor_GaussLegendre42(t *testing.T) {
	tab := For(GaussLegendre42)

	sum := 0.0
	for i := 0; i < tab.B.Len(); i++ {
		sum += tab.B.AtVec(i)
	}
	if sum != 1.0 {
		t.Errorf("weights sum to %v, want 1", sum)
	}

	// Fully implicit: A must not be strictly lower triangular.
	if tab.A.At(0, 1) == 0.0 || tab.A.At(0, 0) == 0.0 {
		t.Error("Gauss-Legendre coupling matrix should be full")
	}

	// Abscissae are built from sqrt(3), not decimal approximations.
	want := 0.5 - math.Sqrt(3.0)/6.0
	if tab.C.AtVec(0) != want {
		t.Errorf("c[0] = %v, want %v", tab.C.AtVec(0), want)
	}
}

func TestFor_UnknownMethod(t *testing.T) {
	for _, m := range []Method{MethodUnknown, Method(999)} {
		tab := For(m)
		if tab.IsConsistent() {
			t.Errorf("method %d: expected degenerate tableau", m)
		}
		if tab.Stages() != 0 {
			t.Errorf("method %d: expected 0 stages, got %d", m, tab.Stages())
		}
	}
}

func TestFor_FreshCopies(t *testing.T) {
	a := For(RungeKutta4)
	b := For(RungeKutta4)
	a.B.SetVec(0, 42.0)
	if b.B.AtVec(0) == 42.0 {
		t.Error("tableaux must not share coefficient storage")
	}
}

func TestRowSumMismatches_Detects(t *testing.T) {
	tab := For(RungeKutta4)
	tab.C.SetVec(1, 0.75)
	bad := RowSumMismatches(tab)
	if len(bad) != 1 || bad[0] != 1 {
		t.Errorf("expected stage 1 flagged, got %v", bad)
	}
}
