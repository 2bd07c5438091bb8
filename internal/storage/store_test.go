package storage

import (
	"errors"
	"testing"

	"github.com/san-kum/odekit/internal/solver"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func sampleResult() *solver.Result {
	return &solver.Result{
		Times:       []float64{0, 0.05, 0.1},
		States:      [][]float64{{2.0, 2.0}, {1.9, 2.1}, {1.8, 2.2}},
		Steps:       2,
		Evaluations: 8,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save("brusselator", "RADAU_IIA_32", 0, 0.1, 1e-6, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Problem != "brusselator" || meta.Method != "RADAU_IIA_32" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Steps != 2 || meta.Evaluations != 8 {
		t.Errorf("counters mismatch: %+v", meta)
	}

	times, states, err := store.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 3 || len(states) != 3 {
		t.Fatalf("trajectory has %d times, %d states", len(times), len(states))
	}
	if states[2][1] != 2.2 {
		t.Errorf("state round trip lost precision: %v", states[2])
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store lists %d runs", len(runs))
	}

	if _, err := store.Save("decay", "RUNGE_KUTTA_4", 0, 1, 1e-6, sampleResult()); err != nil {
		t.Fatal(err)
	}
	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestWriteTrajectory_SurfacesWriteErrors(t *testing.T) {
	// One short row stays inside the csv writer's buffer until the flush, so
	// a swallowed flush error would report success on a truncated file.
	if err := writeTrajectory(failingWriter{}, sampleResult()); err == nil {
		t.Error("expected the buffered write error to surface")
	}
}

func TestList_MissingDir(t *testing.T) {
	store := New("/nonexistent/odekit-test")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}
