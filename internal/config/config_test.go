package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Problem != "brusselator" {
		t.Errorf("expected problem brusselator, got %s", cfg.Problem)
	}
	if cfg.T1 <= cfg.T0 {
		t.Error("time span should be non-empty")
	}
	if cfg.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.Newton.MaxIterations <= 0 {
		t.Error("newton iteration limit should be positive")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Method = "RADAU_IIA_32"
	cfg.T1 = 42.0
	cfg.Newton.RefreshJacobian = false

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Method != "RADAU_IIA_32" || got.T1 != 42.0 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Newton.RefreshJacobian {
		t.Error("round trip lost newton settings")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("vanderpol", "stiff")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Method != "RADAU_IIA_54" {
		t.Errorf("expected Radau method for the stiff preset, got %s", cfg.Method)
	}

	if GetPreset("vanderpol", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "stiff") != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestListPresets(t *testing.T) {
	if names := ListPresets("brusselator"); len(names) == 0 {
		t.Error("expected presets for brusselator")
	}
	if names := ListPresets("nonexistent"); names != nil {
		t.Errorf("expected nil, got %v", names)
	}
}

func TestNormalized(t *testing.T) {
	cfg := GetPreset("decay", "quick").Normalized()
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("tolerance not defaulted: %v", cfg.Tolerance)
	}
	if cfg.MaxDT != DefaultMaxDT || cfg.MinDT != DefaultMinDT {
		t.Error("step bounds not defaulted")
	}
	if cfg.Newton.MaxIterations != DefaultNewtonIter {
		t.Error("newton settings not defaulted")
	}
	if cfg.DT != 0.05 {
		t.Errorf("preset field overwritten: dt = %v", cfg.DT)
	}
}

func TestSolverOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-8
	cfg.DT = 0.25

	opts := cfg.SolverOptions()
	if opts.Tolerance != 1e-8 || opts.InitialDT != 0.25 {
		t.Errorf("options not carried over: %+v", opts)
	}
	if opts.Newton == nil {
		t.Fatal("corrector options should be attached")
	}
	if !opts.Verify() {
		t.Error("config-derived options should verify")
	}
}
