package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odekit/internal/newton"
	"github.com/san-kum/odekit/internal/solver"
)

const (
	DefaultProblem    = "brusselator"
	DefaultMethod     = "DORMAND_PRINCE_54"
	DefaultT1         = 10.0
	DefaultTolerance  = 1e-6
	DefaultMinDT      = 1e-12
	DefaultMaxDT      = 1.0
	DefaultNewtonTol  = 1e-10
	DefaultNewtonIter = 25
)

type Config struct {
	Problem   string       `yaml:"problem"`
	Method    string       `yaml:"method"`
	T0        float64      `yaml:"t0"`
	T1        float64      `yaml:"t1"`
	DT        float64      `yaml:"dt"`
	MinDT     float64      `yaml:"min_dt"`
	MaxDT     float64      `yaml:"max_dt"`
	Tolerance float64      `yaml:"tolerance"`
	Newton    NewtonConfig `yaml:"newton"`
}

type NewtonConfig struct {
	Tolerance       float64 `yaml:"tolerance"`
	MaxIterations   int     `yaml:"max_iterations"`
	RefreshJacobian bool    `yaml:"refresh_jacobian"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:   DefaultProblem,
		Method:    DefaultMethod,
		T1:        DefaultT1,
		MinDT:     DefaultMinDT,
		MaxDT:     DefaultMaxDT,
		Tolerance: DefaultTolerance,
		Newton: NewtonConfig{
			Tolerance:       DefaultNewtonTol,
			MaxIterations:   DefaultNewtonIter,
			RefreshJacobian: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalized fills unset numeric fields with the defaults. Presets only pin
// the fields they care about.
func (c *Config) Normalized() *Config {
	out := *c
	if out.Tolerance == 0 {
		out.Tolerance = DefaultTolerance
	}
	if out.MinDT == 0 {
		out.MinDT = DefaultMinDT
	}
	if out.MaxDT == 0 {
		out.MaxDT = DefaultMaxDT
	}
	if out.Newton.Tolerance == 0 {
		out.Newton.Tolerance = DefaultNewtonTol
	}
	if out.Newton.MaxIterations == 0 {
		out.Newton.MaxIterations = DefaultNewtonIter
		out.Newton.RefreshJacobian = true
	}
	return &out
}

// SolverOptions translates the file-level settings into a run configuration,
// corrector options included.
func (c *Config) SolverOptions() solver.Options {
	opts := solver.DefaultOptions()
	opts.Tolerance = c.Tolerance
	opts.InitialDT = c.DT
	opts.MinDT = c.MinDT
	opts.MaxDT = c.MaxDT
	opts.Newton = &newton.Options{
		Tolerance:       c.Newton.Tolerance,
		MaxIterations:   c.Newton.MaxIterations,
		RefreshJacobian: c.Newton.RefreshJacobian,
	}
	return opts
}
