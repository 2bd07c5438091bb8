// Package problems provides the built-in ODE systems used by the solver
// driver and the CLI.
package problems

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is a right-hand side y' = f(t, y) with its Jacobian df/dy. The
// Jacobian is only consulted by the implicit corrector; explicit methods
// never call it.
type System interface {
	Dim() int
	Fun(t float64, y *mat.VecDense) *mat.VecDense
	Jac(t float64, y *mat.VecDense) *mat.Dense
	// InitialState is the starting point used by the demo runs.
	InitialState() *mat.VecDense
}

var builders = map[string]func() System{
	"brusselator": func() System { return NewBrusselator() },
	"decay":       func() System { return NewDecay() },
	"vanderpol":   func() System { return NewVanDerPol() },
}

// New constructs a built-in system by name.
func New(name string) (System, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return build(), nil
}

// Names lists the built-in systems.
func Names() []string {
	return []string{"brusselator", "decay", "vanderpol"}
}
