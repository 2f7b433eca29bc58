// Package solver provides the fixed-step integrators that advance a
// state-space block's state vector. A solver is given the current state, the
// step carried by the incoming signal, and a right-hand-side evaluator; it
// returns the new state. Solvers hold no state of their own and tolerate a
// different dt on every call.
package solver

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// RHS evaluates ẋ = f(x) for a candidate state. For a linear state-space
// block this is A·x + B·u with the block's currently latched input.
type RHS interface {
	Derivative(x *mat.VecDense) *mat.VecDense
}

// Solver advances a state vector by one step.
type Solver interface {
	Integrate(x *mat.VecDense, dt time.Duration, rhs RHS) *mat.VecDense
}

// Euler is the explicit first-order method x' = x + f(x)·dt.
type Euler struct{}

func NewEuler() Euler { return Euler{} }

func (Euler) Integrate(x *mat.VecDense, dt time.Duration, rhs RHS) *mat.VecDense {
	h := dt.Seconds()
	out := mat.NewVecDense(x.Len(), nil)
	out.AddScaledVec(x, h, rhs.Derivative(x))
	return out
}

// RK4 is the classic fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() RK4 { return RK4{} }

func (RK4) Integrate(x *mat.VecDense, dt time.Duration, rhs RHS) *mat.VecDense {
	h := dt.Seconds()
	n := x.Len()

	k1 := rhs.Derivative(x)

	stage := mat.NewVecDense(n, nil)
	stage.AddScaledVec(x, h/2, k1)
	k2 := rhs.Derivative(stage)

	stage.AddScaledVec(x, h/2, k2)
	k3 := rhs.Derivative(stage)

	stage.AddScaledVec(x, h, k3)
	k4 := rhs.Derivative(stage)

	sum := mat.NewVecDense(n, nil)
	sum.AddScaledVec(sum, 1, k1)
	sum.AddScaledVec(sum, 2, k2)
	sum.AddScaledVec(sum, 2, k3)
	sum.AddScaledVec(sum, 1, k4)

	out := mat.NewVecDense(n, nil)
	out.AddScaledVec(x, h/6, sum)
	return out
}
