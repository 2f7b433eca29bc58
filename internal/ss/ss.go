// Package ss implements continuous-time linear state-space blocks
//
//	ẋ = A·x + B·u
//	y  = C·x + D·u
//
// advanced by a pluggable solver one signal at a time. The realization of a
// transfer function in controllable canonical form lives in this package as
// well, so a plant written as num/den becomes an executable block.
package ss

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/matheuswhite/aule/internal/signal"
	"github.com/matheuswhite/aule/internal/solver"
)

// StateSpace is a SISO linear system in state-space form. It latches each
// input so the solver's staged derivative evaluations see a constant u over
// the step (zero-order hold).
type StateSpace struct {
	a *mat.Dense
	b *mat.VecDense
	c *mat.VecDense
	d float64

	state   *mat.VecDense
	initial []float64
	input   float64

	method solver.Solver

	last      float64
	hasOutput bool
}

// New builds a state-space block and checks that the matrix dimensions
// agree: A must be n×n and B and C must have n elements. A zero-dimensional
// system (pure gain D) is allowed with nil A, B, C.
func New(a *mat.Dense, b, c *mat.VecDense, d float64, method solver.Solver) (*StateSpace, error) {
	n := 0
	if a != nil {
		r, cols := a.Dims()
		if r != cols {
			return nil, fmt.Errorf("ss: state matrix must be square, got %dx%d", r, cols)
		}
		n = r
	}
	bl, cl := 0, 0
	if b != nil {
		bl = b.Len()
	}
	if c != nil {
		cl = c.Len()
	}
	if bl != n || cl != n {
		return nil, fmt.Errorf("ss: dimension mismatch: A is %dx%d, B has %d, C has %d", n, n, bl, cl)
	}
	s := &StateSpace{a: a, b: b, c: c, d: d, method: method}
	if n > 0 {
		s.state = mat.NewVecDense(n, nil)
	}
	return s, nil
}

// WithInitialState seeds the state vector used at construction and restored
// by Reset.
func (s *StateSpace) WithInitialState(x0 []float64) (*StateSpace, error) {
	if len(x0) != s.Order() {
		return nil, fmt.Errorf("ss: initial state has %d elements, want %d", len(x0), s.Order())
	}
	s.initial = append([]float64(nil), x0...)
	if s.state != nil {
		copy(s.state.RawVector().Data, x0)
	}
	return s, nil
}

// Order is the number of state variables.
func (s *StateSpace) Order() int {
	if s.state == nil {
		return 0
	}
	return s.state.Len()
}

// Derivative evaluates ẋ = A·x + B·u with the currently latched input. The
// solver calls this at its stage points.
func (s *StateSpace) Derivative(x *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(x.Len(), nil)
	out.MulVec(s.a, x)
	out.AddScaledVec(out, s.input, s.b)
	return out
}

// Output latches the input, integrates the state across the signal's step,
// and emits y = C·x + D·u with the input's annotation.
func (s *StateSpace) Output(in signal.Signal[float64, signal.Continuous]) signal.Signal[float64, signal.Continuous] {
	s.input = in.Value

	y := s.d * in.Value
	if s.state != nil {
		s.state = s.method.Integrate(s.state, in.Delta.Dt, s)
		y += mat.Dot(s.c, s.state)
	}

	s.last = y
	s.hasOutput = true
	return in.Replace(y)
}

func (s *StateSpace) LastOutput() (float64, bool) {
	return s.last, s.hasOutput
}

// Reset restores the initial state (zero if none was given) and clears the
// latched input and output.
func (s *StateSpace) Reset() {
	if s.state != nil {
		clear(s.state.RawVector().Data)
		if s.initial != nil {
			copy(s.state.RawVector().Data, s.initial)
		}
	}
	s.input = 0
	s.last = 0
	s.hasOutput = false
}

// Snapshot copies the internal state so a caller can roll the block forward
// speculatively and put it back. Predictive controllers rely on this.
func (s *StateSpace) Snapshot() []float64 {
	if s.state == nil {
		return nil
	}
	return append([]float64(nil), s.state.RawVector().Data...)
}

// Restore overwrites the state with a snapshot taken earlier.
func (s *StateSpace) Restore(x []float64) error {
	if len(x) != s.Order() {
		return fmt.Errorf("ss: snapshot has %d elements, want %d", len(x), s.Order())
	}
	if s.state != nil {
		copy(s.state.RawVector().Data, x)
	}
	return nil
}

// State returns a copy of the current state vector.
func (s *StateSpace) State() []float64 { return s.Snapshot() }

func (s *StateSpace) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "order %d system", s.Order())
	if s.Order() > 0 {
		fmt.Fprintf(&sb, "\nA = %v\nB = %v\nC = %v",
			mat.Formatted(s.a, mat.Prefix("    ")),
			mat.Formatted(s.b.T()),
			mat.Formatted(s.c.T()))
	}
	fmt.Fprintf(&sb, "\nD = %g", s.d)
	return sb.String()
}
