// Package poly implements dense polynomial arithmetic over float64
// coefficients, ordered highest degree first. Polynomials are normalized on
// construction: leading zero coefficients are stripped, and the zero
// polynomial is the empty coefficient sequence with degree -1.
package poly

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Polynomial is an immutable dense polynomial. The zero value is the zero
// polynomial.
type Polynomial struct {
	coeff []float64
}

// New builds a normalized polynomial from coefficients, highest degree
// first.
func New(coeff ...float64) Polynomial {
	i := 0
	for i < len(coeff) && coeff[i] == 0 {
		i++
	}
	out := make([]float64, len(coeff)-i)
	copy(out, coeff[i:])
	return Polynomial{coeff: out}
}

// Zero is the additive identity.
func Zero() Polynomial { return Polynomial{} }

// One is the multiplicative identity.
func One() Polynomial { return New(1) }

// S is the Laplace variable s, for building transfer functions
// algebraically.
func S() Polynomial { return New(1, 0) }

// Degree is len(coeff)-1, or -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p.coeff) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.coeff) == 0 }

// Coeff returns the coefficient sequence, highest degree first. The slice
// must not be modified.
func (p Polynomial) Coeff() []float64 { return p.coeff }

// Lead returns the leading coefficient, or 0 for the zero polynomial.
func (p Polynomial) Lead() float64 {
	if len(p.coeff) == 0 {
		return 0
	}
	return p.coeff[0]
}

// Eval evaluates the polynomial at x by Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	acc := 0.0
	for _, c := range p.coeff {
		acc = acc*x + c
	}
	return acc
}

// Add combines coefficient-wise, aligning on the lowest-degree end.
func (p Polynomial) Add(q Polynomial) Polynomial {
	if p.IsZero() {
		return q
	}
	if q.IsZero() {
		return p
	}
	n := max(len(p.coeff), len(q.coeff))
	out := make([]float64, n)
	for i := 1; i <= n; i++ {
		var c float64
		if i <= len(p.coeff) {
			c += p.coeff[len(p.coeff)-i]
		}
		if i <= len(q.coeff) {
			c += q.coeff[len(q.coeff)-i]
		}
		out[n-i] = c
	}
	return New(out...)
}

// Sub subtracts q from p.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Neg())
}

// Neg flips the sign of every coefficient.
func (p Polynomial) Neg() Polynomial {
	out := make([]float64, len(p.coeff))
	for i, c := range p.coeff {
		out[i] = -c
	}
	return Polynomial{coeff: out}
}

// Mul is the full convolution of the coefficient sequences. Multiplying by
// the zero polynomial yields the zero polynomial.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero()
	}
	out := make([]float64, len(p.coeff)+len(q.coeff)-1)
	for i, a := range p.coeff {
		for j, b := range q.coeff {
			out[i+j] += a * b
		}
	}
	return New(out...)
}

// Scale multiplies every coefficient by k.
func (p Polynomial) Scale(k float64) Polynomial {
	out := make([]float64, len(p.coeff))
	for i, c := range p.coeff {
		out[i] = c * k
	}
	return New(out...)
}

// Pow is repeated multiplication; Pow(0) is the multiplicative identity.
func (p Polynomial) Pow(exp int) Polynomial {
	switch exp {
	case 0:
		return One()
	case 1:
		return p
	}
	out := p
	for i := 1; i < exp; i++ {
		out = out.Mul(p)
	}
	return out
}

// Companion builds the controllable-canonical companion matrix of a monic-
// normalized polynomial: ones on the superdiagonal and the negated trailing
// coefficients, reversed, in the last row. Degree must be at least 1.
func (p Polynomial) Companion() *mat.Dense {
	n := p.Degree()
	if n < 1 {
		return nil
	}
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		a.Set(i, i+1, 1)
	}
	for j := 0; j < n; j++ {
		a.Set(n-1, j, -p.coeff[n-j])
	}
	return a
}

func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	degree := p.Degree()
	terms := make([]string, 0, len(p.coeff))
	for i, c := range p.coeff {
		switch exp := degree - i; exp {
		case 0:
			terms = append(terms, fmt.Sprintf("%g", c))
		case 1:
			terms = append(terms, fmt.Sprintf("%g*s", c))
		default:
			terms = append(terms, fmt.Sprintf("%g*s^%d", c, exp))
		}
	}
	return strings.Join(terms, " + ")
}
