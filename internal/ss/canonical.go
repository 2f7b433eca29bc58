package ss

import (
	"gonum.org/v1/gonum/mat"

	"github.com/matheuswhite/aule/internal/solver"
	"github.com/matheuswhite/aule/internal/tf"
)

// FromTransferFunction realizes num/den in controllable canonical form.
// Both polynomials are normalized by the denominator's leading coefficient;
// the numerator is left-padded to the denominator's length, its leading
// entry becomes the direct feedthrough D, and the rest, reversed, becomes C.
// A is the denominator's companion matrix and B is the last unit vector.
// A degree-zero denominator degenerates to a pure gain.
func FromTransferFunction(t *tf.TransferFunction, method solver.Solver) (*StateSpace, error) {
	num := t.Numerator()
	den := t.Denominator()
	n := den.Degree()

	lead := den.Lead()
	if n == 0 {
		gain := 0.0
		if !num.IsZero() {
			gain = num.Lead() / lead
		}
		return New(nil, nil, nil, gain, method)
	}

	monic := den.Scale(1 / lead)

	padded := make([]float64, n+1)
	for i, c := range num.Coeff() {
		padded[n+1-len(num.Coeff())+i] = c / lead
	}

	a := monic.Companion()

	b := mat.NewVecDense(n, nil)
	b.SetVec(n-1, 1)

	c := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		c.SetVec(i, padded[n-i])
	}

	return New(a, b, c, padded[0], method)
}
