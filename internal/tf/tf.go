// Package tf implements transfer functions as ratios of polynomials. The
// continuous-time [TransferFunction] is a symbolic numerator/denominator
// pair realized by the ss package; the discrete-time [DiscreteTransferFunction]
// is directly executable as a difference-equation block.
package tf

import (
	"errors"
	"fmt"

	"github.com/matheuswhite/aule/internal/poly"
)

var (
	// ErrEmptyDenominator is returned when the denominator normalizes to
	// the zero polynomial.
	ErrEmptyDenominator = errors.New("tf: denominator cannot be empty")
	// ErrImproper is returned when the numerator degree exceeds the
	// denominator degree.
	ErrImproper = errors.New("tf: denominator must have degree greater than or equal to numerator")
)

// TransferFunction is a proper ratio of two polynomials in s.
type TransferFunction struct {
	num poly.Polynomial
	den poly.Polynomial
}

// New builds a transfer function from coefficient slices, highest degree
// first. It fails if the denominator is empty or the ratio is improper.
func New(numerator, denominator []float64) (*TransferFunction, error) {
	return FromPolynomials(poly.New(numerator...), poly.New(denominator...))
}

// FromPolynomials is the symbolic division num/den: it preserves the pair
// rather than performing polynomial long division.
func FromPolynomials(num, den poly.Polynomial) (*TransferFunction, error) {
	if den.IsZero() {
		return nil, ErrEmptyDenominator
	}
	if num.Degree() > den.Degree() {
		return nil, ErrImproper
	}
	return &TransferFunction{num: num, den: den}, nil
}

// Numerator returns the numerator polynomial.
func (tf *TransferFunction) Numerator() poly.Polynomial { return tf.num }

// Denominator returns the denominator polynomial.
func (tf *TransferFunction) Denominator() poly.Polynomial { return tf.den }

func (tf *TransferFunction) String() string {
	return fmt.Sprintf("(%s) / (%s)", tf.num, tf.den)
}
