package tf

import (
	"fmt"

	"github.com/matheuswhite/aule/internal/signal"
)

// DiscreteTransferFunction executes a discrete transfer function in powers
// of z⁻¹ as a difference equation:
//
//	a₀·y[k] = b₀·u[k] + b₁·u[k-1] + ... - a₁·y[k-1] - a₂·y[k-2] - ...
//
// Coefficients are given in ascending powers of z⁻¹. The block runs in the
// Discrete time domain.
type DiscreteTransferFunction struct {
	num []float64
	den []float64

	initialInputs  []float64
	initialOutputs []float64

	lastInputs  []float64
	lastOutputs []float64
	last        float64
	hasOutput   bool
}

// NewDiscrete builds the difference-equation block. It fails if the
// denominator is empty, its leading coefficient is zero, or the numerator
// is longer than the denominator.
func NewDiscrete(numerator, denominator []float64) (*DiscreteTransferFunction, error) {
	if len(denominator) == 0 {
		return nil, ErrEmptyDenominator
	}
	if denominator[0] == 0 {
		return nil, fmt.Errorf("tf: leading denominator coefficient cannot be zero")
	}
	if len(numerator) > len(denominator) {
		return nil, ErrImproper
	}
	d := &DiscreteTransferFunction{
		num:         append([]float64(nil), numerator...),
		den:         append([]float64(nil), denominator...),
		lastInputs:  make([]float64, len(numerator)),
		lastOutputs: make([]float64, len(denominator)-1),
	}
	return d, nil
}

// WithInitialConditions seeds the input and output histories used by the
// first steps (and restored by Reset). Lengths must match the numerator
// length and the denominator length minus one.
func (d *DiscreteTransferFunction) WithInitialConditions(inputs, outputs []float64) (*DiscreteTransferFunction, error) {
	if len(inputs) != len(d.lastInputs) {
		return nil, fmt.Errorf("tf: initial inputs length %d, want %d", len(inputs), len(d.lastInputs))
	}
	if len(outputs) != len(d.lastOutputs) {
		return nil, fmt.Errorf("tf: initial outputs length %d, want %d", len(outputs), len(d.lastOutputs))
	}
	d.initialInputs = append([]float64(nil), inputs...)
	d.initialOutputs = append([]float64(nil), outputs...)
	copy(d.lastInputs, inputs)
	copy(d.lastOutputs, outputs)
	return d, nil
}

func (d *DiscreteTransferFunction) Output(in signal.Signal[float64, signal.Discrete]) signal.Signal[float64, signal.Discrete] {
	if len(d.lastInputs) > 0 {
		copy(d.lastInputs[1:], d.lastInputs)
		d.lastInputs[0] = in.Value
	}

	a0 := d.den[0]
	y := 0.0
	for i, b := range d.num {
		y += b / a0 * d.lastInputs[i]
	}
	for i, a := range d.den[1:] {
		y -= a / a0 * d.lastOutputs[i]
	}

	if len(d.lastOutputs) > 0 {
		copy(d.lastOutputs[1:], d.lastOutputs)
		d.lastOutputs[0] = y
	}
	d.last = y
	d.hasOutput = true

	return in.Replace(y)
}

func (d *DiscreteTransferFunction) LastOutput() (float64, bool) {
	return d.last, d.hasOutput
}

func (d *DiscreteTransferFunction) Reset() {
	if d.initialInputs != nil {
		copy(d.lastInputs, d.initialInputs)
		copy(d.lastOutputs, d.initialOutputs)
	} else {
		clear(d.lastInputs)
		clear(d.lastOutputs)
	}
	d.last = 0
	d.hasOutput = false
}
