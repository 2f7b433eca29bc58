package control

import (
	"fmt"
	"strconv"

	"github.com/matheuswhite/aule/internal/metrics"
	"github.com/matheuswhite/aule/internal/signal"
)

// PID is the textbook three-term controller. It consumes the loop error and
// produces the control signal. Performance indices can be attached at
// construction; they observe the error (and the control signal, for
// GoodHart) on every step.
type PID[D signal.Domain] struct {
	kp float64
	ki float64
	kd float64

	lastInput float64
	integral  float64

	last      float64
	hasOutput bool

	iae      *metrics.IAE[D]
	ise      *metrics.ISE[D]
	itae     *metrics.ITAE[D]
	goodHart *metrics.GoodHart[D]

	antiWindup bool
	windupMin  float64
	windupMax  float64
}

func NewPID[D signal.Domain](kp, ki, kd float64) *PID[D] {
	return &PID[D]{kp: kp, ki: ki, kd: kd}
}

// WithIAE attaches an integral-of-absolute-error index to the error input.
func (c *PID[D]) WithIAE() *PID[D] {
	c.iae = metrics.NewIAE[D]()
	return c
}

// WithISE attaches an integral-of-squared-error index to the error input.
func (c *PID[D]) WithISE() *PID[D] {
	c.ise = metrics.NewISE[D]()
	return c
}

// WithITAE attaches a time-weighted absolute-error index to the error input.
func (c *PID[D]) WithITAE() *PID[D] {
	c.itae = metrics.NewITAE[D]()
	return c
}

// WithGoodHart attaches a GoodHart index over the error and the produced
// control signal.
func (c *PID[D]) WithGoodHart(alpha1, alpha2, alpha3 float64) *PID[D] {
	c.goodHart = metrics.NewGoodHart[D](alpha1, alpha2, alpha3)
	return c
}

// WithAntiWindup clamps the control signal to [min, max] and freezes the
// integral while the output is saturated, so the integral does not wind up
// against an actuator limit.
func (c *PID[D]) WithAntiWindup(min, max float64) (*PID[D], error) {
	if min > max {
		return nil, fmt.Errorf("control: anti-windup bounds inverted: min %v > max %v", min, max)
	}
	c.antiWindup = true
	c.windupMin = min
	c.windupMax = max
	return c, nil
}

func (c *PID[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	if c.iae != nil {
		c.iae.Output(in)
	}
	if c.ise != nil {
		c.ise.Output(in)
	}
	if c.itae != nil {
		c.itae.Output(in)
	}

	dt := in.Delta.Seconds()
	proportional := in.Value
	integral := c.integral + in.Value*dt
	derivative := (in.Value - c.lastInput) / dt

	u := c.kp*proportional + c.ki*integral + c.kd*derivative
	if c.antiWindup && (u < c.windupMin || u > c.windupMax) {
		u = clamp(u, c.windupMin, c.windupMax)
		integral = c.integral
	}

	out := in.Replace(u)
	c.last = u
	c.hasOutput = true
	c.lastInput = in.Value
	c.integral = integral

	if c.goodHart != nil {
		c.goodHart.Output(signal.Pack(in, out))
	}
	return out
}

func (c *PID[D]) LastOutput() (float64, bool) {
	return c.last, c.hasOutput
}

// Integral exposes the accumulated integral term, mostly for inspection in
// windup scenarios.
func (c *PID[D]) Integral() float64 { return c.integral }

// ClearIntegral zeroes the integral term without touching the rest of the
// controller state.
func (c *PID[D]) ClearIntegral() { c.integral = 0 }

// Gains returns the current proportional, integral, and derivative gains.
func (c *PID[D]) Gains() (kp, ki, kd float64) { return c.kp, c.ki, c.kd }

// SetGains retunes the controller in place.
func (c *PID[D]) SetGains(kp, ki, kd float64) {
	c.kp, c.ki, c.kd = kp, ki, kd
}

// MetricsSummary renders the attached indices, one per line, with N/A for
// indices that were never attached.
func (c *PID[D]) MetricsSummary() string {
	format := func(v float64, attached bool) string {
		if !attached {
			return "N/A"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	var iae, ise, itae, gh float64
	if c.iae != nil {
		iae = c.iae.Value()
	}
	if c.ise != nil {
		ise = c.ise.Value()
	}
	if c.itae != nil {
		itae = c.itae.Value()
	}
	if c.goodHart != nil {
		gh = c.goodHart.Value()
	}
	return fmt.Sprintf("  IAE: %s\n  ISE: %s\n  ITAE: %s\n  GoodHart: %s",
		format(iae, c.iae != nil),
		format(ise, c.ise != nil),
		format(itae, c.itae != nil),
		format(gh, c.goodHart != nil))
}

func (c *PID[D]) Reset() {
	c.lastInput = 0
	c.integral = 0
	c.last = 0
	c.hasOutput = false
	if c.iae != nil {
		c.iae.Reset()
	}
	if c.ise != nil {
		c.ise.Reset()
	}
	if c.itae != nil {
		c.itae.Reset()
	}
	if c.goodHart != nil {
		c.goodHart.Reset()
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
