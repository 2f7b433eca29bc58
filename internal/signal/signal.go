package signal

import "time"

// Float constrains the numeric value types signal arithmetic is defined
// over.
type Float interface {
	~float32 | ~float64
}

// Signal is a value paired with its time annotation. Blocks consume and
// produce signals; the annotation travels with the value so no block has to
// assume a global clock.
type Signal[V any, D Domain] struct {
	Value V
	Delta Delta
}

// Tick is the empty signal a Clock emits; input generators turn ticks into
// values.
type Tick[D Domain] = Signal[struct{}, D]

// New builds a signal from a value and a step size, with zero elapsed time.
func New[V any, D Domain](value V, dt time.Duration) Signal[V, D] {
	return Signal[V, D]{Value: value, Delta: Delta{Dt: dt, Elapsed: dt}}
}

// FromDelta builds a signal carrying an existing annotation.
func FromDelta[V any, D Domain](value V, delta Delta) Signal[V, D] {
	return Signal[V, D]{Value: value, Delta: delta}
}

// Replace returns the signal with its value swapped and the annotation kept.
func (s Signal[V, D]) Replace(value V) Signal[V, D] {
	return Signal[V, D]{Value: value, Delta: s.Delta}
}

// Map transforms the value in place, keeping the annotation.
func (s Signal[V, D]) Map(f func(V) V) Signal[V, D] {
	return Signal[V, D]{Value: f(s.Value), Delta: s.Delta}
}

// Map transforms a signal's value to a different type, keeping the
// annotation.
func Map[U, V any, D Domain](s Signal[V, D], f func(V) U) Signal[U, D] {
	return Signal[U, D]{Value: f(s.Value), Delta: s.Delta}
}

// Pair packs two values produced on parallel paths.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Pack zips two signals into one, merging their annotations under the
// domain's policy.
func Pack[A, B any, D Domain](a Signal[A, D], b Signal[B, D]) Signal[Pair[A, B], D] {
	var d D
	return Signal[Pair[A, B], D]{
		Value: Pair[A, B]{First: a.Value, Second: b.Value},
		Delta: d.Merge(a.Delta, b.Delta),
	}
}

// Unpack splits a packed signal; both halves carry the packed annotation.
func Unpack[A, B any, D Domain](s Signal[Pair[A, B], D]) (Signal[A, D], Signal[B, D]) {
	return Signal[A, D]{Value: s.Value.First, Delta: s.Delta},
		Signal[B, D]{Value: s.Value.Second, Delta: s.Delta}
}

// Add combines two signals elementwise, merging their annotations.
func Add[V Float, D Domain](a, b Signal[V, D]) Signal[V, D] {
	var d D
	return Signal[V, D]{Value: a.Value + b.Value, Delta: d.Merge(a.Delta, b.Delta)}
}

// Sub subtracts b from a, merging their annotations.
func Sub[V Float, D Domain](a, b Signal[V, D]) Signal[V, D] {
	var d D
	return Signal[V, D]{Value: a.Value - b.Value, Delta: d.Merge(a.Delta, b.Delta)}
}

// Mul multiplies two signals, merging their annotations.
func Mul[V Float, D Domain](a, b Signal[V, D]) Signal[V, D] {
	var d D
	return Signal[V, D]{Value: a.Value * b.Value, Delta: d.Merge(a.Delta, b.Delta)}
}

// Div divides a by b, merging their annotations.
func Div[V Float, D Domain](a, b Signal[V, D]) Signal[V, D] {
	var d D
	return Signal[V, D]{Value: a.Value / b.Value, Delta: d.Merge(a.Delta, b.Delta)}
}

// Neg negates the signal's value.
func Neg[V Float, D Domain](s Signal[V, D]) Signal[V, D] {
	return s.Replace(-s.Value)
}

// Scale multiplies by a bare scalar; the signal's own annotation is kept.
func Scale[V Float, D Domain](s Signal[V, D], k V) Signal[V, D] {
	return s.Replace(s.Value * k)
}

// Offset adds a bare scalar; the signal's own annotation is kept.
func Offset[V Float, D Domain](s Signal[V, D], k V) Signal[V, D] {
	return s.Replace(s.Value + k)
}

// SubMaybe subtracts a possibly-unset previous output, as produced by
// Block.LastOutput. Feedback wiring uses this before the plant has run once.
func SubMaybe[V Float, D Domain](a Signal[V, D], prev V, ok bool) Signal[V, D] {
	if !ok {
		return a
	}
	return a.Replace(a.Value - prev)
}
