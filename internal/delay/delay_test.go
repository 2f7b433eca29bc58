package delay_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/matheuswhite/aule/internal/delay"
	"github.com/matheuswhite/aule/internal/signal"
)

var _ = Describe("Delay", func() {
	It("rejects non-positive durations", func() {
		_, err := delay.New[signal.Continuous](0)
		Expect(err).To(HaveOccurred())
		_, err = delay.New[signal.Continuous](-time.Second)
		Expect(err).To(HaveOccurred())
	})

	It("emits zero until the first input arrives", func() {
		clock, err := signal.NewContinuousClock(1.0, 3.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())

		var outputs []float64
		var deltas []time.Duration
		for tick := range clock.Ticks() {
			out := d.Output(signal.Map(tick, func(struct{}) float64 { return 1.0 }))
			outputs = append(outputs, out.Value)
			deltas = append(deltas, out.Delta.Dt)
		}

		Expect(outputs).To(Equal([]float64{0.0, 0.0, 1.0}))
		Expect(deltas[2]).To(Equal(time.Second))
	})

	It("interpolates when the step is halved mid-run", func() {
		clock, err := signal.NewContinuousClock(1.0, 6.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())

		var inputs []signal.Signal[float64, signal.Continuous]
		for i := 0; i < 3; i++ {
			tick, ok := clock.Next()
			Expect(ok).To(BeTrue())
			inputs = append(inputs, signal.Map(tick, func(struct{}) float64 { return float64(i + 1) }))
		}
		Expect(clock.SetStep(500 * time.Millisecond)).To(Succeed())
		for i := 0; i < 6; i++ {
			tick, ok := clock.Next()
			Expect(ok).To(BeTrue())
			inputs = append(inputs, signal.Map(tick, func(struct{}) float64 { return float64(i + 4) }))
		}

		var outputs []float64
		for _, in := range inputs {
			outputs = append(outputs, d.Output(in).Value)
		}

		Expect(outputs).To(Equal([]float64{0.0, 0.0, 1.0, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0}))
	})

	It("interpolates across a step larger than the delay", func() {
		clock, err := signal.NewContinuousClock(5.0, 10.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())

		feed := func(v float64) float64 {
			tick, ok := clock.Next()
			Expect(ok).To(BeTrue())
			return d.Output(signal.Map(tick, func(struct{}) float64 { return v })).Value
		}

		var outputs []float64
		outputs = append(outputs, feed(1.0))
		Expect(clock.SetStep(time.Second)).To(Succeed())
		outputs = append(outputs, feed(1.0), feed(1.0))
		Expect(clock.SetStep(500 * time.Millisecond)).To(Succeed())
		for i := 0; i < 6; i++ {
			outputs = append(outputs, feed(float64(i+2)))
		}

		Expect(outputs).To(Equal([]float64{0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 1.0, 2.0, 3.0}))
	})

	It("ramps from a configured initial value", func() {
		clock, err := signal.NewContinuousClock(1.0, 4.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())
		d.WithInitialValue(8.0)

		feed := func(v float64) float64 {
			tick, ok := clock.Next()
			Expect(ok).To(BeTrue())
			return d.Output(signal.Map(tick, func(struct{}) float64 { return v })).Value
		}

		Expect(feed(2.0)).To(Equal(8.0))
		Expect(clock.SetStep(1500 * time.Millisecond)).To(Succeed())
		// At t=2.5s the output sits halfway between the seed at t=2s and
		// the first input arriving at t=3s.
		Expect(feed(2.0)).To(Equal(5.0))
		Expect(clock.SetStep(500 * time.Millisecond)).To(Succeed())
		Expect(feed(2.0)).To(Equal(2.0))
	})

	It("tracks the last output and replays after reset", func() {
		clock, err := signal.NewContinuousClock(1.0, 3.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())

		_, ok := d.LastOutput()
		Expect(ok).To(BeFalse())

		var first []float64
		for tick := range clock.Ticks() {
			first = append(first, d.Output(signal.Map(tick, func(struct{}) float64 { return 1.0 })).Value)
		}
		last, ok := d.LastOutput()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(first[len(first)-1]))

		d.Reset()
		clock.Reset()
		_, ok = d.LastOutput()
		Expect(ok).To(BeFalse())

		var second []float64
		for tick := range clock.Ticks() {
			second = append(second, d.Output(signal.Map(tick, func(struct{}) float64 { return 1.0 })).Value)
		}
		Expect(second).To(Equal(first))
	})

	It("averages the bracketing steps into the output annotation", func() {
		clock, err := signal.NewContinuousClock(5.0, 5.0)
		Expect(err).NotTo(HaveOccurred())
		d, err := delay.New[signal.Continuous](2 * time.Second)
		Expect(err).NotTo(HaveOccurred())

		tick, ok := clock.Next()
		Expect(ok).To(BeTrue())
		out := d.Output(signal.Map(tick, func(struct{}) float64 { return 1.0 }))

		// Left bracket is the seed with dt equal to the delay, right
		// bracket the 5s input.
		Expect(out.Delta.Dt).To(Equal(3500 * time.Millisecond))
	})
})
