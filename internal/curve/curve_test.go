package curve_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/curvelab/lissalab/internal/curve"
)

var _ = Describe("Params", func() {
	It("accepts the defaults", func() {
		Expect(curve.DefaultParams().Validate()).To(Succeed())
	})

	DescribeTable("rejects out-of-domain fields",
		func(mutate func(*curve.Params)) {
			p := curve.DefaultParams()
			mutate(&p)
			Expect(p.Validate()).To(HaveOccurred())
		},
		Entry("zero freq_x", func(p *curve.Params) { p.FreqX = 0 }),
		Entry("negative freq_y", func(p *curve.Params) { p.FreqY = -2 }),
		Entry("zero amp_x", func(p *curve.Params) { p.AmpX = 0 }),
		Entry("negative amp_y", func(p *curve.Params) { p.AmpY = -1 }),
		Entry("resolution below two", func(p *curve.Params) { p.Resolution = 1 }),
		Entry("zero cycles", func(p *curve.Params) { p.Cycles = 0 }),
	)
})

var _ = Describe("Sample", func() {
	params := curve.Params{
		FreqX: 3, FreqY: 2,
		AmpX: 1, AmpY: 1,
		PhaseX: 0, PhaseY: math.Pi / 2,
		Resolution: 500, Cycles: 1,
	}

	It("returns exactly Resolution points", func() {
		Expect(curve.Sample(params)).To(HaveLen(500))
	})

	It("evaluates the parametric definition at every sampled t", func() {
		for _, pt := range curve.Sample(params) {
			Expect(pt.X).To(BeNumerically("~", math.Sin(3*pt.T), 1e-12))
			Expect(pt.Y).To(BeNumerically("~", math.Sin(2*pt.T+math.Pi/2), 1e-12))
		}
	})

	It("passes through (0, 1) at t=0 for the 3:2 figure", func() {
		pts := curve.Sample(params)
		Expect(pts[0].X).To(BeNumerically("~", 0, 1e-12))
		Expect(pts[0].Y).To(BeNumerically("~", 1, 1e-12))
	})

	It("closes after one sweep", func() {
		Expect(curve.ClosureError(curve.Sample(params))).To(BeNumerically("<", 1e-9))
	})

	It("spans the closed interval [0, 2π·cycles]", func() {
		pts := curve.Sample(params)
		Expect(pts[0].T).To(BeZero())
		Expect(pts[len(pts)-1].T).To(BeNumerically("~", 2*math.Pi, 1e-9))
	})

	It("is pure", func() {
		Expect(curve.Sample(params)).To(Equal(curve.Sample(params)))
	})

	It("scales by the amplitudes", func() {
		p := params
		p.AmpX, p.AmpY = 2.5, 0.5
		for _, pt := range curve.Sample(p) {
			Expect(math.Abs(pt.X)).To(BeNumerically("<=", 2.5+1e-12))
			Expect(math.Abs(pt.Y)).To(BeNumerically("<=", 0.5+1e-12))
		}
	})
})

var _ = Describe("Sampler", func() {
	It("yields the same stream as Sample and restarts after Reset", func() {
		p := curve.DefaultParams()
		p.Resolution = 64

		s := curve.NewSampler(p)
		first := drain(s)
		Expect(first).To(Equal(curve.Sample(p)))
		Expect(s.Remaining()).To(BeZero())

		s.Reset()
		Expect(drain(s)).To(Equal(first))
	})

	It("is finite", func() {
		p := curve.DefaultParams()
		p.Resolution = 2
		s := curve.NewSampler(p)
		drain(s)
		_, ok := s.Next()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("WrapPhase", func() {
	DescribeTable("maps onto [0, 2π)",
		func(in, want float64) {
			Expect(curve.WrapPhase(in)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("identity", 1.0, 1.0),
		Entry("full turn", 2*math.Pi, 0.0),
		Entry("beyond a turn", 2*math.Pi+0.5, 0.5),
		Entry("negative", -math.Pi/2, 3*math.Pi/2),
		Entry("many turns", 10*math.Pi+0.25, 0.25),
	)
})

var _ = Describe("CyclesToClose", func() {
	It("finds the closure sweep for rational ratios", func() {
		cycles, ok := curve.CyclesToClose(3, 2)
		Expect(ok).To(BeTrue())
		Expect(cycles).To(BeNumerically("~", 1.0, 1e-9))

		cycles, ok = curve.CyclesToClose(1, 2)
		Expect(ok).To(BeTrue())
		Expect(cycles).To(BeNumerically("~", 1.0, 1e-9))

		cycles, ok = curve.CyclesToClose(5.5, 2)
		Expect(ok).To(BeTrue())
		Expect(cycles).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("reports irrational ratios as non-closing", func() {
		_, ok := curve.CyclesToClose(math.Sqrt2, 1)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Metrics", func() {
	It("measures the unit circle's circumference", func() {
		p := curve.Params{
			FreqX: 1, FreqY: 1,
			AmpX: 1, AmpY: 1,
			PhaseX: math.Pi / 2, PhaseY: 0,
			Resolution: 2000, Cycles: 1,
		}
		Expect(curve.PathLength(curve.Sample(p))).To(BeNumerically("~", 2*math.Pi, 1e-3))
	})

	It("bounds the samples by the amplitude box", func() {
		p := curve.DefaultParams()
		p.AmpX, p.AmpY = 2, 3
		minX, minY, maxX, maxY := curve.Bounds(curve.Sample(p))
		Expect(minX).To(BeNumerically("~", -2, 1e-3))
		Expect(maxX).To(BeNumerically("~", 2, 1e-3))
		Expect(minY).To(BeNumerically("~", -3, 1e-3))
		Expect(maxY).To(BeNumerically("~", 3, 1e-3))
	})

	It("includes closure cycles for rational frequency pairs", func() {
		p := curve.DefaultParams()
		m := curve.Metrics(p, curve.Sample(p))
		Expect(m).To(HaveKey("path_length"))
		Expect(m).To(HaveKey("closure_error"))
		Expect(m).To(HaveKeyWithValue("closure_cycles", BeNumerically("~", 1.0, 1e-9)))
	})
})

func drain(s *curve.Sampler) []curve.Point {
	var pts []curve.Point
	for {
		pt, ok := s.Next()
		if !ok {
			return pts
		}
		pts = append(pts, pt)
	}
}
