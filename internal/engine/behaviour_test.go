package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/engine"
	"github.com/san-kum/slosh/internal/render"
)

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Seed = 7
		var err error
		e, err = engine.New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	steps := func(n int) {
		for i := 0; i < n; i++ {
			e.Step()
		}
	}

	Context("with an empty tank", func() {
		BeforeEach(func() {
			e.SetFill(0)
			steps(200)
		})

		It("keeps the surface below the viewport", func() {
			f := e.Frame()
			Expect(f.Band).To(Equal(render.BandLow))
			Expect(f.Baseline).To(Equal(f.Span / 2))
			Expect(f.Covered(800, 600, 20)).To(BeFalse())
		})

		It("rises into the high band when filled to 80%", func() {
			e.SetFill(80)
			Expect(e.FillTarget()).To(BeNumerically("~", 0.81, 1e-12))

			settled := false
			for i := 0; i < 1000 && !settled; i++ {
				e.Step()
				settled = math.Abs(e.Fill()-0.81) < 0.0081
			}
			Expect(settled).To(BeTrue())
			Expect(e.Frame().Band).To(Equal(render.BandHigh))
			Expect(e.Frame().Color.Hex()).To(Equal("#ef4444"))
		})
	})

	Context("at 50% for a long time", func() {
		It("settles the baseline at 52.5% of the diagonal", func() {
			e.SetFill(50)
			e.SetFill(50)
			steps(2000)

			f := e.Frame()
			want := f.Span/2 - 0.525*f.Span
			Expect(f.Baseline).To(BeNumerically("~", want, 1e-9))
			Expect(f.Band).To(Equal(render.BandMid))
		})
	})

	Context("when splashed", func() {
		It("clamps an oversized splash to the maximum force", func() {
			i := e.Splash(1000)
			Expect(i).To(BeNumerically(">=", 0))
			Expect(i).To(BeNumerically("<", e.Len()))
			Expect(e.Node(i).Velocity).To(Equal(60.0))
		})

		It("stays bounded for ten thousand ticks", func() {
			cfg, err := config.GetPreset("lively")
			Expect(err).NotTo(HaveOccurred())
			cfg.Mesh.Ambient = 0
			cfg.Seed = 3
			e, err = engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			e.Splash(60)
			start := e.Energy()
			for i := 0; i < 10000; i++ {
				e.Step()
				Expect(math.IsNaN(e.Energy())).To(BeFalse())
			}
			Expect(e.Energy()).To(BeNumerically("<", start))
		})
	})

	Context("with sensor input", func() {
		It("rotates toward posted tilt along the short way", func() {
			e.SetTilt(3.0)
			steps(500)
			Expect(e.Angle()).To(BeNumerically("~", 3.0, 1e-6))

			Expect(e.Post(dynamo.Tilt(-3.0))).To(BeTrue())
			e.Step()
			Expect(e.Angle()).To(BeNumerically(">", 3.0))
			for i := 0; i < 1000; i++ {
				e.Step()
				Expect(math.Abs(dynamo.ShortestArc(e.Angle(), -3.0))).To(BeNumerically("<=", math.Pi))
			}
			Expect(e.Angle()).To(BeNumerically("~", -3.0, 1e-6))
		})

		It("splashes a random node for a queued impulse", func() {
			e.Post(dynamo.Splash(500))
			e.Step()
			peak := 0.0
			for i := 0; i < e.Len(); i++ {
				peak = math.Max(peak, math.Abs(e.Node(i).Velocity))
			}
			Expect(peak).To(BeNumerically(">", 5))
		})
	})
})
