package pond_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pondsim/internal/pond"
)

func smallConfig(mode pond.Mode) pond.Config {
	cfg := pond.DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.Anchor = pond.Coordinate{X: 4, Y: 5}
	cfg.FingerWidth = 3
	cfg.DefaultValue = 0.5
	cfg.TouchedValue = 0.9
	cfg.MaxAge = 40
	cfg.Mode = mode
	return cfg
}

func render(p *pond.Pond) []pond.Pixel {
	w, h := p.Dimensions()
	buf := make([]pond.Pixel, w*h)
	p.Render(buf)
	return buf
}

func dropletAt(p *pond.Pond, x, y int) float64 {
	d, err := p.Droplet(pond.Coordinate{X: x, Y: y})
	Expect(err).NotTo(HaveOccurred())
	return d.Height
}

var _ = Describe("Pond", func() {
	Describe("construction", func() {
		It("rejects invalid configuration", func() {
			cfg := smallConfig(pond.InstantSet)
			cfg.FingerWidth = 0
			_, err := pond.New(cfg)
			Expect(err).To(MatchError(pond.ErrInvalidConfig))
		})

		It("reports the configured dimensions", func() {
			p := pond.MustNew(smallConfig(pond.InstantSet))
			w, h := p.Dimensions()
			Expect(w).To(Equal(24))
			Expect(h).To(Equal(16))
		})

		It("starts idle at the resting value", func() {
			p := pond.MustNew(smallConfig(pond.PropagatingRipple))
			Expect(p.State()).To(Equal(pond.Idle))
			for _, px := range render(p) {
				Expect(px.B).To(BeNumerically("~", 0.5, 1e-6))
			}
		})
	})

	Describe("instant set mode", func() {
		var p *pond.Pond

		BeforeEach(func() {
			p = pond.MustNew(smallConfig(pond.InstantSet))
		})

		It("sets the epicenter on press and restores it on release", func() {
			p.Tick([]pond.Event{pond.Press()})
			Expect(p.State()).To(Equal(pond.Touching))
			for c := range p.Epicenter() {
				Expect(dropletAt(p, c.X, c.Y)).To(Equal(0.9))
			}
			Expect(dropletAt(p, 3, 5)).To(Equal(0.5))
			Expect(dropletAt(p, 7, 5)).To(Equal(0.5))
			Expect(dropletAt(p, 4, 8)).To(Equal(0.5))

			p.Tick([]pond.Event{pond.Release()})
			Expect(p.State()).To(Equal(pond.Idle))
			for c := range p.Epicenter() {
				Expect(dropletAt(p, c.X, c.Y)).To(Equal(0.5))
			}
		})

		It("never creates ripples", func() {
			p.Tick([]pond.Event{pond.Press(), pond.Release(), pond.Press()})
			Expect(p.ActiveRipples()).To(BeZero())
		})

		It("treats press then release in one batch like a lone release", func() {
			q := pond.MustNew(smallConfig(pond.InstantSet))

			p.Tick([]pond.Event{pond.Press(), pond.Release()})
			q.Tick([]pond.Event{pond.Release()})

			Expect(p.State()).To(Equal(pond.Idle))
			Expect(render(p)).To(Equal(render(q)))
		})

		It("ignores unrelated events and other buttons", func() {
			p.Tick([]pond.Event{
				pond.UnknownEvent{Kind: "key"},
				pond.ButtonEvent{Button: pond.ButtonBack, State: pond.Pressed},
			})
			Expect(p.State()).To(Equal(pond.Idle))
			Expect(dropletAt(p, 4, 5)).To(Equal(0.5))
		})

		It("treats an empty batch as a no-op", func() {
			before := render(p)
			p.Tick(nil)
			Expect(render(p)).To(Equal(before))
			Expect(p.Ticks()).To(Equal(uint64(1)))
		})
	})

	Describe("propagating ripple mode", func() {
		var p *pond.Pond

		BeforeEach(func() {
			p = pond.MustNew(smallConfig(pond.PropagatingRipple))
		})

		It("spawns a ripple at the anchor on every press", func() {
			p.Tick([]pond.Event{pond.Press()})
			p.Tick([]pond.Event{pond.Press()})
			Expect(p.ActiveRipples()).To(Equal(2))
			for _, r := range p.Ripples() {
				Expect(r.Origin).To(Equal(pond.Coordinate{X: 4, Y: 5}))
				Expect(r.Radius).To(Equal(3))
			}
			Expect(p.Spawned()).To(Equal(uint64(2)))
		})

		It("leaves the resting grid and ripples alone on release", func() {
			p.Tick([]pond.Event{pond.Press()})
			p.Tick([]pond.Event{pond.Release()})
			Expect(p.ActiveRipples()).To(Equal(1))
			Expect(dropletAt(p, 4, 5)).To(Equal(0.5))
		})

		It("retires ripples by age", func() {
			p.Tick([]pond.Event{pond.Press()})
			for i := 0; i < 38; i++ {
				p.Tick(nil)
			}
			Expect(p.ActiveRipples()).To(Equal(1))
			p.Tick(nil)
			Expect(p.ActiveRipples()).To(BeZero())
		})

		It("composites resting value plus the wave formula", func() {
			p.Tick([]pond.Event{pond.Press()})
			r := p.Ripples()[0]
			Expect(r.Age).To(Equal(1.0))

			buf := render(p)
			c := pond.Coordinate{X: 10, Y: 5}
			want := 0.5 + math.Sin(1)/(1*c.Distance(r.Origin))
			Expect(float64(buf[c.X+c.Y*24].B)).To(BeNumerically("~", want, 1e-6))

			level, err := p.Level(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(level).To(BeNumerically("~", want, 1e-9))
		})

		It("writes opaque pure-blue pixels", func() {
			p.Tick([]pond.Event{pond.Press()})
			for _, px := range render(p) {
				Expect(px.R).To(BeZero())
				Expect(px.G).To(BeZero())
				Expect(px.A).To(Equal(float32(1)))
			}
		})

		It("renders identically when called twice without a tick", func() {
			p.Tick([]pond.Event{pond.Press()})
			p.Tick(nil)
			Expect(render(p)).To(Equal(render(p)))
		})

		It("clamps overlapping contributions into [0,1]", func() {
			cfg := smallConfig(pond.PropagatingRipple)
			cfg.Origin = pond.OriginPeak
			q := pond.MustNew(cfg)

			burst := make([]pond.Event, 50)
			for i := range burst {
				burst[i] = pond.Press()
			}
			for tick := 0; tick < 12; tick++ {
				q.Tick(burst)
				for _, px := range render(q) {
					Expect(px.B).To(BeNumerically(">=", 0))
					Expect(px.B).To(BeNumerically("<=", 1))
				}
			}
		})

		It("does not fault at the ripple origin", func() {
			p.Tick([]pond.Event{pond.Press()})
			level, err := p.Level(pond.Coordinate{X: 4, Y: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(level)).To(BeFalse())
			Expect(level).To(BeNumerically("~", math.Min(1, 0.5+math.Sin(1)), 1e-9))
		})

		It("resets to rest", func() {
			p.Tick([]pond.Event{pond.Press()})
			p.Reset()
			Expect(p.ActiveRipples()).To(BeZero())
			Expect(p.State()).To(Equal(pond.Idle))
			Expect(p.Ticks()).To(BeZero())
		})
	})

	DescribeTable("overwrites every entry of a reused buffer",
		func(mode pond.Mode) {
			p := pond.MustNew(smallConfig(mode))
			p.Tick([]pond.Event{pond.Press()})
			p.Tick(nil)
			want := render(p)

			w, h := p.Dimensions()
			buf := make([]pond.Pixel, w*h)
			for i := range buf {
				buf[i] = pond.Pixel{R: 1, G: 1, B: 0.123, A: 0}
			}
			p.Render(buf)

			for i, px := range buf {
				Expect(px.R).To(BeZero(), "index %d", i)
				Expect(px.G).To(BeZero(), "index %d", i)
				Expect(px.A).To(Equal(float32(1)), "index %d", i)
				Expect(px.B).To(Equal(want[i].B), "index %d", i)
			}
		},
		Entry("instant set", pond.InstantSet),
		Entry("propagating ripple", pond.PropagatingRipple),
	)

	Describe("render precondition", func() {
		It("panics when the buffer size does not match", func() {
			p := pond.MustNew(smallConfig(pond.InstantSet))
			Expect(func() { p.Render(make([]pond.Pixel, 10)) }).To(PanicWith(BeAssignableToTypeOf(&pond.BufferSizeError{})))
		})
	})
})
