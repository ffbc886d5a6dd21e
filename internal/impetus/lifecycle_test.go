package impetus

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
)

var _ = Describe("Controller lifecycle", func() {
	var h *harness

	BeforeEach(func() {
		var err error
		h, err = newHarness(nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts idle", func() {
		Expect(h.c.State()).To(Equal(Idle))
		Expect(h.updates).To(BeEmpty())
	})

	Context("while dragging", func() {
		BeforeEach(func() {
			h.down(10, 10)
		})

		It("subscribes to the surface only for the duration of the contact", func() {
			Expect(h.c.State()).To(Equal(Dragging))
			Expect(h.surface.Listening(input.Move)).To(Equal(1))
			Expect(h.surface.Listening(input.Up)).To(Equal(1))
			Expect(h.surface.Listening(input.Cancel)).To(Equal(1))

			h.up(10, 10)
			Expect(h.surface.Listening(input.Move)).To(BeZero())
			Expect(h.surface.Listening(input.Up)).To(BeZero())
			Expect(h.surface.Listening(input.Cancel)).To(BeZero())
		})

		It("follows the pointer one frame at a time", func() {
			h.move(15, 12)
			Expect(h.updates).To(BeEmpty())

			h.frame()
			Expect(h.updates).To(Equal([]motion.Point{{X: 5, Y: 2}}))
		})

		It("ignores a second pointer-down", func() {
			h.down(90, 90)
			Expect(h.events).To(Equal([]string{"start"}))
		})
	})

	Context("after a fast release", func() {
		BeforeEach(func() {
			h.throw()
		})

		It("notifies start of deceleration before any deceleration frame", func() {
			Expect(h.events).To(Equal([]string{"start", "decel-start"}))
			Expect(h.c.State()).To(Equal(Decelerating))
		})

		It("decays velocity geometrically", func() {
			v0 := h.c.Velocity().X
			for n := 1; n <= 10; n++ {
				h.frame()
				Expect(h.c.Velocity().X).To(BeNumerically("~", v0*math.Pow(0.92, float64(n)), 1e-9))
			}
		})

		It("ends with an end notification and no outstanding frames", func() {
			h.settle(1000)
			Expect(h.events).To(Equal([]string{"start", "decel-start", "decel-end"}))
			Expect(h.queue.Pending()).To(BeZero())
			Expect(h.c.Velocity()).To(Equal(motion.Velocity{}))
		})
	})
})

var _ = Describe("Controller bounds", func() {
	DescribeTable("settles inside the bounds after a throw",
		func(bounce bool, dx float64) {
			h, err := newHarness(func(o *Options) {
				o.NoBounce = !bounce
				o.BoundX = motion.NewRange(0, 100)
				o.BoundY = motion.NewRange(0, 100)
				o.InitialValues = &motion.Point{X: 50, Y: 50}
			})
			Expect(err).NotTo(HaveOccurred())

			h.down(0, 0)
			h.wait(40)
			h.move(dx, dx/2)
			h.up(dx, dx/2)

			h.settle(2000)
			Expect(h.c.State()).To(Equal(Idle))

			x, y := h.c.Values()
			Expect(x).To(BeNumerically(">=", 0))
			Expect(x).To(BeNumerically("<=", 100))
			Expect(y).To(BeNumerically(">=", 0))
			Expect(y).To(BeNumerically("<=", 100))
		},
		Entry("bounce, thrown right", true, 80.0),
		Entry("bounce, thrown left", true, -80.0),
		Entry("wall, thrown right", false, 80.0),
		Entry("wall, thrown left", false, -80.0),
	)

	It("never reports a position outside the bounds without bounce", func() {
		h, err := newHarness(func(o *Options) {
			o.NoBounce = true
			o.BoundX = motion.NewRange(0, 100)
		})
		Expect(err).NotTo(HaveOccurred())

		h.down(0, 0)
		for i := 1; i <= 10; i++ {
			h.wait(10)
			h.move(float64(i*30), 0)
			h.frame()
		}
		h.up(300, 0)
		h.settle(1000)

		for _, p := range h.updates {
			Expect(p.X).To(BeNumerically(">=", 0))
			Expect(p.X).To(BeNumerically("<=", 100))
		}
	})
})
