package walls_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crowdsim/internal/crowd"
	"crowdsim/internal/walls"
)

var _ = Describe("Field", func() {
	Describe("NewField", func() {
		It("rejects zero-length segments", func() {
			_, err := walls.NewField([]walls.Segment{
				{From: crowd.Vec{X: 1, Y: 1}, To: crowd.Vec{X: 1, Y: 1}},
			})
			Expect(err).To(MatchError(crowd.ErrInvalidScenario))
		})

		It("copies the input segments", func() {
			segs := []walls.Segment{{From: crowd.Vec{}, To: crowd.Vec{X: 1}}}
			f, err := walls.NewField(segs)
			Expect(err).NotTo(HaveOccurred())

			segs[0].To = crowd.Vec{X: 99}
			Expect(f.Segments()[0].To.X).To(Equal(1.0))
		})
	})

	Describe("NearestWall", func() {
		var f *walls.Field

		BeforeEach(func() {
			var err error
			// A horizontal wall along y=0 from x=0 to x=10.
			f, err = walls.NewField([]walls.Segment{
				{From: crowd.Vec{}, To: crowd.Vec{X: 10}},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("measures perpendicular distance above the segment", func() {
			d, n := f.NearestWall(crowd.Vec{X: 5, Y: 2})
			Expect(d).To(BeNumerically("~", 2.0, 1e-12))
			Expect(n.X).To(BeNumerically("~", 0, 1e-12))
			Expect(n.Y).To(BeNumerically("~", 1, 1e-12))
		})

		It("points the normal away from the wall on either side", func() {
			_, above := f.NearestWall(crowd.Vec{X: 5, Y: 1})
			_, below := f.NearestWall(crowd.Vec{X: 5, Y: -1})
			Expect(above.Y).To(BeNumerically(">", 0))
			Expect(below.Y).To(BeNumerically("<", 0))
		})

		It("clamps to the endpoint beyond the segment", func() {
			d, n := f.NearestWall(crowd.Vec{X: 13, Y: 4})
			Expect(d).To(BeNumerically("~", 5.0, 1e-12))
			Expect(n.X).To(BeNumerically("~", 0.6, 1e-12))
			Expect(n.Y).To(BeNumerically("~", 0.8, 1e-12))
		})

		It("picks the closest of several segments", func() {
			multi, err := walls.NewField([]walls.Segment{
				{From: crowd.Vec{}, To: crowd.Vec{X: 10}},
				{From: crowd.Vec{Y: 3}, To: crowd.Vec{X: 10, Y: 3}},
			})
			Expect(err).NotTo(HaveOccurred())

			d, n := multi.NearestWall(crowd.Vec{X: 5, Y: 2.5})
			Expect(d).To(BeNumerically("~", 0.5, 1e-12))
			Expect(n.Y).To(BeNumerically("<", 0))
		})

		It("returns infinite distance with no segments", func() {
			empty, err := walls.NewField(nil)
			Expect(err).NotTo(HaveOccurred())

			d, n := empty.NearestWall(crowd.Vec{X: 1, Y: 1})
			Expect(math.IsInf(d, 1)).To(BeTrue())
			Expect(n.IsZero()).To(BeTrue())
		})
	})

	Describe("LineOfSight", func() {
		var f *walls.Field

		BeforeEach(func() {
			var err error
			// A vertical wall at x=5 from y=-5 to y=5.
			f, err = walls.NewField([]walls.Segment{
				{From: crowd.Vec{X: 5, Y: -5}, To: crowd.Vec{X: 5, Y: 5}},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("is blocked across the wall", func() {
			Expect(f.LineOfSight(crowd.Vec{}, crowd.Vec{X: 10})).To(BeFalse())
		})

		It("is clear on the same side", func() {
			Expect(f.LineOfSight(crowd.Vec{}, crowd.Vec{Y: 4})).To(BeTrue())
		})

		It("is clear past the wall's end", func() {
			Expect(f.LineOfSight(crowd.Vec{Y: 7}, crowd.Vec{X: 10, Y: 7})).To(BeTrue())
		})

		It("is blocked when an endpoint touches the wall", func() {
			Expect(f.LineOfSight(crowd.Vec{}, crowd.Vec{X: 5})).To(BeFalse())
		})

		It("is clear with no segments", func() {
			empty, err := walls.NewField(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty.LineOfSight(crowd.Vec{}, crowd.Vec{X: 100, Y: 100})).To(BeTrue())
		})
	})
})
