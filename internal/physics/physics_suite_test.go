package physics_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

func TestPhysics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Physics Suite")
}

var _ = Describe("Potential", func() {
	var pot *physics.Potential

	BeforeEach(func() {
		pot = physics.NewPotential(dynamo.Params{M: 1.0, Lambda: 1.0})
	})

	Describe("Evaluate", func() {
		It("is lowest at the analytic vacuum along phi_minus", func() {
			vac, err := pot.Vacuum()
			Expect(err).NotTo(HaveOccurred())

			at, err := pot.Evaluate(vac.Points[0])
			Expect(err).NotTo(HaveOccurred())
			for _, d := range []float64{-0.2, -0.05, 0.05, 0.2} {
				near, err := pot.Evaluate(dynamo.FieldPoint{Plus: 0, Minus: vac.Points[0].Minus + d})
				Expect(err).NotTo(HaveOccurred())
				Expect(near.Total).To(BeNumerically(">", at.Total))
			}
		})

		It("has a local maximum along phi_minus at the origin", func() {
			origin, _ := pot.Evaluate(dynamo.FieldPoint{})
			off, _ := pot.Evaluate(dynamo.FieldPoint{Minus: 0.1})
			Expect(off.Total).To(BeNumerically("<", origin.Total))
		})

		It("keeps the constant offset independent of the point", func() {
			a, _ := pot.Evaluate(dynamo.FieldPoint{Plus: 3, Minus: -2})
			b, _ := pot.Evaluate(dynamo.FieldPoint{Plus: -1, Minus: 0.5})
			Expect(a.Const).To(Equal(b.Const))
			Expect(a.Const).To(BeNumerically("~", 1.5, 1e-12))
		})
	})

	Describe("zero coupling", func() {
		It("reports an undefined potential instead of infinity", func() {
			Expect(pot.SetParam("lambda", 0)).To(MatchError(dynamo.ErrUndefinedPotential))

			zero := physics.NewPotential(dynamo.Params{M: 1})
			e, err := zero.Evaluate(dynamo.FieldPoint{Plus: 1})
			Expect(err).To(MatchError(dynamo.ErrUndefinedPotential))
			Expect(math.IsInf(e.Total, 0)).To(BeFalse())
		})
	})

	Describe("Vacuum", func() {
		DescribeTable("sits at sqrt(6m²/λ) with zero energy",
			func(m, lambda float64) {
				p := physics.NewPotential(dynamo.Params{M: m, Lambda: lambda})
				vac, err := p.Vacuum()
				Expect(err).NotTo(HaveOccurred())
				Expect(vac.Points[0].Minus).To(BeNumerically("~", math.Sqrt(6*m*m/lambda), 1e-12))
				Expect(vac.Points[1].Minus).To(Equal(-vac.Points[0].Minus))
				Expect(vac.Energy).To(BeNumerically("~", 0, 1e-9))
			},
			Entry("unit constants", 1.0, 1.0),
			Entry("light field", 0.5, 2.0),
			Entry("weak coupling", 2.0, 0.25),
		)
	})
})
