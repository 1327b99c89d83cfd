package integrators

import (
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	pot := physics.NewPotential(dynamo.DefaultParams())
	p := dynamo.FieldPoint{Plus: 2.0, Minus: 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ = integrator.Step(pot, p, 0.1, 0.05)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	p := dynamo.FieldPoint{Plus: 2.0, Minus: 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pot.Evaluate(p)
	}
}
