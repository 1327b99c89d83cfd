package metrics

import (
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
)

// VacuumDistance is the distance from the latest point to the nearer of the
// two given minima.
type VacuumDistance struct {
	name    string
	vacua   [2]dynamo.FieldPoint
	current float64
}

func NewVacuumDistance(vacua [2]dynamo.FieldPoint) *VacuumDistance {
	return &VacuumDistance{name: "vacuum_distance", vacua: vacua, current: math.NaN()}
}

func (v *VacuumDistance) Name() string { return v.name }

func (v *VacuumDistance) Observe(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	v.current = math.Min(p.Sub(v.vacua[0]).Norm(), p.Sub(v.vacua[1]).Norm())
}

func (v *VacuumDistance) Value() float64 {
	return v.current
}

func (v *VacuumDistance) Reset() {
	v.current = math.NaN()
}

// Default returns the metric set used by the CLI. vacua may be nil when the
// parameters admit no real minimum.
func Default(vacua *[2]dynamo.FieldPoint, threshold float64) []dynamo.Metric {
	ms := []dynamo.Metric{
		NewEnergyDrop(),
		NewMonotonicity(),
		NewPathLength(),
		NewStability(threshold),
	}
	if vacua != nil {
		ms = append(ms, NewVacuumDistance(*vacua))
	}
	return ms
}
