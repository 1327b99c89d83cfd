package viz

import (
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

// meshHeight is the vertical extent of the surface in world units. The
// horizontal axes span [-1, 1].
const meshHeight = 1.2

// MeshScale maps field space onto the unit box the camera looks at.
type MeshScale struct {
	extent   float64
	min, max float64
}

func NewMeshScale(surf *physics.Surface) MeshScale {
	return MeshScale{extent: surf.Extent(), min: surf.Min(), max: surf.Max()}
}

// Map places (φ+, φ−, V) in world space: φ+ along X, V up along Y, φ−
// along Z. Energies above the sampled maximum are clipped to the top.
func (s MeshScale) Map(p dynamo.FieldPoint, v float64) Vec3 {
	h := math.Min(Normalize(v, s.min, s.max), 1)
	return Vec3{
		X: p.Plus / s.extent,
		Y: (h - 0.5) * meshHeight,
		Z: -p.Minus / s.extent,
	}
}

// SurfaceMesh builds a wireframe of surf with a grid line every stride
// samples in each direction.
func SurfaceMesh(surf *physics.Surface, stride int) *Wireframe {
	if stride < 1 {
		stride = 1
	}
	sc := NewMeshScale(surf)
	w := NewWireframe()
	nc, nr := surf.Dims()

	at := func(c, r int) Vec3 {
		return sc.Map(dynamo.FieldPoint{Plus: surf.X(c), Minus: surf.Y(r)}, surf.Z(c, r))
	}
	for r := 0; r < nr; r += stride {
		for c := 0; c+1 < nc; c++ {
			w.AddEdge(at(c, r), at(c+1, r), EdgeMesh)
		}
	}
	for c := 0; c < nc; c += stride {
		for r := 0; r+1 < nr; r++ {
			w.AddEdge(at(c, r), at(c, r+1), EdgeMesh)
		}
	}
	return w
}

// AddPath appends the descent path through frames and a marker on its last
// finite entry. The path stops at the first non-finite entry.
func (w *Wireframe) AddPath(sc MeshScale, frames []Frame) {
	var prev *Vec3
	for _, f := range frames {
		if !f.Point.IsValid() || !finite(f.Values.Total) {
			break
		}
		p := sc.Map(f.Point, f.Values.Total)
		if prev != nil {
			w.AddEdge(*prev, p, EdgePath)
		}
		prev = &p
	}
	if prev != nil {
		w.AddPoint(*prev, EdgeMarker)
	}
}
