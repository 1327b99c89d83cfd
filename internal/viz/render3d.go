package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera looks at the origin from Distance along +Z after rotating the
// scene by Elevation about X and Azimuth about Y.
type Camera struct {
	Distance  float64
	Near      float64
	Elevation float64
	Azimuth   float64
	Zoom      float64
}

// NewCamera matches the usual 3D plot view: 30° elevation, -60° azimuth.
func NewCamera() *Camera {
	return &Camera{
		Distance:  5,
		Near:      0.1,
		Elevation: 30 * math.Pi / 180,
		Azimuth:   -60 * math.Pi / 180,
		Zoom:      1.0,
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p Vec3) Vec3 {
	cy, sy := math.Cos(c.Azimuth), math.Sin(c.Azimuth)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.Elevation), math.Sin(c.Elevation)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project maps a world point to sub-pixel coordinates on a sw x sh screen.
// It returns x, y, depth and whether the point lands on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	x, y, depth, onScreen, _ := c.project(p, sw, sh)
	return x, y, depth, onScreen
}

// project also reports whether the point is drawable at all: behind the
// camera or far off-screen points are not, since DrawLine would walk every
// pixel towards them.
func (c *Camera) project(p Vec3, sw, sh int) (x, y int, depth float64, onScreen, ok bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := float64(min(sw, sh)) / 3.0
	fx := rot.X*scale*pScale + float64(sw/2)
	fy := -rot.Y*scale*pScale + float64(sh/2)
	lim := float64(4 * max(sw, sh))
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > lim || math.Abs(fy) > lim {
		return 0, 0, 0, false, false
	}
	x, y = int(fx), int(fy)
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh, true
}

// Orbit turns the camera smoothly around the vertical axis. A critically
// damped spring chases a target azimuth that advances while the orbit is on.
type Orbit struct {
	spring  harmonica.Spring
	speed   float64
	target  float64
	vel     float64
	Enabled bool
}

func NewOrbit(fps int, speed float64) *Orbit {
	return &Orbit{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		speed:  speed,
	}
}

// Step advances the camera by one frame.
func (o *Orbit) Step(cam *Camera) {
	if o.Enabled {
		o.target += o.speed
	} else if o.vel == 0 {
		o.target = cam.Azimuth
	}
	cam.Azimuth, o.vel = o.spring.Update(cam.Azimuth, o.vel, o.target)
}

type Edge struct {
	Start, End Vec3
	Kind       EdgeKind
}

type EdgeKind uint8

const (
	EdgeMesh EdgeKind = iota
	EdgePath
	EdgeMarker
)

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                     { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, k EdgeKind) { w.Edges = append(w.Edges, Edge{s, e, k}) }
func (w *Wireframe) AddPoint(p Vec3, k EdgeKind)   { w.Edges = append(w.Edges, Edge{p, p, k}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	kind           EdgeKind
}

// Render3D draws the wireframe back to front. Markers are drawn as dots.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1, ok1 := cam.project(e.Start, pw, ph)
		x2, y2, d2, v2, ok2 := cam.project(e.End, pw, ph)
		if ok1 && ok2 && (v1 || v2) {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Kind})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		switch {
		case e.kind == EdgeMarker:
			c.Dot(e.x1, e.y1, 1)
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
