package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.Lit() {
		t.Fatal("new canvas should be blank")
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != brailleBlank|0x1|0x80 {
		t.Errorf("expected dots 1 and 8, got %U", got)
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.Lit() {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	pw, ph := c.PixelSize()
	if pw != 20 || ph != 12 {
		t.Fatalf("expected 20x12 pixels, got %dx%d", pw, ph)
	}
	c.DrawLine(0, 0, pw-1, 0)
	for col := 0; col < c.Width; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("cell %d: expected top row lit, got %U", col, c.Grid[0][col])
		}
	}

	out := c.String()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 3 lines, got %q", out)
	}
}

func TestRender3D_DrawsOnCanvas(t *testing.T) {
	c := NewCanvas(30, 12)
	w := NewWireframe()
	w.AddEdge(Vec3{-1, 0, 0}, Vec3{1, 0, 0}, EdgeMesh)
	w.AddPoint(Vec3{0, 0.5, 0}, EdgeMarker)
	Render3D(c, w, NewCamera())
	if !c.Lit() {
		t.Error("expected wireframe to light pixels")
	}

	Render3D(nil, w, NewCamera())
}

func TestOrbit(t *testing.T) {
	cam := NewCamera()
	start := cam.Azimuth
	o := NewOrbit(10, 0.1)

	o.Step(cam)
	if cam.Azimuth != start {
		t.Errorf("disabled orbit moved camera: %f -> %f", start, cam.Azimuth)
	}

	o.Enabled = true
	for i := 0; i < 20; i++ {
		o.Step(cam)
	}
	if cam.Azimuth <= start {
		t.Errorf("expected azimuth to advance, got %f from %f", cam.Azimuth, start)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("expected flat line, got %q", got)
	}
	got := SparklineChart([]float64{0, 1, 2, 3}, 4)
	if got != "▁▃▅█" {
		t.Errorf("expected rising sparkline, got %q", got)
	}
}
