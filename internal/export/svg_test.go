package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("expected 8x8 output for a 2x1 canvas at scale 2")
	}
	if CanvasToSVG(nil, 1, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestTrajectoryToSVGStopsAtDivergence(t *testing.T) {
	points := []dynamo.FieldPoint{
		{Plus: 2, Minus: 1},
		{Plus: 1, Minus: 1.5},
		{Plus: 0.5, Minus: 2},
		{Plus: math.Inf(1), Minus: math.NaN()},
	}
	svg := TrajectoryToSVG(points, 200, 100, "#ff0000", dynamo.FieldPoint{Plus: 0, Minus: 2.449})
	if svg == "" {
		t.Fatal("expected output")
	}
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("non-finite points must not be drawn")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected current point and one mark, got %d circles", n)
	}

	if TrajectoryToSVG(points[:1], 200, 100, "#ff0000") != "" {
		t.Error("expected empty output for a single point")
	}
}
