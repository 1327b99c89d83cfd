package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/viz"
)

// CanvasToSVG draws every lit braille sub-pixel of canvas as a circle.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the finite prefix of a descent path in field
// space, with φ+ on the x axis. Marks (usually the vacua) are drawn as
// hollow circles and are included in the bounds.
func TrajectoryToSVG(points []dynamo.FieldPoint, width, height int, strokeColor string, marks ...dynamo.FieldPoint) string {
	finite := points
	for i, p := range points {
		if !p.IsValid() {
			finite = points[:i]
			break
		}
	}
	if len(finite) < 2 {
		return ""
	}

	minX, maxX := finite[0].Plus, finite[0].Plus
	minY, maxY := finite[0].Minus, finite[0].Minus
	for _, p := range append(finite[1:len(finite):len(finite)], marks...) {
		minX, maxX = min(minX, p.Plus), max(maxX, p.Plus)
		minY, maxY = min(minY, p.Minus), max(maxY, p.Minus)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toXY := func(p dynamo.FieldPoint) (float64, float64) {
		return (p.Plus - minX) / rangeX * float64(width),
			float64(height) - (p.Minus-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range finite {
		x, y := toXY(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	x, y := toXY(finite[len(finite)-1])
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x, y, strokeColor)
	for _, m := range marks {
		x, y := toXY(m)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"5\" fill=\"none\" stroke=\"#ffffff\"/>\n", x, y)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
