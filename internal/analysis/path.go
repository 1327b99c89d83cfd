package analysis

import (
	"slices"

	"github.com/san-kum/landscape/internal/dynamo"
)

// FieldPathToASCII draws the descent path in the (φ+, φ−) plane. The start
// is 'S', the final point '@', and each of marks (typically the two vacua)
// '*'. Non-finite points are skipped.
func FieldPathToASCII(points []dynamo.FieldPoint, width, height int, marks ...dynamo.FieldPoint) string {
	if width <= 1 || height <= 1 {
		return ""
	}

	var finite []dynamo.FieldPoint
	for _, p := range points {
		if p.IsValid() {
			finite = append(finite, p)
		}
	}
	if len(finite) == 0 {
		return ""
	}

	minX, maxX := finite[0].Plus, finite[0].Plus
	minY, maxY := finite[0].Minus, finite[0].Minus
	for _, p := range slices.Concat(finite, marks) {
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

	canvas := blankCanvas(width, height)
	cell := func(p dynamo.FieldPoint) (int, int) {
		col := int((p.Plus - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Minus-minY)/rangeY*float64(height-1))
		return row, col
	}
	put := func(p dynamo.FieldPoint, r rune) {
		row, col := cell(p)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}

	if minX <= 0 && maxX >= 0 {
		_, col := cell(dynamo.FieldPoint{})
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _ := cell(dynamo.FieldPoint{})
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range finite {
		put(p, '•')
	}
	for _, m := range marks {
		put(m, '*')
	}
	put(finite[0], 'S')
	put(finite[len(finite)-1], '@')

	return canvasString(canvas)
}
