package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

// HeatmapOptions control the top-down terminal view of the surface.
type HeatmapOptions struct {
	Cols, Rows int
	Colormap   *Colormap
	PathColor  lipgloss.Color
	Marks      []dynamo.FieldPoint
}

// Heatmap renders surf as coloured cells viewed from above, φ+ to the right
// and φ− upward. Cells visited by path are drawn as '•', the last finite
// point as '●' and each mark as '◆'.
func Heatmap(surf *physics.Surface, path []dynamo.FieldPoint, opts HeatmapOptions) string {
	if opts.Cols < 2 || opts.Rows < 2 {
		return ""
	}
	cm := opts.Colormap
	if cm == nil {
		cm = Viridis()
	}
	if opts.PathColor == "" {
		opts.PathColor = lipgloss.Color("#ff0000")
	}

	extent := surf.Extent()
	nc, nr := surf.Dims()
	glyphs := make([][]rune, opts.Rows)
	for r := range glyphs {
		glyphs[r] = []rune(strings.Repeat(" ", opts.Cols))
	}

	cell := func(p dynamo.FieldPoint) (int, int, bool) {
		col := int(math.Round((p.Plus + extent) / (2 * extent) * float64(opts.Cols-1)))
		row := int(math.Round((extent - p.Minus) / (2 * extent) * float64(opts.Rows-1)))
		return row, col, row >= 0 && row < opts.Rows && col >= 0 && col < opts.Cols
	}

	var last *dynamo.FieldPoint
	for i := range path {
		if !path[i].IsValid() {
			break
		}
		if row, col, ok := cell(path[i]); ok {
			glyphs[row][col] = '•'
		}
		last = &path[i]
	}
	for _, m := range opts.Marks {
		if row, col, ok := cell(m); ok {
			glyphs[row][col] = '◆'
		}
	}
	if last != nil {
		if row, col, ok := cell(*last); ok {
			glyphs[row][col] = '●'
		}
	}

	var b strings.Builder
	for r := 0; r < opts.Rows; r++ {
		sr := (opts.Rows - 1 - r) * (nr - 1) / (opts.Rows - 1)
		for c := 0; c < opts.Cols; c++ {
			sc := c * (nc - 1) / (opts.Cols - 1)
			bg := lipgloss.Color(cm.Hex(Normalize(surf.Z(sc, sr), surf.Min(), surf.Max())))
			style := lipgloss.NewStyle().Background(bg)
			if glyphs[r][c] != ' ' {
				style = style.Foreground(opts.PathColor).Bold(true)
			}
			b.WriteString(style.Render(string(glyphs[r][c])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
