package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/viz"
)

// colormapPalette adapts a viz.Colormap to gonum's palette.Palette.
type colormapPalette struct {
	cm *viz.Colormap
	n  int
}

func (p colormapPalette) Colors() []color.Color {
	return p.cm.Palette(p.n)
}

// Plot builds a static figure of the surface as a heatmap with the finite
// part of the descent path drawn over it.
func Plot(surf *physics.Surface, path []dynamo.FieldPoint, title string, marks ...dynamo.FieldPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "φ+"
	p.Y.Label.Text = "φ-"

	hm := plotter.NewHeatMap(surf, colormapPalette{cm: viz.Viridis(), n: heatLevels})
	p.Add(hm)

	var xys plotter.XYs
	for _, pt := range path {
		if !pt.IsValid() {
			break
		}
		xys = append(xys, plotter.XY{X: pt.Plus, Y: pt.Minus})
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	if len(xys) > 1 {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("path line: %w", err)
		}
		line.Color = red
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("descent path", line)
	}
	if len(xys) > 0 {
		cur, err := plotter.NewScatter(xys[len(xys)-1:])
		if err != nil {
			return nil, fmt.Errorf("current point: %w", err)
		}
		cur.GlyphStyle.Color = red
		cur.GlyphStyle.Radius = vg.Points(4)
		cur.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(cur)
	}
	if len(marks) > 0 {
		vac := make(plotter.XYs, len(marks))
		for i, m := range marks {
			vac[i] = plotter.XY{X: m.Plus, Y: m.Minus}
		}
		sc, err := plotter.NewScatter(vac)
		if err != nil {
			return nil, fmt.Errorf("vacuum markers: %w", err)
		}
		sc.GlyphStyle.Color = color.White
		sc.GlyphStyle.Radius = vg.Points(5)
		sc.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(sc)
		p.Legend.Add("vacuum", sc)
	}

	ext := surf.Extent()
	p.X.Min, p.X.Max = -ext, ext
	p.Y.Min, p.Y.Max = -ext, ext
	return p, nil
}

// WritePlot saves the figure to path. The image format follows the file
// extension (png, jpg, svg, pdf, eps, tif).
func WritePlot(path string, surf *physics.Surface, traj []dynamo.FieldPoint, title string, marks ...dynamo.FieldPoint) error {
	p, err := Plot(surf, traj, title, marks...)
	if err != nil {
		return err
	}
	if err := p.Save(7*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
