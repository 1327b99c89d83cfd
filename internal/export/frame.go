package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/viz"
)

// Palette layout: the first heatLevels entries are the colormap, followed
// by the fixed drawing colours.
const (
	heatLevels = 240
	idxBlack   = heatLevels + iota - 1
	idxWhite
	idxRed
	idxGrey
)

const (
	margin     = 20
	lineHeight = 16
	charWidth  = 7
	barWidth   = 16
)

// asciiGlyphs replaces symbols the 7x13 bitmap font cannot draw.
var asciiGlyphs = strings.NewReplacer("φ", "phi", "⁴", "^4", "²", "^2")

type RenderOptions struct {
	Width, Height int
	Title         string
	Marks         []dynamo.FieldPoint
	Colormap      *viz.Colormap
}

// FrameRenderer rasterises trajectory frames over a top-down heatmap of the
// surface. The static parts are drawn once; Render only adds the path and
// the text for the requested frame.
type FrameRenderer struct {
	frames  []viz.Frame
	surf    *physics.Surface
	opts    RenderOptions
	palette color.Palette
	base    *image.Paletted
	plot    image.Rectangle
	panelX  int
}

func NewFrameRenderer(surf *physics.Surface, frames []viz.Frame, opts RenderOptions) (*FrameRenderer, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames to render", dynamo.ErrInvalidConfig)
	}
	if opts.Width < 320 || opts.Height < 240 {
		return nil, fmt.Errorf("%w: frame size %dx%d is below 320x240", dynamo.ErrInvalidConfig, opts.Width, opts.Height)
	}
	if opts.Colormap == nil {
		opts.Colormap = viz.Viridis()
	}
	if opts.Title == "" {
		opts.Title = "Potential Energy Landscape"
	}

	pal := opts.Colormap.Palette(heatLevels)
	pal = append(pal,
		color.RGBA{0, 0, 0, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0, 0, 0xff},
		color.RGBA{0x80, 0x80, 0x80, 0xff},
	)

	side := min(opts.Height-2*margin-lineHeight, opts.Width*3/5)
	top := margin + lineHeight
	r := &FrameRenderer{
		frames:  frames,
		surf:    surf,
		opts:    opts,
		palette: pal,
		plot:    image.Rect(margin, top, margin+side, top+side),
	}
	r.panelX = r.plot.Max.X + 10 + barWidth + 70
	r.base = r.drawBase()
	return r, nil
}

func (r *FrameRenderer) Len() int                { return len(r.frames) }
func (r *FrameRenderer) Bounds() image.Rectangle { return r.base.Bounds() }
func (r *FrameRenderer) Palette() color.Palette  { return r.palette }

// Render draws frame i: the path through entries 0..i, the current point
// and the annotation text.
func (r *FrameRenderer) Render(i int) *image.Paletted {
	img := image.NewPaletted(r.base.Rect, r.palette)
	copy(img.Pix, r.base.Pix)

	var last image.Point
	have := false
	for _, f := range r.frames[:i+1] {
		if !f.Point.IsValid() {
			break
		}
		pt, ok := r.toPixel(f.Point)
		if !ok {
			break
		}
		if have {
			r.line(img, last, pt, idxRed)
			r.line(img, last.Add(image.Pt(0, 1)), pt.Add(image.Pt(0, 1)), idxRed)
		}
		last, have = pt, true
	}
	if have {
		r.disc(img, last, 5, idxRed)
	}

	f := r.frames[i]
	r.text(img, r.panelX, margin+lineHeight, []string{f.Counter()}, true)
	lines := strings.Split(asciiGlyphs.Replace(f.Annotation()), "\n")
	r.text(img, r.panelX, r.plot.Max.Y-len(lines)*lineHeight-8, lines, true)
	return img
}

func (r *FrameRenderer) drawBase() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, r.opts.Width, r.opts.Height), r.palette)
	draw.Draw(img, img.Rect, image.NewUniform(r.palette[idxWhite]), image.Point{}, draw.Src)

	nc, nr := r.surf.Dims()
	lo, hi := r.surf.Min(), r.surf.Max()
	side := r.plot.Dx()
	for py := 0; py < side; py++ {
		row := int(math.Round(float64(side-1-py) / float64(side-1) * float64(nr-1)))
		for px := 0; px < side; px++ {
			col := int(math.Round(float64(px) / float64(side-1) * float64(nc-1)))
			img.SetColorIndex(r.plot.Min.X+px, r.plot.Min.Y+py, heatIndex(r.surf.Z(col, row), lo, hi))
		}
	}
	r.frame(img, r.plot.Inset(-1), idxBlack)

	bar := image.Rect(r.plot.Max.X+10, r.plot.Min.Y, r.plot.Max.X+10+barWidth, r.plot.Max.Y)
	for py := bar.Min.Y; py < bar.Max.Y; py++ {
		t := float64(bar.Max.Y-1-py) / float64(bar.Dy()-1)
		idx := uint8(math.Round(t * (heatLevels - 1)))
		for px := bar.Min.X; px < bar.Max.X; px++ {
			img.SetColorIndex(px, py, idx)
		}
	}
	r.frame(img, bar.Inset(-1), idxBlack)
	r.label(img, bar.Max.X+4, bar.Min.Y+10, fmt.Sprintf("%.2f", hi), idxBlack)
	r.label(img, bar.Max.X+4, bar.Max.Y, fmt.Sprintf("%.2f", lo), idxBlack)
	r.label(img, bar.Min.X, bar.Max.Y+lineHeight, "Energy V", idxBlack)

	ext := r.surf.Extent()
	r.label(img, margin, margin+10, asciiGlyphs.Replace(r.opts.Title), idxBlack)
	r.label(img, r.plot.Min.X, r.plot.Max.Y+lineHeight, fmt.Sprintf("%.1f", -ext), idxBlack)
	r.label(img, r.plot.Max.X-28, r.plot.Max.Y+lineHeight, fmt.Sprintf("%.1f", ext), idxBlack)
	r.label(img, r.plot.Min.X+r.plot.Dx()/2-21, r.plot.Max.Y+lineHeight, "phi+", idxBlack)

	for _, m := range r.opts.Marks {
		if pt, ok := r.toPixel(m); ok {
			r.ring(img, pt, 4, idxWhite)
		}
	}
	return img
}

func heatIndex(v, lo, hi float64) uint8 {
	t := viz.Normalize(v, lo, hi)
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	return uint8(math.Round(math.Min(t, 1) * (heatLevels - 1)))
}

// toPixel maps field space onto the plot. Points far outside the plot are
// rejected so line drawing stays bounded.
func (r *FrameRenderer) toPixel(p dynamo.FieldPoint) (image.Point, bool) {
	ext := r.surf.Extent()
	side := float64(r.plot.Dx() - 1)
	fx := float64(r.plot.Min.X) + (p.Plus+ext)/(2*ext)*side
	fy := float64(r.plot.Max.Y-1) - (p.Minus+ext)/(2*ext)*side
	lim := 4 * float64(max(r.opts.Width, r.opts.Height))
	if math.Abs(fx) > lim || math.Abs(fy) > lim {
		return image.Point{}, false
	}
	return image.Pt(int(math.Round(fx)), int(math.Round(fy))), true
}

func (r *FrameRenderer) set(img *image.Paletted, p image.Point, idx uint8) {
	if p.In(r.plot) {
		img.SetColorIndex(p.X, p.Y, idx)
	}
}

func (r *FrameRenderer) line(img *image.Paletted, a, b image.Point, idx uint8) {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(img, a, idx)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			a.X += sx
		}
		if e2 < dx {
			err += dx
			a.Y += sy
		}
	}
}

func (r *FrameRenderer) disc(img *image.Paletted, c image.Point, radius int, idx uint8) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				r.set(img, c.Add(image.Pt(dx, dy)), idx)
			}
		}
	}
}

func (r *FrameRenderer) ring(img *image.Paletted, c image.Point, radius int, idx uint8) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := dx*dx + dy*dy
			if d <= radius*radius && d >= (radius-1)*(radius-1) {
				r.set(img, c.Add(image.Pt(dx, dy)), idx)
			}
		}
	}
}

func (r *FrameRenderer) frame(img *image.Paletted, rect image.Rectangle, idx uint8) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetColorIndex(x, rect.Min.Y, idx)
		img.SetColorIndex(x, rect.Max.Y-1, idx)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetColorIndex(rect.Min.X, y, idx)
		img.SetColorIndex(rect.Max.X-1, y, idx)
	}
}

// label draws s with its baseline at y.
func (r *FrameRenderer) label(img draw.Image, x, y int, s string, idx uint8) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.palette[idx]),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// text draws lines top-down from (x, y), optionally on a white box with a
// grey border.
func (r *FrameRenderer) text(img *image.Paletted, x, y int, lines []string, boxed bool) {
	if boxed {
		w := 0
		for _, l := range lines {
			w = max(w, len([]rune(l)))
		}
		box := image.Rect(x-4, y-4, x+w*charWidth+4, y+len(lines)*lineHeight+4)
		draw.Draw(img, box, image.NewUniform(r.palette[idxWhite]), image.Point{}, draw.Src)
		r.frame(img, box, idxGrey)
	}
	for i, l := range lines {
		r.label(img, x, y+(i+1)*lineHeight-4, l, idxBlack)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
