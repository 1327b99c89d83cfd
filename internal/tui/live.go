package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/viz"
)

const (
	width       = 61
	height      = 21
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// shades runs from low to high potential.
var shades = []rune(" .:-=+*#%@")

type cell struct{ x, y int }

// LiveRenderer is an Observer that redraws a character map of the field
// plane as the descent runs. In plain mode it prints one status line per
// step instead, which suits pipes and log files.
type LiveRenderer struct {
	out       io.Writer
	extent    float64
	total     int
	frameRate int
	plain     bool
	lastFrame time.Time
	now       func() time.Time
	pot       dynamo.Potential
	shade     [][]rune
	canvas    [][]rune
	trail     []cell
	marks     []dynamo.FieldPoint
}

type Option func(*LiveRenderer)

// WithFrameRate caps redraws per second. Zero redraws every step.
func WithFrameRate(fps int) Option { return func(r *LiveRenderer) { r.frameRate = fps } }
func WithPlain(plain bool) Option  { return func(r *LiveRenderer) { r.plain = plain } }

func WithMarks(marks ...dynamo.FieldPoint) Option {
	return func(r *LiveRenderer) { r.marks = marks }
}

// NewLiveRenderer draws the square [-extent, extent]² of pot for a run of
// total steps.
func NewLiveRenderer(out io.Writer, pot dynamo.Potential, extent float64, total int, opts ...Option) *LiveRenderer {
	r := &LiveRenderer{
		out:    out,
		extent: extent,
		total:  total,
		now:    time.Now,
		pot:    pot,
		shade:  make([][]rune, height),
		canvas: make([][]rune, height),
		trail:  make([]cell, 0, 64),
	}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.canvas {
		r.canvas[i] = make([]rune, width)
	}
	r.shadeBackground()
	return r
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *LiveRenderer) OnStep(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	if c, ok := r.toCell(p); ok {
		r.trail = append(r.trail, c)
	}

	last := step >= r.total
	if r.frameRate > 0 && step > 0 && !last {
		if r.now().Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = r.now()

	frame := viz.Frame{Index: step, Total: r.total, Point: p, Values: eval}
	if r.plain {
		fmt.Fprintf(r.out, "%s  φ+ = %.3f  φ- = %.3f  V_total = %.3f\n",
			frame.Counter(), p.Plus, p.Minus, eval.Total)
		return
	}
	r.draw(p)
	r.render(frame)
}

func (r *LiveRenderer) shadeBackground() {
	vals := make([][]float64, height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := range vals {
		vals[y] = make([]float64, width)
		for x := range vals[y] {
			e, err := r.pot.Evaluate(r.toField(x, y))
			v := e.Total
			if err != nil {
				v = math.NaN()
			}
			vals[y][x] = v
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	for y := range vals {
		r.shade[y] = make([]rune, width)
		for x, v := range vals[y] {
			t := viz.Normalize(v, lo, hi)
			if math.IsNaN(t) {
				t = 0
			}
			r.shade[y][x] = shades[int(math.Round(math.Max(0, math.Min(1, t))*float64(len(shades)-1)))]
		}
	}
}

func (r *LiveRenderer) toField(x, y int) dynamo.FieldPoint {
	return dynamo.FieldPoint{
		Plus:  -r.extent + 2*r.extent*float64(x)/float64(width-1),
		Minus: r.extent - 2*r.extent*float64(y)/float64(height-1),
	}
}

func (r *LiveRenderer) toCell(p dynamo.FieldPoint) (cell, bool) {
	if !p.IsValid() {
		return cell{}, false
	}
	x := math.Round((p.Plus + r.extent) / (2 * r.extent) * float64(width-1))
	y := math.Round((r.extent - p.Minus) / (2 * r.extent) * float64(height-1))
	if x < 0 || x >= width || y < 0 || y >= height {
		return cell{}, false
	}
	return cell{int(x), int(y)}, true
}

func (r *LiveRenderer) set(c cell, ch rune) {
	if c.x >= 0 && c.x < width && c.y >= 0 && c.y < height {
		r.canvas[c.y][c.x] = ch
	}
}

func (r *LiveRenderer) draw(p dynamo.FieldPoint) {
	for y := range r.canvas {
		copy(r.canvas[y], r.shade[y])
	}
	for _, m := range r.marks {
		if c, ok := r.toCell(m); ok {
			r.set(c, 'V')
		}
	}
	for _, c := range r.trail {
		r.set(c, '·')
	}
	if c, ok := r.toCell(p); ok {
		r.set(c, '●')
	}
}

func (r *LiveRenderer) render(f viz.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s\n", f.Counter())
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")
	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")
	if !f.Point.IsValid() {
		b.WriteString("  DIVERGED\n")
	}
	for _, line := range strings.Split(f.Annotation(), "\n") {
		b.WriteString("  " + line + "\n")
	}
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if !r.plain {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if !r.plain {
		fmt.Fprint(r.out, showCursor)
	}
}
