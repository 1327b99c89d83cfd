package viz

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

const (
	canvasWidth  = 60
	canvasHeight = 24
	meshStride   = 5
)

type tickMsg time.Time

type PlayerConfig struct {
	Title    string
	Interval time.Duration
	Theme    string
	// Marks are drawn on the top-down view, typically the two vacua.
	Marks []dynamo.FieldPoint
}

// Player replays a finished trajectory over its energy surface, one frame
// per tick. It never runs the descent itself.
type Player struct {
	cfg      PlayerConfig
	frames   []Frame
	surf     *physics.Surface
	mesh     *Wireframe
	canvas   *Canvas
	camera   *Camera
	orbit    *Orbit
	progress progress.Model
	theme    Theme
	styles   styles

	frame    int
	playing  bool
	topDown  bool
	showHelp bool
}

// NewPlayer evaluates every frame up front so scrubbing is free.
func NewPlayer(traj *dynamo.Trajectory, pot dynamo.Potential, surf *physics.Surface, cfg PlayerConfig) (Player, error) {
	if traj.Len() == 0 {
		return Player{}, fmt.Errorf("%w: nothing to play", dynamo.ErrInvalidConfig)
	}
	frames, err := Frames(traj, pot)
	if err != nil {
		return Player{}, err
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.Title == "" {
		cfg.Title = "Potential Energy Landscape"
	}
	fps := max(int(time.Second/cfg.Interval), 1)
	theme := GetTheme(cfg.Theme)

	p := Player{
		cfg:    cfg,
		frames: frames,
		surf:   surf,
		mesh:   SurfaceMesh(surf, meshStride),
		canvas: NewCanvas(canvasWidth, canvasHeight),
		camera: NewCamera(),
		orbit:  NewOrbit(fps, 0.02),
		progress: progress.New(
			progress.WithScaledGradient(viridisStops[0], viridisStops[len(viridisStops)-1]),
			progress.WithoutPercentage(),
			progress.WithWidth(36),
		),
		theme:   theme,
		styles:  newStyles(theme),
		playing: true,
	}
	return p, nil
}

func (p Player) tick() tea.Cmd {
	return tea.Tick(p.cfg.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			if p.frame == p.last() {
				p.frame = 0
			}
			p.playing = !p.playing
		case "left", "h":
			p.playing = false
			p.frame = max(p.frame-1, 0)
		case "right", "l":
			p.playing = false
			p.frame = min(p.frame+1, p.last())
		case "home", "r":
			p.frame = 0
			p.playing = true
		case "end":
			p.frame = p.last()
			p.playing = false
		case "o":
			p.orbit.Enabled = !p.orbit.Enabled
		case "+", "=":
			p.camera.ZoomIn()
		case "-", "_":
			p.camera.ZoomOut()
		case "v":
			p.topDown = !p.topDown
		case "t":
			p.theme = p.theme.next()
			p.styles = newStyles(p.theme)
		case "?":
			p.showHelp = !p.showHelp
		}
	case tickMsg:
		if p.playing {
			if p.frame < p.last() {
				p.frame++
			}
			if p.frame == p.last() {
				p.playing = false
			}
		}
		p.orbit.Step(p.camera)
		return p, p.tick()
	}
	return p, nil
}

func (p Player) last() int { return len(p.frames) - 1 }

// Frame is the index of the entry currently shown.
func (p Player) Frame() int { return p.frame }

func (p Player) Playing() bool { return p.playing }

func (p Player) current() Frame { return p.frames[p.frame] }

func (p Player) View() string {
	var plot string
	if p.topDown {
		path := make([]dynamo.FieldPoint, p.frame+1)
		for i := range path {
			path[i] = p.frames[i].Point
		}
		plot = Heatmap(p.surf, path, HeatmapOptions{
			Cols:      canvasWidth,
			Rows:      canvasHeight,
			PathColor: p.theme.Path,
			Marks:     p.cfg.Marks,
		})
	} else {
		p.canvas.Clear()
		wf := &Wireframe{Edges: slices.Clone(p.mesh.Edges)}
		wf.AddPath(NewMeshScale(p.surf), p.frames[:p.frame+1])
		Render3D(p.canvas, wf, p.camera)
		plot = p.canvas.String()
	}
	plotView := p.styles.canvas.Render(plot)

	f := p.current()
	var s strings.Builder
	s.WriteString(p.styles.header.Render(strings.ToUpper(p.cfg.Title)) + "\n")
	s.WriteString(p.status() + "\n\n")
	s.WriteString(p.styles.value.Render(f.Counter()) + "\n")
	s.WriteString(p.progress.ViewAs(float64(p.frame)/float64(max(p.last(), 1))) + "\n\n")
	s.WriteString(p.styles.value.Render(f.Annotation()) + "\n")

	if energy := p.energyHistory(); len(energy) > 1 {
		chart := asciigraph.Plot(energy,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("V per frame"),
		)
		s.WriteString(p.styles.graph.Render(chart) + "\n")
	}
	if p.frame > 0 {
		s.WriteString(p.styles.label.Render("step |Δφ| ") + SparklineChart(p.stepHistory(), 30) + "\n")
	}

	s.WriteString(p.styles.help.Render("SP:Play/Pause ←→:Step R:Restart Q:Quit\nO:Orbit +-:Zoom V:View T:Theme ?:Help"))
	statsView := p.styles.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, plotView, statsView)

	if p.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  ← / →    - Step one frame           ║
║  R / Home - Restart from frame 0     ║
║  End      - Jump to the last frame   ║
║  O        - Toggle camera orbit      ║
║  + / -    - Zoom in / out            ║
║  V        - Surface / top-down view  ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (p Player) status() string {
	f := p.current()
	switch {
	case !f.Point.IsValid() || !finite(f.Values.Total):
		return p.styles.failed.Render("DIVERGED")
	case p.playing:
		return p.styles.running.Render("PLAYING")
	case p.frame == p.last():
		return p.styles.paused.Render("DONE")
	default:
		return p.styles.paused.Render("PAUSED")
	}
}

// energyHistory is V for frames 0..current, cut at the first non-finite
// value since asciigraph cannot scale infinities.
func (p Player) energyHistory() []float64 {
	out := make([]float64, 0, p.frame+1)
	for _, f := range p.frames[:p.frame+1] {
		if !finite(f.Values.Total) {
			break
		}
		out = append(out, f.Values.Total)
	}
	return out
}

// stepHistory is the distance moved by each step up to the current frame.
// Steps out of a non-finite point come out non-finite and show as gaps.
func (p Player) stepHistory() []float64 {
	out := make([]float64, p.frame)
	for i := range out {
		out[i] = p.frames[i+1].Point.Sub(p.frames[i].Point).Norm()
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
