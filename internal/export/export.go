package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/viz"
)

type Format string

// DefaultInterval is the playback time per frame.
const DefaultInterval = 100 * time.Millisecond

const (
	FormatGIF  Format = "gif"
	FormatHTML Format = "html"
	FormatAVI  Format = "avi"
	FormatPlot Format = "plot"
	FormatSVG  Format = "svg"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatFromPath picks the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return FormatGIF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".avi":
		return FormatAVI, nil
	case ".png", ".jpg", ".jpeg", ".pdf", ".eps", ".tif", ".tiff":
		return FormatPlot, nil
	case ".svg":
		return FormatSVG, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported output extension %q", dynamo.ErrInvalidConfig, ext)
	}
}

// Job is everything needed to write a run in any format.
type Job struct {
	Trajectory   *dynamo.Trajectory
	Potential    *physics.Potential
	Surface      *physics.Surface
	LearningRate float64
	Dt           float64
	Interval     time.Duration
	Width        int
	Height       int
	Title        string
	// Marks are highlighted points, usually the two vacua.
	Marks []dynamo.FieldPoint
}

func (j Job) renderer(frames []viz.Frame) (*FrameRenderer, error) {
	if j.Surface == nil {
		return nil, fmt.Errorf("%w: animation needs a sampled surface", dynamo.ErrInvalidConfig)
	}
	return NewFrameRenderer(j.Surface, frames, RenderOptions{
		Width:  j.Width,
		Height: j.Height,
		Title:  j.Title,
		Marks:  j.Marks,
	})
}

// Write renders job to path in the format implied by its extension and
// returns that format.
func Write(path string, job Job) (Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	if job.Trajectory == nil || job.Trajectory.Len() == 0 {
		return format, fmt.Errorf("%w: empty trajectory", dynamo.ErrInvalidConfig)
	}
	if job.Potential == nil {
		return format, fmt.Errorf("%w: no potential to evaluate frames with", dynamo.ErrInvalidConfig)
	}
	if job.Interval <= 0 {
		job.Interval = DefaultInterval
	}
	frames, err := viz.Frames(job.Trajectory, job.Potential)
	if err != nil {
		return format, err
	}

	switch format {
	case FormatAVI:
		r, err := job.renderer(frames)
		if err != nil {
			return format, err
		}
		return format, WriteAVI(path, r, job.Interval)
	case FormatPlot:
		if job.Surface == nil {
			return format, fmt.Errorf("%w: plot needs a sampled surface", dynamo.ErrInvalidConfig)
		}
		return format, WritePlot(path, job.Surface, job.Trajectory.Points(), job.Title, job.Marks...)
	}

	f, err := os.Create(path)
	if err != nil {
		return format, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatGIF, FormatHTML:
		r, rerr := job.renderer(frames)
		if rerr != nil {
			return format, rerr
		}
		if format == FormatGIF {
			err = WriteGIF(f, r, job.Interval)
		} else {
			err = WriteHTML(f, r, job.Interval, NewDocument(job, frames))
		}
	case FormatSVG:
		svg := TrajectoryToSVG(job.Trajectory.Points(), job.Width, job.Height, "#ff0000", job.Marks...)
		if svg == "" {
			return format, fmt.Errorf("%w: fewer than two finite points to draw", dynamo.ErrInvalidConfig)
		}
		_, err = f.WriteString(svg)
	case FormatCSV:
		err = WriteCSV(f, frames)
	case FormatJSON:
		err = WriteJSON(f, NewDocument(job, frames))
	}
	if err != nil {
		return format, err
	}
	return format, f.Close()
}
