package export

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/san-kum/landscape/internal/dynamo"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/animation.html.tmpl"))

type page struct {
	Title         string
	Animation     template.URL
	Width, Height int
	Frames        int
	Interval      time.Duration
	Start, End    dynamo.FieldPoint
	Doc           Document
}

// WriteHTML writes a self-contained page with the animation embedded as a
// GIF data URI.
func WriteHTML(w io.Writer, r *FrameRenderer, interval time.Duration, doc Document) error {
	var buf bytes.Buffer
	if err := WriteGIF(&buf, r, interval); err != nil {
		return fmt.Errorf("encoding animation: %w", err)
	}
	b := r.Bounds()
	p := page{
		Title:     r.opts.Title,
		Animation: template.URL("data:image/gif;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())),
		Width:     b.Dx(),
		Height:    b.Dy(),
		Frames:    r.Len(),
		Interval:  interval,
		Start:     r.frames[0].Point,
		End:       r.frames[len(r.frames)-1].Point,
		Doc:       doc,
	}
	return pageTemplate.Execute(w, p)
}
