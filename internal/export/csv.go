package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/landscape/internal/viz"
)

// WriteCSV writes one row per frame with a header line.
func WriteCSV(w io.Writer, frames []viz.Frame) error {
	if err := gocsv.Marshal(Rows(frames), w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
