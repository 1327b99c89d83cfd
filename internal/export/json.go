package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/viz"
)

// Document is the JSON form of a run.
type Document struct {
	Params       dynamo.Params       `json:"params"`
	LearningRate float64             `json:"learning_rate"`
	Dt           float64             `json:"dt"`
	Frames       int                 `json:"frames"`
	Vacua        []dynamo.FieldPoint `json:"vacua,omitempty"`
	ExportedAt   time.Time           `json:"exported_at"`
	Trajectory   []Row               `json:"trajectory"`
}

func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// NewDocument builds a Document from evaluated frames.
func NewDocument(job Job, frames []viz.Frame) Document {
	return Document{
		Params:       job.Potential.Params,
		LearningRate: job.LearningRate,
		Dt:           job.Dt,
		Frames:       len(frames) - 1,
		Vacua:        job.Marks,
		ExportedAt:   time.Now().UTC(),
		Trajectory:   Rows(frames),
	}
}
