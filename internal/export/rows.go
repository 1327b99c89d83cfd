package export

import (
	"math"
	"strconv"

	"github.com/san-kum/landscape/internal/viz"
)

// Float is a float64 that encodes non-finite values as JSON null, which
// encoding/json would otherwise reject.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f Float) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
}

// Row is one trajectory entry in tabular form.
type Row struct {
	Step     int   `csv:"step" json:"step"`
	PhiPlus  Float `csv:"phi_plus" json:"phi_plus"`
	PhiMinus Float `csv:"phi_minus" json:"phi_minus"`
	Total    Float `csv:"v_total" json:"v_total"`
	T1       Float `csv:"t1_plus" json:"t1_plus"`
	T2       Float `csv:"t2_minus" json:"t2_minus"`
	T3       Float `csv:"t3_quartic" json:"t3_quartic"`
	T4       Float `csv:"t4_const" json:"t4_const"`
}

func Rows(frames []viz.Frame) []Row {
	rows := make([]Row, len(frames))
	for i, f := range frames {
		rows[i] = Row{
			Step:     f.Index,
			PhiPlus:  Float(f.Point.Plus),
			PhiMinus: Float(f.Point.Minus),
			Total:    Float(f.Values.Total),
			T1:       Float(f.Values.Plus),
			T2:       Float(f.Values.Minus),
			T3:       Float(f.Values.Quartic),
			T4:       Float(f.Values.Const),
		}
	}
	return rows
}
