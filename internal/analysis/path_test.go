package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
)

func TestFieldPathToASCII(t *testing.T) {
	traj := defaultRun(t)
	s6 := math.Sqrt(6)
	out := FieldPathToASCII(traj.Points(), 40, 20, dynamo.FieldPoint{Minus: s6}, dynamo.FieldPoint{Minus: -s6})

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}
	for _, r := range []string{"S", "@", "*", "•"} {
		if !strings.Contains(out, r) {
			t.Errorf("expected %q in output:\n%s", r, out)
		}
	}
}

func TestFieldPathToASCII_Degenerate(t *testing.T) {
	if FieldPathToASCII(nil, 10, 10) != "" {
		t.Error("expected empty output for no points")
	}
	nan := []dynamo.FieldPoint{{Plus: math.NaN()}}
	if FieldPathToASCII(nan, 10, 10) != "" {
		t.Error("expected empty output when no point is finite")
	}
	single := FieldPathToASCII([]dynamo.FieldPoint{{Plus: 1, Minus: 1}}, 10, 5)
	if !strings.Contains(single, "@") {
		t.Errorf("expected final marker for single point:\n%s", single)
	}
}
