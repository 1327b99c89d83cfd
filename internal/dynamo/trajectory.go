package dynamo

import "iter"

// Entry is one recorded point of a descent.
type Entry struct {
	Step      int        `json:"step"`
	Point     FieldPoint `json:"point"`
	Potential float64    `json:"potential"`
}

// Trajectory is the ordered record of a descent. Entries are only ever
// appended; the zeroth entry is the initial state.
type Trajectory struct {
	entries []Entry
}

func NewTrajectory(capacity int) *Trajectory {
	if capacity < 1 {
		capacity = 1
	}
	return &Trajectory{entries: make([]Entry, 0, capacity)}
}

// Append records the next entry. Step numbers are assigned in order.
func (t *Trajectory) Append(p FieldPoint, potential float64) Entry {
	e := Entry{Step: len(t.entries), Point: p, Potential: potential}
	t.entries = append(t.entries, e)
	return e
}

func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (t *Trajectory) At(i int) Entry {
	return t.entries[i]
}

// Last returns the most recent entry and false when the trajectory is empty.
func (t *Trajectory) Last() (Entry, bool) {
	if t.Len() == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// All iterates the entries in order.
func (t *Trajectory) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i := 0; i < t.Len(); i++ {
			if !yield(i, t.entries[i]) {
				return
			}
		}
	}
}

func (t *Trajectory) Points() []FieldPoint {
	pts := make([]FieldPoint, t.Len())
	for i, e := range t.All() {
		pts[i] = e.Point
	}
	return pts
}

func (t *Trajectory) Potentials() []float64 {
	vs := make([]float64, t.Len())
	for i, e := range t.All() {
		vs[i] = e.Potential
	}
	return vs
}

// FirstInvalid returns the index of the first non-finite entry, or -1.
func (t *Trajectory) FirstInvalid() int {
	for i, e := range t.All() {
		if !e.Point.IsValid() || !isFinite(e.Potential) {
			return i
		}
	}
	return -1
}
