package testutil

import "fmt"

// Event is a notification received by a Recorder.
type Event struct {
	Kind string
	A, B int
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d, %d)", e.Kind, e.A, e.B)
}

func Appended(begin, end int) Event { return Event{"appended", begin, end} }
func Removed(begin, end int) Event  { return Event{"removed", begin, end} }
func Changed(row, col int) Event    { return Event{"changed", row, col} }

// Recorder is an observer that records every notification.
type Recorder struct {
	Events []Event
}

func (r *Recorder) RowsAppended(begin, end int) {
	r.Events = append(r.Events, Appended(begin, end))
}

func (r *Recorder) RowsRemoved(begin, end int) {
	r.Events = append(r.Events, Removed(begin, end))
}

func (r *Recorder) CellChanged(row, column int) {
	r.Events = append(r.Events, Changed(row, column))
}

// Reset forgets the recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
