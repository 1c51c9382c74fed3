package trace

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/oshokin/sumo-robot/internal/control"
	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// Backend names a recorder implementation.
type Backend string

const (
	BackendNone   Backend = "none"
	BackendJSONL  Backend = "jsonl"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b is a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendNone, BackendJSONL, BackendSQLite:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used for default file names.
func (b Backend) Extension() string {
	switch b {
	case BackendSQLite:
		return ".sqlite3"
	default:
		return ".jsonl"
	}
}

// NewRunID returns a fresh, sortable run identifier.
func NewRunID() string {
	return xid.New().String()
}

// Distance is one distance reading in a record.
type Distance struct {
	Slot        string
	Millimeters int
	TimedOut    bool
}

// Record is the trace of one loop iteration.
type Record struct {
	RunID     string
	Iteration uint64
	Elapsed   time.Duration
	Phase     string
	Distances [robot.DistanceSlotCount]Distance
	LineLeft  float64
	LineRight float64
	Avoidance robot.Wheels
	// Behavior is nil when the state machine issued no command.
	Behavior   *robot.Wheels
	Final      robot.Wheels
	Source     string
	Transition string
}

// FromIteration converts a loop iteration into a record.
func FromIteration(runID string, it control.Iteration) Record {
	rec := Record{
		RunID:     runID,
		Iteration: it.Index,
		Elapsed:   it.Elapsed,
		Phase:     it.State.Phase.String(),
		LineLeft:  it.Frame.LineLeft,
		LineRight: it.Frame.LineRight,
		Avoidance: it.Decision.Avoidance,
		Final:     it.Decision.Final,
		Source:    string(it.Decision.Source),
	}

	for slot, d := range it.Frame.Distances {
		rec.Distances[slot] = Distance{
			Slot:        robot.DistanceSlot(slot).String(),
			Millimeters: d.Millimeters,
			TimedOut:    d.TimedOut,
		}
	}

	if it.Decision.Behavior.Active {
		w := it.Decision.Behavior.Wheels
		rec.Behavior = &w
	}

	if tr := it.Decision.Behavior.Transition; tr != nil {
		rec.Transition = tr.From.String() + "->" + tr.To.String() + ":" + string(tr.Reason)
	}

	return rec
}

// Recorder persists records.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
	Close() error
}

// nopRecorder discards everything.
type nopRecorder struct{}

// Record discards rec.
func (nopRecorder) Record(context.Context, Record) error { return nil }

// Close does nothing.
func (nopRecorder) Close() error { return nil }
