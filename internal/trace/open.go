package trace

import (
	"context"
	"errors"
	"fmt"

	"github.com/tebeka/atexit"

	"github.com/oshokin/sumo-robot/internal/control"
	"github.com/oshokin/sumo-robot/internal/logger"
)

// errUnknownBackend is returned by Open for unsupported backends.
var errUnknownBackend = errors.New("unknown trace backend")

// Options selects and configures a recorder.
type Options struct {
	Backend Backend
	// Path is the output file. Empty derives a name from RunID.
	Path string
	// RunID tags every record.
	RunID string
	// BatchSize bounds the number of buffered records.
	BatchSize int
}

// Open creates the recorder for opts and returns it with the path it writes to.
// The recorder is also registered with atexit so buffered records survive an
// abnormal exit.
func Open(opts Options) (Recorder, string, error) {
	path := opts.Path
	if path == "" {
		path = "sumo_trace_" + opts.RunID + opts.Backend.Extension()
	}

	var (
		rec Recorder
		err error
	)

	switch opts.Backend {
	case BackendNone, "":
		return nopRecorder{}, "", nil
	case BackendJSONL:
		rec, err = NewJSONLRecorder(path, opts.BatchSize)
	case BackendSQLite:
		rec, err = NewSQLiteRecorder(path, opts.BatchSize)
	default:
		return nil, "", fmt.Errorf("%w: %q", errUnknownBackend, opts.Backend)
	}

	if err != nil {
		return nil, "", err
	}

	atexit.Register(func() { _ = rec.Close() })

	return rec, path, nil
}

// Observer returns a loop observer that writes every iteration to rec. The
// first write failure is logged and disables recording for the rest of the run.
func Observer(rec Recorder, runID string) control.Observer {
	disabled := false

	return func(ctx context.Context, it control.Iteration) {
		if disabled {
			return
		}

		if err := rec.Record(ctx, FromIteration(runID, it)); err != nil {
			disabled = true

			logger.ErrorKV(ctx, "Trace recording disabled", "error", err, "iteration", it.Index)
		}
	}
}
