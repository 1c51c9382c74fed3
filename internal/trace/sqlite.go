package trace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

// errTraceExists is returned when the database file is already present.
var errTraceExists = errors.New("trace database already exists")

const createIterationsTable = `
	create table iterations
	(
		run_id         varchar(32) not null,
		iteration      integer     not null,
		elapsed_ms     integer     not null,
		phase          varchar(16) not null,
		front_us_mm    integer     not null,
		left_us_mm     integer     not null,
		right_us_mm    integer     not null,
		left_laser_mm  integer     not null,
		right_laser_mm integer     not null,
		timeouts       integer     not null,
		line_left      real        not null,
		line_right     real        not null,
		avoid_left     real        not null,
		avoid_right    real        not null,
		behavior_left  real,
		behavior_right real,
		final_left     real        not null,
		final_right    real        not null,
		source         varchar(16) not null,
		transition     varchar(64) default ''
	);
	create index iterations_phase_index on iterations (phase);
	create index iterations_iteration_index on iterations (iteration);
`

const insertIteration = `
	insert into iterations values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteRecorder buffers records and writes them in batched transactions.
type SQLiteRecorder struct {
	mu      sync.Mutex
	db      *sql.DB
	pending []Record
	batch   int
	closed  bool
}

// NewSQLiteRecorder creates a fresh database at path.
func NewSQLiteRecorder(path string, batch int) (*SQLiteRecorder, error) {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", errTraceExists, path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open trace database: %w", err)
	}

	if _, err = db.Exec(createIterationsTable); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create trace tables: %w", err)
	}

	if batch <= 0 {
		batch = 1
	}

	return &SQLiteRecorder{db: db, batch: batch}, nil
}

// Record buffers rec and writes the buffer once it is full.
func (r *SQLiteRecorder) Record(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errClosed
	}

	r.pending = append(r.pending, rec)
	if len(r.pending) < r.batch {
		return nil
	}

	return r.flush(ctx)
}

// Close writes buffered records and closes the database. Further calls do nothing.
func (r *SQLiteRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true

	flushErr := r.flush(context.Background())

	return errors.Join(flushErr, r.db.Close())
}

// flush inserts the pending records in one transaction.
func (r *SQLiteRecorder) flush(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertIteration)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("prepare insert: %w", err)
	}

	defer stmt.Close()

	for _, rec := range r.pending {
		if _, err = stmt.ExecContext(ctx, rowOf(rec)...); err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("insert iteration %d: %w", rec.Iteration, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.pending = r.pending[:0]

	return nil
}

// rowOf flattens a record into column values.
func rowOf(rec Record) []any {
	var (
		timeouts          int
		behaviorL, behavR sql.NullFloat64
	)

	for i, d := range rec.Distances {
		if d.TimedOut {
			timeouts |= 1 << i
		}
	}

	if rec.Behavior != nil {
		behaviorL = sql.NullFloat64{Float64: float64(rec.Behavior.Left), Valid: true}
		behavR = sql.NullFloat64{Float64: float64(rec.Behavior.Right), Valid: true}
	}

	return []any{
		rec.RunID,
		int64(rec.Iteration), //nolint:gosec // Iteration counts never approach int64 overflow.
		rec.Elapsed.Milliseconds(),
		rec.Phase,
		rec.Distances[0].Millimeters,
		rec.Distances[1].Millimeters,
		rec.Distances[2].Millimeters,
		rec.Distances[3].Millimeters,
		rec.Distances[4].Millimeters,
		timeouts,
		rec.LineLeft,
		rec.LineRight,
		float64(rec.Avoidance.Left),
		float64(rec.Avoidance.Right),
		behaviorL,
		behavR,
		float64(rec.Final.Left),
		float64(rec.Final.Right),
		rec.Source,
		rec.Transition,
	}
}
