package trace

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// errClosed is returned when recording after Close.
var errClosed = errors.New("recorder is closed")

// JSONLRecorder writes one protojson-encoded struct per line.
type JSONLRecorder struct {
	mu      sync.Mutex
	file    *os.File
	out     *bufio.Writer
	pending int
	batch   int
	closed  bool
}

// NewJSONLRecorder creates path, failing if it already exists.
func NewJSONLRecorder(path string, batch int) (*JSONLRecorder, error) {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	if batch <= 0 {
		batch = 1
	}

	return &JSONLRecorder{file: file, out: bufio.NewWriter(file), batch: batch}, nil
}

// Record appends rec, flushing every batch records.
func (r *JSONLRecorder) Record(_ context.Context, rec Record) error {
	msg, err := toStruct(rec)
	if err != nil {
		return fmt.Errorf("convert record: %w", err)
	}

	line, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errClosed
	}

	if _, err = r.out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	r.pending++
	if r.pending >= r.batch {
		r.pending = 0

		if err = r.out.Flush(); err != nil {
			return fmt.Errorf("flush records: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the file. Further calls do nothing.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true

	flushErr := r.out.Flush()
	closeErr := r.file.Close()

	return errors.Join(flushErr, closeErr)
}

// toStruct converts a record into a protobuf Struct.
func toStruct(rec Record) (*structpb.Struct, error) {
	distances := make([]any, 0, len(rec.Distances))
	for _, d := range rec.Distances {
		distances = append(distances, map[string]any{
			"slot":      d.Slot,
			"mm":        d.Millimeters,
			"timed_out": d.TimedOut,
		})
	}

	fields := map[string]any{
		"run_id":     rec.RunID,
		"iteration":  rec.Iteration,
		"elapsed_ms": rec.Elapsed.Milliseconds(),
		"phase":      rec.Phase,
		"distances":  distances,
		"line_left":  rec.LineLeft,
		"line_right": rec.LineRight,
		"avoidance":  wheels(rec.Avoidance.Left, rec.Avoidance.Right),
		"final":      wheels(rec.Final.Left, rec.Final.Right),
		"source":     rec.Source,
	}

	if rec.Behavior != nil {
		fields["behavior"] = wheels(rec.Behavior.Left, rec.Behavior.Right)
	}

	if rec.Transition != "" {
		fields["transition"] = rec.Transition
	}

	return structpb.NewStruct(fields)
}

// wheels renders a command pair.
func wheels[T ~float64](left, right T) map[string]any {
	return map[string]any{"left": float64(left), "right": float64(right)}
}
