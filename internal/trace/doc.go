// Package trace is the controller's flight recorder.
//
// Every loop iteration can be captured as a Record and written to a JSON Lines
// file (one protojson-encoded struct per line) or to a SQLite database for
// post-match analysis. Recorders are flushed on Close and, as a fallback, from
// an atexit handler.
package trace
