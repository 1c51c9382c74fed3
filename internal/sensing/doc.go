// Package sensing turns raw collaborator output into per-iteration readings.
//
// ReadBounded retries a distance sensor until it answers or a timeout elapses,
// degrading to a far sentinel instead of returning an error. Classify maps a
// normalized line-sensor value to on/off boundary.
package sensing
