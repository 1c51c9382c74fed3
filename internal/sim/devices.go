package sim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrNoEcho is returned when nothing is within a sensor's range or cone.
	ErrNoEcho = errors.New("no echo")
	// ErrTransient is a random read failure such as a bus NACK.
	ErrTransient = errors.New("transient read failure")
)

// Motor is a simulated motor driver channel.
type Motor struct {
	speed float64
}

// Forward sets a forward drive of the given magnitude.
func (m *Motor) Forward(speed float64) {
	m.speed = clampUnit(speed)
}

// Backward sets a backward drive of the given magnitude.
func (m *Motor) Backward(speed float64) {
	m.speed = -clampUnit(speed)
}

// Stop removes drive.
func (m *Motor) Stop() {
	m.speed = 0
}

// Speed returns the signed drive in [-1, 1].
func (m *Motor) Speed() float64 {
	return m.speed
}

// lineSensor is a digital reflectance sensor at the front of the robot.
type lineSensor struct {
	arena   *Arena
	lateral float64
}

// Read returns 0 over the ring surface and 1 over the edge band.
func (s *lineSensor) Read() float64 {
	return s.arena.lineValue(s.arena.cfg.LineSensorForward, s.lateral)
}

// rangeSensor is an ultrasonic or laser range finder.
type rangeSensor struct {
	arena   *Arena
	kind    string
	mount   float64
	cone    float64
	max     float64
	latency time.Duration
}

// ReadOnce spends the sensor latency and returns the range in millimeters.
func (s *rangeSensor) ReadOnce() (int, error) {
	s.arena.clock.Advance(s.latency)

	if s.arena.fails() {
		return 0, fmt.Errorf("%s: %w", s.kind, ErrTransient)
	}

	mm, ok := s.arena.rangeTo(s.mount, s.cone, s.max)
	if !ok {
		return 0, fmt.Errorf("%s: %w", s.kind, ErrNoEcho)
	}

	return int(math.Round(mm)), nil
}

// clampUnit limits v to [0, 1].
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
