package sensing

import (
	"time"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// BoundedReader reads distance sensors under a per-sensor time budget.
type BoundedReader struct {
	// Clock measures the budget and paces retries.
	Clock robot.Clock
	// Timeout is the budget for one sensor, measured from the first attempt.
	Timeout time.Duration
	// Far is the sentinel returned when the budget is exhausted.
	Far int
	// RetryInterval is the pause between failed attempts. Zero retries immediately.
	RetryInterval time.Duration
}

// Read performs one bounded read of sensor.
func (b *BoundedReader) Read(sensor robot.DistanceSensor) robot.DistanceReading {
	return ReadBounded(b.Clock, func() (int, error) {
		return sensor.ReadOnce()
	}, b.Timeout, b.Far, b.RetryInterval)
}

// ReadAll reads the sensors in order and returns one reading per sensor.
func (b *BoundedReader) ReadAll(sensors [robot.DistanceSlotCount]robot.DistanceSensor) robot.Distances {
	var out robot.Distances
	for slot, sensor := range sensors {
		out[slot] = b.Read(sensor)
	}

	return out
}

// ReadBounded calls read until it succeeds or timeout has elapsed since the
// first attempt. On exhaustion it returns far with TimedOut set. Failed
// attempts, including negative distances, are retried silently. With
// timeout <= 0 exactly one attempt is made.
func ReadBounded(
	clock robot.Clock,
	read func() (int, error),
	timeout time.Duration,
	far int,
	retryInterval time.Duration,
) robot.DistanceReading {
	start := clock.Now()

	for {
		mm, err := read()
		if err == nil && mm >= 0 {
			return robot.DistanceReading{Millimeters: mm}
		}

		if clock.Now().Sub(start) >= timeout {
			return robot.DistanceReading{Millimeters: far, TimedOut: true}
		}

		if retryInterval > 0 {
			clock.Sleep(retryInterval)
		}
	}
}
