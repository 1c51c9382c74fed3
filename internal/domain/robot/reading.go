package robot

import "fmt"

// DefaultFarDistance is the sentinel distance in millimeters reported when a
// sensor produced nothing within its timeout.
const DefaultFarDistance = 1000

// DistanceReading is the outcome of one bounded sensor read.
type DistanceReading struct {
	// Millimeters is the measured distance, or the sentinel when TimedOut is set.
	Millimeters int
	// TimedOut is set when no read succeeded within the timeout.
	TimedOut bool
}

// Below reports whether the reading is strictly closer than threshold.
func (r DistanceReading) Below(threshold int) bool {
	return r.Millimeters < threshold
}

// DistanceSlot names one of the five distance sensors.
type DistanceSlot int

const (
	FrontUltrasonic DistanceSlot = iota
	LeftUltrasonic
	RightUltrasonic
	LeftLaser
	RightLaser

	// DistanceSlotCount is the number of distance sensors on the robot.
	DistanceSlotCount = 5
)

func (s DistanceSlot) String() string {
	switch s {
	case FrontUltrasonic:
		return "front_ultrasonic"
	case LeftUltrasonic:
		return "left_ultrasonic"
	case RightUltrasonic:
		return "right_ultrasonic"
	case LeftLaser:
		return "left_laser"
	case RightLaser:
		return "right_laser"
	default:
		return fmt.Sprintf("DistanceSlot(%d)", int(s))
	}
}

// Distances holds one reading per distance sensor, indexed by DistanceSlot.
type Distances [DistanceSlotCount]DistanceReading

// At returns the reading for a slot.
func (d Distances) At(slot DistanceSlot) DistanceReading {
	return d[slot]
}

// AnyBelow reports whether any reading is strictly closer than threshold.
func (d Distances) AnyBelow(threshold int) bool {
	for _, r := range d {
		if r.Below(threshold) {
			return true
		}
	}

	return false
}

// LineReading is the classified state of one line sensor.
type LineReading bool

const (
	// OnBoundary means the sensor sees the dark ring surface.
	OnBoundary LineReading = true
	// OffBoundary means the sensor sees the edge marking.
	OffBoundary LineReading = false
)

func (l LineReading) String() string {
	if l == OnBoundary {
		return "on-boundary"
	}

	return "off-boundary"
}
