package robot

import "time"

// Motor is one side of the drivetrain.
// Speeds are magnitudes in [0, 1]; direction is chosen by the method.
type Motor interface {
	// Forward drives the motor forward at the given magnitude.
	Forward(speed float64)
	// Backward drives the motor backward at the given magnitude.
	Backward(speed float64)
	// Stop removes the drive signal. It is not a hard brake.
	Stop()
}

// LineSensor reports the normalized reflectance under the robot.
// The digital sensors in use report 0 over the black ring surface
// and 1 over the white edge marking.
type LineSensor interface {
	Read() float64
}

// DistanceSensor is an ultrasonic or laser range finder.
// ReadOnce performs a single measurement in millimeters. Any error is
// treated as transient by the caller.
type DistanceSensor interface {
	ReadOnce() (int, error)
}

// Clock is a monotonic time source.
// Elapsed time is always computed as Now().Sub(start).
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time with its monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the current goroutine.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
