// Package drive applies wheel commands to the two drivetrain motors.
package drive

import "github.com/oshokin/sumo-robot/internal/domain/robot"

// Mixer owns the left and right motors.
type Mixer struct {
	left  robot.Motor
	right robot.Motor
}

// NewMixer creates a mixer over the given motors.
func NewMixer(left, right robot.Motor) *Mixer {
	return &Mixer{left: left, right: right}
}

// Drive clamps and applies a command pair. Repeating a command is harmless.
func (m *Mixer) Drive(w robot.Wheels) {
	w = w.Clamp()
	apply(m.left, w.Left)
	apply(m.right, w.Right)
}

// Stop removes drive from both motors.
func (m *Mixer) Stop() {
	m.left.Stop()
	m.right.Stop()
}

// apply translates a signed command into a motor call.
func apply(motor robot.Motor, cmd robot.WheelCommand) {
	switch {
	case cmd > 0:
		motor.Forward(float64(cmd))
	case cmd < 0:
		motor.Backward(float64(-cmd))
	default:
		motor.Stop()
	}
}
