package control

import (
	"time"

	"github.com/oshokin/sumo-robot/internal/behavior"
	"github.com/oshokin/sumo-robot/internal/domain/robot"
	"github.com/oshokin/sumo-robot/internal/sensing"
)

// Params are the controller tunables that are not part of the state machine.
type Params struct {
	// LineThreshold splits line values into on/off boundary.
	LineThreshold float64
	// Speeds drive the avoidance policy.
	Speeds behavior.Speeds
	// Arbitration decides who has final authority over the wheels.
	Arbitration behavior.Arbitration
}

// Frame is everything sensed during one iteration.
type Frame struct {
	// LineLeft is the raw left line value.
	LineLeft float64
	// LineRight is the raw right line value.
	LineRight float64
	// Distances holds one bounded reading per distance sensor.
	Distances robot.Distances
}

// Decision is the outcome of one controller step.
type Decision struct {
	// Left is the classified left line reading.
	Left robot.LineReading
	// Right is the classified right line reading.
	Right robot.LineReading
	// Avoidance is the boundary policy command, computed every iteration.
	Avoidance robot.Wheels
	// Behavior is the state machine output.
	Behavior behavior.Output
	// Final is the clamped command sent to the mixer.
	Final robot.Wheels
	// Source names the behavior Final came from.
	Source behavior.Source
}

// Controller combines boundary avoidance with the opponent state machine.
type Controller struct {
	params  Params
	machine *behavior.Machine
}

// NewController creates a controller.
func NewController(params Params, machine *behavior.Machine) *Controller {
	if params.Arbitration == 0 {
		params.Arbitration = behavior.ArbitrationEdgePriority
	}

	return &Controller{params: params, machine: machine}
}

// Params returns the controller parameters.
func (c *Controller) Params() Params {
	return c.params
}

// Step computes one iteration.
func (c *Controller) Step(state robot.PhaseState, f Frame, now time.Time) (robot.PhaseState, Decision) {
	var d Decision

	d.Left = sensing.Classify(f.LineLeft, c.params.LineThreshold)
	d.Right = sensing.Classify(f.LineRight, c.params.LineThreshold)
	d.Avoidance = behavior.Avoid(d.Left, d.Right, c.params.Speeds)

	next, out := c.machine.Step(state, f.Distances, now)
	d.Behavior = out

	final, source := behavior.Arbitrate(c.params.Arbitration, d.Left, d.Right, d.Avoidance, out)
	d.Final = final.Clamp()
	d.Source = source

	return next, d
}
