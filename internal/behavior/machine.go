package behavior

import (
	"time"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// MachineConfig bundles the timing and range parameters of the state machine.
type MachineConfig struct {
	// SearchTime is how long to sweep before attacking.
	SearchTime time.Duration
	// AttackTime is the longest an attack may last.
	AttackTime time.Duration
	// AttackDistance is the range in millimeters below which the robot charges.
	AttackDistance int
	// DetectDistance is the range below which the robot turns toward a target.
	DetectDistance int
	// Speeds are the drive magnitudes for charging and pivoting.
	Speeds Speeds
}

// Reason explains a phase change.
type Reason string

const (
	// ReasonSearchElapsed ends a search that ran out of time.
	ReasonSearchElapsed Reason = "search_time_elapsed"
	// ReasonAttackElapsed ends an attack that ran out of time.
	ReasonAttackElapsed Reason = "attack_time_elapsed"
	// ReasonOpponentLost ends an attack when no sensor sees the opponent.
	ReasonOpponentLost Reason = "opponent_lost"
)

// Transition describes a phase change made during one step.
type Transition struct {
	From   robot.Phase
	To     robot.Phase
	Reason Reason
}

// Output is what the state machine asks of the wheels for one iteration.
type Output struct {
	// Wheels is meaningful only when Active is set.
	Wheels robot.Wheels
	// Active is false on iterations that only change phase.
	Active bool
	// Transition is set when the phase changed.
	Transition *Transition
}

// Machine is the search/attack state machine.
type Machine struct {
	cfg MachineConfig
}

// NewMachine constructs a state machine with the given configuration.
func NewMachine(cfg MachineConfig) *Machine {
	return &Machine{cfg: cfg}
}

// Config returns the machine configuration.
func (m *Machine) Config() MachineConfig {
	return m.cfg
}

// Step evaluates one iteration and returns the next state and the command.
func (m *Machine) Step(state robot.PhaseState, distances robot.Distances, now time.Time) (robot.PhaseState, Output) {
	switch state.Phase {
	case robot.PhaseAttack:
		return m.stepAttack(state, distances, now)
	default:
		return m.stepSearch(state, now)
	}
}

// stepSearch sweeps in place until the search budget runs out.
func (m *Machine) stepSearch(state robot.PhaseState, now time.Time) (robot.PhaseState, Output) {
	if state.Elapsed(now) > m.cfg.SearchTime {
		return m.change(state, robot.PhaseAttack, ReasonSearchElapsed, now)
	}

	return state, Output{Wheels: robot.PivotRight(m.cfg.Speeds.Turn), Active: true}
}

// stepAttack checks the attack budget first, then the distance readings.
func (m *Machine) stepAttack(state robot.PhaseState, d robot.Distances, now time.Time) (robot.PhaseState, Output) {
	if state.Elapsed(now) > m.cfg.AttackTime {
		return m.change(state, robot.PhaseSearch, ReasonAttackElapsed, now)
	}

	switch {
	case d.AnyBelow(m.cfg.AttackDistance):
		return state, Output{Wheels: robot.Straight(m.cfg.Speeds.Forward), Active: true}
	case d.AnyBelow(m.cfg.DetectDistance):
		// Turn toward the side whose ultrasonic reports the shorter range.
		if d.At(robot.LeftUltrasonic).Millimeters < d.At(robot.RightUltrasonic).Millimeters {
			return state, Output{Wheels: robot.PivotRight(m.cfg.Speeds.Turn), Active: true}
		}

		return state, Output{Wheels: robot.PivotLeft(m.cfg.Speeds.Turn), Active: true}
	default:
		return m.change(state, robot.PhaseSearch, ReasonOpponentLost, now)
	}
}

// change enters phase p without issuing a wheel command.
func (*Machine) change(state robot.PhaseState, p robot.Phase, reason Reason, now time.Time) (robot.PhaseState, Output) {
	return state.Enter(p, now), Output{
		Transition: &Transition{From: state.Phase, To: p, Reason: reason},
	}
}
