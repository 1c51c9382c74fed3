package robot

import (
	"fmt"
	"time"
)

// WheelCommand is a signed speed for one side of the drivetrain.
// Negative is backward, zero is stop, positive is forward.
type WheelCommand float64

// Clamp limits the command to [-1, 1].
func (c WheelCommand) Clamp() WheelCommand {
	switch {
	case c > 1:
		return 1
	case c < -1:
		return -1
	default:
		return c
	}
}

// Wheels is a left/right command pair.
type Wheels struct {
	Left  WheelCommand
	Right WheelCommand
}

// Straight drives both sides at the same signed speed.
func Straight(speed float64) Wheels {
	return Wheels{Left: WheelCommand(speed), Right: WheelCommand(speed)}
}

// PivotRight spins clockwise in place: left forward, right backward.
func PivotRight(speed float64) Wheels {
	return Wheels{Left: WheelCommand(speed), Right: WheelCommand(-speed)}
}

// PivotLeft spins counter-clockwise in place: left backward, right forward.
func PivotLeft(speed float64) Wheels {
	return Wheels{Left: WheelCommand(-speed), Right: WheelCommand(speed)}
}

// Clamp limits both sides to [-1, 1].
func (w Wheels) Clamp() Wheels {
	return Wheels{Left: w.Left.Clamp(), Right: w.Right.Clamp()}
}

func (w Wheels) String() string {
	return fmt.Sprintf("(%+.2f, %+.2f)", float64(w.Left), float64(w.Right))
}

// Phase is the top-level opponent behaviour.
type Phase int

const (
	PhaseSearch Phase = iota + 1
	PhaseAttack
)

func (p Phase) String() string {
	switch p {
	case PhaseSearch:
		return "search"
	case PhaseAttack:
		return "attack"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseState is the only state carried between iterations.
type PhaseState struct {
	// Phase is the active behaviour.
	Phase Phase
	// Since is when Phase began.
	Since time.Time
}

// NewPhaseState starts in search at the given instant.
func NewPhaseState(now time.Time) PhaseState {
	return PhaseState{Phase: PhaseSearch, Since: now}
}

// Elapsed returns how long the current phase has been active.
func (s PhaseState) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.Since)
}

// Enter switches to phase p and resets the phase clock.
func (PhaseState) Enter(p Phase, now time.Time) PhaseState {
	return PhaseState{Phase: p, Since: now}
}
