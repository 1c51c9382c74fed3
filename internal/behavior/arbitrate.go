package behavior

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// ErrUnknownArbitration is returned for an unsupported arbitration mode name.
var ErrUnknownArbitration = errors.New("unknown arbitration")

// Arbitration selects which behavior has final authority over the wheels.
type Arbitration int

const (
	// ArbitrationEdgePriority lets avoidance win whenever either line sensor
	// sees the edge, and the state machine win otherwise.
	ArbitrationEdgePriority Arbitration = iota + 1
	// ArbitrationBoundaryFirst always applies the avoidance command.
	ArbitrationBoundaryFirst
	// ArbitrationOffenseFirst applies the state machine command whenever it
	// issued one.
	ArbitrationOffenseFirst
)

func (a Arbitration) String() string {
	switch a {
	case ArbitrationEdgePriority:
		return "edge-priority"
	case ArbitrationBoundaryFirst:
		return "boundary-first"
	case ArbitrationOffenseFirst:
		return "offense-first"
	default:
		return fmt.Sprintf("Arbitration(%d)", int(a))
	}
}

// ParseArbitration converts a mode name into an Arbitration.
func ParseArbitration(value string) (Arbitration, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "edge-priority", "":
		return ArbitrationEdgePriority, nil
	case "boundary-first":
		return ArbitrationBoundaryFirst, nil
	case "offense-first":
		return ArbitrationOffenseFirst, nil
	default:
		return ArbitrationEdgePriority, fmt.Errorf("%w: %q", ErrUnknownArbitration, value)
	}
}

// MarshalText renders the mode name for YAML.
func (a Arbitration) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText allows the mode to be loaded from configuration strings.
func (a *Arbitration) UnmarshalText(b []byte) error {
	parsed, err := ParseArbitration(string(b))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// Source names the behavior whose command reached the wheels.
type Source string

const (
	SourceAvoidance Source = "avoidance"
	SourceBehavior  Source = "behavior"
)

// Arbitrate picks the final wheel command. Without an active state machine
// command the avoidance command always lands.
func Arbitrate(
	mode Arbitration,
	left, right robot.LineReading,
	avoidance robot.Wheels,
	out Output,
) (robot.Wheels, Source) {
	if !out.Active {
		return avoidance, SourceAvoidance
	}

	switch mode {
	case ArbitrationBoundaryFirst:
		return avoidance, SourceAvoidance
	case ArbitrationOffenseFirst:
		return out.Wheels, SourceBehavior
	default:
		if left == robot.OffBoundary || right == robot.OffBoundary {
			return avoidance, SourceAvoidance
		}

		return out.Wheels, SourceBehavior
	}
}
