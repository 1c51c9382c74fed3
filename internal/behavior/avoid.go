package behavior

import "github.com/oshokin/sumo-robot/internal/domain/robot"

// Speeds are the drive magnitudes shared by all behaviors, each in (0, 1].
type Speeds struct {
	Forward  float64
	Backward float64
	Turn     float64
}

// Avoid maps the two line readings to a wheel command.
//
//	both on-boundary   -> forward
//	both off-boundary  -> backward
//	left on, right off -> pivot left (left backward, right forward)
//	right on, left off -> pivot right (left forward, right backward)
func Avoid(left, right robot.LineReading, speeds Speeds) robot.Wheels {
	switch {
	case left == robot.OnBoundary && right == robot.OnBoundary:
		return robot.Straight(speeds.Forward)
	case left == robot.OffBoundary && right == robot.OffBoundary:
		return robot.Straight(-speeds.Backward)
	case left == robot.OnBoundary:
		return robot.PivotLeft(speeds.Turn)
	default:
		return robot.PivotRight(speeds.Turn)
	}
}
