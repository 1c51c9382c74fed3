package sensing

import "github.com/oshokin/sumo-robot/internal/domain/robot"

// DefaultLineThreshold splits the digital sensor's 0 (black) and 1 (white).
const DefaultLineThreshold = 0.5

// Classify maps a normalized line value to a boundary reading.
// Values strictly below threshold are on-boundary (dark ring surface);
// everything else, including a value equal to threshold, is off-boundary.
// Values outside [0, 1] are compared as-is.
func Classify(raw, threshold float64) robot.LineReading {
	if raw < threshold {
		return robot.OnBoundary
	}

	return robot.OffBoundary
}
