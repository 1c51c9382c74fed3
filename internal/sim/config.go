package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OpponentMode selects how the simulated opponent moves.
type OpponentMode string

const (
	// OpponentStatic stays where it was placed.
	OpponentStatic OpponentMode = "static"
	// OpponentOrbit circles the ring center at its start radius.
	OpponentOrbit OpponentMode = "orbit"
	// OpponentChase drives straight at the robot.
	OpponentChase OpponentMode = "chase"
)

// Config describes the simulated ring, robots and sensors. Lengths are in
// millimeters, angles in degrees.
type Config struct {
	// RingRadius is the radius of the dohyo including the edge band.
	RingRadius float64 `yaml:"ring_radius"`
	// EdgeWidth is the width of the white edge band.
	EdgeWidth float64 `yaml:"edge_width"`
	// RobotRadius is the footprint of both robots.
	RobotRadius float64 `yaml:"robot_radius"`
	// WheelBase is the distance between the drive wheels.
	WheelBase float64 `yaml:"wheel_base"`
	// MaxWheelSpeed is the wheel surface speed at full duty, in mm/s.
	MaxWheelSpeed float64 `yaml:"max_wheel_speed"`
	// LineSensorForward is how far ahead of the center the line sensors sit.
	LineSensorForward float64 `yaml:"line_sensor_forward"`
	// LineSensorLateral is the sideways offset of each line sensor.
	LineSensorLateral float64 `yaml:"line_sensor_lateral"`

	// StartX, StartY and StartHeading place the robot.
	StartX       float64 `yaml:"start_x"`
	StartY       float64 `yaml:"start_y"`
	StartHeading float64 `yaml:"start_heading"`

	Opponent OpponentConfig `yaml:"opponent"`
	Sensors  SensorConfig   `yaml:"sensors"`

	// Seed drives sensor noise and failures.
	Seed uint64 `yaml:"seed"`
	// PhysicsStep is the integration step.
	PhysicsStep time.Duration `yaml:"physics_step"`
}

// OpponentConfig describes the opponent robot.
type OpponentConfig struct {
	Mode OpponentMode `yaml:"mode"`
	X    float64      `yaml:"x"`
	Y    float64      `yaml:"y"`
	// Speed is the opponent's linear speed in mm/s.
	Speed float64 `yaml:"speed"`
}

// SensorConfig describes the distance sensors.
type SensorConfig struct {
	// UltrasonicLatency is the time one ultrasonic ping takes.
	UltrasonicLatency time.Duration `yaml:"ultrasonic_latency"`
	// UltrasonicRange is the longest echo the ultrasonic sensors receive.
	UltrasonicRange float64 `yaml:"ultrasonic_range"`
	// UltrasonicCone is the half-angle of the ultrasonic beam.
	UltrasonicCone float64 `yaml:"ultrasonic_cone"`
	// LaserLatency is the time one laser measurement takes.
	LaserLatency time.Duration `yaml:"laser_latency"`
	// LaserRange is the longest range the laser sensors report.
	LaserRange float64 `yaml:"laser_range"`
	// LaserCone is the half-angle of the laser field of view.
	LaserCone float64 `yaml:"laser_cone"`
	// LaserMount is the outward angle of the two lasers from the heading.
	LaserMount float64 `yaml:"laser_mount"`
	// FailureRate is the probability that a single read fails.
	FailureRate float64 `yaml:"failure_rate"`
	// Noise is the standard deviation of range noise.
	Noise float64 `yaml:"noise"`
}

// DefaultConfig is a mini-sumo ring with a stationary opponent ahead.
func DefaultConfig() Config {
	return Config{
		RingRadius:        385,
		EdgeWidth:         25,
		RobotRadius:       50,
		WheelBase:         85,
		MaxWheelSpeed:     500,
		LineSensorForward: 45,
		LineSensorLateral: 30,
		StartX:            -150,
		StartY:            0,
		StartHeading:      90,
		Opponent: OpponentConfig{
			Mode:  OpponentStatic,
			X:     150,
			Y:     0,
			Speed: 120,
		},
		Sensors: SensorConfig{
			UltrasonicLatency: 12 * time.Millisecond,
			UltrasonicRange:   800,
			UltrasonicCone:    15,
			LaserLatency:      33 * time.Millisecond,
			LaserRange:        1200,
			LaserCone:         12.5,
			LaserMount:        30,
			FailureRate:       0.05,
			Noise:             3,
		},
		Seed:        1,
		PhysicsStep: time.Millisecond,
	}
}

var (
	errRingTooSmall   = errors.New("ring radius must exceed robot radius")
	errNonPositive    = errors.New("value must be positive")
	errFailureRate    = errors.New("failure rate must be within [0, 1)")
	errUnknownOpMode  = errors.New("unknown opponent mode")
	errStartOutOfRing = errors.New("start position is outside the ring")
)

// Validate checks the configuration and fills zero values from DefaultConfig.
func (c *Config) Validate() error {
	def := DefaultConfig()

	fillFloat(&c.RingRadius, def.RingRadius)
	fillFloat(&c.EdgeWidth, def.EdgeWidth)
	fillFloat(&c.RobotRadius, def.RobotRadius)
	fillFloat(&c.WheelBase, def.WheelBase)
	fillFloat(&c.MaxWheelSpeed, def.MaxWheelSpeed)
	fillFloat(&c.LineSensorForward, def.LineSensorForward)
	fillFloat(&c.LineSensorLateral, def.LineSensorLateral)
	fillFloat(&c.Sensors.UltrasonicRange, def.Sensors.UltrasonicRange)
	fillFloat(&c.Sensors.UltrasonicCone, def.Sensors.UltrasonicCone)
	fillFloat(&c.Sensors.LaserRange, def.Sensors.LaserRange)
	fillFloat(&c.Sensors.LaserCone, def.Sensors.LaserCone)
	fillFloat(&c.Sensors.LaserMount, def.Sensors.LaserMount)

	if c.Sensors.UltrasonicLatency <= 0 {
		c.Sensors.UltrasonicLatency = def.Sensors.UltrasonicLatency
	}

	if c.Sensors.LaserLatency <= 0 {
		c.Sensors.LaserLatency = def.Sensors.LaserLatency
	}

	if c.PhysicsStep <= 0 {
		c.PhysicsStep = def.PhysicsStep
	}

	c.Opponent.Mode = OpponentMode(strings.ToLower(strings.TrimSpace(string(c.Opponent.Mode))))
	if c.Opponent.Mode == "" {
		c.Opponent.Mode = OpponentStatic
	}

	switch c.Opponent.Mode {
	case OpponentStatic, OpponentOrbit, OpponentChase:
	default:
		return fmt.Errorf("%w: %q", errUnknownOpMode, c.Opponent.Mode)
	}

	if c.RingRadius <= c.RobotRadius {
		return errRingTooSmall
	}

	if c.Opponent.Speed < 0 || c.Sensors.Noise < 0 {
		return fmt.Errorf("opponent speed and sensor noise: %w", errNonPositive)
	}

	if c.Sensors.FailureRate < 0 || c.Sensors.FailureRate >= 1 {
		return errFailureRate
	}

	if hypot(c.StartX, c.StartY) >= c.RingRadius || hypot(c.Opponent.X, c.Opponent.Y) >= c.RingRadius {
		return errStartOutOfRing
	}

	return nil
}

// fillFloat replaces a non-positive value with def.
func fillFloat(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}
