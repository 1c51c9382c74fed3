// Package sim is a software stand-in for the robot's hardware.
//
// An Arena models a circular dohyo with the controlled robot and one
// opponent. It hands out motors, line sensors and distance sensors that
// satisfy the robot interfaces, and a Clock whose advances integrate the
// physics, so a control loop can run whole matches deterministically.
package sim

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// Outcome is the state of a match.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRobotOut
	OutcomeOpponentOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRobotOut:
		return "robot_out"
	case OutcomeOpponentOut:
		return "opponent_out"
	default:
		return "none"
	}
}

// Pose is a position and heading. Heading is in radians, counter-clockwise
// from the +X axis.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Arena is the simulated world.
type Arena struct {
	cfg   Config
	clock *Clock
	rng   *rand.Rand

	robot    Pose
	opponent Pose

	left, right *Motor
	outcome     Outcome

	// started gates physics; time before Start passes without motion.
	started bool

	// carry is simulated time not yet integrated.
	carry time.Duration
}

// NewArena places both robots and attaches physics to the clock. Nothing
// moves until Start is called.
func NewArena(cfg Config, clock *Clock) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Arena{
		cfg:   cfg,
		clock: clock,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed)), //nolint:gosec // Simulation noise.
		robot: Pose{
			X:       cfg.StartX,
			Y:       cfg.StartY,
			Heading: radians(cfg.StartHeading),
		},
		opponent: Pose{X: cfg.Opponent.X, Y: cfg.Opponent.Y},
		left:     new(Motor),
		right:    new(Motor),
	}

	clock.OnAdvance(a.advance)

	return a, nil
}

// Clock returns the arena clock.
func (a *Arena) Clock() *Clock {
	return a.clock
}

// LeftMotor returns the left drive motor.
func (a *Arena) LeftMotor() *Motor {
	return a.left
}

// RightMotor returns the right drive motor.
func (a *Arena) RightMotor() *Motor {
	return a.right
}

// Robot returns the controlled robot's pose.
func (a *Arena) Robot() Pose {
	return a.robot
}

// Opponent returns the opponent's pose.
func (a *Arena) Opponent() Pose {
	return a.opponent
}

// Outcome reports whether either robot has left the ring.
func (a *Arena) Outcome() Outcome {
	return a.outcome
}

// Start releases the robots. Calling it again has no effect.
func (a *Arena) Start() {
	a.started = true
}

// Started reports whether Start has been called.
func (a *Arena) Started() bool {
	return a.started
}

// advance integrates physics in fixed steps; a remainder is carried over.
func (a *Arena) advance(dt time.Duration) {
	if !a.started {
		return
	}

	a.carry += dt

	for a.carry >= a.cfg.PhysicsStep {
		a.carry -= a.cfg.PhysicsStep
		a.step(a.cfg.PhysicsStep.Seconds())
	}
}

// step moves both robots by one integration step. A finished match freezes.
func (a *Arena) step(dt float64) {
	if a.outcome != OutcomeNone {
		return
	}

	robotVel := a.driveRobot(dt)
	opponentVel := a.moveOpponent(dt)

	a.resolveContact(robotVel, opponentVel)

	switch {
	case hypot(a.robot.X, a.robot.Y) > a.cfg.RingRadius:
		a.outcome = OutcomeRobotOut
	case hypot(a.opponent.X, a.opponent.Y) > a.cfg.RingRadius:
		a.outcome = OutcomeOpponentOut
	}
}

// driveRobot applies differential-drive kinematics and returns the velocity.
func (a *Arena) driveRobot(dt float64) vec {
	vl := a.left.Speed() * a.cfg.MaxWheelSpeed
	vr := a.right.Speed() * a.cfg.MaxWheelSpeed

	v := (vl + vr) / 2
	omega := (vr - vl) / a.cfg.WheelBase

	a.robot.Heading = normalizeAngle(a.robot.Heading + omega*dt)
	vel := vec{math.Cos(a.robot.Heading) * v, math.Sin(a.robot.Heading) * v}
	a.robot.X += vel.x * dt
	a.robot.Y += vel.y * dt

	return vel
}

// moveOpponent moves the opponent according to its mode and returns its velocity.
func (a *Arena) moveOpponent(dt float64) vec {
	speed := a.cfg.Opponent.Speed

	var vel vec

	switch a.cfg.Opponent.Mode {
	case OpponentOrbit:
		r := hypot(a.opponent.X, a.opponent.Y)
		if r == 0 || speed == 0 {
			return vec{}
		}
		// Tangent to the circle through the current position.
		vel = vec{-a.opponent.Y / r * speed, a.opponent.X / r * speed}
	case OpponentChase:
		to := vec{a.robot.X - a.opponent.X, a.robot.Y - a.opponent.Y}
		if n := to.norm(); n > 0 {
			vel = to.scale(speed / n)
		}
	default:
		return vec{}
	}

	a.opponent.X += vel.x * dt
	a.opponent.Y += vel.y * dt
	a.opponent.Heading = math.Atan2(vel.y, vel.x)

	return vel
}

// resolveContact separates overlapping robots. Whoever moves harder along
// the contact normal pushes the other one out of the way.
func (a *Arena) resolveContact(robotVel, opponentVel vec) {
	n := vec{a.opponent.X - a.robot.X, a.opponent.Y - a.robot.Y}
	dist := n.norm()
	overlap := 2*a.cfg.RobotRadius - dist

	if overlap <= 0 || dist == 0 {
		return
	}

	n = n.scale(1 / dist)

	if robotVel.dot(n) >= opponentVel.dot(n.scale(-1)) {
		a.opponent.X += n.x * overlap
		a.opponent.Y += n.y * overlap

		return
	}

	a.robot.X -= n.x * overlap
	a.robot.Y -= n.y * overlap
}

// lineValue samples the floor under a point offset from the robot center.
func (a *Arena) lineValue(forward, lateral float64) float64 {
	x, y := a.bodyPoint(forward, lateral)
	if hypot(x, y) >= a.cfg.RingRadius-a.cfg.EdgeWidth {
		return 1
	}

	return 0
}

// bodyPoint converts a robot-frame offset (lateral positive to the left) to world coordinates.
func (a *Arena) bodyPoint(forward, lateral float64) (float64, float64) {
	sin, cos := math.Sincos(a.robot.Heading)

	return a.robot.X + forward*cos - lateral*sin, a.robot.Y + forward*sin + lateral*cos
}

// rangeTo measures from the robot's body edge along mount (radians from the
// heading) to the opponent's body edge. It reports false when the opponent is
// outside the cone or beyond maxRange.
func (a *Arena) rangeTo(mount, cone, maxRange float64) (float64, bool) {
	to := vec{a.opponent.X - a.robot.X, a.opponent.Y - a.robot.Y}
	centers := to.norm()

	bearing := normalizeAngle(math.Atan2(to.y, to.x) - (a.robot.Heading + mount))

	// The opponent's body widens the cone it can be seen in.
	spread := 0.0
	if centers > a.cfg.RobotRadius {
		spread = math.Asin(math.Min(1, a.cfg.RobotRadius/centers))
	}

	if math.Abs(bearing) > cone+spread {
		return 0, false
	}

	gap := math.Max(0, centers-2*a.cfg.RobotRadius)
	gap += a.rng.NormFloat64() * a.cfg.Sensors.Noise
	gap = math.Max(0, gap)

	if gap > maxRange {
		return 0, false
	}

	return gap, true
}

// fails draws a random transient failure.
func (a *Arena) fails() bool {
	return a.cfg.Sensors.FailureRate > 0 && a.rng.Float64() < a.cfg.Sensors.FailureRate
}

// LineSensors returns the left and right line sensors.
func (a *Arena) LineSensors() (robot.LineSensor, robot.LineSensor) {
	return &lineSensor{arena: a, lateral: a.cfg.LineSensorLateral},
		&lineSensor{arena: a, lateral: -a.cfg.LineSensorLateral}
}

// DistanceSensors returns the five range sensors indexed by robot.DistanceSlot.
func (a *Arena) DistanceSensors() [robot.DistanceSlotCount]robot.DistanceSensor {
	s := a.cfg.Sensors

	us := func(mountDeg float64) *rangeSensor {
		return &rangeSensor{
			arena:   a,
			kind:    "ultrasonic",
			mount:   radians(mountDeg),
			cone:    radians(s.UltrasonicCone),
			max:     s.UltrasonicRange,
			latency: s.UltrasonicLatency,
		}
	}

	laser := func(mountDeg float64) *rangeSensor {
		return &rangeSensor{
			arena:   a,
			kind:    "laser",
			mount:   radians(mountDeg),
			cone:    radians(s.LaserCone),
			max:     s.LaserRange,
			latency: s.LaserLatency,
		}
	}

	var out [robot.DistanceSlotCount]robot.DistanceSensor
	out[robot.FrontUltrasonic] = us(0)
	out[robot.LeftUltrasonic] = us(90)
	out[robot.RightUltrasonic] = us(-90)
	out[robot.LeftLaser] = laser(s.LaserMount)
	out[robot.RightLaser] = laser(-s.LaserMount)

	return out
}
