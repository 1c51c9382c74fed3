package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
)

// quietConfig is the default ring without noise or random failures.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Sensors.FailureRate = 0
	cfg.Sensors.Noise = 0

	return cfg
}

// newTestArena builds an arena with the robot at (x, y) facing headingDeg.
func newTestArena(t *testing.T, cfg Config, x, y, headingDeg float64) *Arena {
	t.Helper()

	cfg.StartX, cfg.StartY, cfg.StartHeading = x, y, headingDeg

	a, err := NewArena(cfg, NewClock(time.Unix(0, 0)))
	require.NoError(t, err)

	a.Start()

	return a
}

// TestClock_AdvanceRunsHooks advances time and notifies hooks.
func TestClock_AdvanceRunsHooks(t *testing.T) {
	t.Parallel()

	var total time.Duration

	c := NewClock(time.Unix(10, 0))
	c.OnAdvance(func(dt time.Duration) { total += dt })

	c.Advance(30 * time.Millisecond)
	c.Sleep(20 * time.Millisecond)
	c.Advance(-time.Second)

	require.Equal(t, 50*time.Millisecond, total)
	require.Equal(t, time.Unix(10, 0).Add(50*time.Millisecond), c.Now())
}

// TestArena_StraightDrive moves along the heading at the commanded speed.
func TestArena_StraightDrive(t *testing.T) {
	t.Parallel()

	a := newTestArena(t, quietConfig(), -150, -200, 90)
	a.LeftMotor().Forward(0.5)
	a.RightMotor().Forward(0.5)

	a.Clock().Advance(400 * time.Millisecond)

	// 0.5 * 500 mm/s for 0.4 s.
	require.InDelta(t, -150, a.Robot().X, 1e-6)
	require.InDelta(t, -100, a.Robot().Y, 1e-6)
	require.Equal(t, OutcomeNone, a.Outcome())
}

// TestArena_PivotInPlace rotates without translating.
func TestArena_PivotInPlace(t *testing.T) {
	t.Parallel()

	a := newTestArena(t, quietConfig(), -150, 0, 90)
	a.LeftMotor().Forward(0.5)
	a.RightMotor().Backward(0.5)

	a.Clock().Advance(100 * time.Millisecond)

	require.InDelta(t, -150, a.Robot().X, 1e-6)
	require.InDelta(t, 0, a.Robot().Y, 1e-6)
	// Clockwise: heading decreases.
	require.Less(t, a.Robot().Heading, math.Pi/2)
}

// TestArena_LineSensors read the edge band only near the rim.
func TestArena_LineSensors(t *testing.T) {
	t.Parallel()

	a := newTestArena(t, quietConfig(), 0, -200, 0)
	left, right := a.LineSensors()
	require.Zero(t, left.Read())
	require.Zero(t, right.Read())

	a = newTestArena(t, quietConfig(), 320, -100, 0)
	left, right = a.LineSensors()
	require.Equal(t, 1.0, left.Read())
	require.Equal(t, 1.0, right.Read())
}

// TestArena_DistanceSensors see the opponent only inside their cone.
func TestArena_DistanceSensors(t *testing.T) {
	t.Parallel()

	a := newTestArena(t, quietConfig(), -150, 0, 0)
	sensors := a.DistanceSensors()

	start := a.Clock().Now()

	mm, err := sensors[robot.FrontUltrasonic].ReadOnce()
	require.NoError(t, err)
	require.Equal(t, 200, mm)
	require.Equal(t, 12*time.Millisecond, a.Clock().Now().Sub(start))

	_, err = sensors[robot.LeftUltrasonic].ReadOnce()
	require.ErrorIs(t, err, ErrNoEcho)

	_, err = sensors[robot.RightUltrasonic].ReadOnce()
	require.ErrorIs(t, err, ErrNoEcho)

	_, err = sensors[robot.LeftLaser].ReadOnce()
	require.ErrorIs(t, err, ErrNoEcho)

	// Turned 30 degrees right, the opponent sits on the left laser's axis.
	a = newTestArena(t, quietConfig(), -150, 0, -30)
	sensors = a.DistanceSensors()

	mm, err = sensors[robot.LeftLaser].ReadOnce()
	require.NoError(t, err)
	require.Equal(t, 200, mm)

	_, err = sensors[robot.FrontUltrasonic].ReadOnce()
	require.ErrorIs(t, err, ErrNoEcho)
}

// TestArena_TransientFailures fail some reads when a failure rate is set.
func TestArena_TransientFailures(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.Sensors.FailureRate = 0.5

	a := newTestArena(t, cfg, -150, 0, 0)
	front := a.DistanceSensors()[robot.FrontUltrasonic]

	var ok, failed int

	for range 200 {
		if _, err := front.ReadOnce(); err != nil {
			require.ErrorIs(t, err, ErrTransient)

			failed++

			continue
		}

		ok++
	}

	require.Positive(t, ok)
	require.Positive(t, failed)
}

// TestArena_PushOut ends the match when the opponent is shoved over the rim.
func TestArena_PushOut(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.Opponent.X, cfg.Opponent.Y = 300, 0

	a := newTestArena(t, cfg, 200, 0, 0)
	a.LeftMotor().Forward(1)
	a.RightMotor().Forward(1)

	a.Clock().Advance(time.Second)

	require.Equal(t, OutcomeOpponentOut, a.Outcome())
	require.Less(t, math.Hypot(a.Robot().X, a.Robot().Y), cfg.RingRadius)
}

// TestArena_DriveOffEdge loses the match for the robot.
func TestArena_DriveOffEdge(t *testing.T) {
	t.Parallel()

	a := newTestArena(t, quietConfig(), 0, -200, 270)
	a.LeftMotor().Forward(1)
	a.RightMotor().Forward(1)

	a.Clock().Advance(time.Second)

	require.Equal(t, OutcomeRobotOut, a.Outcome())
}

// TestArena_FrozenUntilStart keeps both robots in place before the match begins.
func TestArena_FrozenUntilStart(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.Opponent.Mode = OpponentChase

	a, err := NewArena(cfg, NewClock(time.Unix(0, 0)))
	require.NoError(t, err)
	require.False(t, a.Started())

	a.LeftMotor().Forward(1)
	a.RightMotor().Forward(1)
	a.Clock().Sleep(5 * time.Second)

	require.Equal(t, Pose{X: -150, Y: 0, Heading: radians(90)}, a.Robot())
	require.InDelta(t, 150, a.Opponent().X, 1e-9)
	require.Equal(t, OutcomeNone, a.Outcome())

	a.Start()
	a.LeftMotor().Stop()
	a.RightMotor().Stop()
	a.Clock().Advance(time.Second)

	require.True(t, a.Started())
	require.InDelta(t, 30, a.Opponent().X, 1e-6)
	require.InDelta(t, -150, a.Robot().X, 1e-6)
	require.Equal(t, OutcomeNone, a.Outcome())
}

// TestArena_ChaseClosesIn drives the opponent straight at the robot.
func TestArena_ChaseClosesIn(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.Opponent.Mode = OpponentChase
	cfg.Opponent.X, cfg.Opponent.Y = 0, 150

	a := newTestArena(t, cfg, 0, -150, 90)
	a.Clock().Advance(500 * time.Millisecond)

	// 120 mm/s toward the robot along -Y.
	require.InDelta(t, 0, a.Opponent().X, 1e-6)
	require.InDelta(t, 90, a.Opponent().Y, 1e-6)
	require.InDelta(t, -math.Pi/2, a.Opponent().Heading, 1e-9)
}

// TestConfig_Validate rejects impossible layouts.
func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Opponent.Mode = "teleport"
	require.ErrorIs(t, cfg.Validate(), errUnknownOpMode)

	cfg = DefaultConfig()
	cfg.StartX = 1000
	require.ErrorIs(t, cfg.Validate(), errStartOutOfRing)

	cfg = DefaultConfig()
	cfg.Sensors.FailureRate = 1
	require.ErrorIs(t, cfg.Validate(), errFailureRate)

	cfg = Config{Opponent: OpponentConfig{X: 150}, StartX: -150}
	require.NoError(t, cfg.Validate())
	require.Equal(t, OpponentStatic, cfg.Opponent.Mode)
	require.Equal(t, DefaultConfig().RingRadius, cfg.RingRadius)
}
