package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/sumo-robot/internal/behavior"
	"github.com/oshokin/sumo-robot/internal/config"
	"github.com/oshokin/sumo-robot/internal/control"
	"github.com/oshokin/sumo-robot/internal/drive"
	"github.com/oshokin/sumo-robot/internal/logger"
	"github.com/oshokin/sumo-robot/internal/sensing"
	"github.com/oshokin/sumo-robot/internal/service/instance"
	"github.com/oshokin/sumo-robot/internal/sim"
	"github.com/oshokin/sumo-robot/internal/trace"
)

// Options controls a simulated match. Non-zero fields override the configuration file.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Duration overrides the match length in simulated time.
	Duration time.Duration
	// TraceBackend overrides the flight recorder backend.
	TraceBackend string
	// TracePath overrides the flight recorder output file.
	TracePath string
	// StatusAddress overrides the health endpoint listen address.
	StatusAddress string
	// Arbitration overrides the arbitration mode.
	Arbitration string
	// NoStartupDelay skips the delay before the robot moves.
	NoStartupDelay bool
	// AllowConcurrent skips the single-instance guard.
	AllowConcurrent bool
}

// Verdict is how a match ended.
type Verdict string

const (
	// VerdictOpponentOut means the opponent was pushed out of the ring.
	VerdictOpponentOut Verdict = "opponent_out"
	// VerdictRobotOut means the controlled robot left the ring.
	VerdictRobotOut Verdict = "robot_out"
	// VerdictTimeLimit means the match time ran out.
	VerdictTimeLimit Verdict = "time_limit"
	// VerdictInterrupted means the caller canceled the match.
	VerdictInterrupted Verdict = "interrupted"
)

// Result summarizes a finished match.
type Result struct {
	RunID      string
	Verdict    Verdict
	Iterations uint64
	// Elapsed is simulated time since the loop started.
	Elapsed   time.Duration
	Phase     string
	Robot     sim.Pose
	Opponent  sim.Pose
	TracePath string
}

// errUnknownBackend is returned for an unsupported trace backend override.
var errUnknownBackend = errors.New("unknown trace backend")

// Run plays one match and blocks until it is decided or ctx is canceled.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "match")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return nil, err
	}

	if !opts.AllowConcurrent {
		if err = guard(); err != nil {
			return nil, err
		}
	}

	runID := trace.NewRunID()
	ctx = logger.WithKV(ctx, "run_id", runID)

	recorder, tracePath, err := trace.Open(trace.Options{
		Backend:   cfg.Trace.Backend,
		Path:      cfg.Trace.Path,
		RunID:     runID,
		BatchSize: cfg.Trace.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}

	defer func() {
		if closeErr := recorder.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close trace", "error", closeErr, "path", tracePath)
		}
	}()

	health, stopHealth, err := startStatus(ctx, cfg.Status.ListenAddress)
	if err != nil {
		return nil, err
	}

	defer stopHealth()

	clock := sim.NewClock(time.Now())

	arena, err := sim.NewArena(cfg.Simulation.Config, clock)
	if err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}

	logger.InfoKV(ctx, "Match starting",
		"arbitration", cfg.Control.Arbitration.String(),
		"opponent", string(cfg.Simulation.Opponent.Mode),
		"duration", cfg.Simulation.Duration.String(),
		"trace", tracePath,
	)

	if delay := cfg.Control.StartupDelay; delay > 0 && !opts.NoStartupDelay {
		logger.InfoKV(ctx, "Waiting before start", "delay", delay.String())
		clock.Sleep(delay)
	}

	arena.Start()

	matchCtx, endMatch := context.WithCancel(ctx)
	defer endMatch()

	var last control.Iteration

	referee := func(_ context.Context, it control.Iteration) {
		last = it

		if arena.Outcome() != sim.OutcomeNone || it.Elapsed >= cfg.Simulation.Duration {
			endMatch()
		}
	}

	loop := buildLoop(cfg, arena,
		control.WithPeriod(cfg.Control.LoopPeriod),
		control.WithObserver(trace.Observer(recorder, runID)),
		control.WithObserver(referee),
	)

	health.SetServing(ctx, true)

	err = loop.Run(matchCtx)

	health.SetServing(ctx, false)

	if err != nil {
		return nil, fmt.Errorf("run control loop: %w", err)
	}

	result := &Result{
		RunID:     runID,
		Verdict:   verdict(ctx, arena.Outcome()),
		Elapsed:   last.Elapsed,
		Phase:     loop.State().Phase.String(),
		Robot:     arena.Robot(),
		Opponent:  arena.Opponent(),
		TracePath: tracePath,
	}

	if !last.At.IsZero() {
		result.Iterations = last.Index + 1
	}

	logger.InfoKV(ctx, "Match finished",
		"verdict", string(result.Verdict),
		"iterations", result.Iterations,
		"elapsed", result.Elapsed.String(),
		"phase", result.Phase,
	)

	return result, nil
}

// applyOverrides copies non-zero options over the loaded configuration.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.Duration > 0 {
		cfg.Simulation.Duration = opts.Duration
	}

	if opts.TraceBackend != "" {
		backend := trace.Backend(opts.TraceBackend)
		if !backend.Valid() {
			return fmt.Errorf("%w: %q", errUnknownBackend, opts.TraceBackend)
		}

		cfg.Trace.Backend = backend
	}

	if opts.TracePath != "" {
		cfg.Trace.Path = opts.TracePath
	}

	if opts.StatusAddress != "" {
		cfg.Status.ListenAddress = opts.StatusAddress
	}

	if opts.Arbitration != "" {
		mode, err := behavior.ParseArbitration(opts.Arbitration)
		if err != nil {
			return fmt.Errorf("parse arbitration: %w", err)
		}

		cfg.Control.Arbitration = mode
	}

	return nil
}

// guard refuses to run next to another controller binary.
func guard() error {
	name, err := instance.ExecutableName()
	if err != nil {
		return err
	}

	if err = instance.EnsureSingle(name); err != nil {
		return fmt.Errorf("check single instance: %w", err)
	}

	return nil
}

// buildLoop wires the arena's devices into a control loop.
func buildLoop(cfg *config.Config, arena *sim.Arena, opts ...control.Option) *control.Loop {
	t := cfg.Tuning

	lineLeft, lineRight := arena.LineSensors()

	reader := &sensing.BoundedReader{
		Clock:         arena.Clock(),
		Timeout:       t.TimeoutDuration,
		Far:           t.FarDistance,
		RetryInterval: t.RetryInterval,
	}

	controller := control.NewController(control.Params{
		LineThreshold: t.LineThreshold,
		Speeds:        t.Speeds(),
		Arbitration:   cfg.Control.Arbitration,
	}, behavior.NewMachine(t.Machine()))

	sensors := control.Sensors{
		LineLeft:  lineLeft,
		LineRight: lineRight,
		Distance:  arena.DistanceSensors(),
	}

	return control.NewLoop(controller, sensors, reader, drive.NewMixer(arena.LeftMotor(), arena.RightMotor()), opts...)
}

// verdict names the match result.
func verdict(ctx context.Context, outcome sim.Outcome) Verdict {
	switch {
	case outcome == sim.OutcomeOpponentOut:
		return VerdictOpponentOut
	case outcome == sim.OutcomeRobotOut:
		return VerdictRobotOut
	case ctx.Err() != nil:
		return VerdictInterrupted
	default:
		return VerdictTimeLimit
	}
}
