package control

import (
	"context"
	"time"

	"github.com/oshokin/sumo-robot/internal/domain/robot"
	"github.com/oshokin/sumo-robot/internal/drive"
	"github.com/oshokin/sumo-robot/internal/logger"
	"github.com/oshokin/sumo-robot/internal/sensing"
)

// Sensors are the input collaborators, each owned by the loop.
type Sensors struct {
	LineLeft  robot.LineSensor
	LineRight robot.LineSensor
	// Distance is indexed by robot.DistanceSlot.
	Distance [robot.DistanceSlotCount]robot.DistanceSensor
}

// Iteration is the record of one completed loop iteration.
type Iteration struct {
	// Index counts iterations from zero.
	Index uint64
	// At is the time the iteration's decision was made.
	At time.Time
	// Elapsed is At relative to the start of the loop.
	Elapsed time.Duration
	// State is the phase state after the step.
	State robot.PhaseState
	Frame    Frame
	Decision Decision
}

// Observer is called after every iteration.
type Observer func(ctx context.Context, it Iteration)

// Option configures a Loop.
type Option func(*Loop)

// WithPeriod paces iterations to a fixed period. Zero runs free.
func WithPeriod(period time.Duration) Option {
	return func(l *Loop) {
		if period > 0 {
			l.period = period
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(l *Loop) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// Loop is the sense, decide, act cycle.
// It is single-threaded: Run must not be called concurrently with RunOnce.
type Loop struct {
	controller *Controller
	sensors    Sensors
	reader     *sensing.BoundedReader
	mixer      *drive.Mixer
	clock      robot.Clock

	period    time.Duration
	observers []Observer

	started   bool
	start     time.Time
	state     robot.PhaseState
	iteration uint64
}

// NewLoop assembles a loop. The reader's clock is used for all timing.
func NewLoop(
	controller *Controller,
	sensors Sensors,
	reader *sensing.BoundedReader,
	mixer *drive.Mixer,
	opts ...Option,
) *Loop {
	l := &Loop{
		controller: controller,
		sensors:    sensors,
		reader:     reader,
		mixer:      mixer,
		clock:      reader.Clock,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the current phase state.
func (l *Loop) State() robot.PhaseState {
	return l.state
}

// Run iterates until ctx is canceled, then stops the motors.
// The context is only checked between iterations.
func (l *Loop) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "loop")

	defer l.mixer.Stop()

	logger.InfoKV(ctx, "Control loop started",
		"arbitration", l.controller.Params().Arbitration.String(),
		"period", l.period.String(),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoKV(ctx, "Control loop stopped", "iterations", l.iteration)
			return nil
		default:
		}

		began := l.clock.Now()

		l.RunOnce(ctx)

		if l.period > 0 {
			if rest := l.period - l.clock.Now().Sub(began); rest > 0 {
				l.clock.Sleep(rest)
			}
		}
	}
}

// RunOnce performs a single iteration and returns its record.
func (l *Loop) RunOnce(ctx context.Context) Iteration {
	if !l.started {
		l.started = true
		l.start = l.clock.Now()
		l.state = robot.NewPhaseState(l.start)
	}

	frame := l.sense(ctx)
	now := l.clock.Now()

	next, decision := l.controller.Step(l.state, frame, now)
	l.state = next

	l.mixer.Drive(decision.Final)

	it := Iteration{
		Index:    l.iteration,
		At:       now,
		Elapsed:  now.Sub(l.start),
		State:    next,
		Frame:    frame,
		Decision: decision,
	}
	l.iteration++

	if tr := decision.Behavior.Transition; tr != nil {
		logger.InfoKV(ctx, "Phase changed",
			"from", tr.From.String(),
			"to", tr.To.String(),
			"reason", string(tr.Reason),
			"elapsed", it.Elapsed.String(),
		)
	}

	logger.DebugKV(ctx, "Iteration",
		"index", it.Index,
		"phase", next.Phase.String(),
		"source", string(decision.Source),
		"wheels", decision.Final.String(),
	)

	for _, o := range l.observers {
		o(ctx, it)
	}

	return it
}

// sense reads every sensor; distance reads are bounded by the reader.
func (l *Loop) sense(ctx context.Context) Frame {
	f := Frame{
		LineLeft:  l.sensors.LineLeft.Read(),
		LineRight: l.sensors.LineRight.Read(),
		Distances: l.reader.ReadAll(l.sensors.Distance),
	}

	for slot, r := range f.Distances {
		if r.TimedOut {
			logger.DebugKV(ctx, "Distance sensor timed out", "slot", robot.DistanceSlot(slot).String())
		}
	}

	return f
}
