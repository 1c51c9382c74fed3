package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/sumo-robot/internal/behavior"
	"github.com/oshokin/sumo-robot/internal/domain/robot"
	"github.com/oshokin/sumo-robot/internal/sensing"
	"github.com/oshokin/sumo-robot/internal/sim"
	"github.com/oshokin/sumo-robot/internal/trace"
)

// Config aggregates all configuration sections.
type Config struct {
	// Tuning holds the control constants.
	Tuning Tuning `yaml:"tuning"`
	// Control holds loop and arbitration settings.
	Control Control `yaml:"control"`
	// Status configures the health endpoint.
	Status Status `yaml:"status"`
	// Trace configures the flight recorder.
	Trace Trace `yaml:"trace"`
	// Simulation configures the simulated arena.
	Simulation Simulation `yaml:"simulation"`
}

// Tuning holds the process-wide control constants.
type Tuning struct {
	// DistanceThresholdAttack is the range in millimeters below which the robot charges.
	DistanceThresholdAttack int `yaml:"distance_threshold_attack"`
	// DistanceThresholdDetect is the range below which the robot turns toward a target.
	DistanceThresholdDetect int `yaml:"distance_threshold_detect"`
	// LineThreshold splits line values into on/off boundary.
	LineThreshold float64 `yaml:"line_threshold"`
	// ForwardSpeed is used for charging and for advancing inside the ring.
	ForwardSpeed float64 `yaml:"forward_speed"`
	// BackwardSpeed is used to back away from the edge.
	BackwardSpeed float64 `yaml:"backward_speed"`
	// TurnSpeed is used for every pivot.
	TurnSpeed float64 `yaml:"turn_speed"`
	// SearchTime is the search phase budget.
	SearchTime time.Duration `yaml:"search_time"`
	// AttackTime is the attack phase budget.
	AttackTime time.Duration `yaml:"attack_time"`
	// TimeoutDuration is the per-sensor read budget.
	TimeoutDuration time.Duration `yaml:"timeout_duration"`
	// FarDistance is the sentinel reported when a sensor times out.
	FarDistance int `yaml:"far_distance"`
	// RetryInterval is the pause between failed sensor reads.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// Control holds loop-level settings.
type Control struct {
	// Arbitration decides whether avoidance or offense reaches the wheels.
	Arbitration behavior.Arbitration `yaml:"arbitration"`
	// StartupDelay lets the operator step away before the robot moves.
	StartupDelay time.Duration `yaml:"startup_delay"`
	// LoopPeriod paces iterations. Zero runs free.
	LoopPeriod time.Duration `yaml:"loop_period"`
}

// Status configures the gRPC health endpoint.
type Status struct {
	// ListenAddress is the host:port to serve on. Empty disables it.
	ListenAddress string `yaml:"listen_address"`
	// CallTimeout bounds one health check made by the status command.
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// Trace configures the flight recorder.
type Trace struct {
	// Backend is one of none, jsonl or sqlite.
	Backend trace.Backend `yaml:"backend"`
	// Path is the output file. Empty derives a name from the run id.
	Path string `yaml:"path"`
	// BatchSize is the number of records buffered before a flush.
	BatchSize int `yaml:"batch_size"`
}

// Simulation configures the simulated match.
type Simulation struct {
	// Duration limits a match in simulated time.
	Duration time.Duration `yaml:"duration"`
	// Config describes the arena.
	sim.Config `yaml:",inline"`
}

const (
	// DefaultConfigFilename is the default settings file name.
	DefaultConfigFilename = "sumo-settings.yaml"

	// DefaultMatchDuration is the default simulated match length.
	DefaultMatchDuration = 90 * time.Second

	// DefaultTraceBatchSize is the default number of buffered trace records.
	DefaultTraceBatchSize = 256

	// DefaultCallTimeout is the default timeout of a health check.
	DefaultCallTimeout = 2 * time.Second
)

var (
	// errSpeedOutOfRange is returned when a speed is not within (0, 1].
	errSpeedOutOfRange = errors.New("speed must be within (0, 1]")
	// errThresholdOrder is returned when the attack range exceeds the detect range.
	errThresholdOrder = errors.New("attack threshold must not exceed detect threshold")
	// errFarBelowDetect is returned when a timed-out read would look like a detection.
	errFarBelowDetect = errors.New("far distance must not be below detect threshold")
	// errNonPositive is returned for durations and distances that must be positive.
	errNonPositive = errors.New("value must be positive")
	// errUnknownBackend is returned for an unsupported trace backend.
	errUnknownBackend = errors.New("unknown trace backend")
)

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Tuning: Tuning{
			DistanceThresholdAttack: 100,
			DistanceThresholdDetect: 300,
			LineThreshold:           sensing.DefaultLineThreshold,
			ForwardSpeed:            0.6,
			BackwardSpeed:           0.4,
			TurnSpeed:               0.5,
			SearchTime:              5 * time.Second,
			AttackTime:              3 * time.Second,
			TimeoutDuration:         200 * time.Millisecond,
			FarDistance:             robot.DefaultFarDistance,
		},
		Control: Control{
			Arbitration:  behavior.ArbitrationEdgePriority,
			StartupDelay: 5 * time.Second,
		},
		Status: Status{
			CallTimeout: DefaultCallTimeout,
		},
		Trace: Trace{
			Backend:   trace.BackendNone,
			BatchSize: DefaultTraceBatchSize,
		},
		Simulation: Simulation{
			Duration: DefaultMatchDuration,
			Config:   sim.DefaultConfig(),
		},
	}
}

// Load reads configuration from path on top of the defaults and validates it.
// A missing file at the default path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename:
		// Defaults only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and fills unset optional fields.
func Validate(cfg *Config) error {
	t := &cfg.Tuning

	for name, speed := range map[string]float64{
		"forward_speed":  t.ForwardSpeed,
		"backward_speed": t.BackwardSpeed,
		"turn_speed":     t.TurnSpeed,
	} {
		if speed <= 0 || speed > 1 {
			return fmt.Errorf("%s %v: %w", name, speed, errSpeedOutOfRange)
		}
	}

	if t.DistanceThresholdAttack <= 0 || t.DistanceThresholdDetect <= 0 || t.FarDistance <= 0 {
		return fmt.Errorf("distance thresholds and far distance: %w", errNonPositive)
	}

	if t.DistanceThresholdAttack > t.DistanceThresholdDetect {
		return errThresholdOrder
	}

	if t.FarDistance < t.DistanceThresholdDetect {
		return fmt.Errorf("far_distance %d: %w", t.FarDistance, errFarBelowDetect)
	}

	if t.SearchTime <= 0 || t.AttackTime <= 0 || t.TimeoutDuration <= 0 {
		return fmt.Errorf("search_time, attack_time and timeout_duration: %w", errNonPositive)
	}

	if t.LineThreshold <= 0 {
		return fmt.Errorf("line_threshold: %w", errNonPositive)
	}

	if t.RetryInterval < 0 || cfg.Control.StartupDelay < 0 || cfg.Control.LoopPeriod < 0 {
		return fmt.Errorf("retry_interval, startup_delay and loop_period: %w", errNonPositive)
	}

	if cfg.Control.Arbitration == 0 {
		cfg.Control.Arbitration = behavior.ArbitrationEdgePriority
	}

	if cfg.Trace.Backend == "" {
		cfg.Trace.Backend = trace.BackendNone
	}

	if !cfg.Trace.Backend.Valid() {
		return fmt.Errorf("%w: %q", errUnknownBackend, cfg.Trace.Backend)
	}

	if cfg.Trace.BatchSize <= 0 {
		cfg.Trace.BatchSize = DefaultTraceBatchSize
	}

	if cfg.Status.CallTimeout <= 0 {
		cfg.Status.CallTimeout = DefaultCallTimeout
	}

	if cfg.Simulation.Duration <= 0 {
		cfg.Simulation.Duration = DefaultMatchDuration
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	return nil
}

// Speeds returns the drive magnitudes.
func (t Tuning) Speeds() behavior.Speeds {
	return behavior.Speeds{
		Forward:  t.ForwardSpeed,
		Backward: t.BackwardSpeed,
		Turn:     t.TurnSpeed,
	}
}

// Machine returns the state machine configuration.
func (t Tuning) Machine() behavior.MachineConfig {
	return behavior.MachineConfig{
		SearchTime:     t.SearchTime,
		AttackTime:     t.AttackTime,
		AttackDistance: t.DistanceThresholdAttack,
		DetectDistance: t.DistanceThresholdDetect,
		Speeds:         t.Speeds(),
	}
}
