package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sumo-robot/internal/behavior"
	"github.com/oshokin/sumo-robot/internal/sim"
	"github.com/oshokin/sumo-robot/internal/trace"
)

// TestDefaultIsValid ensures the reference configuration passes validation.
func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 100, cfg.Tuning.DistanceThresholdAttack)
	require.Equal(t, 300, cfg.Tuning.DistanceThresholdDetect)
	require.Equal(t, 200*time.Millisecond, cfg.Tuning.TimeoutDuration)
	require.Equal(t, 1000, cfg.Tuning.FarDistance)
	require.Equal(t, behavior.ArbitrationEdgePriority, cfg.Control.Arbitration)
}

// TestValidate checks range and ordering rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Tuning.TurnSpeed = 1.2
	require.ErrorIs(t, Validate(cfg), errSpeedOutOfRange)

	cfg = Default()
	cfg.Tuning.ForwardSpeed = 0
	require.ErrorIs(t, Validate(cfg), errSpeedOutOfRange)

	cfg = Default()
	cfg.Tuning.DistanceThresholdAttack = 400
	require.ErrorIs(t, Validate(cfg), errThresholdOrder)

	cfg = Default()
	cfg.Tuning.FarDistance = 200
	require.ErrorIs(t, Validate(cfg), errFarBelowDetect)

	cfg = Default()
	cfg.Tuning.FarDistance = cfg.Tuning.DistanceThresholdDetect
	require.NoError(t, Validate(cfg))

	cfg = Default()
	cfg.Tuning.TimeoutDuration = 0
	require.ErrorIs(t, Validate(cfg), errNonPositive)

	cfg = Default()
	cfg.Trace.Backend = "mongodb"
	require.ErrorIs(t, Validate(cfg), errUnknownBackend)

	cfg = Default()
	cfg.Simulation.Opponent.Mode = "teleport"
	require.Error(t, Validate(cfg))

	// Optional fields are filled.
	cfg = Default()
	cfg.Trace.Backend = ""
	cfg.Trace.BatchSize = 0
	cfg.Simulation.Duration = 0
	cfg.Status.CallTimeout = 0
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultCallTimeout, cfg.Status.CallTimeout)
	require.Equal(t, trace.BackendNone, cfg.Trace.Backend)
	require.Equal(t, DefaultTraceBatchSize, cfg.Trace.BatchSize)
	require.Equal(t, DefaultMatchDuration, cfg.Simulation.Duration)
}

// TestLoadOverridesDefaults merges a partial file over the defaults.
func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := []byte(`
tuning:
  distance_threshold_attack: 80
  search_time: 2500ms
  timeout_duration: 150ms
control:
  arbitration: offense-first
  startup_delay: 0s
trace:
  backend: sqlite
simulation:
  duration: 30s
  ring_radius: 500
  opponent:
    mode: orbit
    x: 200
`)
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 80, cfg.Tuning.DistanceThresholdAttack)
	require.Equal(t, 300, cfg.Tuning.DistanceThresholdDetect)
	require.Equal(t, 2500*time.Millisecond, cfg.Tuning.SearchTime)
	require.Equal(t, 150*time.Millisecond, cfg.Tuning.TimeoutDuration)
	require.Equal(t, 0.6, cfg.Tuning.ForwardSpeed)
	require.Equal(t, behavior.ArbitrationOffenseFirst, cfg.Control.Arbitration)
	require.Zero(t, cfg.Control.StartupDelay)
	require.Equal(t, trace.BackendSQLite, cfg.Trace.Backend)
	require.Equal(t, 30*time.Second, cfg.Simulation.Duration)
	require.Equal(t, 500.0, cfg.Simulation.RingRadius)
	require.Equal(t, sim.OpponentOrbit, cfg.Simulation.Opponent.Mode)
	require.Equal(t, 200.0, cfg.Simulation.Opponent.X)
	require.Equal(t, sim.DefaultConfig().Sensors.LaserLatency, cfg.Simulation.Sensors.LaserLatency)

	speeds := cfg.Tuning.Speeds()
	require.Equal(t, behavior.Speeds{Forward: 0.6, Backward: 0.4, Turn: 0.5}, speeds)
	require.Equal(t, 80, cfg.Tuning.Machine().AttackDistance)
}

// TestLoadErrors reports unreadable and malformed files.
func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("control:\n  arbitration: sideways\n"), 0o600))

	_, err = Load(bad)
	require.Error(t, err)
}
