package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/sumo-robot/internal/config"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

// settingsFile writes a settings file to a temporary directory.
func settingsFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// TestConfigCheck prints the effective configuration.
//
//nolint:paralleltest // Cobra commands share package state.
func TestConfigCheck(t *testing.T) {
	path := settingsFile(t, "tuning:\n  turn_speed: 0.7\ncontrol:\n  arbitration: offense-first\n")

	out, err := execute(t, "config", "check", "--config", path)
	require.NoError(t, err)

	var printed config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &printed))
	require.InDelta(t, 0.7, printed.Tuning.TurnSpeed, 1e-9)
	require.Equal(t, config.Default().Tuning.SearchTime, printed.Tuning.SearchTime)
	require.Equal(t, "offense-first", printed.Control.Arbitration.String())
}

// TestConfigCheck_Invalid reports validation errors.
//
//nolint:paralleltest // Cobra commands share package state.
func TestConfigCheck_Invalid(t *testing.T) {
	path := settingsFile(t, "tuning:\n  distance_threshold_attack: 500\n")

	_, err := execute(t, "config", "check", "--config", path)
	require.Error(t, err)
}

// TestSimulate plays a short match and reports the verdict.
//
//nolint:paralleltest // Cobra commands share package state.
func TestSimulate(t *testing.T) {
	path := settingsFile(t, "simulation:\n  seed: 3\n")

	out, err := execute(t, "simulate",
		"--config", path,
		"--duration", "1s",
		"--no-startup-delay",
		"--allow-concurrent",
		"--log-level", "warn",
	)
	require.NoError(t, err)
	require.Contains(t, out, "time_limit")
}

// TestBadLogLevel rejects unknown levels before running anything.
//
//nolint:paralleltest // Cobra commands share package state.
func TestBadLogLevel(t *testing.T) {
	path := settingsFile(t, "{}")

	_, err := execute(t, "config", "check", "--config", path, "--log-level", "loud")
	require.ErrorIs(t, err, errBadLogLevel)

	_, err = execute(t, "config", "check", "--config", path, "--log-level", "info")
	require.NoError(t, err)
}
