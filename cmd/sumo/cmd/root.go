package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/oshokin/sumo-robot/internal/config"
	"github.com/oshokin/sumo-robot/internal/logger"
	"github.com/oshokin/sumo-robot/internal/version"
)

const (
	// envConfig names the settings file when --config is not given.
	envConfig = "SUMO_CONFIG"
	// envLogLevel sets the log level when --log-level is not given.
	envLogLevel = "SUMO_LOG_LEVEL"
	// envFile is loaded from the working directory before flags are resolved.
	envFile = ".env"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel is the minimum level that is logged.
	logLevel string

	errBadLogLevel = errors.New("unknown log level")

	// rootCmd is the sumo robot controller.
	rootCmd = &cobra.Command{
		Use:   "sumo",
		Short: "Control core of an autonomous sumo robot.",
		Long: `Runs the sense, decide, act loop of a sumo robot.

The loop classifies the two line sensors, reads five distance sensors under a
time budget, keeps the robot inside the ring, and hunts the opponent with a
search and attack state machine. The simulate command drives the loop against
a simulated ring and opponent.

Settings are read from a YAML file (--config or SUMO_CONFIG). A .env file in the
working directory may set SUMO_CONFIG and SUMO_LOG_LEVEL.`,
		SilenceUsage:      true,
		PersistentPreRunE: prepare,
	}
)

// Execute runs the sumo CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	logger.Sync()

	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// prepare loads .env and applies environment fallbacks for unset flags.
func prepare(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	flags := cmd.Flags()

	if value, ok := os.LookupEnv(envConfig); ok && !flags.Changed("config") {
		configPath = value
	}

	if value, ok := os.LookupEnv(envLogLevel); ok && !flags.Changed("log-level") {
		logLevel = value
	}

	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errBadLogLevel, logLevel)
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug, info, warn, error)")

	rootCmd.AddCommand(simulateCmd, configCmd, statusCmd)
}
