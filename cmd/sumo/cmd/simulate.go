package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sumo-robot/internal/service/match"
)

// simulateOptions are bound to the simulate flags.
var simulateOptions match.Options

// simulateCmd plays one match in the simulator.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the control loop against a simulated ring and opponent.",
	Long: `Runs one match in simulated time.

The match ends when either robot leaves the ring, the match duration runs out,
or the process receives SIGINT or SIGTERM. Every iteration can be written to a
JSONL or SQLite trace, and the gRPC health service reports whether the loop is
running when a status address is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		opts := simulateOptions
		opts.ConfigPath = configPath

		result, err := match.Run(ctx, &opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		_, _ = fmt.Fprintf(out, "run %s: %s after %s (%d iterations, %s phase)\n",
			result.RunID, result.Verdict, result.Elapsed, result.Iterations, result.Phase)

		if result.TracePath != "" {
			_, _ = fmt.Fprintf(out, "trace: %s\n", result.TracePath)
		}

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := simulateCmd.Flags()

	flags.DurationVarP(&simulateOptions.Duration, "duration", "d", 0, "match length in simulated time")
	flags.StringVar(&simulateOptions.TraceBackend, "trace-backend", "", "trace backend: none, jsonl or sqlite")
	flags.StringVar(&simulateOptions.TracePath, "trace-path", "", "trace output file")
	flags.StringVar(&simulateOptions.StatusAddress, "status-addr", "", "gRPC health listen address, e.g. :7070")
	flags.StringVar(&simulateOptions.Arbitration, "arbitration", "",
		"edge-priority, boundary-first or offense-first")
	flags.BoolVar(&simulateOptions.NoStartupDelay, "no-startup-delay", false, "start moving immediately")
	flags.BoolVar(&simulateOptions.AllowConcurrent, "allow-concurrent", false,
		"skip the check for another running controller")
}
