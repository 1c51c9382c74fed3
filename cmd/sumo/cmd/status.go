package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/sumo-robot/internal/service/probe"
)

// probeOptions are bound to the status flags.
var probeOptions probe.Options

// statusCmd checks a running controller's health endpoint.
var statusCmd = &cobra.Command{
	Use:   "status [address]",
	Short: "Check whether a controller's control loop is running.",
	Long: `Queries the gRPC health service of a running controller.

The address defaults to status.listen_address from the settings file. A single
check exits non-zero unless the loop is SERVING. With --watch, every status
change is printed until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		opts := probeOptions
		opts.ConfigPath = configPath

		if len(args) > 0 {
			opts.Address = args[0]
		}

		return probe.Run(ctx, &opts, func(st healthpb.HealthCheckResponse_ServingStatus) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), st.String())
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	statusCmd.Flags().BoolVarP(&probeOptions.Watch, "watch", "w", false, "keep polling and print status changes")
	statusCmd.Flags().DurationVar(&probeOptions.Interval, "interval", probe.DefaultInterval, "polling interval in watch mode")
}
