// Package probe asks a running controller whether its control loop is up.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/sumo-robot/internal/config"
	"github.com/oshokin/sumo-robot/internal/logger"
	"github.com/oshokin/sumo-robot/internal/status"
)

// Options controls a probe.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Address overrides the configured status address.
	Address string
	// Watch keeps polling until ctx is canceled.
	Watch bool
	// Interval is the pause between polls in watch mode.
	Interval time.Duration
}

// DefaultInterval is the watch mode polling interval.
const DefaultInterval = time.Second

var (
	// ErrNotServing is returned by a single probe when the loop is not running.
	ErrNotServing = errors.New("control loop is not serving")
	// errNoAddress is returned when neither the options nor the settings name an address.
	errNoAddress = errors.New("no status address configured")
)

// Run checks the health endpoint once, or repeatedly in watch mode, and
// reports each status through report.
func Run(ctx context.Context, opts *Options, report func(healthpb.HealthCheckResponse_ServingStatus)) error {
	ctx = logger.WithName(ctx, "probe")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	address := cfg.Status.ListenAddress
	if opts.Address != "" {
		address = opts.Address
	}

	if address == "" {
		return errNoAddress
	}

	client, err := status.Dial(address, status.WithCallTimeout(cfg.Status.CallTimeout))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	if !opts.Watch {
		st, checkErr := client.Check(ctx)
		if checkErr != nil {
			return checkErr
		}

		report(st)

		if st != healthpb.HealthCheckResponse_SERVING {
			return ErrNotServing
		}

		return nil
	}

	return watch(ctx, client, opts.Interval, report)
}

// watch polls until ctx is canceled, reporting only changes.
func watch(
	ctx context.Context,
	client *status.Client,
	interval time.Duration,
	report func(healthpb.HealthCheckResponse_ServingStatus),
) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger.InfoKV(ctx, "Watching control loop", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_ServingStatus(-1)

	for {
		st, err := client.Check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "Context canceled, exiting")
				return nil
			}

			logger.WarnKV(ctx, "Health check failed", "error", err)

			st = healthpb.HealthCheckResponse_UNKNOWN
		}

		if st != last {
			last = st
			report(st)
		}

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
		}
	}
}
