package match

import (
	"context"
	"fmt"

	"github.com/oshokin/sumo-robot/internal/logger"
	"github.com/oshokin/sumo-robot/internal/status"
)

// healthReporter publishes whether the control loop is running.
type healthReporter interface {
	SetServing(ctx context.Context, serving bool)
}

// noHealth is used when the status endpoint is disabled.
type noHealth struct{}

func (noHealth) SetServing(context.Context, bool) {}

// startStatus serves the health endpoint in the background. The returned stop
// function shuts it down and waits for it.
func startStatus(ctx context.Context, address string) (healthReporter, func(), error) {
	if address == "" {
		return noHealth{}, func() {}, nil
	}

	srv, err := status.Listen(ctx, address)
	if err != nil {
		return nil, nil, fmt.Errorf("start status server: %w", err)
	}

	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		if serveErr := srv.Serve(serveCtx); serveErr != nil {
			logger.ErrorKV(ctx, "Status server failed", "error", serveErr)
		}
	}()

	return srv, func() {
		cancel()
		<-done
	}, nil
}
