package status

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/sumo-robot/internal/logger"
)

// ServiceName is the health service name of the control loop.
const ServiceName = "sumo.control"

// Server serves grpc.health.v1.Health for the control loop.
type Server struct {
	listener net.Listener
	grpc     *grpc.Server
	health   *health.Server
}

// Listen binds address and registers the health service. The control loop
// starts out NOT_SERVING.
func Listen(ctx context.Context, address string) (*Server, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{listener: lis, grpc: srv, health: hs}, nil
}

// Address returns the bound address.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// SetServing reports whether the control loop is running.
func (s *Server) SetServing(ctx context.Context, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus(ServiceName, st)

	logger.DebugKV(ctx, "Health status changed", "service", ServiceName, "status", st.String())
}

// Serve blocks until ctx is canceled, then marks every service NOT_SERVING
// and stops gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ctx = logger.WithName(ctx, "status")

	logger.InfoKV(ctx, "Status server listening", "listen_address", s.Address())

	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpc.GracefulStop()
		close(done)
	}()

	if err := s.grpc.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Status server stopped")

	return nil
}
