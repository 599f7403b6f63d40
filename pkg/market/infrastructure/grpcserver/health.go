package grpcserver

import (
	"net"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "greenlink.Marketplace"

// Server exposes the standard gRPC health service so orchestrators can probe the process.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

func New() *Server {
	s := &Server{grpc: grpc.NewServer(), health: health.NewServer()}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	log.WithField("addr", lis.Addr().String()).Info("Starting grpc health server")
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "serve grpc")
	}
	return nil
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
