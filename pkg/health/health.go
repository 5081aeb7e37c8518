// Package health serves the gRPC health checking protocol.
package health

import (
	"fmt"
	"net"
	"portfolio-server/pkg/log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct {
	log    log.ILogger
	lis    net.Listener
	grpc   *grpc.Server
	health *health.Server
}

// New listens on ip:port. The server reports NOT_SERVING until SetServing is called.
func New(logger log.ILogger, ip string, port int) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", ip, port))
	if err != nil {
		return nil, err
	}
	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(logErrors(logger)))
	grpc_health_v1.RegisterHealthServer(s, hs)
	return &Server{log: logger, lis: lis, grpc: s, health: hs}, nil
}

func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// Serve blocks until Stop is called.
func (s *Server) Serve() error {
	s.log.Infof("health server listening on %s", s.lis.Addr())
	return s.grpc.Serve(s.lis)
}

func (s *Server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Stop marks the service as not serving and stops the server.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
