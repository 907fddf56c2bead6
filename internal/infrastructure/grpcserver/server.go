package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/logging"

	"google.golang.org/grpc"
)

// Server encapsula el servidor gRPC de fx.FxService
type Server struct {
	grpcServer *grpc.Server
	port       int
}

// NewServer registra fx.FxService con los interceptores de correlación y recovery
func NewServer(fxService interfaces.FxService, port int) *Server {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		UnaryServerInterceptor(),
		RecoveryUnaryInterceptor(),
	))
	grpcServer.RegisterService(&ServiceDesc, NewHandler(fxService))

	return &Server{
		grpcServer: grpcServer,
		port:       port,
	}
}

// Start listens on the configured port and blocks until Stop
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("grpc listen on :%d: %w", s.port, err)
	}
	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	logging.Info(context.Background(), "gRPC server starting", logging.Fields{
		"port":    s.port,
		"service": ServiceName,
	})

	if err := s.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop drena las RPCs en curso; if ctx expires first the server is stopped hard
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping gRPC server gracefully", logging.Fields{
		"port": s.port,
	})

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpcServer.Stop()
		return ctx.Err()
	}
}
