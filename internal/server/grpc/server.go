package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name the admin backend reports under in the health service.
const ServiceName = "pmdadmin.Admin"

const defaultProbeInterval = 15 * time.Second

// Pinger is the Record Store probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address   string
	logger    logging.Logger
	db        Pinger
	interval  time.Duration
	jwtSecret []byte
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, db Pinger, interval time.Duration, secretKey string) *GRPCServer {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		db:        db,
		interval:  interval,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	go s.watchDatabase(probeCtx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
