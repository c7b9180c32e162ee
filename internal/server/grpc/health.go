package grpc

import (
	"context"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// watchDatabase probes the Record Store every interval and publishes the
// result for both the overall server and ServiceName.
func (s *GRPCServer) watchDatabase(ctx context.Context) {
	last := s.probe(ctx, healthpb.HealthCheckResponse_UNKNOWN)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			last = s.probe(ctx, last)
		}
	}
}

func (s *GRPCServer) probe(ctx context.Context, last healthpb.HealthCheckResponse_ServingStatus) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if s.db != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.db.PingContext(pctx)
		cancel()
		if err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			if last != st {
				s.logger.Warn(ctx, "record store probe failed", "error", err)
			}
		}
	}
	if last != st {
		s.logger.Info(ctx, "health status changed", "status", st.String())
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	return st
}
