package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/api"
	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the gRPC health server and the HTTP API and blocks until ctx
// is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, app *App, log logger.Logger, metricsHandler http.Handler) error {
	s := newServers(cfg, app, log, metricsHandler)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("servers started", "http", cfg.HTTP.Address, "grpc", cfg.GRPC.Address)

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, app *App, log logger.Logger, metricsHandler http.Handler) *Servers {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)

	router := api.NewRouter(app.Flights, app.Bookings, log, api.RouterOptions{
		Swagger: cfg.HTTP.Swagger,
		Metrics: metricsHandler,
	})

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}
