package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/bootstrap"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Flight Inventory API
// @version 1.0
// @description Flight inventory, seat booking and cancellation.
// @BasePath /api/v1.0/flight
func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.NewLogger(cfg.Log.Level)
	defer zlog.Sync()
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg, zlog, prometheus.DefaultRegisterer)
	if err != nil {
		zlog.Fatal("init app", "error", err)
	}
	defer app.Close()

	if err := bootstrap.Run(ctx, cfg, app, zlog, promhttp.Handler()); err != nil {
		zlog.Error("server error", "error", err)
	}
}
