package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/bootstrap"
	"github.com/Domenick1991/flightinventory/internal/email"
	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.NewLogger(cfg.Log.Level)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg, zlog, prometheus.DefaultRegisterer)
	if err != nil {
		zlog.Fatal("init app", "error", err)
	}
	defer app.Close()

	sender := email.NewSender(zlog)
	consume(ctx, bootstrap.NewConsumer(cfg, cfg.Booking.NotificationsTopic, zlog), "notifications", sender.Handle, zlog)
	consume(ctx, bootstrap.NewConsumer(cfg, cfg.Booking.ReconciliationTopic, zlog), "reconciliation", reconciliationHandler(zlog), zlog)

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditIntervalMinutes) * time.Minute)
	defer auditTicker.Stop()

	for {
		select {
		case <-auditTicker.C:
			discrepancies, err := app.Bookings.AuditInventory(ctx)
			if err != nil {
				zlog.Error("inventory audit failed", "error", err)
				continue
			}
			zlog.Info("inventory audit finished", "discrepancies", len(discrepancies))
		case <-ctx.Done():
			zlog.Info("worker shutting down")
			return
		}
	}
}

func consume(ctx context.Context, consumer bootstrap.Consumer, name string, handler events.Handler, log logger.Logger) {
	if consumer == nil {
		log.Warn("no broker configured, consumer disabled", "consumer", name)
		return
	}
	go func() {
		defer consumer.Close()
		if err := consumer.Consume(ctx, handler); err != nil {
			log.Error("consumer stopped", "consumer", name, "error", err)
		}
	}()
}

// reconciliationHandler surfaces flagged inventory mismatches for an operator.
func reconciliationHandler(log logger.Logger) events.Handler {
	return func(ctx context.Context, payload []byte) error {
		var event events.ReconciliationEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Warn("decode reconciliation event", "error", err)
			return nil
		}
		log.Error("inventory reconciliation required",
			"operation", event.Operation,
			"flight_id", event.FlightID,
			"code", event.Code,
			"seats", event.Seats,
			"reason", event.Reason,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}
