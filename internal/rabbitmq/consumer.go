package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	url      string
	queue    string
	prefetch int
	log      logger.Logger
}

func NewConsumer(url, queue string, log logger.Logger) *Consumer {
	return &Consumer{url: url, queue: queue, prefetch: 50, log: log}
}

// Consume delivers messages to handler until ctx is done. Messages the
// handler rejects are nacked without requeue.
func (c *Consumer) Consume(ctx context.Context, handler events.Handler) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.log.Warn("rabbitmq qos failed", "error", err)
	}
	if _, err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handler(ctx, d.Body); err != nil {
				c.log.Error("handle message failed", "queue", c.queue, "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	return nil
}
