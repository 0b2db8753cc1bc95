package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer drives.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer delivers each message at least once: offsets are committed only
// after the handler returns. Messages the handler rejects are logged and
// committed so one bad payload cannot stall the partition.
type Consumer struct {
	reader messageReader
	topic  string
	log    logger.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log logger.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		topic: topic,
		log:   log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume runs until ctx is cancelled, which is reported as a nil error.
func (c *Consumer) Consume(ctx context.Context, handler events.Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch message from %s: %w", c.topic, err)
		}

		if err := handler(ctx, msg.Value); err != nil {
			c.log.Warn("dropping message rejected by handler",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d on %s: %w", msg.Offset, c.topic, err)
		}
	}
}
