package bootstrap

import (
	"context"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/kafka"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/rabbitmq"
)

// Consumer reads one topic (Kafka) or queue (RabbitMQ).
type Consumer interface {
	Consume(ctx context.Context, handler events.Handler) error
	Close() error
}

// NewPublisher returns nil when no broker is configured.
func NewPublisher(cfg *config.Config, log logger.Logger) events.Publisher {
	switch cfg.Broker.Kind {
	case config.BrokerKafka:
		return kafka.NewProducer(cfg.Kafka.Brokers, log)
	case config.BrokerRabbitMQ:
		return rabbitmq.NewPublisher(cfg.RabbitMQ.URL, log)
	default:
		return nil
	}
}

// NewConsumer returns nil when no broker is configured.
func NewConsumer(cfg *config.Config, topic string, log logger.Logger) Consumer {
	switch cfg.Broker.Kind {
	case config.BrokerKafka:
		return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, log)
	case config.BrokerRabbitMQ:
		return rabbitmq.NewConsumer(cfg.RabbitMQ.URL, topic, log)
	default:
		return nil
	}
}
