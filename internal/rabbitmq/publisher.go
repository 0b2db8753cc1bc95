// Package rabbitmq is the AMQP alternative to the Kafka adapter. Topics
// map to durable queues on the default exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher dials per publish; event volume is one message per booking
// state change.
type Publisher struct {
	url string
	log logger.Logger
}

func NewPublisher(url string, log logger.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := declareQueue(ch, topic); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", topic, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	p.log.Debug("published to rabbitmq", "queue", topic, "key", key)
	return nil
}

func (p *Publisher) Close() error {
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("queue declare %s: %w", name, err)
	}
	return q, nil
}

var _ events.Publisher = (*Publisher)(nil)
