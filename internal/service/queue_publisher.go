// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/visolab/viso-tracker/internal/queue"
)

// Publisher sends interaction events to the broker. The connection is
// opened per publish; interaction volume does not warrant a pooled channel
// and a fresh dial keeps failure handling trivial.
type Publisher struct {
	URL    string
	Logger *log.Logger
}

// NewPublisher constructs a Publisher for the given broker URL.
func NewPublisher(url string, logger *log.Logger) *Publisher {
	if logger == nil {
		panic("nil logger passed to NewPublisher")
	}
	return &Publisher{URL: url, Logger: logger}
}

// PublishInteractionRecorded publishes an InteractionRecordedEvent to the
// "interaction.recorded" queue. It never panics; any error is logged and
// returned so the recording request can still succeed. Messages are marked
// persistent.
func (p *Publisher) PublishInteractionRecorded(ctx context.Context, event q.InteractionRecordedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Errorf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Errorf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"interaction.recorded", // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		p.Logger.Errorf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.Logger.Errorf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                     // default exchange
		"interaction.recorded", // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		pub,
	); err != nil {
		p.Logger.Errorf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
