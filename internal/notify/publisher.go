// Package notify delivers booking decisions to interested consumers over
// RabbitMQ. Publishing is best-effort: a broker failure is logged and must
// never fail the admission request that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const queueName = "booking.decided"

// BookingDecidedEvent is the message emitted after every booking decision.
type BookingDecidedEvent struct {
	BookingID   string    `json:"booking_id,omitempty"`
	ResourceID  string    `json:"resource_id"`
	RequesterID string    `json:"requester_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status,omitempty"`
	Outcome     string    `json:"outcome"` // "created", "conflict", or a status transition
}

// Publisher sends booking decision events. Implementations must be safe for
// concurrent use by request handlers.
type Publisher interface {
	BookingDecided(ctx context.Context, event BookingDecidedEvent) error
	Close() error
}

type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the durable decision queue.
func NewAMQPPublisher(url string, logger *slog.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel open failed: %w", err)
	}

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare failed: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: ch, logger: logger}, nil
}

func (p *amqpPublisher) BookingDecided(ctx context.Context, event BookingDecidedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.logger.Error("publish booking decision failed", "error", err, "outcome", event.Outcome)
		return fmt.Errorf("amqp publish failed: %w", err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event. Used when no
// broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingDecided(context.Context, BookingDecidedEvent) error { return nil }
func (noopPublisher) Close() error                                              { return nil }
