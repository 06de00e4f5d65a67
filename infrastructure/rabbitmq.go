package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"cv-align/domain"
)

// ActivityPublisher announces user actions to downstream consumers.
type ActivityPublisher interface {
	Publish(ctx context.Context, a domain.Activity) error
}

// NopPublisher drops every activity. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Activity) error { return nil }

// RabbitMQ publishes activities to a durable queue.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewRabbitMQ connects to the broker and declares the activity queue.
func NewRabbitMQ(cfg BrokerConfig) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.Queue, // queue name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	slog.Info("connected to RabbitMQ", slog.String("queue", q.Name))
	return &RabbitMQ{conn: conn, channel: ch, queue: q}, nil
}

// Publish sends one activity to the queue.
func (r *RabbitMQ) Publish(ctx context.Context, a domain.Activity) error {
	msg, err := activityMessage(a)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		msg,
	)
}

func activityMessage(a domain.Activity) (amqp.Publishing, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode activity: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    a.OccurredAt,
		Type:         string(a.Kind),
		Body:         body,
	}, nil
}

// Close shuts the channel and connection.
func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}
