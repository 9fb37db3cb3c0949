package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderCreated is the integration event published after an order is first
// written. Downstream consumers (fulfillment, analytics) key on SessionID.
type OrderCreated struct {
	SessionID     string    `json:"session_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// Publisher emits order events. Publishing is best-effort: a failure must
// never affect the durable order row, callers only log it.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, e OrderCreated) error
}

// RabbitMQ publishes order events to a durable fanout exchange.
type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQ(url, exchange string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &RabbitMQ{conn: conn, channel: ch, exchange: exchange}, nil
}

func (r *RabbitMQ) PublishOrderCreated(ctx context.Context, e OrderCreated) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Type:         "order.created",
		Body:         body,
	}

	return r.channel.PublishWithContext(ctx, r.exchange, "", false, false, msg)
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}
