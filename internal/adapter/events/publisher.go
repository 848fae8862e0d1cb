package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/streadway/amqp"

	"github.com/mugworks/storefront/internal/domain/model"
)

const queueName = "order_events"

// AMQPPublisher pushes order lifecycle events onto a durable queue.
// Publishing is best effort: failures are logged, never surfaced to the
// request path.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// event is the wire form of a lifecycle announcement.
type event struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	FinalAmount float64   `json:"final_amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewAMQPPublisher dials the broker and declares the event queue.
func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// OrderCreated announces a new order.
func (p *AMQPPublisher) OrderCreated(ctx context.Context, order *model.Order) {
	p.publish(ctx, "order.created", order)
}

// PaymentConfirmed announces a completed payment.
func (p *AMQPPublisher) PaymentConfirmed(ctx context.Context, order *model.Order) {
	p.publish(ctx, "order.payment_confirmed", order)
}

func (p *AMQPPublisher) publish(_ context.Context, eventType string, order *model.Order) {
	body, err := json.Marshal(event{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		UserID:      order.UserID,
		FinalAmount: order.FinalAmount,
		Status:      string(order.Status),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("marshal event", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}

	err = p.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("publish event",
			slog.String("type", eventType),
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *model.Order) {}

func (NopPublisher) PaymentConfirmed(context.Context, *model.Order) {}
