package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is published after an order transaction commits. Consumers
// (notifications, analytics) are outside this service.
type OrderEvent struct {
	Type        string    `json:"type"` // order.created / order.cancelled
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent) error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *Producer) PublishOrderEvent(ctx context.Context, ev OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderNumber),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Noop stands in when no broker is configured (and in tests).
type Noop struct{}

func (Noop) PublishOrderEvent(ctx context.Context, ev OrderEvent) error { return nil }
