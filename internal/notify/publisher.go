// Package notify publishes checkout lifecycle events to Kafka for the
// notification and order-tracking consumers.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const eventsTopic = "vendora.checkout.events"

// Event types carried on the checkout topic.
const (
	EventCustomsDeclared = "customs.declared"
	EventCheckoutPriced  = "checkout.priced"
)

type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher writes checkout events. A nil Publisher is valid and drops
// everything, so callers never need to branch on messaging being configured.
type Publisher struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewPublisher returns a Publisher for the given brokers, or nil when no
// brokers are configured.
func NewPublisher(brokers []string, log *slog.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  eventsTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, log: log}
}

// Publish sends one event. Failures are logged, not propagated: event
// delivery never blocks or fails a checkout request.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil {
		return
	}

	body, err := json.Marshal(envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		p.log.Error("marshal event failed", "type", eventType, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: body,
	})
	if err != nil {
		p.log.Error("publish event failed", "type", eventType, "error", err)
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
