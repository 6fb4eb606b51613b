// Package events publishes order lifecycle notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"event-ticketing/internal/data/entity"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Type string

const (
	OrderCreated   Type = "order.created"
	OrderCompleted Type = "order.completed"
	OrderCancelled Type = "order.cancelled"
)

// OrderEvent is the message body, keyed by order code.
type OrderEvent struct {
	Type       Type               `json:"type"`
	OrderID    string             `json:"orderId"`
	UserID     string             `json:"userId"`
	EventID    string             `json:"eventId"`
	TicketID   string             `json:"ticketId"`
	Quantity   int                `json:"quantity"`
	Total      string             `json:"total"`
	Status     entity.OrderStatus `json:"status"`
	Vouchers   []entity.Voucher   `json:"vouchers,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

func NewOrderEvent(t Type, order *entity.Order) OrderEvent {
	return OrderEvent{
		Type:       t,
		OrderID:    order.OrderID,
		UserID:     order.CreatedBy.String(),
		EventID:    order.EventID.String(),
		TicketID:   order.TicketID.String(),
		Quantity:   order.Quantity,
		Total:      order.Total.String(),
		Status:     order.Status,
		Vouchers:   order.Vouchers,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is fire-and-forget: delivery failures are logged, never returned
// to the request that triggered them.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent)
	Close() error
}

var producerTracer = otel.Tracer("events/producer")

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	log = log.With(zap.String("publisher", "kafka"), zap.String("topic", topic))

	return &KafkaPublisher{
		topic: topic,
		log:   log,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Error("Failed to deliver order events", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode order event", zap.String("order_id", event.OrderID), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(event.OrderID),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	// Async writer: this only enqueues; delivery errors reach Completion.
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		span.RecordError(err)
		p.log.Error("Failed to enqueue order event",
			zap.String("order_id", event.OrderID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapts kafka headers to the OTel TextMapCarrier.
type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, len(c.msg.Headers))
	for i, h := range c.msg.Headers {
		keys[i] = h.Key
	}
	return keys
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) {}

func (NopPublisher) Close() error { return nil }
