package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer the forwarder needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder is a wildcard event handler that copies every domain
// event to Kafka. Each aggregate type gets its own topic
// (<prefix>.<aggregate>) and messages are keyed by aggregate id so one
// aggregate's events stay ordered within a partition.
type KafkaForwarder struct {
	writer MessageWriter
	prefix string
	logger *zap.Logger
}

// NewKafkaWriter builds the producer described by cfg
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	// Writes are synchronous and carry one event each, so flush without
	// waiting for a batch to fill.
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		WriteTimeout:           timeout,
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaForwarder(w MessageWriter, topicPrefix string, l *zap.Logger) *KafkaForwarder {
	return &KafkaForwarder{
		writer: w,
		prefix: strings.TrimSuffix(topicPrefix, "."),
		logger: l.Named("kafka"),
	}
}

// EventTypes returns nil: the forwarder receives every event
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

func (f *KafkaForwarder) Handle(ctx context.Context, ev shared.DomainEvent) error {
	msg, err := f.Message(ev)
	if err != nil {
		return err
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("forward %s to %s: %w", ev.EventType(), msg.Topic, err)
	}
	f.logger.Debug("event forwarded",
		zap.String("topic", msg.Topic),
		zap.String("event_type", ev.EventType()),
	)
	return nil
}

// Message encodes ev as a Kafka message
func (f *KafkaForwarder) Message(ev shared.DomainEvent) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", ev.EventType(), err)
	}
	return kafka.Message{
		Topic: f.Topic(ev.AggregateType()),
		Key:   []byte(ev.AggregateID().String()),
		Value: payload,
		Time:  ev.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType())},
			{Key: "event_id", Value: []byte(ev.EventID().String())},
			{Key: "tenant_id", Value: []byte(ev.TenantID().String())},
		},
	}, nil
}

// Topic returns the topic for an aggregate type
func (f *KafkaForwarder) Topic(aggregateType string) string {
	name := strings.ToLower(aggregateType)
	if f.prefix == "" {
		return name
	}
	return f.prefix + "." + name
}

func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
