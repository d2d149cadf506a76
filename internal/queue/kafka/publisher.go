package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/queue"
)

type noopPublisher struct{}

func (n *noopPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	_ = ctx
	_ = topic
	_ = payload
	return nil
}

// Publisher writes one event to a topic. The notification service itself
// only consumes; this is the producing counterpart used to exercise the
// consumer end to end.
type Publisher struct {
	brokers []string
	log     *zap.Logger
}

func NewPublisher(cfg *config.Config, logger *zap.Logger) queue.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return &noopPublisher{}
	}
	return &Publisher{brokers: cfg.KafkaBrokers, log: logger}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	defer func() { _ = writer.Close() }()

	var headers []kafkago.Header
	otel.GetTextMapPropagator().Inject(ctx, kafkaHeaderCarrier{headers: &headers})

	if err := writer.WriteMessages(ctx, kafkago.Message{
		Topic:   topic,
		Value:   payload,
		Headers: headers,
	}); err != nil {
		p.log.Error("kafka publish failed", zap.String("topic", topic), zap.Error(err))
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}
