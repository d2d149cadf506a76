package kafka

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/events"
	"omni_notifications/internal/metrics"
	"omni_notifications/internal/queue"
)

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Consumer subscribes to the fixed event topics under one consumer group and
// feeds each message to the topic handlers. Ingestion failure is never fatal
// to the service: if the broker stays unreachable through the startup
// retries, the consumer parks itself and the rest of the process keeps
// serving stored data and live fanout.
type Consumer struct {
	brokers  []string
	groupID  string
	handlers *events.Handlers
	log      *zap.Logger

	connectRetries int
	connectDelay   time.Duration
	pollTimeout    time.Duration
}

func NewConsumer(cfg *config.Config, handlers *events.Handlers, logger *zap.Logger) queue.Consumer {
	if len(cfg.KafkaBrokers) == 0 {
		return &noopConsumer{}
	}
	return &Consumer{
		brokers:        cfg.KafkaBrokers,
		groupID:        cfg.KafkaGroupID,
		handlers:       handlers,
		log:            logger,
		connectRetries: cfg.KafkaConnectRetries,
		connectDelay:   cfg.KafkaConnectDelay,
		pollTimeout:    cfg.KafkaPollTimeout,
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	if !c.connectWithRetry(ctx) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("kafka unreachable after all retries, event ingestion disabled",
			zap.Strings("brokers", c.brokers),
		)
		<-ctx.Done()
		return ctx.Err()
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		GroupTopics: events.Topics(),
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     c.pollTimeout,
	})
	defer func() { _ = reader.Close() }()

	c.log.Info("kafka consumer started",
		zap.Strings("brokers", c.brokers),
		zap.String("group_id", c.groupID),
		zap.Int("topics", len(events.Topics())),
	)

	for {
		// Bounded wait per poll so a stop signal is observed within one
		// interval rather than after an unbounded blocking fetch.
		pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
		msg, err := reader.FetchMessage(pollCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			c.log.Error("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.connectDelay):
			}
			continue
		}

		c.handleMessage(ctx, msg)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka commit failed", zap.String("topic", msg.Topic), zap.Error(err))
		}
	}
}

func (c *Consumer) connectWithRetry(ctx context.Context) bool {
	for attempt := 1; attempt <= c.connectRetries; attempt++ {
		conn, err := kafkago.DialContext(ctx, "tcp", c.brokers[0])
		if err == nil {
			_ = conn.Close()
			return true
		}
		c.log.Warn("kafka dial failed",
			zap.String("broker", c.brokers[0]),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.connectRetries),
			zap.Error(err),
		)
		if attempt == c.connectRetries {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.connectDelay):
		}
	}
	return false
}

// handleMessage isolates failures per message: a bad payload or a store
// outage is logged and the loop moves on to the next message.
func (c *Consumer) handleMessage(ctx context.Context, msg kafkago.Message) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, kafkaHeaderCarrier{headers: &msg.Headers})
	ctx, span := otel.Tracer("kafka").Start(ctx, "kafka.handle_message")
	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", msg.Topic),
		attribute.String("messaging.kafka.consumer_group", c.groupID),
	)
	defer span.End()

	metrics.EventsConsumed.WithLabelValues(msg.Topic).Inc()

	handleCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.handlers.Handle(handleCtx, msg.Topic, msg.Value); err != nil {
		span.RecordError(err)
		if errors.Is(err, events.ErrMalformedEvent) {
			span.SetStatus(codes.Error, "malformed event")
			c.log.Warn("malformed event payload",
				zap.String("topic", msg.Topic),
				zap.ByteString("payload", msg.Value),
				zap.Error(err),
			)
			return
		}
		span.SetStatus(codes.Error, "handler failed")
		c.log.Error("event handler failed", zap.String("topic", msg.Topic), zap.Error(err))
	}
}
