package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/events"
	"omni_notifications/internal/service/notify"
	"omni_notifications/internal/store/memory"
	"omni_notifications/internal/ws"
)

func newTestConsumer(t *testing.T) (*Consumer, *memory.Store) {
	t.Helper()
	store := memory.New(zap.NewNop())
	registry := ws.NewRegistry(zap.NewNop())
	svc := notify.NewService(store, registry, zap.NewNop())
	handlers := events.NewHandlers(svc, zap.NewNop())

	cfg := &config.Config{
		KafkaBrokers:        []string{"localhost:9092"},
		KafkaGroupID:        "notification-service",
		KafkaConnectRetries: 1,
		KafkaConnectDelay:   time.Millisecond,
		KafkaPollTimeout:    time.Millisecond,
	}
	consumer, ok := NewConsumer(cfg, handlers, zap.NewNop()).(*Consumer)
	require.True(t, ok)
	return consumer, store
}

func TestNewConsumerWithoutBrokersIsNoop(t *testing.T) {
	cfg := &config.Config{}
	consumer := NewConsumer(cfg, nil, zap.NewNop())
	_, isNoop := consumer.(*noopConsumer)
	require.True(t, isNoop)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("noop consumer did not stop on cancel")
	}
}

func TestHandleMessagePersistsNotification(t *testing.T) {
	consumer, store := newTestConsumer(t)

	consumer.handleMessage(context.Background(), kafkago.Message{
		Topic: events.TopicVirtualCardCreated,
		Value: []byte(`{"accountId":"acct-1","lastFourDigits":"4242","cardType":"debit"}`),
	})

	items, total, err := store.ListForAccount(context.Background(), "acct-1", 1, 10, "")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Virtual Card Created", items[0].Label)
}

func TestHandleMessageIsolatesFailures(t *testing.T) {
	consumer, store := newTestConsumer(t)

	// A malformed message is logged and skipped; the next one still lands.
	consumer.handleMessage(context.Background(), kafkago.Message{
		Topic: events.TopicAccountCreated,
		Value: []byte(`not json`),
	})
	consumer.handleMessage(context.Background(), kafkago.Message{
		Topic: "mystery-topic",
		Value: []byte(`{}`),
	})
	consumer.handleMessage(context.Background(), kafkago.Message{
		Topic: events.TopicContactRequestAccepted,
		Value: []byte(`{"requesterId":"acct-1"}`),
	})

	items, _, err := store.ListForAccount(context.Background(), "acct-1", 1, 10, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Contact Request Accepted", items[0].Label)
}

func TestStartGivesUpAfterBoundedRetries(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	// Unroutable broker address: the dial fails fast and retries are bounded,
	// after which the consumer parks until cancellation.
	consumer.brokers = []string{"127.0.0.1:1"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after retries were exhausted")
	}
}
