//go:build integration

package kafka

import (
	"context"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafkaContainer(t require.TestingT, ctx context.Context) ([]string, func()) {
	container, err := tckafka.RunContainer(
		ctx,
		tckafka.WithClusterID("notification-test"),
		testcontainers.WithImage("confluentinc/confluent-local:7.5.0"),
	)
	require.NoError(t, err)

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return brokers, cleanup
}
