//go:build integration

package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedisContainer(t require.TestingT, ctx context.Context) (*goredis.Client, func()) {
	container, err := tcredis.RunContainer(
		ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := goredis.ParseURL(uri)
	require.NoError(t, err)
	client := goredis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(pingCtx).Err())

	cleanup := func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	}
	return client, cleanup
}
