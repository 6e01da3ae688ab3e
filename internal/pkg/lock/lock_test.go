package lock

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type counter struct{ n atomic.Int64 }

func (c *counter) Generate() string { return "tok-" + strconv.FormatInt(c.n.Add(1), 10) }

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_AcquireRelease(t *testing.T) {
	client := newRedis(t)
	ctx := context.Background()
	l := NewRedis(client, &counter{})

	release, err := l.Acquire(ctx, "otp:abc", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "otp:abc", time.Minute)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, release(ctx))

	release2, err := l.Acquire(ctx, "otp:abc", time.Minute)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

func TestRedis_ReleaseKeepsForeignLock(t *testing.T) {
	client := newRedis(t)
	ctx := context.Background()
	l := NewRedis(client, &counter{})

	release, err := l.Acquire(ctx, "otp:def", 50*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = l.Acquire(ctx, "otp:def", time.Minute)
	require.NoError(t, err)

	// the first holder expired; its release must not drop the new holder
	require.NoError(t, release(ctx))
	_, err = l.Acquire(ctx, "otp:def", time.Minute)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestNop(t *testing.T) {
	release, err := Nop{}.Acquire(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
