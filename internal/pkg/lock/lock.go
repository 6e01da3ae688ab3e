// Package lock provides short-lived distributed locks backed by Redis.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock: key is held by another owner")

// releaseScript deletes the key only when it still carries the caller token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker acquires exclusive ownership of a key for a bounded time.
type Locker interface {
	// Acquire takes the lock and returns a release func. It returns ErrLocked
	// when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

type generator interface {
	Generate() string
}

// Redis implements Locker using SET NX PX plus a token-checked release.
type Redis struct {
	client redis.UniversalClient
	prefix string
	token  generator
}

// NewRedis builds a Redis locker. Keys are stored under "lock:<key>".
func NewRedis(client redis.UniversalClient, token generator) *Redis {
	return &Redis{
		client: client,
		prefix: "lock:",
		token:  token,
	}
}

// Acquire implements Locker.
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	fk := r.prefix + key
	token := r.token.Generate()

	ok, err := r.client.SetNX(ctx, fk, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{fk}, token).Err()
	}, nil
}

// Nop is a Locker that always succeeds. It is used when Redis is disabled and
// the database constraint alone guards concurrent issuance.
type Nop struct{}

// Acquire implements Locker.
func (Nop) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
