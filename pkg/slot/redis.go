package slot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
)

// Redis stores the payload under one Redis key and broadcasts every save on
// a pub/sub channel, so other processes holding the same slot can reload.
// This is the "storage changed externally" path: there is no merge — a
// watcher reloads the full document and the last writer wins.
type Redis struct {
	client *redis.Client
	key    string
	// instance tags our own publishes so Watch can ignore them.
	instance string
}

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis() (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("slot/redis: ping: %w", err)
	}

	b := make([]byte, 8)
	_, _ = rand.Read(b)

	return &Redis{
		client:   client,
		key:      config.StoreKey(),
		instance: hex.EncodeToString(b),
	}, nil
}

func (r *Redis) channel() string { return r.key + ":changed" }

func (r *Redis) Load() ([]byte, bool, error) {
	val, err := r.client.Get(context.Background(), r.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot/redis: load: %w", err)
	}
	return val, true, nil
}

func (r *Redis) Save(payload []byte) error {
	ctx := context.Background()
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("slot/redis: save: %w", err)
	}
	// Best effort — a missed broadcast only means another process stays
	// stale until its own next load.
	if err := r.client.Publish(ctx, r.channel(), r.instance).Err(); err != nil {
		logger.Warn("slot/redis: publish change", "error", err)
	}
	return nil
}

// Watch subscribes to the slot's change channel and invokes onChange for
// every write made by a different process. Returns a stop function.
func (r *Redis) Watch(onChange func()) (func(), error) {
	sub := r.client.Subscribe(context.Background(), r.channel())
	// Force the subscription to be established before returning.
	if _, err := sub.Receive(context.Background()); err != nil {
		sub.Close()
		return nil, fmt.Errorf("slot/redis: subscribe: %w", err)
	}

	go func() {
		for msg := range sub.Channel() {
			if msg.Payload == r.instance {
				continue // our own write
			}
			onChange()
		}
	}()

	return func() { _ = sub.Close() }, nil
}

var _ Watcher = (*Redis)(nil)
