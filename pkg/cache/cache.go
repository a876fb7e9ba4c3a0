// Package cache is the Redis-backed read-through cache for storefront reads.
// Every function is a no-op (or a miss) while Redis is not connected, so the
// API keeps working against the database alone.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/souq/config"
)

// Prefix namespaces every key this service writes.
const Prefix = "souq:"

var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a ping.
// On failure RDB stays nil and the cache is disabled.
func Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Close releases the client.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Key joins parts under Prefix: Key("storefront", "product", "7") → "souq:storefront:product:7".
func Key(parts ...string) string {
	k := Prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(context.Background(), key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(val, dest) == nil
}

// Set stores value as JSON under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(context.Background(), key, data, ttl).Err()
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(context.Background(), keys...).Err()
}

// DelPrefix removes every key starting with prefix, scanning in batches.
func DelPrefix(ctx context.Context, prefix string) error {
	if RDB == nil {
		return nil
	}

	iter := RDB.Scan(ctx, 0, prefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := RDB.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return RDB.Del(ctx, batch...).Err()
	}
	return nil
}

// Store adapts the package functions to orm.Cacher.
type Store struct{}

func (Store) Get(key string, dest interface{}) bool { return Get(key, dest) }

func (Store) Set(key string, value interface{}, ttl time.Duration) error {
	return Set(key, value, ttl)
}
