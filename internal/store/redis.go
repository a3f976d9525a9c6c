package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyNamespace isolates this service's keys so Len and Clear never touch
// unrelated data on a shared Redis database.
const keyNamespace = "opus-gate:"

const scanBatchSize = 500

// RedisStore is a Store implementation backed by Redis. All keys live under
// keyNamespace.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore with the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(key string) string {
	return keyNamespace + key
}

// Set stores a key-value pair.
func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	return s.client.Set(context.Background(), s.key(key), value, ttl).Err()
}

// Get retrieves a value by its key.
func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	return val, err
}

// Delete removes a value by its key.
func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), s.key(key)).Err()
}

// Exists checks if a key exists.
func (s *RedisStore) Exists(key string) (bool, error) {
	n, err := s.client.Exists(context.Background(), s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetNX sets a key-value pair if the key does not already exist.
func (s *RedisStore) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	return s.client.SetNX(context.Background(), s.key(key), value, ttl).Result()
}

// Len returns the number of keys in the namespace.
func (s *RedisStore) Len() (int64, error) {
	ctx := context.Background()

	var count int64
	iter := s.client.Scan(ctx, 0, keyNamespace+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes all keys in the namespace.
func (s *RedisStore) Clear() error {
	ctx := context.Background()

	batch := make([]string, 0, scanBatchSize)
	iter := s.client.Scan(ctx, 0, keyNamespace+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= scanBatchSize {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
