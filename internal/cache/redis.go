package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	standingsKey  = "league:standings"
	generationKey = "league:standings:generation"
)

// Redis shares the standings table between server instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the server at url and verifies the connection.
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return NewRedisWithClient(client, ttl), nil
}

// NewRedisWithClient wraps an existing client (for testing)
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context) (*league.Table, bool, error) {
	data, err := r.client.Get(ctx, standingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table league.Table
	if err := msgpack.Unmarshal(data, &table); err != nil {
		return nil, false, fmt.Errorf("corrupt standings cache entry: %w", err)
	}
	return &table, true, nil
}

func (r *Redis) Generation(ctx context.Context) (uint64, error) {
	gen, err := r.client.Get(ctx, generationKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores table only while the generation is still gen. The generation key is
// watched so an Invalidate from any instance racing the write aborts it.
func (r *Redis) Set(ctx context.Context, gen uint64, table *league.Table) (bool, error) {
	data, err := msgpack.Marshal(table)
	if err != nil {
		return false, err
	}

	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, standingsKey, data, r.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

func (r *Redis) Invalidate(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, standingsKey)
		return nil
	})
	return err
}

func (r *Redis) Close() error {
	return r.client.Close()
}
