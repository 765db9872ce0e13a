package credentials

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient dials Redis and checks the connection with PING.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps the slot under two keys, <prefix>:access and
// <prefix>:refresh, written in one MULTI/EXEC and read with one MGET.
type RedisStore struct {
	client     redis.Cmdable
	accessKey  string
	refreshKey string
}

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "storefront:credentials"
	}
	return &RedisStore{
		client:     client,
		accessKey:  prefix + ":access",
		refreshKey: prefix + ":refresh",
	}
}

func (r *RedisStore) Load(ctx context.Context) (Credentials, error) {
	values, err := r.client.MGet(ctx, r.accessKey, r.refreshKey).Result()
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load credentials from redis: %w", err)
	}
	return Credentials{
		AccessToken:  asString(values[0]),
		RefreshToken: asString(values[1]),
	}, nil
}

func (r *RedisStore) Save(ctx context.Context, c Credentials) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		setOrDel(ctx, pipe, r.accessKey, c.AccessToken)
		setOrDel(ctx, pipe, r.refreshKey, c.RefreshToken)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.accessKey, r.refreshKey).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials in redis: %w", err)
	}
	return nil
}

func setOrDel(ctx context.Context, pipe redis.Pipeliner, key, value string) {
	if value == "" {
		pipe.Del(ctx, key)
		return
	}
	pipe.Set(ctx, key, value, 0)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
