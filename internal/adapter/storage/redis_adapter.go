package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/port"
)

const (
	sessionKeyPrefix = "session:"
	claimKeyPrefix   = "submitted:"
	claimKeyTTL      = 24 * time.Hour
)

type RedisAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAdapter(client *redis.Client, ttl time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, ttl: ttl}
}

func (r *RedisAdapter) Load(ctx context.Context, sessionID string) (*domain.OrderForm, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var form domain.OrderForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &form, nil
}

func (r *RedisAdapter) Save(ctx context.Context, sessionID string, form *domain.OrderForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, data, r.ttl).Err()
}

func (r *RedisAdapter) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (r *RedisAdapter) Claim(ctx context.Context, sessionID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, claimKeyPrefix+sessionID, 1, claimKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}
