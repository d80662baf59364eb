package repository

import (
	"context"
	"fmt"
	"time"
	"webhook-receiver/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisMirror republishes accepted payloads on a pub/sub channel. Nothing is stored.
type RedisMirror struct {
	client  *redis.Client
	channel string
}

func NewRedisMirror(ctx context.Context, cfg config.RedisConfig) (*RedisMirror, error) {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Channel == "" {
		cfg.Channel = config.DefaultRedisChannel
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		Username:     cfg.User,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	return &RedisMirror{client: client, channel: cfg.Channel}, nil
}

func (m *RedisMirror) Channel() string {
	return m.channel
}

func (m *RedisMirror) Publish(ctx context.Context, payload []byte) error {
	if err := m.client.Publish(ctx, m.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", m.channel, err)
	}
	return nil
}

func (m *RedisMirror) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *RedisMirror) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
