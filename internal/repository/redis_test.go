package repository

import (
	"context"
	"testing"
	"time"

	"webhook-receiver/internal/config"
)

func TestRedisMirrorPublish(t *testing.T) {
	cfg := config.GetRedisConfig()
	if cfg.Addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}
	cfg.Channel = "webhook-receiver:test"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mirror, err := NewRedisMirror(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to init mirror: %v", err)
	}
	defer mirror.Close()

	sub := mirror.client.Subscribe(ctx, mirror.Channel())
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	if err := mirror.Publish(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("failed to receive message: %v", err)
	}
	if msg.Payload != `{"a":1}` {
		t.Fatalf("unexpected payload: %q", msg.Payload)
	}
}

func TestNewRedisMirrorUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisMirror(ctx, config.RedisConfig{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
