package storage

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func sampleForm() *domain.OrderForm {
	return &domain.OrderForm{
		CustomerName: "Budi",
		Phone:        "6281234567890",
		Notes:        "Tolong cepat",
		Items: []domain.LineItem{
			{ID: "product_1", Code: domain.Code02, Color: domain.ColorBlack, Sleeve: domain.SleeveShort, Size: domain.SizeM, Quantity: 3},
			domain.NewLineItem("product_2"),
		},
		CreatedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 5, 9, 5, 0, 0, time.UTC),
	}
}

func TestRedisSaveLoad_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	// Setup
	client.Del(ctx, "session:test-session")

	// Test
	if err := adapter.Save(ctx, "test-session", sampleForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form, err := adapter.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Verify
	want := sampleForm()
	if form.CustomerName != want.CustomerName || form.Phone != want.Phone || form.Notes != want.Notes {
		t.Errorf("expected customer fields %+v, got %+v", want, form)
	}
	if len(form.Items) != 2 || form.Items[0] != want.Items[0] || form.Items[1] != want.Items[1] {
		t.Errorf("expected items %+v, got %+v", want.Items, form.Items)
	}
	if !form.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("expected updated_at %v, got %v", want.UpdatedAt, form.UpdatedAt)
	}

	ttl, _ := client.TTL(ctx, "session:test-session").Result()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within a minute, got %v", ttl)
	}
}

func TestRedisLoad_NotFound(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	// Setup - ensure key doesn't exist
	client.Del(ctx, "session:nonexistent")

	_, err := adapter.Load(ctx, "nonexistent")
	if !errors.Is(err, port.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got: %v", err)
	}
}

func TestRedisLoad_CorruptDocument(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	client.Set(ctx, "session:corrupt", "{not json", time.Minute)

	_, err := adapter.Load(ctx, "corrupt")
	if err == nil || errors.Is(err, port.ErrSessionNotFound) {
		t.Errorf("expected decode error, got: %v", err)
	}
}

func TestRedisDelete(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	adapter.Save(ctx, "delete-me", sampleForm())

	if err := adapter.Delete(ctx, "delete-me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := adapter.Load(ctx, "delete-me"); !errors.Is(err, port.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got: %v", err)
	}

	// Deleting again is fine
	if err := adapter.Delete(ctx, "delete-me"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRedisClaim_Success(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	// Setup
	client.Del(ctx, "submitted:test-claim")

	// First call should succeed
	ok, err := adapter.Claim(ctx, "test-claim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first call to succeed")
	}

	// Second call should fail (key exists)
	ok, err = adapter.Claim(ctx, "test-claim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second call to fail")
	}
}

func TestRedisClaim_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	// Setup
	client.Del(ctx, "submitted:concurrent-claim")

	var successCount atomic.Int32
	var wg sync.WaitGroup
	concurrency := 100

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.Claim(ctx, "concurrent-claim")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	// Only one should succeed
	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
}
