package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageturne/storefront-backend/pkg/kv"
)

func TestKeyBuilder(t *testing.T) {
	client := &Client{}
	if got := client.buildKey("cart", "abc"); got != "pt:cart:abc" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.buildKey("checkout", "address:abc"); got != "pt:checkout:address:abc" {
		t.Fatalf("unexpected checkout key %s", got)
	}
	if got := client.buildKey("cart", ""); got != "pt:cart" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
	if got := client.buildKey(); got != "pt" {
		t.Fatalf("unexpected bare key %s", got)
	}
}

func TestCartStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	store := client.CartStore()

	if err := store.Set(ctx, "token-1", `{"lines":[]}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, ok := mock.data["pt:cart:token-1"]; !ok {
		t.Fatalf("expected namespaced key, got %v", mock.data)
	}
	if ttl := mock.ttls["pt:cart:token-1"]; ttl != 0 {
		t.Fatalf("cart entries must not expire, got ttl %v", ttl)
	}

	value, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"lines":[]}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := store.Del(ctx, "token-1"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := store.Get(ctx, "token-1"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound after delete, got %v", err)
	}
}

func TestCheckoutStoreAppliesTTL(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	store := client.CheckoutStore(30 * time.Minute)

	if err := store.Set(ctx, "address:token-1", `{}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if ttl := mock.ttls["pt:checkout:address:token-1"]; ttl != 30*time.Minute {
		t.Fatalf("expected TTL 30m, got %v", ttl)
	}
}

func TestScopedStoreMissingKey(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	store := client.CheckoutStore(time.Minute)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound, got %v", err)
	}
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
		delete(m.ttls, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
