// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, pageKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(context.Background(), host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, CatalogTTL)

	ctx := context.Background()

	data, ok := pc.Get(ctx, CatalogKey)
	if ok || data != nil {
		t.Fatalf("expected cache miss, got %q", data)
	}

	html := []byte("<html><body>Каталог</body></html>")
	pc.Set(ctx, CatalogKey, html)

	data, ok = pc.Get(ctx, CatalogKey)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != string(html) {
		t.Errorf("data mismatch: got %q, want %q", data, html)
	}

	ttl, err := client.TTL(ctx, pageKeyPrefix+CatalogKey).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > CatalogTTL {
		t.Errorf("entry TTL = %v, want within (0, %v]", ttl, CatalogTTL)
	}
}

func TestPageCacheExpires(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1100*time.Millisecond)

	ctx := context.Background()
	pc.Set(ctx, "short-lived", []byte("x"))
	time.Sleep(1500 * time.Millisecond)

	if _, ok := pc.Get(ctx, "short-lived"); ok {
		t.Error("expected entry to expire")
	}
}

func TestPageCacheInvalidateCatalog(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, time.Minute)

	ctx := context.Background()
	pc.Set(ctx, CatalogKey, []byte("cached"))
	pc.Set(ctx, "other", []byte("kept"))

	pc.InvalidateCatalog(ctx)

	if _, ok := pc.Get(ctx, CatalogKey); ok {
		t.Error("expected catalog miss after invalidation")
	}
	if _, ok := pc.Get(ctx, "other"); !ok {
		t.Error("unrelated page was invalidated")
	}
}

func TestPageCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, time.Minute)

	ctx := context.Background()
	for _, key := range []string{"page-a", "page-b", CatalogKey} {
		pc.Set(ctx, key, []byte(key))
	}

	pc.InvalidateAll(ctx)

	for _, key := range []string{"page-a", "page-b", CatalogKey} {
		if _, ok := pc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestPageCacheUnreachableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	pc := NewPageCache(client, time.Minute)

	ctx := context.Background()
	pc.Set(ctx, CatalogKey, []byte("lost"))
	if _, ok := pc.Get(ctx, CatalogKey); ok {
		t.Error("unreachable cache reported a hit")
	}
	pc.InvalidateCatalog(ctx)
}

func TestNewPageCacheDefaultTTL(t *testing.T) {
	pc := NewPageCache(nil, 0)
	if pc.TTL() != CatalogTTL {
		t.Errorf("expected CatalogTTL (%v), got %v", CatalogTTL, pc.TTL())
	}
}
