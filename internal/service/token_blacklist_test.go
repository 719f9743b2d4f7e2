package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestBlacklist(t *testing.T, ttl time.Duration) (*RedisTokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenBlacklist(client, "revoked", ttl), mr
}

func TestRedisTokenBlacklistAddAndContains(t *testing.T) {
	blacklist, _ := newTestBlacklist(t, 15*time.Minute)
	ctx := context.Background()

	revoked, err := blacklist.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if revoked {
		t.Fatal("token must not be revoked before Add")
	}

	if err := blacklist.Add(ctx, "tok-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Adding the same token again is a no-op, not an error.
	if err := blacklist.Add(ctx, "tok-1"); err != nil {
		t.Fatalf("repeat add: %v", err)
	}

	revoked, err = blacklist.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	if revoked, _ := blacklist.Contains(ctx, "tok-2"); revoked {
		t.Fatal("unrelated token must not be revoked")
	}
}

func TestRedisTokenBlacklistEntriesExpire(t *testing.T) {
	blacklist, mr := newTestBlacklist(t, time.Minute)
	ctx := context.Background()

	if err := blacklist.Add(ctx, "tok-1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	revoked, err := blacklist.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if revoked {
		t.Fatal("expected entry to age out with the access-token lifetime")
	}
}

func TestRedisTokenBlacklistKeysArePrefixed(t *testing.T) {
	blacklist, mr := newTestBlacklist(t, time.Minute)

	if err := blacklist.Add(context.Background(), "tok-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !mr.Exists("revoked:tok-1") {
		t.Fatal("expected key under the revoked prefix")
	}
}
