package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "", ttl), mini
}

func TestRedisStoreSaveAndLoad(t *testing.T) {
	store, _ := newTestRedisStore(t, 0)
	ctx := context.Background()

	want := fluency.SessionState{Initialized: true, Score: 54, Observations: 2}
	if err := store.Save(ctx, "alice", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("state=%+v, want %+v", got, want)
	}
}

func TestRedisStoreMissingSession(t *testing.T) {
	store, _ := newTestRedisStore(t, 0)
	_, err := store.Load(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestRedisStoreExpiresAndDeletes(t *testing.T) {
	store, mini := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", fluency.SessionState{Initialized: true, Score: 10, Observations: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mini.TTL(defaultKeyPrefix + "alice"); ttl != time.Hour {
		t.Fatalf("ttl=%v, want 1h", ttl)
	}

	mini.FastForward(2 * time.Hour)
	if _, err := store.Load(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound after expiry", err)
	}

	_ = store.Save(ctx, "bob", fluency.SessionState{Initialized: true, Score: 10, Observations: 1})
	if err := store.Delete(ctx, "bob"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mini.Exists(defaultKeyPrefix + "bob") {
		t.Fatal("key still present after delete")
	}
}

func TestServiceWithRedisStore(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Evaluate(ctx, "alice", fluency.Utterance{Text2: "go go to the sssstore"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eval, err := svc.Evaluate(ctx, "alice", fluency.Utterance{Text2: "go to the store"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 40*0.8 + 0*0.2
	if eval.SessionScore != 32 {
		t.Fatalf("session=%v, want 32", eval.SessionScore)
	}
}
