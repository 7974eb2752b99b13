package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the three commands the session store uses.
type fakeRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestSessionRedisRepository(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	repo := NewSessionRedisRepository(fake, 12*time.Hour)

	tok, err := repo.Get(ctx, "sid")
	if err != nil || tok != "" {
		t.Fatalf("expected missing key to read as empty, got %q %v", tok, err)
	}

	if err := repo.Set(ctx, "sid", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if fake.values[sessionKeyPrefix+"sid"] != "abc" || fake.ttls[sessionKeyPrefix+"sid"] != 12*time.Hour {
		t.Fatalf("unexpected stored entry %v %v", fake.values, fake.ttls)
	}
	if tok, _ := repo.Get(ctx, "sid"); tok != "abc" {
		t.Fatalf("expected abc, got %q", tok)
	}

	if err := repo.Clear(ctx, "sid"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := repo.Get(ctx, "sid"); tok != "" {
		t.Fatalf("expected cleared token, got %q", tok)
	}
}
