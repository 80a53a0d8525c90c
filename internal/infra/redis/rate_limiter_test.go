//go:build !integration

package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	counts  map[string]int64
	ttls    map[string]time.Duration
	failErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(context.Context) error { return f.failErr }

func (f *fakeRedis) Incr(_ context.Context, key string) (int64, error) {
	if f.failErr != nil {
		return 0, f.failErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedis) Expire(_ context.Context, key string, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttls[key] = d
	return nil
}

func (f *fakeRedis) Close() error { return nil }

func TestRateLimiter_Allow(t *testing.T) {
	fake := newFakeRedis()
	rl := NewRateLimiter(fake)
	ctx := context.Background()
	key := UserKey(42)

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, fake.ttls[key])
	assert.Equal(t, "rate_limit:42", key)
}

func TestRateLimiter_PropagatesErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.failErr = errors.New("connection refused")
	_, err := NewRateLimiter(fake).Allow(context.Background(), "k", 1, time.Minute)
	assert.Error(t, err)
}
