package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

func TestReplayLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCommands()
	client := &Client{cmd: fake}
	scope := "cart-12|POST|/api/v1/cart/items"

	_, found, err := client.LoadReplay(ctx, scope, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	stored, err := client.SaveReplay(ctx, scope, "abc", "first", time.Hour)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = client.SaveReplay(ctx, scope, "abc", "second", time.Hour)
	require.NoError(t, err)
	assert.False(t, stored, "second writer must not overwrite")

	payload, found, err := client.LoadReplay(ctx, scope, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", payload)
	assert.Equal(t, time.Hour, fake.ttls[ReplayKey(scope, "abc")])
}

func TestLoadReplaySurfacesBackendErrors(t *testing.T) {
	fake := newFakeCommands()
	fake.getErr = errors.New("connection reset")
	client := &Client{cmd: fake}

	_, found, err := client.LoadReplay(context.Background(), "s", "k")
	assert.False(t, found)
	assert.EqualError(t, err, "connection reset")
}

func TestReplayKey(t *testing.T) {
	assert.Equal(t, "storefront:replay:scope:id", ReplayKey("scope", "id"))
	assert.Equal(t, "storefront:replay:id", ReplayKey(" ", "id"))
}

func TestNilAndDisconnectedClient(t *testing.T) {
	var nilClient *Client
	assert.NoError(t, nilClient.Close())
	assert.Error(t, nilClient.Ping(context.Background()))

	client := &Client{}
	assert.Error(t, client.Ping(context.Background()))
	_, _, err := client.LoadReplay(context.Background(), "s", "k")
	assert.Error(t, err)
	_, err = client.SaveReplay(context.Background(), "s", "k", "v", time.Minute)
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err, "url or address required")

	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "localhost:6379",
		DB:          2,
		PoolSize:    7,
		DialTimeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6380/3", DB: 5, PoolSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB, "url db wins over config")
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 4, opts.PoolSize)

	_, err = optionsFromConfig(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}

type fakeCommands struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCommands) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCommands) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommands) SetNX(_ context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if _, exists := f.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}
