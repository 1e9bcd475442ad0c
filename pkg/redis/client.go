package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	keyNamespace = "storefront"
	replayPrefix = "replay"
)

var errNotConnected = errors.New("redis client not initialized")

// commands is the subset of go-redis the storefront touches; tests swap in a fake.
type commands interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
}

// ReplayStore keeps serialized responses for idempotent POSTs.
type ReplayStore interface {
	LoadReplay(ctx context.Context, scope, key string) (payload string, found bool, err error)
	SaveReplay(ctx context.Context, scope, key, payload string, ttl time.Duration) (bool, error)
}

// Client is the storefront's Redis handle: replay records and a readiness ping.
type Client struct {
	cmd  commands
	conn *redis.Client
}

var _ ReplayStore = (*Client)(nil)

// New dials Redis from config and pings it once before returning.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	conn := redis.NewClient(opts)
	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, multierr.Append(fmt.Errorf("ping redis %s: %w", opts.Addr, err), conn.Close())
	}
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"redis_addr": opts.Addr,
			"redis_db":   opts.DB,
			"pool_size":  opts.PoolSize,
		}), "redis connected")
	}
	return &Client{cmd: conn, conn: conn}, nil
}

// optionsFromConfig prefers REDIS_URL; pool and timeout settings fill whatever the URL leaves unset.
func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis url or address is required")
	}

	opts := &redis.Options{Addr: cfg.Address, Password: cfg.Password}
	if raw := strings.TrimSpace(cfg.URL); raw != "" {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}

	setIfZero(&opts.DB, cfg.DB)
	setIfZero(&opts.PoolSize, cfg.PoolSize)
	setIfZero(&opts.MinIdleConns, cfg.MinIdleConns)
	setIfZero(&opts.DialTimeout, cfg.DialTimeout)
	setIfZero(&opts.ReadTimeout, cfg.ReadTimeout)
	setIfZero(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func setIfZero[T comparable](dst *T, fallback T) {
	var zero T
	if *dst == zero {
		*dst = fallback
	}
}

// LoadReplay returns the stored payload for scope/key. A missing record is not an error.
func (c *Client) LoadReplay(ctx context.Context, scope, key string) (string, bool, error) {
	if c == nil || c.cmd == nil {
		return "", false, errNotConnected
	}
	payload, err := c.cmd.Get(ctx, ReplayKey(scope, key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return payload, true, nil
}

// SaveReplay stores payload unless a record already exists; the first writer wins.
func (c *Client) SaveReplay(ctx context.Context, scope, key, payload string, ttl time.Duration) (bool, error) {
	if c == nil || c.cmd == nil {
		return false, errNotConnected
	}
	return c.cmd.SetNX(ctx, ReplayKey(scope, key), payload, ttl).Result()
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.cmd == nil {
		return errNotConnected
	}
	return c.cmd.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ReplayKey namespaces a replay record, dropping blank segments.
func ReplayKey(scope, key string) string {
	parts := []string{keyNamespace, replayPrefix}
	for _, part := range []string{scope, key} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ":")
}
