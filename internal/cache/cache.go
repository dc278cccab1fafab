// Package cache stores evaluation results keyed by a digest of the request that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

const keyPrefix = "interview-evaluator:result:"

// DefaultTTL is used when the configured TTL is not positive.
const DefaultTTL = time.Hour

// Config holds the Redis connection settings of the result cache.
type Config struct {
	Enabled      bool          `mapstructure:"enabled"`
	Address      string        `mapstructure:"address"`
	Password     string        `mapstructure:"password"`
	PasswordFile string        `mapstructure:"password-file"`
	DB           int           `mapstructure:"db"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// Cache stores evaluation results. A miss is reported as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*evaluation.Result, bool, error)
	Set(ctx context.Context, key string, res evaluation.Result) error
	Close() error
}

// Nop is a Cache that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (*evaluation.Result, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, evaluation.Result) error { return nil }

func (Nop) Close() error { return nil }

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis backed cache. The password is passed separately because it is
// resolved from secrets rather than read from cfg directly.
func NewRedis(cfg Config, password string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return NewRedisWithClient(rdb, cfg.TTL)
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) (*evaluation.Result, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var res evaluation.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("decoding cached result: %w", err)
	}
	return &res, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, res evaluation.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// cacheKey lists every input that can change a Result.
type cacheKey struct {
	Answer   string             `json:"answer"`
	Keywords []string           `json:"keywords"`
	Context  evaluation.Context `json:"context"`
}

// Key returns a SHA-256 digest of the request inputs that influence the result.
// Question text and difficulty do not affect scoring and are left out.
func Key(req *evaluation.Request) (string, error) {
	if req == nil || req.Question == nil {
		return "", evaluation.ErrInvalidRequest
	}

	data, err := json.Marshal(cacheKey{
		Answer:   req.Answer,
		Keywords: req.Question.Keywords(),
		Context:  req.Context().WithDefaults(),
	})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
