package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/waterline/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyLoginAddr = "login:addr:%s"

// LoginLimiter throttles login attempts per client address.
type LoginLimiter struct {
	limiter Limiter
}

func (l *LoginLimiter) Allow(ctx context.Context, clientAddr string) (*Result, error) {
	addr := strings.TrimSpace(clientAddr)
	if addr == "" {
		addr = "unknown"
	}
	return l.limiter.Allow(ctx, fmt.Sprintf(keyLoginAddr, addr))
}

func NewLoginLimiterWith(limiter Limiter) *LoginLimiter {
	return &LoginLimiter{limiter: limiter}
}

// NewLoginLimiter uses redis when REDIS_ADDR is set and falls back to in-process buckets.
func NewLoginLimiter(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*LoginLimiter, error) {
	perSecond := cfg.LoginRateLimit.RatePerMinute / 60
	burst := cfg.LoginRateLimit.Burst

	if cfg.RedisAddr == "" {
		local, err := NewLocalBuckets(perSecond, burst)
		if err != nil {
			return nil, err
		}
		log.Info("login rate limiter using in-process buckets")
		return NewLoginLimiterWith(local), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	bucket, err := NewTokenBucket(client, perSecond, burst)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})
	log.Info("login rate limiter using redis", zap.String("addr", cfg.RedisAddr))
	return NewLoginLimiterWith(bucket), nil
}
