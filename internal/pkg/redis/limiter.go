package redis

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter 按 IP 统计登录尝试次数，窗口内超过上限即拒绝
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, cfg config.LimiterConfig) *LoginLimiter {
	return &LoginLimiter{
		rdb:    rdb,
		limit:  cfg.MaxAttempts,
		window: time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

func (l *LoginLimiter) key(ip string) string {
	return consts.LoginLimiterKey + ip
}

// Allow 只读检查，不计数
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	count, err := l.rdb.Get(ctx, l.key(ip)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, err
	}
	return count <= l.limit, nil
}

// Hit 记录一次尝试；新键或丢失 TTL 的键重新设置过期时间
func (l *LoginLimiter) Hit(ctx context.Context, ip string) (int64, error) {
	key := l.key(ip)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		return count, l.rdb.Expire(ctx, key, l.window).Err()
	}
	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil {
		return count, err
	}
	if ttl == -1 {
		return count, l.rdb.Expire(ctx, key, l.window).Err()
	}
	return count, nil
}
