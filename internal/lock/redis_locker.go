package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	retryInterval    = 10 * time.Millisecond
	maxRetryInterval = 100 * time.Millisecond
)

// RedisEventLocker 多個 instance 共用的鎖：SET NX PX 取得，Lua 比對 token 後釋放
type RedisEventLocker struct {
	client      *redis.Client
	ttl         time.Duration
	waitTimeout time.Duration
}

func NewRedisEventLocker(client *redis.Client, ttl, waitTimeout time.Duration) *RedisEventLocker {
	return &RedisEventLocker{
		client:      client,
		ttl:         ttl,
		waitTimeout: waitTimeout,
	}
}

// 鎖的 key
func (l *RedisEventLocker) getLockKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s:lock", eventID)
}

func (l *RedisEventLocker) Lock(ctx context.Context, eventID uuid.UUID) (UnlockFunc, error) {
	key := l.getLockKey(eventID)
	token := uuid.NewString()

	waitCtx := ctx
	if l.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.waitTimeout)
		defer cancel()
	}

	interval := retryInterval
	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("acquire event lock: %w", err)
		}
		if ok {
			return l.unlockFunc(key, token), nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-waitCtx.Done():
			timer.Stop()
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, apperrors.ErrLockTimeout
		}

		interval *= 2
		if interval > maxRetryInterval {
			interval = maxRetryInterval
		}
	}
}

func (l *RedisEventLocker) unlockFunc(key, token string) UnlockFunc {
	var once sync.Once
	return func() {
		once.Do(func() {
			// 呼叫端的 context 可能已取消，釋放鎖仍要執行
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := l.release(ctx, key, token); err != nil {
				logger.WithComponent("lock").Warn("failed to release event lock",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		})
	}
}

// 只刪除自己持有的鎖 (使用Lua腳本確保原子性)
func (l *RedisEventLocker) release(ctx context.Context, key, token string) error {
	script := `
		if redis.call('GET', KEYS[1]) == ARGV[1] then
			return redis.call('DEL', KEYS[1])
		end
		return 0
	`

	return l.client.Eval(ctx, script, []string{key}, token).Err()
}
