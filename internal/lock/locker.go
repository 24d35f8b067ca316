package lock

import (
	"context"
	"fmt"

	"go-gin-rsvp/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UnlockFunc 釋放鎖，重複呼叫無副作用
type UnlockFunc func()

// EventLocker 以活動為單位序列化入場、釋出與遞補
type EventLocker interface {
	// Lock 阻塞直到取得鎖；等待逾時回傳 apperrors.ErrLockTimeout
	Lock(ctx context.Context, eventID uuid.UUID) (UnlockFunc, error)
}

// New 依設定選擇實作；多 instance 部署必須使用 redis
func New(cfg *config.LockConfig, rdb *redis.Client) (EventLocker, error) {
	switch cfg.Backend {
	case "", config.LockBackendLocal:
		return NewLocalEventLocker(cfg.WaitTimeout), nil
	case config.LockBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("lock backend %q requires a redis client", cfg.Backend)
		}
		return NewRedisEventLocker(rdb, cfg.TTL, cfg.WaitTimeout), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Backend)
	}
}
