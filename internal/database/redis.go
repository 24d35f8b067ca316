package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"go-gin-rsvp/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis 連線給分散式活動鎖與通知 stream 使用
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
		// XREADGROUP 會 block，讀取逾時交給呼叫端的 context
		ReadTimeout:           -1,
		ContextTimeoutEnabled: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rdb.Options().Addr, err)
	}

	return rdb, nil
}
