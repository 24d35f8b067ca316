package queue

import (
	"context"
	"fmt"
	"time"

	"go-gin-rsvp/config"
	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

// NotificationQueue 通知 outbox：service 發布，worker 訂閱後交給 Notifier
type NotificationQueue interface {
	// 發送通知到隊列
	Publish(ctx context.Context, n *model.Notification) error
	// 訂閱通知隊列
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// MemoryQueueConfig 重試設定；nil 或零值時使用預設，與 Redis 後端的 ClaimMinIdle / MaxRetry 對齊
type MemoryQueueConfig struct {
	RetryDelay time.Duration // Nack(requeue) 後延遲多久才重新投遞
	MaxRetry   int           // 投遞超過此次數就丟棄
}

func (c *MemoryQueueConfig) withDefaults() MemoryQueueConfig {
	cfg := MemoryQueueConfig{
		RetryDelay: 5 * time.Second,
		MaxRetry:   5,
	}
	if c == nil {
		return cfg
	}
	if c.RetryDelay > 0 {
		cfg.RetryDelay = c.RetryDelay
	}
	if c.MaxRetry > 0 {
		cfg.MaxRetry = c.MaxRetry
	}
	return cfg
}

// envelope 記錄同一筆通知已投遞幾次
type envelope struct {
	n          *model.Notification
	deliveries int
}

type MemoryNotificationQueue struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch  chan *envelope
	cfg MemoryQueueConfig
}

func NewMemoryNotificationQueue(bufferSize int, config *MemoryQueueConfig) NotificationQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &MemoryNotificationQueue{
		ch:  make(chan *envelope, bufferSize),
		cfg: config.withDefaults(),
	}
}

func (q *MemoryNotificationQueue) Publish(ctx context.Context, n *model.Notification) error {
	select {
	case q.ch <- &envelope{n: n}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryNotificationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case env, ok := <-q.ch:
				if !ok {
					return
				}

				env.deliveries++
				select {
				case out <- q.newDelivery(ctx, env):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *MemoryNotificationQueue) newDelivery(ctx context.Context, env *envelope) Delivery {
	return Delivery{
		Data: env.n,
		Ack:  func() {},
		Nack: func(requeue bool) {
			if !requeue {
				return
			}
			if env.deliveries >= q.cfg.MaxRetry {
				metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeDropped).Inc()
				logger.WithComponent("mq").Warn("Notification dropped after max retries",
					zap.String("notification_id", env.n.ID.String()),
					zap.String("kind", string(env.n.Kind)),
					zap.Int("deliveries", env.deliveries),
				)
				return
			}
			// 另開 goroutine 延遲放回，避免 buffer 滿時卡住 worker
			go func() {
				sleep(ctx, q.cfg.RetryDelay)
				if ctx.Err() != nil {
					return
				}
				select {
				case q.ch <- env:
				case <-ctx.Done():
				}
			}()
		},
	}
}

// New 依設定選擇實作
func New(cfg *config.QueueConfig, rdb *redis.Client, consumerID string) (NotificationQueue, error) {
	switch cfg.Backend {
	case "", config.QueueBackendMemory:
		return NewMemoryNotificationQueue(cfg.BufferSize, &MemoryQueueConfig{
			RetryDelay: cfg.ClaimMinIdle,
			MaxRetry:   cfg.MaxRetry,
		}), nil
	case config.QueueBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("queue backend %q requires a redis client", cfg.Backend)
		}
		return NewRedisStreamNotificationQueue(rdb, consumerID, &RedisStreamConfig{
			ClaimMinIdleTime: cfg.ClaimMinIdle,
			MaxRetryCount:    cfg.MaxRetry,
		})
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}
