package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/pkg/logger"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey           = "notifications:stream"
	DeadLetterStreamKey = "notifications:dead"
	ConsumerGroupName   = "notification-workers"
	ConsumerNamePrefix  = "worker"

	kindField   = "kind"
	bodyField   = "body"
	reasonField = "reason"

	batchSize = 10
)

// 訊息本體以 CBOR 編碼，時間保留奈秒
var (
	bodyEncMode, _ = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	bodyDecMode, _ = cbor.DecOptions{}.DecMode()
)

// RedisStreamConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 投遞超過此次數移到 dead letter stream
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
}

func (c *RedisStreamConfig) withDefaults() RedisStreamConfig {
	cfg := RedisStreamConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
	if c == nil {
		return cfg
	}
	if c.ClaimMinIdleTime > 0 {
		cfg.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		cfg.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		cfg.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	return cfg
}

// RedisStreamNotificationQueue 多 instance 共用的 outbox：consumer group 分派，未 ack 的訊息由 XAUTOCLAIM 重試
type RedisStreamNotificationQueue struct {
	client   *redis.Client
	consumer string
	cfg      RedisStreamConfig
}

func NewRedisStreamNotificationQueue(client *redis.Client, consumerID string, config *RedisStreamConfig) (NotificationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	q := &RedisStreamNotificationQueue{
		client:   client,
		consumer: ConsumerNamePrefix + ":" + consumerID,
		cfg:      config.withDefaults(),
	}

	err := client.XGroupCreateMkStream(context.Background(), StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamNotificationQueue) Publish(ctx context.Context, n *model.Notification) error {
	body, err := bodyEncMode.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{
			kindField: string(n.Kind),
			bodyField: body,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamNotificationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		claimDone := make(chan struct{})
		go func() {
			defer close(claimDone)
			q.claimLoop(ctx, out)
		}()
		q.readLoop(ctx, out)
		<-claimDone
	}()
	return out, nil
}

// readLoop 只讀新訊息(">")
func (q *RedisStreamNotificationQueue) readLoop(ctx context.Context, out chan<- Delivery) {
	log := logger.WithComponent("mq")

	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			Streams:  []string{StreamKey, ">"},
			Count:    batchSize,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("XReadGroup failed", zap.Error(err))
			sleep(ctx, time.Second)
			continue
		}

		for _, stream := range streams {
			if !q.deliver(ctx, out, stream.Messages) {
				return
			}
		}
	}
}

// claimLoop 定時領回閒置超過 ClaimMinIdleTime 的訊息 (nack requeue 或 consumer 掛掉)
func (q *RedisStreamNotificationQueue) claimLoop(ctx context.Context, out chan<- Delivery) {
	log := logger.WithComponent("mq")
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	start := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   StreamKey,
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    start,
			Count:    batchSize,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return
			}
			log.Error("XAutoClaim failed", zap.Error(err))
			continue
		}
		start = next
		if start == "" {
			start = "0-0"
		}

		live := claimed[:0]
		for _, msg := range claimed {
			if q.exhausted(ctx, msg) {
				continue
			}
			live = append(live, msg)
		}
		if !q.deliver(ctx, out, live) {
			return
		}
	}
}

// exhausted 投遞次數超過上限時移到 dead letter stream 並 ack
func (q *RedisStreamNotificationQueue) exhausted(ctx context.Context, msg redis.XMessage) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  ConsumerGroupName,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		return false
	}

	retries := int(pending[0].RetryCount)
	if retries < q.cfg.MaxRetryCount {
		return false
	}
	q.deadLetter(ctx, msg, fmt.Sprintf("exceeded %d deliveries", retries))
	return true
}

func (q *RedisStreamNotificationQueue) deadLetter(ctx context.Context, msg redis.XMessage, reason string) {
	log := logger.WithComponent("mq").With(zap.String("message_id", msg.ID), zap.String("reason", reason))

	values := map[string]interface{}{reasonField: reason}
	for k, v := range msg.Values {
		values[k] = v
	}
	if err := q.client.XAdd(ctx, &redis.XAddArgs{Stream: DeadLetterStreamKey, Values: values}).Err(); err != nil {
		// 仍然 ack，避免毒藥訊息卡住 PEL
		log.Error("XAdd dead letter failed", zap.Error(err))
	}
	if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, msg.ID).Err(); err != nil {
		log.Error("XAck dead letter failed", zap.Error(err))
		return
	}
	log.Warn("Notification moved to dead letter stream")
}

// deliver 解碼並送出，ctx 結束時回傳 false
func (q *RedisStreamNotificationQueue) deliver(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		n, err := decodeNotification(msg)
		if err != nil {
			q.deadLetter(ctx, msg, err.Error())
			continue
		}

		select {
		case out <- q.newDelivery(ctx, msg.ID, n):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func decodeNotification(msg redis.XMessage) (*model.Notification, error) {
	body, ok := msg.Values[bodyField].(string)
	if !ok {
		return nil, errors.New("missing body field")
	}
	var n model.Notification
	if err := bodyDecMode.Unmarshal([]byte(body), &n); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &n, nil
}

func (q *RedisStreamNotificationQueue) newDelivery(ctx context.Context, id string, n *model.Notification) Delivery {
	log := logger.WithComponent("mq").With(zap.String("message_id", id), zap.String("kind", string(n.Kind)))
	ack := func() {
		if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, id).Err(); err != nil {
			log.Error("XAck failed", zap.Error(err))
		}
	}

	return Delivery{
		Data: n,
		Ack:  ack,
		Nack: func(requeue bool) {
			if !requeue {
				ack()
				return
			}
			// 留在 PEL，由 claimLoop 延遲重試
			log.Info("Notification nacked, will retry", zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
		},
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
