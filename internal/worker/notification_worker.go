package worker

import (
	"context"
	"sync"

	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/notify"
	"go-gin-rsvp/internal/queue"
	"go-gin-rsvp/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	// 訂閱通知隊列，立即返回
	Start(ctx context.Context) error
	// 等待處理迴圈結束 (ctx 取消後)
	Wait()
}

type NotificationWorkerImpl struct {
	notifier notify.Notifier
	queue    queue.NotificationQueue
	wg       sync.WaitGroup
}

func NewNotificationWorker(notifier notify.Notifier, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for msg := range msgs {
			if err := w.notifier.Notify(ctx, msg.Data); err != nil {
				// 下游暫時失敗，留給隊列重試
				log.Warn("notify failed, requeue",
					zap.String("notification_id", msg.Data.ID.String()),
					zap.String("kind", string(msg.Data.Kind)),
					zap.Error(err),
				)
				metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
				msg.Nack(true)
				continue
			}
			metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeDelivered).Inc()
			msg.Ack()
		}
	}()
	return nil
}

func (w *NotificationWorkerImpl) Wait() {
	w.wg.Wait()
}
