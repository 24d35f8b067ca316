package service

import (
	"context"
	"time"

	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/queue"
	"go-gin-rsvp/pkg/clock"
	"go-gin-rsvp/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = time.Second

// outbox 發布通知，失敗只記 log，不影響已 commit 的入場結果
type outbox struct {
	queue queue.NotificationQueue
	clock clock.Clock
}

func (o *outbox) publish(ctx context.Context, kind model.NotificationKind, rsvp *model.Rsvp, ticket *model.Ticket) {
	n := &model.Notification{
		ID:        uuid.New(),
		Kind:      kind,
		RsvpID:    rsvp.ID,
		EventID:   rsvp.EventID,
		UserID:    rsvp.UserID,
		CreatedAt: o.clock.Now(),
	}
	if ticket != nil {
		n.TicketID = ticket.ID
	}

	// 請求可能已結束，通知仍要送出
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := o.queue.Publish(pubCtx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeDropped).Inc()
		logger.FromContext(ctx, "service").Warn("failed to publish notification",
			zap.String("kind", string(kind)),
			zap.String("rsvp_id", rsvp.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.OutcomePublished).Inc()
}
