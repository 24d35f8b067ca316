package notify

import (
	"context"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 實際送出通知 (email、推播等由下游服務負責)
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

// LogNotifier 只寫 log，未設定 webhook 時使用
type LogNotifier struct{}

func NewLogNotifier() Notifier {
	return LogNotifier{}
}

func (LogNotifier) Notify(ctx context.Context, n *model.Notification) error {
	logger.FromContext(ctx, "notify").Info("notification",
		zap.String("kind", string(n.Kind)),
		zap.String("notification_id", n.ID.String()),
		zap.String("rsvp_id", n.RsvpID.String()),
		zap.String("event_id", n.EventID.String()),
		zap.String("user_id", n.UserID.String()),
	)
	return nil
}
