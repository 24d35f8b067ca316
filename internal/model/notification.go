package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind 通知類型
type NotificationKind string

const (
	NotificationRsvpConfirmed    NotificationKind = "rsvp_confirmed"
	NotificationWaitlistPromoted NotificationKind = "waitlist_promoted"
)

// Notification outbox 訊息，實際內容與通道由通知服務決定
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Kind      NotificationKind `json:"kind"`
	RsvpID    uuid.UUID        `json:"rsvp_id"`
	EventID   uuid.UUID        `json:"event_id"`
	UserID    uuid.UUID        `json:"user_id"`
	TicketID  uuid.UUID        `json:"ticket_id"`
	CreatedAt time.Time        `json:"created_at"`
}
