package model

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistStatus 候補狀態
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusConfirmed WaitlistStatus = "confirmed"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

// IsValid 驗證狀態是否有效
func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistStatusWaiting, WaitlistStatusConfirmed, WaitlistStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo 只有 waiting 可以轉出
func (s WaitlistStatus) CanTransitionTo(target WaitlistStatus) bool {
	return s == WaitlistStatusWaiting && (target == WaitlistStatusConfirmed || target == WaitlistStatusExpired)
}

// WaitlistEntry 候補名單項目，同一活動內 waiting 項目的 position 唯一且依建立順序遞增
type WaitlistEntry struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	EventID   uuid.UUID      `json:"event_id" db:"event_id"`
	RsvpID    uuid.UUID      `json:"rsvp_id" db:"rsvp_id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Status    WaitlistStatus `json:"status" db:"status"`
	Position  int            `json:"position" db:"position"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// IsWaiting 檢查是否仍在候補
func (w *WaitlistEntry) IsWaiting() bool {
	return w.Status == WaitlistStatusWaiting
}
