package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus 活動狀態，由活動管理服務維護，本服務唯讀
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// AcceptsRsvps 已取消或已結束的活動不再接受 going
func (s EventStatus) AcceptsRsvps() bool {
	return s != EventStatusCancelled && s != EventStatusCompleted
}

// Event 活動 (唯讀)
type Event struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	OrganizerID  uuid.UUID   `json:"organizer_id" db:"organizer_id"`
	Name         string      `json:"name" db:"name"`
	Capacity     int         `json:"capacity" db:"capacity"`
	RsvpDeadline *time.Time  `json:"rsvp_deadline,omitempty" db:"rsvp_deadline"`
	Status       EventStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// DeadlineMet 沒有設定截止時間視為永遠未截止；剛好等於截止時間仍算有效
func (e *Event) DeadlineMet(now time.Time) bool {
	if e.RsvpDeadline == nil {
		return true
	}
	return !now.After(*e.RsvpDeadline)
}

// Occupancy 活動座位使用概況
type Occupancy struct {
	EventID    uuid.UUID `json:"event_id"`
	Capacity   int       `json:"capacity"`
	Occupied   int       `json:"occupied"`
	Available  int       `json:"available"`
	Waitlisted int       `json:"waitlisted"`
}
