package testutil

import (
	"time"

	"go-gin-rsvp/internal/model"

	"github.com/google/uuid"
)

// BaseTime 測試共用的固定時間
var BaseTime = time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

func Attendee() model.Caller {
	return model.Caller{UserID: uuid.New(), Role: model.RoleAttendee}
}

func Admin() model.Caller {
	return model.Caller{UserID: uuid.New(), Role: model.RoleAdmin}
}

// Organizer 回傳活動主辦人身分
func Organizer(event *model.Event) model.Caller {
	return model.Caller{UserID: event.OrganizerID, Role: model.RoleOrganizer}
}

// NewEvent 已發布、容量為 capacity 的活動；deadline 為 nil 表示沒有截止時間
func NewEvent(capacity int, deadline *time.Time) *model.Event {
	return &model.Event{
		ID:           uuid.New(),
		OrganizerID:  uuid.New(),
		Name:         "Launch Party",
		Capacity:     capacity,
		RsvpDeadline: deadline,
		Status:       model.EventStatusPublished,
		CreatedAt:    BaseTime.Add(-30 * 24 * time.Hour),
		UpdatedAt:    BaseTime.Add(-30 * 24 * time.Hour),
	}
}

func Ptr[T any](v T) *T {
	return &v
}
