package service

import (
	"context"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/repository"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
)

// EventAccess 主辦人或管理員才能管理活動的 RSVP 與報到
type EventAccess struct {
	eventRepo repository.EventRepository
}

func NewEventAccess(eventRepo repository.EventRepository) *EventAccess {
	return &EventAccess{eventRepo: eventRepo}
}

func (a *EventAccess) RequireManager(ctx context.Context, caller model.Caller, eventID uuid.UUID) (*model.Event, error) {
	event, err := a.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(event) {
		return nil, apperrors.ErrForbidden
	}
	return event, nil
}
