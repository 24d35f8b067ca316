package service

import (
	"context"
	"fmt"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/repository"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CapacityLedger 由 RSVP 資料即時計算座位使用量，本身不存資料
type CapacityLedger interface {
	// OccupiedSeats going 且未候補的 RSVP 的 (1 + plus_one_count) 總和
	OccupiedSeats(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error)
	// HasCapacity occupied + additionalSeats + 1 <= capacity，+1 是申請人本人
	HasCapacity(ctx context.Context, tx pgx.Tx, event *model.Event, additionalSeats int) (bool, error)
	// EnsureWithinCapacity 寫入後再確認一次，超出代表序列化失效
	EnsureWithinCapacity(ctx context.Context, tx pgx.Tx, event *model.Event) error
}

type CapacityLedgerImpl struct {
	rsvpRepo repository.RsvpRepository
}

func NewCapacityLedger(rsvpRepo repository.RsvpRepository) CapacityLedger {
	return &CapacityLedgerImpl{rsvpRepo: rsvpRepo}
}

// Fits 判斷公式獨立出來，申請與遞補共用
func Fits(capacity, occupied, additionalSeats int) bool {
	return occupied+additionalSeats+1 <= capacity
}

func (l *CapacityLedgerImpl) OccupiedSeats(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	return l.rsvpRepo.SumOccupiedSeats(ctx, tx, eventID)
}

func (l *CapacityLedgerImpl) HasCapacity(ctx context.Context, tx pgx.Tx, event *model.Event, additionalSeats int) (bool, error) {
	occupied, err := l.OccupiedSeats(ctx, tx, event.ID)
	if err != nil {
		return false, err
	}
	return Fits(event.Capacity, occupied, additionalSeats), nil
}

func (l *CapacityLedgerImpl) EnsureWithinCapacity(ctx context.Context, tx pgx.Tx, event *model.Event) error {
	occupied, err := l.OccupiedSeats(ctx, tx, event.ID)
	if err != nil {
		return err
	}
	if occupied > event.Capacity {
		return fmt.Errorf("event %s occupied %d > capacity %d: %w", event.ID, occupied, event.Capacity, apperrors.ErrCapacityRace)
	}
	return nil
}
