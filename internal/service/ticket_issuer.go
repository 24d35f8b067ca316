package service

import (
	"context"
	"fmt"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/qrcode"
	"go-gin-rsvp/internal/repository"
	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TicketIssuer 每個已確認的 RSVP 只發一張票
type TicketIssuer interface {
	// Issue 已有票券時原樣回傳
	Issue(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) (*model.Ticket, error)
}

type TicketIssuerImpl struct {
	rsvpRepo   repository.RsvpRepository
	ticketRepo repository.TicketRepository
	codec      *qrcode.Codec
	clock      clock.Clock
}

func NewTicketIssuer(
	rsvpRepo repository.RsvpRepository,
	ticketRepo repository.TicketRepository,
	codec *qrcode.Codec,
	clk clock.Clock,
) TicketIssuer {
	return &TicketIssuerImpl{
		rsvpRepo:   rsvpRepo,
		ticketRepo: ticketRepo,
		codec:      codec,
		clock:      clk,
	}
}

func (i *TicketIssuerImpl) Issue(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) (*model.Ticket, error) {
	rsvp, err := i.rsvpRepo.FindByIDWithLock(ctx, tx, rsvpID)
	if err != nil {
		return nil, err
	}
	if !rsvp.IsConfirmed() {
		return nil, fmt.Errorf("rsvp %s is not a confirmed going rsvp: %w", rsvpID, apperrors.ErrConflict)
	}

	now := i.clock.Now()
	payload, err := qrcode.NewPayload(rsvp.ID, rsvp.UserID, rsvp.EventID, now)
	if err != nil {
		return nil, err
	}
	qr, err := i.codec.Encode(payload)
	if err != nil {
		return nil, err
	}

	// 重複發票由 (rsvp_id) 唯一約束擋下，Create 會回傳既有票券
	return i.ticketRepo.Create(ctx, tx, &model.Ticket{
		RsvpID:        rsvp.ID,
		UserID:        rsvp.UserID,
		EventID:       rsvp.EventID,
		QRCode:        qr,
		CheckInStatus: model.CheckInStatusNotCheckedIn,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}
