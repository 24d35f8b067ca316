package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go-gin-rsvp/internal/database"
	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/qrcode"
	"go-gin-rsvp/internal/repository"
	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/clock"
	"go-gin-rsvp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CheckInService interface {
	// CheckInByID 重複報到回傳 *apperrors.AlreadyCheckedInError
	CheckInByID(ctx context.Context, caller model.Caller, ticketID uuid.UUID) (*model.Ticket, error)
	// CheckInByQR 掃描失敗以結果回報；eventID = uuid.Nil 時不限定活動
	CheckInByQR(ctx context.Context, caller model.Caller, eventID uuid.UUID, payload string) (*model.CheckInResult, error)
	EventStats(ctx context.Context, caller model.Caller, eventID uuid.UUID) (*model.CheckInStats, error)
	GetTicket(ctx context.Context, caller model.Caller, ticketID uuid.UUID) (*model.Ticket, error)
	GetTicketByRsvp(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) (*model.Ticket, error)
}

type CheckInServiceImpl struct {
	txm        database.TxManager
	rsvpRepo   repository.RsvpRepository
	ticketRepo repository.TicketRepository
	access     *EventAccess
	codec      *qrcode.Codec
	clock      clock.Clock
}

func NewCheckInService(
	txm database.TxManager,
	eventRepo repository.EventRepository,
	rsvpRepo repository.RsvpRepository,
	ticketRepo repository.TicketRepository,
	codec *qrcode.Codec,
	clk clock.Clock,
) CheckInService {
	return &CheckInServiceImpl{
		txm:        txm,
		rsvpRepo:   rsvpRepo,
		ticketRepo: ticketRepo,
		access:     NewEventAccess(eventRepo),
		codec:      codec,
		clock:      clk,
	}
}

// markCheckedIn 票券與 RSVP 的報到欄位在同一個交易內更新
func (s *CheckInServiceImpl) markCheckedIn(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	now := s.clock.Now()
	updated, err := s.ticketRepo.MarkCheckedIn(ctx, tx, ticket.ID, now)
	if err != nil {
		return nil, err
	}
	if err := s.rsvpRepo.UpdateCheckIn(ctx, tx, ticket.RsvpID, now); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CheckInServiceImpl) CheckInByID(ctx context.Context, caller model.Caller, ticketID uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		}
		return nil, err
	}
	if _, err := s.access.RequireManager(ctx, caller, ticket.EventID); err != nil {
		return nil, err
	}

	var checkedIn *model.Ticket
	err = s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.ticketRepo.FindByIDWithLock(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		checkedIn, err = s.markCheckedIn(ctx, tx, locked)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyCheckedIn):
			metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		case errors.Is(err, apperrors.ErrNotFound):
			metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		}
		return nil, err
	}

	metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.FromContext(ctx, "service").Info("ticket checked in",
		zap.String("ticket_id", ticketID.String()),
		zap.String("event_id", checkedIn.EventID.String()),
	)
	return checkedIn, nil
}

func (s *CheckInServiceImpl) CheckInByQR(ctx context.Context, caller model.Caller, eventID uuid.UUID, payload string) (*model.CheckInResult, error) {
	if eventID != uuid.Nil {
		if _, err := s.access.RequireManager(ctx, caller, eventID); err != nil {
			return nil, err
		}
	}

	log := logger.FromContext(ctx, "service").With(zap.String("operation", "CheckInByQR"))

	decoded, err := s.codec.Decode(payload)
	if err != nil {
		metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		reason := model.CheckInReasonInvalidFormat
		if errors.Is(err, qrcode.ErrInvalidSignature) {
			reason = model.CheckInReasonInvalidSignature
		}
		log.Info("qr rejected", zap.String("reason", reason))
		return &model.CheckInResult{Success: false, Reason: reason}, nil
	}

	notFound := &model.CheckInResult{Success: false, Reason: model.CheckInReasonNotFound}
	if eventID != uuid.Nil && decoded.EventID != eventID {
		metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return notFound, nil
	}
	if eventID == uuid.Nil {
		if _, err := s.access.RequireManager(ctx, caller, decoded.EventID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
				return notFound, nil
			}
			return nil, err
		}
	}

	var checkedIn *model.Ticket
	err = s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		ticket, err := s.ticketRepo.FindByRsvpAndEvent(ctx, tx, decoded.RsvpID, decoded.EventID)
		if err != nil {
			return err
		}
		if ticket.UserID != decoded.UserID {
			return apperrors.ErrTicketNotFound
		}
		checkedIn, err = s.markCheckedIn(ctx, tx, ticket)
		return err
	})

	var already *apperrors.AlreadyCheckedInError
	switch {
	case err == nil:
		metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.Info("ticket checked in", zap.String("ticket_id", checkedIn.ID.String()))
		return &model.CheckInResult{
			Success:     true,
			Ticket:      checkedIn,
			CheckedInAt: checkedIn.CheckInTime,
		}, nil
	case errors.As(err, &already):
		metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		at := already.CheckedInAt.UTC()
		return &model.CheckInResult{
			Success:     false,
			Reason:      model.CheckInReasonAlreadyCheckedIn,
			Message:     fmt.Sprintf("checked in at %s", at.Format(time.RFC3339)),
			CheckedInAt: &at,
		}, nil
	case errors.Is(err, apperrors.ErrNotFound):
		metrics.TicketCheckInsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return notFound, nil
	default:
		log.Error("qr check-in failed", zap.Error(err))
		return nil, err
	}
}

func (s *CheckInServiceImpl) EventStats(ctx context.Context, caller model.Caller, eventID uuid.UUID) (*model.CheckInStats, error) {
	if _, err := s.access.RequireManager(ctx, caller, eventID); err != nil {
		return nil, err
	}

	total, checkedIn, err := s.ticketRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &model.CheckInStats{
		EventID:      eventID,
		TotalTickets: total,
		CheckedIn:    checkedIn,
		NotCheckedIn: total - checkedIn,
		CheckInRate:  checkInRate(total, checkedIn),
	}, nil
}

// checkInRate 百分比，取到小數第二位；沒有票券時為 0
func checkInRate(total, checkedIn int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(checkedIn)/float64(total)*100*100) / 100
}

func (s *CheckInServiceImpl) GetTicket(ctx context.Context, caller model.Caller, ticketID uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.authorizeTicket(ctx, caller, ticket)
}

func (s *CheckInServiceImpl) GetTicketByRsvp(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByRsvpID(ctx, rsvpID)
	if err != nil {
		return nil, err
	}
	return s.authorizeTicket(ctx, caller, ticket)
}

// authorizeTicket 票券本人、主辦人或管理員可以查看
func (s *CheckInServiceImpl) authorizeTicket(ctx context.Context, caller model.Caller, ticket *model.Ticket) (*model.Ticket, error) {
	if ticket.UserID == caller.UserID {
		return ticket, nil
	}
	if _, err := s.access.RequireManager(ctx, caller, ticket.EventID); err != nil {
		return nil, err
	}
	return ticket, nil
}
