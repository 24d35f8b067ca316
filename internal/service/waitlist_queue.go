package service

import (
	"context"
	"errors"
	"fmt"

	"go-gin-rsvp/internal/database"
	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/queue"
	"go-gin-rsvp/internal/repository"
	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/clock"
	"go-gin-rsvp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Promotion 一筆遞補成功的結果
type Promotion struct {
	Rsvp   *model.Rsvp
	Ticket *model.Ticket
}

// WaitlistQueue 每個活動一條 FIFO 候補佇列
//
// PromoteNext 與 ExpireAll 必須在持有該活動的 EventLocker 時呼叫。
type WaitlistQueue interface {
	// Enqueue position = 目前 waiting 最大 position + 1
	Enqueue(ctx context.Context, tx pgx.Tx, eventID, rsvpID, userID uuid.UUID) (int, error)
	// Withdraw 將 RSVP 的 waiting 項目標記 expired，沒有項目時不做事
	Withdraw(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) error
	// PromoteNext 依 position 逐筆遞補直到隊首放不下或佇列清空
	PromoteNext(ctx context.Context, eventID uuid.UUID) ([]Promotion, error)
	List(ctx context.Context, eventID uuid.UUID) ([]*model.WaitlistEntry, error)
	Count(ctx context.Context, eventID uuid.UUID) (int, error)
	ExpireAll(ctx context.Context, eventID uuid.UUID) (int, error)
}

type WaitlistQueueImpl struct {
	txm          database.TxManager
	eventRepo    repository.EventRepository
	rsvpRepo     repository.RsvpRepository
	waitlistRepo repository.WaitlistRepository
	ledger       CapacityLedger
	issuer       TicketIssuer
	outbox       *outbox
	clock        clock.Clock
}

func NewWaitlistQueue(
	txm database.TxManager,
	eventRepo repository.EventRepository,
	rsvpRepo repository.RsvpRepository,
	waitlistRepo repository.WaitlistRepository,
	ledger CapacityLedger,
	issuer TicketIssuer,
	notifications queue.NotificationQueue,
	clk clock.Clock,
) WaitlistQueue {
	return &WaitlistQueueImpl{
		txm:          txm,
		eventRepo:    eventRepo,
		rsvpRepo:     rsvpRepo,
		waitlistRepo: waitlistRepo,
		ledger:       ledger,
		issuer:       issuer,
		outbox:       &outbox{queue: notifications, clock: clk},
		clock:        clk,
	}
}

func (q *WaitlistQueueImpl) Enqueue(ctx context.Context, tx pgx.Tx, eventID, rsvpID, userID uuid.UUID) (int, error) {
	last, err := q.waitlistRepo.MaxWaitingPosition(ctx, tx, eventID)
	if err != nil {
		return 0, err
	}

	now := q.clock.Now()
	entry, err := q.waitlistRepo.Create(ctx, tx, &model.WaitlistEntry{
		EventID:   eventID,
		RsvpID:    rsvpID,
		UserID:    userID,
		Status:    model.WaitlistStatusWaiting,
		Position:  last + 1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, err
	}
	return entry.Position, nil
}

func (q *WaitlistQueueImpl) Withdraw(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) error {
	entry, err := q.waitlistRepo.FindWaitingByRsvpID(ctx, tx, rsvpID)
	if errors.Is(err, apperrors.ErrEntryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return q.waitlistRepo.UpdateStatus(ctx, tx, entry.ID, model.WaitlistStatusExpired, q.clock.Now())
}

func (q *WaitlistQueueImpl) PromoteNext(ctx context.Context, eventID uuid.UUID) ([]Promotion, error) {
	log := logger.FromContext(ctx, "service").With(zap.String("event_id", eventID.String()))
	promoted := make([]Promotion, 0)

	for {
		p, done, err := q.promoteHead(ctx, eventID)
		if err != nil {
			metrics.RsvpPromotionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			log.Error("waitlist promotion failed, entry stays waiting", zap.Error(err))
			return promoted, fmt.Errorf("%w: %w", apperrors.ErrPromotionFailed, err)
		}
		if done {
			return promoted, nil
		}
		if p == nil {
			// 隊首未通過審核，已移出名單
			continue
		}

		metrics.RsvpPromotionsTotal.WithLabelValues(metrics.OutcomePromoted).Inc()
		log.Info("waitlist entry promoted",
			zap.String("rsvp_id", p.Rsvp.ID.String()),
			zap.String("ticket_id", p.Ticket.ID.String()),
		)
		q.outbox.publish(ctx, model.NotificationWaitlistPromoted, p.Rsvp, p.Ticket)
		promoted = append(promoted, *p)
	}
}

// promoteHead 一筆一個交易：票券發不出來時整筆 rollback，項目維持 waiting 與原 position
func (q *WaitlistQueueImpl) promoteHead(ctx context.Context, eventID uuid.UUID) (*Promotion, bool, error) {
	var result *Promotion
	done := false

	err := q.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		event, err := q.eventRepo.FindByIDWithLock(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !event.Status.AcceptsRsvps() {
			done = true
			return nil
		}

		head, err := q.waitlistRepo.FindHeadWithLock(ctx, tx, eventID)
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			done = true
			return nil
		}
		if err != nil {
			return err
		}

		rsvp, err := q.rsvpRepo.FindByIDWithLock(ctx, tx, head.RsvpID)
		if err != nil {
			return err
		}

		now := q.clock.Now()
		if !rsvp.IsApproved() {
			// 未審核通過不能遞補；移出名單，換下一位
			if err := q.waitlistRepo.UpdateStatus(ctx, tx, head.ID, model.WaitlistStatusExpired, now); err != nil {
				return err
			}
			rsvp.Status = model.RsvpStatusNotGoing
			rsvp.IsWaitlisted = false
			rsvp.WaitlistPosition = nil
			rsvp.UpdatedAt = now
			_, err = q.rsvpRepo.Update(ctx, tx, rsvp)
			return err
		}

		fits, err := q.ledger.HasCapacity(ctx, tx, event, rsvp.PlusOneCount)
		if err != nil {
			return err
		}
		if !fits {
			// 隊首放不下就停，不跳過去找後面人數較少的
			metrics.RsvpPromotionsTotal.WithLabelValues(metrics.OutcomeBlocked).Inc()
			done = true
			return nil
		}

		if err := q.waitlistRepo.UpdateStatus(ctx, tx, head.ID, model.WaitlistStatusConfirmed, now); err != nil {
			return err
		}

		rsvp.IsWaitlisted = false
		rsvp.WaitlistPosition = nil
		rsvp.UpdatedAt = now
		rsvp, err = q.rsvpRepo.Update(ctx, tx, rsvp)
		if err != nil {
			return err
		}

		ticket, err := q.issuer.Issue(ctx, tx, rsvp.ID)
		if err != nil {
			return fmt.Errorf("issue ticket for rsvp %s: %w", rsvp.ID, err)
		}

		if err := q.ledger.EnsureWithinCapacity(ctx, tx, event); err != nil {
			return err
		}

		result = &Promotion{Rsvp: rsvp, Ticket: ticket}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, done, nil
}

func (q *WaitlistQueueImpl) List(ctx context.Context, eventID uuid.UUID) ([]*model.WaitlistEntry, error) {
	return q.waitlistRepo.ListWaiting(ctx, eventID)
}

func (q *WaitlistQueueImpl) Count(ctx context.Context, eventID uuid.UUID) (int, error) {
	return q.waitlistRepo.CountWaiting(ctx, eventID)
}

func (q *WaitlistQueueImpl) ExpireAll(ctx context.Context, eventID uuid.UUID) (int, error) {
	var expired int
	err := q.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := q.eventRepo.FindByIDWithLock(ctx, tx, eventID); err != nil {
			return err
		}
		n, err := q.waitlistRepo.ExpireWaiting(ctx, tx, eventID, q.clock.Now())
		if err != nil {
			return err
		}
		expired = n
		return nil
	})
	return expired, err
}
