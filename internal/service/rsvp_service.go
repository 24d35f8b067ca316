package service

import (
	"context"
	"errors"
	"fmt"

	"go-gin-rsvp/internal/database"
	"go-gin-rsvp/internal/lock"
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

const DefaultMaxPlusOnes = 10

type RsvpService interface {
	// Submit 建立回覆；going 時依容量決定確認 (發票) 或候補
	Submit(ctx context.Context, caller model.Caller, eventID uuid.UUID, req model.SubmitRsvpRequest) (*model.SubmitResult, error)
	// Update 只有本人可以修改；釋出座位時會觸發遞補
	Update(ctx context.Context, caller model.Caller, rsvpID uuid.UUID, params model.UpdateRsvpParams) (*model.Rsvp, error)
	// Delete 只有本人可以撤回；回傳前完成遞補
	Delete(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) error
	Get(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) (*model.Rsvp, error)
	ListByEvent(ctx context.Context, caller model.Caller, eventID uuid.UUID) ([]*model.Rsvp, error)
	ListWaitlist(ctx context.Context, caller model.Caller, eventID uuid.UUID) ([]*model.WaitlistEntry, error)
	Occupancy(ctx context.Context, eventID uuid.UUID) (*model.Occupancy, error)
	// SetApproval 管理員審核；rejected 會收回座位或候補
	SetApproval(ctx context.Context, caller model.Caller, rsvpID uuid.UUID, status model.ApprovalStatus) (*model.Rsvp, error)
	// ExpireWaitlist 活動結束時讓所有 waiting 項目失效
	ExpireWaitlist(ctx context.Context, caller model.Caller, eventID uuid.UUID) (int, error)
}

type RsvpServiceImpl struct {
	txm          database.TxManager
	locker       lock.EventLocker
	eventRepo    repository.EventRepository
	rsvpRepo     repository.RsvpRepository
	ticketRepo   repository.TicketRepository
	ledger       CapacityLedger
	waitlist     WaitlistQueue
	issuer       TicketIssuer
	access       *EventAccess
	outbox       *outbox
	clock        clock.Clock
	maxPlusOnes  int
}

func NewRsvpService(
	txm database.TxManager,
	locker lock.EventLocker,
	eventRepo repository.EventRepository,
	rsvpRepo repository.RsvpRepository,
	ticketRepo repository.TicketRepository,
	ledger CapacityLedger,
	waitlist WaitlistQueue,
	issuer TicketIssuer,
	notifications queue.NotificationQueue,
	clk clock.Clock,
	maxPlusOnes int,
) RsvpService {
	if maxPlusOnes <= 0 {
		maxPlusOnes = DefaultMaxPlusOnes
	}
	return &RsvpServiceImpl{
		txm:         txm,
		locker:      locker,
		eventRepo:   eventRepo,
		rsvpRepo:    rsvpRepo,
		ticketRepo:  ticketRepo,
		ledger:      ledger,
		waitlist:    waitlist,
		issuer:      issuer,
		access:      NewEventAccess(eventRepo),
		outbox:      &outbox{queue: notifications, clock: clk},
		clock:       clk,
		maxPlusOnes: maxPlusOnes,
	}
}

// admission 入場判定結果
type admission struct {
	rsvp   *model.Rsvp
	ticket *model.Ticket
}

func (a admission) outcome() string {
	switch {
	case a.ticket != nil:
		return metrics.OutcomeConfirmed
	case a.rsvp.IsWaitlisted:
		return metrics.OutcomeWaitlisted
	default:
		return metrics.OutcomeDeclined
	}
}

func (s *RsvpServiceImpl) validate(status *model.RsvpStatus, plusOnes *int) error {
	if status != nil && !status.IsValid() {
		return fmt.Errorf("invalid rsvp status %q: %w", *status, apperrors.ErrInvalidInput)
	}
	if plusOnes != nil && (*plusOnes < 0 || *plusOnes > s.maxPlusOnes) {
		return fmt.Errorf("plus_one_count must be between 0 and %d: %w", s.maxPlusOnes, apperrors.ErrInvalidInput)
	}
	return nil
}

// withEventLock 同一活動的入場、釋出與遞補依序執行
func (s *RsvpServiceImpl) withEventLock(ctx context.Context, eventID uuid.UUID, fn func() error) error {
	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// checkGoingAllowed going 需要活動開放且未過截止時間
func checkGoingAllowed(event *model.Event, deadlineMet bool) error {
	if !event.Status.AcceptsRsvps() {
		return apperrors.ErrEventClosed
	}
	if !deadlineMet {
		return apperrors.ErrRsvpDeadlinePassed
	}
	return nil
}

// admit 對 going 的 RSVP 做容量判定後寫入：放得下就確認並發票，否則排入候補
// 判定必須在寫入前完成，寫入後這筆 RSVP 就會被算進佔用座位
func (s *RsvpServiceImpl) admit(ctx context.Context, tx pgx.Tx, event *model.Event, rsvp *model.Rsvp, create bool) (admission, error) {
	fits, err := s.ledger.HasCapacity(ctx, tx, event, rsvp.PlusOneCount)
	if err != nil {
		return admission{}, err
	}

	rsvp.IsWaitlisted = !fits
	rsvp.WaitlistPosition = nil
	rsvp.ResetCheckIn()
	if create {
		rsvp, err = s.rsvpRepo.Create(ctx, tx, rsvp)
	} else {
		rsvp, err = s.rsvpRepo.Update(ctx, tx, rsvp)
	}
	if err != nil {
		return admission{}, err
	}

	if fits {
		ticket, err := s.issuer.Issue(ctx, tx, rsvp.ID)
		if err != nil {
			return admission{}, err
		}
		if err := s.ledger.EnsureWithinCapacity(ctx, tx, event); err != nil {
			return admission{}, err
		}
		return admission{rsvp: rsvp, ticket: ticket}, nil
	}

	position, err := s.waitlist.Enqueue(ctx, tx, event.ID, rsvp.ID, rsvp.UserID)
	if err != nil {
		return admission{}, err
	}
	rsvp.WaitlistPosition = &position
	rsvp, err = s.rsvpRepo.Update(ctx, tx, rsvp)
	if err != nil {
		return admission{}, err
	}
	return admission{rsvp: rsvp}, nil
}

func (s *RsvpServiceImpl) Submit(ctx context.Context, caller model.Caller, eventID uuid.UUID, req model.SubmitRsvpRequest) (*model.SubmitResult, error) {
	if err := s.validate(&req.Status, &req.PlusOneCount); err != nil {
		return nil, err
	}

	// 先在鎖外確認活動存在，避免為不存在的活動排隊
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, "service").With(
		zap.String("operation", "SubmitRsvp"),
		zap.String("event_id", eventID.String()),
		zap.String("user_id", caller.UserID.String()),
	)

	var result admission
	err := s.withEventLock(ctx, eventID, func() error {
		if _, err := s.rsvpRepo.FindByEventAndUser(ctx, eventID, caller.UserID); err == nil {
			return apperrors.ErrRsvpExists
		} else if !errors.Is(err, apperrors.ErrRsvpNotFound) {
			return err
		}

		return s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
			event, err := s.eventRepo.FindByIDWithLock(ctx, tx, eventID)
			if err != nil {
				return err
			}

			now := s.clock.Now()
			deadlineMet := event.DeadlineMet(now)
			if req.Status == model.RsvpStatusGoing {
				if err := checkGoingAllowed(event, deadlineMet); err != nil {
					return err
				}
			}

			rsvp := &model.Rsvp{
				EventID:            eventID,
				UserID:             caller.UserID,
				Status:             req.Status,
				PlusOneCount:       req.PlusOneCount,
				DietaryPreferences: req.DietaryPreferences,
				RsvpDeadlineMet:    deadlineMet,
				ApprovalStatus:     model.ApprovalStatusApproved,
				CheckInStatus:      model.CheckInStatusNotCheckedIn,
				CreatedAt:          now,
				UpdatedAt:          now,
			}

			if req.Status == model.RsvpStatusGoing {
				result, err = s.admit(ctx, tx, event, rsvp, true)
				return err
			}

			rsvp, err = s.rsvpRepo.Create(ctx, tx, rsvp)
			if err != nil {
				return err
			}
			result = admission{rsvp: rsvp}
			return nil
		})
	})
	if err != nil {
		log.Warn("rsvp rejected", zap.Error(err), zap.Bool("retryable", apperrors.IsRetryable(err)))
		return nil, err
	}

	metrics.RsvpAdmissionsTotal.WithLabelValues(result.outcome()).Inc()
	log.Info("rsvp submitted",
		zap.String("rsvp_id", result.rsvp.ID.String()),
		zap.String("outcome", result.outcome()),
	)

	if result.ticket != nil {
		s.outbox.publish(ctx, model.NotificationRsvpConfirmed, result.rsvp, result.ticket)
	}

	return &model.SubmitResult{
		Rsvp:       result.rsvp,
		Ticket:     result.ticket,
		Waitlisted: result.rsvp.IsWaitlisted,
	}, nil
}

func (s *RsvpServiceImpl) Update(ctx context.Context, caller model.Caller, rsvpID uuid.UUID, params model.UpdateRsvpParams) (*model.Rsvp, error) {
	if params.IsEmpty() {
		return nil, fmt.Errorf("nothing to update: %w", apperrors.ErrInvalidInput)
	}
	if err := s.validate(params.Status, params.PlusOneCount); err != nil {
		return nil, err
	}

	existing, err := s.rsvpRepo.FindByID(ctx, rsvpID)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(caller.UserID) {
		return nil, apperrors.ErrForbidden
	}

	log := logger.FromContext(ctx, "service").With(
		zap.String("operation", "UpdateRsvp"),
		zap.String("rsvp_id", rsvpID.String()),
	)

	var result admission
	activated := false
	released := false

	err = s.withEventLock(ctx, existing.EventID, func() error {
		err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
			event, err := s.eventRepo.FindByIDWithLock(ctx, tx, existing.EventID)
			if err != nil {
				return err
			}
			cur, err := s.rsvpRepo.FindByIDWithLock(ctx, tx, rsvpID)
			if err != nil {
				return err
			}

			now := s.clock.Now()
			newStatus := cur.Status
			if params.Status != nil {
				newStatus = *params.Status
			}
			newPlusOnes := cur.PlusOneCount
			if params.PlusOneCount != nil {
				newPlusOnes = *params.PlusOneCount
			}
			if params.DietaryPreferences != nil {
				cur.DietaryPreferences = params.DietaryPreferences
			}
			cur.UpdatedAt = now

			switch {
			case newStatus == model.RsvpStatusGoing && cur.Status != model.RsvpStatusGoing:
				// 改成 going 視同重新申請
				if !cur.IsApproved() {
					return fmt.Errorf("rsvp approval is %s: %w", cur.ApprovalStatus, apperrors.ErrForbidden)
				}
				if err := checkGoingAllowed(event, event.DeadlineMet(now)); err != nil {
					return err
				}
				cur.Status = newStatus
				cur.PlusOneCount = newPlusOnes
				cur.RsvpDeadlineMet = true
				activated = true
				result, err = s.admit(ctx, tx, event, cur, false)
				return err

			case newStatus == model.RsvpStatusGoing && cur.IsConfirmed():
				delta := newPlusOnes - cur.PlusOneCount
				if delta > 0 {
					occupied, err := s.ledger.OccupiedSeats(ctx, tx, event.ID)
					if err != nil {
						return err
					}
					if occupied+delta > event.Capacity {
						return apperrors.ErrInsufficientCapacity
					}
				}
				released = delta < 0
				cur.PlusOneCount = newPlusOnes

			case newStatus == model.RsvpStatusGoing:
				// 仍在候補：人數變動可能讓隊首放得下
				released = newPlusOnes != cur.PlusOneCount
				cur.PlusOneCount = newPlusOnes

			case cur.Status == model.RsvpStatusGoing:
				// going -> maybe / not_going：收回票券或候補
				if cur.IsWaitlisted {
					if err := s.waitlist.Withdraw(ctx, tx, cur.ID); err != nil {
						return err
					}
				} else if err := s.ticketRepo.DeleteByRsvpID(ctx, tx, cur.ID); err != nil {
					return err
				}
				cur.Status = newStatus
				cur.PlusOneCount = newPlusOnes
				cur.IsWaitlisted = false
				cur.WaitlistPosition = nil
				cur.ResetCheckIn()
				released = true

			default:
				cur.Status = newStatus
				cur.PlusOneCount = newPlusOnes
			}

			cur, err = s.rsvpRepo.Update(ctx, tx, cur)
			if err != nil {
				return err
			}
			result = admission{rsvp: cur}
			return nil
		})
		if err != nil || !released {
			return err
		}
		_, err = s.waitlist.PromoteNext(ctx, existing.EventID)
		return err
	})
	if err != nil {
		log.Warn("rsvp update failed", zap.Error(err))
		if result.rsvp != nil && errors.Is(err, apperrors.ErrPromotionFailed) {
			// 本人的修改已 commit，只有遞補失敗
			return result.rsvp, err
		}
		return nil, err
	}

	if activated {
		metrics.RsvpAdmissionsTotal.WithLabelValues(result.outcome()).Inc()
		if result.ticket != nil {
			s.outbox.publish(ctx, model.NotificationRsvpConfirmed, result.rsvp, result.ticket)
		}
	}

	return result.rsvp, nil
}

func (s *RsvpServiceImpl) Delete(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) error {
	existing, err := s.rsvpRepo.FindByID(ctx, rsvpID)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(caller.UserID) {
		return apperrors.ErrForbidden
	}

	log := logger.FromContext(ctx, "service").With(
		zap.String("operation", "DeleteRsvp"),
		zap.String("rsvp_id", rsvpID.String()),
		zap.String("event_id", existing.EventID.String()),
	)

	err = s.withEventLock(ctx, existing.EventID, func() error {
		var release bool
		err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
			cur, err := s.rsvpRepo.FindByIDWithLock(ctx, tx, rsvpID)
			if err != nil {
				return err
			}
			release = cur.Status == model.RsvpStatusGoing

			if err := s.ticketRepo.DeleteByRsvpID(ctx, tx, cur.ID); err != nil {
				return err
			}
			if err := s.waitlist.Withdraw(ctx, tx, cur.ID); err != nil {
				return err
			}
			return s.rsvpRepo.Delete(ctx, tx, cur.ID)
		})
		if err != nil || !release {
			return err
		}

		promoted, err := s.waitlist.PromoteNext(ctx, existing.EventID)
		if len(promoted) > 0 {
			log.Info("seats released to waitlist", zap.Int("promoted", len(promoted)))
		}
		return err
	})
	if err != nil {
		log.Warn("rsvp delete failed", zap.Error(err))
		return err
	}

	return nil
}

func (s *RsvpServiceImpl) Get(ctx context.Context, caller model.Caller, rsvpID uuid.UUID) (*model.Rsvp, error) {
	rsvp, err := s.rsvpRepo.FindByID(ctx, rsvpID)
	if err != nil {
		return nil, err
	}
	if rsvp.IsOwnedBy(caller.UserID) {
		return rsvp, nil
	}
	if _, err := s.access.RequireManager(ctx, caller, rsvp.EventID); err != nil {
		return nil, err
	}
	return rsvp, nil
}

func (s *RsvpServiceImpl) ListByEvent(ctx context.Context, caller model.Caller, eventID uuid.UUID) ([]*model.Rsvp, error) {
	if _, err := s.access.RequireManager(ctx, caller, eventID); err != nil {
		return nil, err
	}
	return s.rsvpRepo.ListByEventID(ctx, eventID)
}

func (s *RsvpServiceImpl) ListWaitlist(ctx context.Context, caller model.Caller, eventID uuid.UUID) ([]*model.WaitlistEntry, error) {
	if _, err := s.access.RequireManager(ctx, caller, eventID); err != nil {
		return nil, err
	}
	return s.waitlist.List(ctx, eventID)
}

func (s *RsvpServiceImpl) Occupancy(ctx context.Context, eventID uuid.UUID) (*model.Occupancy, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	occupied, err := s.ledger.OccupiedSeats(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}
	waitlisted, err := s.waitlist.Count(ctx, eventID)
	if err != nil {
		return nil, err
	}

	available := event.Capacity - occupied
	if available < 0 {
		available = 0
	}
	return &model.Occupancy{
		EventID:    eventID,
		Capacity:   event.Capacity,
		Occupied:   occupied,
		Available:  available,
		Waitlisted: waitlisted,
	}, nil
}

func (s *RsvpServiceImpl) SetApproval(ctx context.Context, caller model.Caller, rsvpID uuid.UUID, status model.ApprovalStatus) (*model.Rsvp, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid approval status %q: %w", status, apperrors.ErrInvalidInput)
	}

	existing, err := s.rsvpRepo.FindByID(ctx, rsvpID)
	if err != nil {
		return nil, err
	}
	if existing.ApprovalStatus == status {
		return existing, nil
	}
	if !existing.ApprovalStatus.CanTransitionTo(status) {
		return nil, fmt.Errorf("approval %s -> %s: %w", existing.ApprovalStatus, status, apperrors.ErrConflict)
	}

	log := logger.FromContext(ctx, "service").With(
		zap.String("operation", "SetApproval"),
		zap.String("rsvp_id", rsvpID.String()),
		zap.String("approval_status", string(status)),
	)

	var updated *model.Rsvp
	err = s.withEventLock(ctx, existing.EventID, func() error {
		released := false
		err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
			cur, err := s.rsvpRepo.FindByIDWithLock(ctx, tx, rsvpID)
			if err != nil {
				return err
			}

			if status == model.ApprovalStatusRejected && cur.Status == model.RsvpStatusGoing {
				if cur.IsWaitlisted {
					if err := s.waitlist.Withdraw(ctx, tx, cur.ID); err != nil {
						return err
					}
				} else if err := s.ticketRepo.DeleteByRsvpID(ctx, tx, cur.ID); err != nil {
					return err
				}
				cur.Status = model.RsvpStatusNotGoing
				cur.IsWaitlisted = false
				cur.WaitlistPosition = nil
				cur.ResetCheckIn()
				released = true
			}

			cur.ApprovalStatus = status
			cur.UpdatedAt = s.clock.Now()
			updated, err = s.rsvpRepo.Update(ctx, tx, cur)
			return err
		})
		if err != nil || !released {
			return err
		}
		_, err = s.waitlist.PromoteNext(ctx, existing.EventID)
		return err
	})
	if err != nil {
		log.Warn("set approval failed", zap.Error(err))
		if updated != nil && errors.Is(err, apperrors.ErrPromotionFailed) {
			return updated, err
		}
		return nil, err
	}

	if status == model.ApprovalStatusRejected {
		metrics.RsvpAdmissionsTotal.WithLabelValues(metrics.OutcomeDeclined).Inc()
	}
	log.Info("approval updated")
	return updated, nil
}

func (s *RsvpServiceImpl) ExpireWaitlist(ctx context.Context, caller model.Caller, eventID uuid.UUID) (int, error) {
	if _, err := s.access.RequireManager(ctx, caller, eventID); err != nil {
		return 0, err
	}

	var expired int
	err := s.withEventLock(ctx, eventID, func() error {
		n, err := s.waitlist.ExpireAll(ctx, eventID)
		expired = n
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx, "service").Info("waitlist expired",
		zap.String("event_id", eventID.String()),
		zap.Int("expired", expired),
	)
	return expired, nil
}
