package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gin-rsvp/internal/model"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RsvpRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rsvp, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*model.Rsvp, error)
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Rsvp, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Rsvp, error)
	Update(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error)
	UpdateCheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	SumOccupiedSeats(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error)
}

type RsvpRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRsvpRepository(pool *pgxpool.Pool) RsvpRepository {
	return &RsvpRepositoryImpl{
		pool: pool,
	}
}

const rsvpColumns = `id, event_id, user_id, status, plus_one_count, dietary_preferences,
		       is_waitlisted, waitlist_position, rsvp_deadline_met, approval_status,
		       check_in_status, check_in_time, created_at, updated_at`

func scanRsvp(row pgx.Row) (*model.Rsvp, error) {
	var rsvp model.Rsvp
	err := row.Scan(
		&rsvp.ID,
		&rsvp.EventID,
		&rsvp.UserID,
		&rsvp.Status,
		&rsvp.PlusOneCount,
		&rsvp.DietaryPreferences,
		&rsvp.IsWaitlisted,
		&rsvp.WaitlistPosition,
		&rsvp.RsvpDeadlineMet,
		&rsvp.ApprovalStatus,
		&rsvp.CheckInStatus,
		&rsvp.CheckInTime,
		&rsvp.CreatedAt,
		&rsvp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRsvpNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RsvpRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error) {
	if rsvp.ID == uuid.Nil {
		rsvp.ID = uuid.New()
	}
	if rsvp.ApprovalStatus == "" {
		rsvp.ApprovalStatus = model.ApprovalStatusApproved
	}
	if rsvp.CheckInStatus == "" {
		rsvp.CheckInStatus = model.CheckInStatusNotCheckedIn
	}

	query := `
		INSERT INTO rsvps (
			id, event_id, user_id, status, plus_one_count, dietary_preferences,
			is_waitlisted, waitlist_position, rsvp_deadline_met, approval_status,
			check_in_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING ` + rsvpColumns

	now := rsvp.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	created, err := scanRsvp(conn(r.pool, tx).QueryRow(ctx, query,
		rsvp.ID, rsvp.EventID, rsvp.UserID, rsvp.Status, rsvp.PlusOneCount, rsvp.DietaryPreferences,
		rsvp.IsWaitlisted, rsvp.WaitlistPosition, rsvp.RsvpDeadlineMet, rsvp.ApprovalStatus,
		rsvp.CheckInStatus, now,
	))
	if err != nil {
		if isUniqueViolation(err, "rsvps_event_user_key") {
			return nil, apperrors.ErrRsvpExists
		}
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}

	return created, nil
}

func (r *RsvpRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE id = $1
	`
	return scanRsvp(r.pool.QueryRow(ctx, query, id))
}

func (r *RsvpRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE id = $1
		FOR UPDATE
	`
	return scanRsvp(conn(r.pool, tx).QueryRow(ctx, query, id))
}

func (r *RsvpRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*model.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE event_id = $1 AND user_id = $2
	`
	return scanRsvp(r.pool.QueryRow(ctx, query, eventID, userID))
}

func (r *RsvpRepositoryImpl) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*model.Rsvp, 0)

	for rows.Next() {
		rsvp, err := scanRsvp(rows)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rsvps, nil
}

// Update 寫回可變欄位 (含票券作廢後歸零的報到欄位)；報到本身走 UpdateCheckIn
func (r *RsvpRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error) {
	query := `
		UPDATE rsvps
		SET status = $1,
		    plus_one_count = $2,
		    dietary_preferences = $3,
		    is_waitlisted = $4,
		    waitlist_position = $5,
		    rsvp_deadline_met = $6,
		    approval_status = $7,
		    check_in_status = $8,
		    check_in_time = $9,
		    updated_at = $10
		WHERE id = $11
		RETURNING ` + rsvpColumns

	updatedAt := rsvp.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	checkInStatus := rsvp.CheckInStatus
	if checkInStatus == "" {
		checkInStatus = model.CheckInStatusNotCheckedIn
	}

	updated, err := scanRsvp(conn(r.pool, tx).QueryRow(ctx, query,
		rsvp.Status, rsvp.PlusOneCount, rsvp.DietaryPreferences,
		rsvp.IsWaitlisted, rsvp.WaitlistPosition, rsvp.RsvpDeadlineMet,
		rsvp.ApprovalStatus, checkInStatus, rsvp.CheckInTime, updatedAt, rsvp.ID,
	))
	if err != nil {
		if errors.Is(err, apperrors.ErrRsvpNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}

	return updated, nil
}

func (r *RsvpRepositoryImpl) UpdateCheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE rsvps
		SET check_in_status = $1, check_in_time = $2, updated_at = $2
		WHERE id = $3
	`

	result, err := conn(r.pool, tx).Exec(ctx, query, model.CheckInStatusCheckedIn, at, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRsvpNotFound
	}

	return nil
}

// Delete 實體刪除，票券與候補項目由外鍵 cascade 一併刪除
func (r *RsvpRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `DELETE FROM rsvps WHERE id = $1`

	result, err := conn(r.pool, tx).Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRsvpNotFound
	}

	return nil
}

func (r *RsvpRepositoryImpl) SumOccupiedSeats(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(1 + plus_one_count), 0)
		FROM rsvps
		WHERE event_id = $1
		  AND status = $2
		  AND is_waitlisted = FALSE
	`

	var occupied int
	err := conn(r.pool, tx).QueryRow(ctx, query, eventID, model.RsvpStatusGoing).Scan(&occupied)
	if err != nil {
		return 0, err
	}

	return occupied, nil
}
