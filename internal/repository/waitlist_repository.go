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

type WaitlistRepository interface {
	ListWaiting(ctx context.Context, eventID uuid.UUID) ([]*model.WaitlistEntry, error)
	CountWaiting(ctx context.Context, eventID uuid.UUID) (int, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error)
	MaxWaitingPosition(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error)
	// FindHeadWithLock 取出 position 最小的 waiting 項目並鎖住
	FindHeadWithLock(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (*model.WaitlistEntry, error)
	FindWaitingByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) (*model.WaitlistEntry, error)
	// UpdateStatus 條件更新：只有仍在 waiting 的項目會被轉換
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.WaitlistStatus, at time.Time) error
	ExpireWaiting(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, at time.Time) (int, error)
}

type WaitlistRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) WaitlistRepository {
	return &WaitlistRepositoryImpl{
		pool: pool,
	}
}

const waitlistColumns = `id, event_id, rsvp_id, user_id, status, position, created_at, updated_at`

func scanWaitlistEntry(row pgx.Row) (*model.WaitlistEntry, error) {
	var entry model.WaitlistEntry
	err := row.Scan(
		&entry.ID,
		&entry.EventID,
		&entry.RsvpID,
		&entry.UserID,
		&entry.Status,
		&entry.Position,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *WaitlistRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Status == "" {
		entry.Status = model.WaitlistStatusWaiting
	}

	now := entry.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	query := `
		INSERT INTO waitlist_entries (id, event_id, rsvp_id, user_id, status, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + waitlistColumns

	created, err := scanWaitlistEntry(conn(r.pool, tx).QueryRow(ctx, query,
		entry.ID, entry.EventID, entry.RsvpID, entry.UserID, entry.Status, entry.Position, now,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("waitlist position taken: %w", apperrors.ErrCapacityRace)
		}
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}

	return created, nil
}

func (r *WaitlistRepositoryImpl) ListWaiting(ctx context.Context, eventID uuid.UUID) ([]*model.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE event_id = $1 AND status = $2
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID, model.WaitlistStatusWaiting)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.WaitlistEntry, 0)

	for rows.Next() {
		entry, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *WaitlistRepositoryImpl) CountWaiting(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM waitlist_entries WHERE event_id = $1 AND status = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, eventID, model.WaitlistStatusWaiting).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WaitlistRepositoryImpl) MaxWaitingPosition(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX(position), 0)
		FROM waitlist_entries
		WHERE event_id = $1 AND status = $2
	`

	var position int
	if err := conn(r.pool, tx).QueryRow(ctx, query, eventID, model.WaitlistStatusWaiting).Scan(&position); err != nil {
		return 0, err
	}
	return position, nil
}

func (r *WaitlistRepositoryImpl) FindHeadWithLock(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (*model.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE event_id = $1 AND status = $2
		ORDER BY position ASC
		LIMIT 1
		FOR UPDATE
	`
	return scanWaitlistEntry(conn(r.pool, tx).QueryRow(ctx, query, eventID, model.WaitlistStatusWaiting))
}

func (r *WaitlistRepositoryImpl) FindWaitingByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) (*model.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE rsvp_id = $1 AND status = $2
		FOR UPDATE
	`
	return scanWaitlistEntry(conn(r.pool, tx).QueryRow(ctx, query, rsvpID, model.WaitlistStatusWaiting))
}

func (r *WaitlistRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.WaitlistStatus, at time.Time) error {
	if !model.WaitlistStatusWaiting.CanTransitionTo(status) {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE waitlist_entries
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := conn(r.pool, tx).Exec(ctx, query, status, at, id, model.WaitlistStatusWaiting)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEntryNotFound
	}

	return nil
}

func (r *WaitlistRepositoryImpl) ExpireWaiting(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, at time.Time) (int, error) {
	query := `
		UPDATE waitlist_entries
		SET status = $1, updated_at = $2
		WHERE event_id = $3 AND status = $4
	`

	result, err := conn(r.pool, tx).Exec(ctx, query, model.WaitlistStatusExpired, at, eventID, model.WaitlistStatusWaiting)
	if err != nil {
		return 0, err
	}

	return int(result.RowsAffected()), nil
}
