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

type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	FindByRsvpID(ctx context.Context, rsvpID uuid.UUID) (*model.Ticket, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (total int, checkedIn int, err error)

	// Transaction methods
	// Create 同一 RSVP 已有票券時回傳既有票券
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Ticket, error)
	FindByRsvpAndEvent(ctx context.Context, tx pgx.Tx, rsvpID, eventID uuid.UUID) (*model.Ticket, error)
	// MarkCheckedIn 條件更新，已報到時回傳 *apperrors.AlreadyCheckedInError
	MarkCheckedIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (*model.Ticket, error)
	DeleteByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, rsvp_id, user_id, event_id, qr_code, check_in_status, check_in_time, created_at, updated_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.RsvpID,
		&ticket.UserID,
		&ticket.EventID,
		&ticket.QRCode,
		&ticket.CheckInStatus,
		&ticket.CheckInTime,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}

	now := ticket.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	query := `
		INSERT INTO tickets (id, rsvp_id, user_id, event_id, qr_code, check_in_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (rsvp_id) DO NOTHING
		RETURNING ` + ticketColumns

	db := conn(r.pool, tx)
	created, err := scanTicket(db.QueryRow(ctx, query,
		ticket.ID, ticket.RsvpID, ticket.UserID, ticket.EventID, ticket.QRCode,
		model.CheckInStatusNotCheckedIn, now,
	))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	// ON CONFLICT 沒有回傳列：票券已存在
	existing, err := scanTicket(db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE rsvp_id = $1`, ticket.RsvpID))
	if err != nil {
		return nil, fmt.Errorf("failed to load existing ticket: %w", err)
	}
	return existing, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1
	`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *TicketRepositoryImpl) FindByRsvpID(ctx context.Context, rsvpID uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE rsvp_id = $1
	`
	return scanTicket(r.pool.QueryRow(ctx, query, rsvpID))
}

func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1
		FOR UPDATE
	`
	return scanTicket(conn(r.pool, tx).QueryRow(ctx, query, id))
}

func (r *TicketRepositoryImpl) FindByRsvpAndEvent(ctx context.Context, tx pgx.Tx, rsvpID, eventID uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE rsvp_id = $1 AND event_id = $2
		FOR UPDATE
	`
	return scanTicket(conn(r.pool, tx).QueryRow(ctx, query, rsvpID, eventID))
}

func (r *TicketRepositoryImpl) MarkCheckedIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET check_in_status = $1, check_in_time = $2, updated_at = $2
		WHERE id = $3 AND check_in_status = $4
		RETURNING ` + ticketColumns

	db := conn(r.pool, tx)
	ticket, err := scanTicket(db.QueryRow(ctx, query,
		model.CheckInStatusCheckedIn, at, id, model.CheckInStatusNotCheckedIn,
	))
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}

	// 沒更新到：票券不存在或已報到
	current, err := scanTicket(db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if current.IsCheckedIn() && current.CheckInTime != nil {
		return nil, &apperrors.AlreadyCheckedInError{TicketID: current.ID, CheckedInAt: *current.CheckInTime}
	}
	return nil, apperrors.ErrTicketNotFound
}

func (r *TicketRepositoryImpl) DeleteByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) error {
	query := `DELETE FROM tickets WHERE rsvp_id = $1`

	_, err := conn(r.pool, tx).Exec(ctx, query, rsvpID)
	return err
}

func (r *TicketRepositoryImpl) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, int, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE check_in_status = $2)
		FROM tickets
		WHERE event_id = $1
	`

	var total, checkedIn int
	err := r.pool.QueryRow(ctx, query, eventID, model.CheckInStatusCheckedIn).Scan(&total, &checkedIn)
	if err != nil {
		return 0, 0, err
	}
	return total, checkedIn, nil
}
