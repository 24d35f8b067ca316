package repository_test

import (
	"context"
	"testing"
	"time"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/repository"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRsvpRepository_Create(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewRsvpRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 10, nil)

	t.Run("Success", func(t *testing.T) {
		rsvp := newRsvp(event.ID, model.RsvpStatusGoing, 2)
		rsvp.DietaryPreferences = testutil.Ptr("vegan")

		created, err := repo.Create(ctx, nil, rsvp)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, rsvp.UserID, created.UserID)
		assert.Equal(t, 2, created.PlusOneCount)
		assert.Equal(t, model.ApprovalStatusApproved, created.ApprovalStatus)
		assert.Equal(t, model.CheckInStatusNotCheckedIn, created.CheckInStatus)
		require.NotNil(t, created.DietaryPreferences)
		assert.Equal(t, "vegan", *created.DietaryPreferences)
		assert.True(t, testutil.BaseTime.Equal(created.CreatedAt))
	})

	t.Run("Duplicate user", func(t *testing.T) {
		first := newRsvp(event.ID, model.RsvpStatusMaybe, 0)
		_, err := repo.Create(ctx, nil, first)
		require.NoError(t, err)

		dup := newRsvp(event.ID, model.RsvpStatusGoing, 0)
		dup.UserID = first.UserID
		_, err = repo.Create(ctx, nil, dup)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrRsvpExists)
	})
}

func TestRsvpRepository_Find(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewRsvpRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 10, nil)

	created, err := repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 0))
	require.NoError(t, err)

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
	})

	t.Run("FindByEventAndUser", func(t *testing.T) {
		found, err := repo.FindByEventAndUser(ctx, event.ID, created.UserID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = repo.FindByEventAndUser(ctx, event.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
	})

	t.Run("ListByEventID ordered by creation", func(t *testing.T) {
		later := newRsvp(event.ID, model.RsvpStatusMaybe, 0)
		later.CreatedAt = testutil.BaseTime.Add(time.Minute)
		_, err := repo.Create(ctx, nil, later)
		require.NoError(t, err)

		rsvps, err := repo.ListByEventID(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, rsvps, 2)
		assert.Equal(t, created.ID, rsvps[0].ID)
		assert.Equal(t, later.ID, rsvps[1].ID)

		empty, err := repo.ListByEventID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestRsvpRepository_Update(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewRsvpRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 10, nil)

	created, err := repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 0))
	require.NoError(t, err)

	withTx(t, pool, func(tx pgx.Tx) {
		locked, err := repo.FindByIDWithLock(ctx, tx, created.ID)
		require.NoError(t, err)

		locked.IsWaitlisted = true
		locked.WaitlistPosition = testutil.Ptr(3)
		locked.PlusOneCount = 1
		locked.UpdatedAt = testutil.BaseTime.Add(time.Hour)

		updated, err := repo.Update(ctx, tx, locked)
		require.NoError(t, err)
		assert.True(t, updated.IsWaitlisted)
		require.NotNil(t, updated.WaitlistPosition)
		assert.Equal(t, 3, *updated.WaitlistPosition)
		assert.Equal(t, 1, updated.PlusOneCount)
	})

	missing := newRsvp(event.ID, model.RsvpStatusGoing, 0)
	missing.ID = uuid.New()
	_, err = repo.Update(ctx, nil, missing)
	assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
}

func TestRsvpRepository_UpdateCheckIn(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewRsvpRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 10, nil)

	created, err := repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 0))
	require.NoError(t, err)

	at := testutil.BaseTime.Add(2 * time.Hour)
	require.NoError(t, repo.UpdateCheckIn(ctx, nil, created.ID, at))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusCheckedIn, found.CheckInStatus)
	require.NotNil(t, found.CheckInTime)
	assert.True(t, at.Equal(*found.CheckInTime))

	assert.ErrorIs(t, repo.UpdateCheckIn(ctx, nil, uuid.New(), at), apperrors.ErrRsvpNotFound)

	// 票券作廢後 Update 把報到欄位寫回初始值
	found.Status = model.RsvpStatusNotGoing
	found.ResetCheckIn()
	reset, err := repo.Update(ctx, nil, found)
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusNotCheckedIn, reset.CheckInStatus)
	assert.Nil(t, reset.CheckInTime)
}

func TestRsvpRepository_SumOccupiedSeats(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewRsvpRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 20, nil)

	occupied, err := repo.SumOccupiedSeats(ctx, nil, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, occupied)

	// 只計算 going 且未候補的回覆：1 + plus ones
	_, err = repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 2))
	require.NoError(t, err)
	_, err = repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 0))
	require.NoError(t, err)
	_, err = repo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusMaybe, 4))
	require.NoError(t, err)
	waitlisted := newRsvp(event.ID, model.RsvpStatusGoing, 1)
	waitlisted.IsWaitlisted = true
	_, err = repo.Create(ctx, nil, waitlisted)
	require.NoError(t, err)

	occupied, err = repo.SumOccupiedSeats(ctx, nil, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, occupied)
}

func TestRsvpRepository_DeleteCascades(t *testing.T) {
	pool := getTestDB(t)
	rsvpRepo := repository.NewRsvpRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	ctx := context.Background()
	event := createTestEvent(t, pool, 10, nil)

	created, err := rsvpRepo.Create(ctx, nil, newRsvp(event.ID, model.RsvpStatusGoing, 0))
	require.NoError(t, err)
	ticket, err := ticketRepo.Create(ctx, nil, &model.Ticket{
		RsvpID: created.ID, UserID: created.UserID, EventID: event.ID, QRCode: "qr",
	})
	require.NoError(t, err)

	require.NoError(t, rsvpRepo.Delete(ctx, nil, created.ID))

	_, err = rsvpRepo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
	_, err = ticketRepo.FindByID(ctx, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	assert.ErrorIs(t, rsvpRepo.Delete(ctx, nil, created.ID), apperrors.ErrRsvpNotFound)
}
