package service

import (
	"context"
	"errors"
	"testing"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlist_PositionsIncrease(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	for want := 1; want <= 3; want++ {
		r := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
		require.True(t, r.Waitlisted)
		assert.Equal(t, want, *r.Rsvp.WaitlistPosition)
	}

	entries, err := f.waitlist.List(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestWaitlist_PromotesInOrderUntilFull(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(2)
	ctx := context.Background()

	alice := testutil.Attendee()
	bob := testutil.Attendee()
	a := f.submit(t, alice, event.ID, model.RsvpStatusGoing, 0)
	b := f.submit(t, bob, event.ID, model.RsvpStatusGoing, 0)
	w1 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	w2 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	w3 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	require.NoError(t, f.rsvps.Delete(ctx, alice, a.Rsvp.ID))
	require.NoError(t, f.rsvps.Delete(ctx, bob, b.Rsvp.ID))

	for _, r := range []*model.SubmitResult{w1, w2} {
		rsvp, err := f.store.Rsvps.FindByID(ctx, r.Rsvp.ID)
		require.NoError(t, err)
		assert.True(t, rsvp.IsConfirmed())
	}

	assert.Equal(t, map[uuid.UUID]int{w3.Rsvp.ID: 3}, f.waitingPositions(t, event.ID))
	assert.Equal(t, 2, f.occupied(t, event.ID))
}

func TestWaitlist_HeadThatDoesNotFitBlocksTheLine(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(2)
	ctx := context.Background()

	alice := testutil.Attendee()
	a := f.submit(t, alice, event.ID, model.RsvpStatusGoing, 0)
	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	big := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 1)
	small := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	require.True(t, big.Waitlisted)
	require.True(t, small.Waitlisted)

	require.NoError(t, f.rsvps.Delete(ctx, alice, a.Rsvp.ID))

	// 隊首需要 2 個座位但只空出 1 個，後面的 small 也不能插隊
	positions := f.waitingPositions(t, event.ID)
	assert.Equal(t, 1, positions[big.Rsvp.ID])
	assert.Equal(t, 2, positions[small.Rsvp.ID])
	assert.Equal(t, 1, f.occupied(t, event.ID))

	rsvp, err := f.store.Rsvps.FindByID(ctx, small.Rsvp.ID)
	require.NoError(t, err)
	assert.True(t, rsvp.IsWaitlisted)
}

func TestWaitlist_PromotionRollsBackWhenIssuanceFails(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	ctx := context.Background()

	alice := testutil.Attendee()
	a := f.submit(t, alice, event.ID, model.RsvpStatusGoing, 0)
	w1 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	w2 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	f.store.TicketCreateHook = func(*model.Ticket) error {
		return errors.New("ticket store unavailable")
	}

	err := f.rsvps.Delete(ctx, alice, a.Rsvp.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPromotionFailed)

	// 刪除本身已 commit
	_, err = f.store.Rsvps.FindByID(ctx, a.Rsvp.ID)
	assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)

	// 隊首維持 waiting 與原 position
	positions := f.waitingPositions(t, event.ID)
	assert.Equal(t, 1, positions[w1.Rsvp.ID])
	assert.Equal(t, 2, positions[w2.Rsvp.ID])

	rsvp, err := f.store.Rsvps.FindByID(ctx, w1.Rsvp.ID)
	require.NoError(t, err)
	assert.True(t, rsvp.IsWaitlisted)
	require.NotNil(t, rsvp.WaitlistPosition)
	assert.Equal(t, 1, *rsvp.WaitlistPosition)
	assert.Zero(t, f.occupied(t, event.ID))

	// 恢復後重試
	f.store.TicketCreateHook = nil
	promoted, err := f.waitlist.PromoteNext(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.Equal(t, w1.Rsvp.ID, promoted[0].Rsvp.ID)
	assert.NotNil(t, promoted[0].Ticket)
	assert.Equal(t, 1, f.occupied(t, event.ID))
}

func TestWaitlist_UnapprovedHeadIsDropped(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	ctx := context.Background()

	alice := testutil.Attendee()
	a := f.submit(t, alice, event.ID, model.RsvpStatusGoing, 0)
	w1 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	w2 := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	pending := *w1.Rsvp
	pending.ApprovalStatus = model.ApprovalStatusPending
	_, err := f.store.Rsvps.Update(ctx, nil, &pending)
	require.NoError(t, err)

	require.NoError(t, f.rsvps.Delete(ctx, alice, a.Rsvp.ID))

	skipped, err := f.store.Rsvps.FindByID(ctx, w1.Rsvp.ID)
	require.NoError(t, err)
	assert.False(t, skipped.IsWaitlisted)
	assert.Equal(t, model.RsvpStatusNotGoing, skipped.Status)
	_, err = f.store.Tickets.FindByRsvpID(ctx, w1.Rsvp.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	next, err := f.store.Rsvps.FindByID(ctx, w2.Rsvp.ID)
	require.NoError(t, err)
	assert.True(t, next.IsConfirmed())
	assert.Equal(t, 1, f.occupied(t, event.ID))
	assert.Empty(t, f.waitingPositions(t, event.ID))
}

func TestWaitlist_PromoteNextStopsForClosedEvent(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	ctx := context.Background()

	alice := testutil.Attendee()
	a := f.submit(t, alice, event.ID, model.RsvpStatusGoing, 0)
	w := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	f.store.SetEventStatus(event.ID, model.EventStatusCompleted)
	require.NoError(t, f.rsvps.Delete(ctx, alice, a.Rsvp.ID))

	rsvp, err := f.store.Rsvps.FindByID(ctx, w.Rsvp.ID)
	require.NoError(t, err)
	assert.True(t, rsvp.IsWaitlisted)
}

func TestWaitlist_PromoteNextOnEmptyQueue(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)

	promoted, err := f.waitlist.PromoteNext(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Empty(t, promoted)
}

func TestWaitlist_WithdrawWithoutEntryIsNoop(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	r := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)

	err := f.store.WithinTx(context.Background(), func(tx pgx.Tx) error {
		return f.waitlist.Withdraw(context.Background(), tx, r.Rsvp.ID)
	})
	assert.NoError(t, err)
}
