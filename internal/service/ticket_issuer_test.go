package service

import (
	"context"
	"testing"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) issue(rsvpID uuid.UUID) (*model.Ticket, error) {
	var ticket *model.Ticket
	err := f.store.WithinTx(context.Background(), func(tx pgx.Tx) error {
		var err error
		ticket, err = f.issuer.Issue(context.Background(), tx, rsvpID)
		return err
	})
	return ticket, err
}

func TestTicketIssuer_Idempotent(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	r := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	require.NotNil(t, r.Ticket)

	again, err := f.issue(r.Rsvp.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Ticket.ID, again.ID)
	assert.Equal(t, r.Ticket.QRCode, again.QRCode)

	total, _, err := f.store.Tickets.CountByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestTicketIssuer_PayloadIdentifiesTicket(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)
	caller := testutil.Attendee()
	r := f.submit(t, caller, event.ID, model.RsvpStatusGoing, 0)

	payload, err := f.codec.Decode(r.Ticket.QRCode)
	require.NoError(t, err)
	assert.Equal(t, r.Rsvp.ID, payload.RsvpID)
	assert.Equal(t, caller.UserID, payload.UserID)
	assert.Equal(t, event.ID, payload.EventID)
	assert.Equal(t, testutil.BaseTime.Unix(), payload.IssuedAt)
	assert.Len(t, payload.Checksum, 16)
}

func TestTicketIssuer_Rejections(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(1)

	_, err := f.issue(uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)

	maybe := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusMaybe, 0)
	_, err = f.issue(maybe.Rsvp.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	waiting := f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	_, err = f.issue(waiting.Rsvp.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
