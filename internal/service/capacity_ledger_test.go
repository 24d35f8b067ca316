package service

import (
	"context"
	"testing"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFits(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		occupied   int
		additional int
		want       bool
	}{
		{"empty event", 1, 0, 0, true},
		{"last seat", 2, 1, 0, true},
		{"full", 2, 2, 0, false},
		{"plus ones overflow", 5, 1, 4, false},
		{"plus ones exact", 5, 1, 3, true},
		{"zero capacity", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.capacity, tt.occupied, tt.additional))
		})
	}
}

func TestCapacityLedger_OccupiedSeats(t *testing.T) {
	f := newFixture(t)
	event := f.addEvent(10)
	ctx := context.Background()

	assert.Zero(t, f.occupied(t, event.ID))

	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 2)
	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusGoing, 0)
	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusMaybe, 3)
	f.submit(t, testutil.Attendee(), event.ID, model.RsvpStatusNotGoing, 1)
	assert.Equal(t, 4, f.occupied(t, event.ID))

	fits, err := f.ledger.HasCapacity(ctx, nil, event, 5)
	require.NoError(t, err)
	assert.True(t, fits)

	fits, err = f.ledger.HasCapacity(ctx, nil, event, 6)
	require.NoError(t, err)
	assert.False(t, fits)

	assert.NoError(t, f.ledger.EnsureWithinCapacity(ctx, nil, event))

	shrunk := *event
	shrunk.Capacity = 3
	err = f.ledger.EnsureWithinCapacity(ctx, nil, &shrunk)
	assert.ErrorIs(t, err, apperrors.ErrCapacityRace)
	assert.True(t, apperrors.IsRetryable(err))
}
