package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-gin-rsvp/internal/lock"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/qrcode"
	"go-gin-rsvp/internal/queue"
	"go-gin-rsvp/internal/testutil"
	"go-gin-rsvp/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// recordingQueue 記下所有發布的通知
type recordingQueue struct {
	mu    sync.Mutex
	items []*model.Notification
	err   error
}

func (q *recordingQueue) Publish(ctx context.Context, n *model.Notification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.items = append(q.items, n)
	return nil
}

func (q *recordingQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	return nil, errors.New("not supported")
}

func (q *recordingQueue) kinds() []model.NotificationKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.NotificationKind, 0, len(q.items))
	for _, n := range q.items {
		out = append(out, n.Kind)
	}
	return out
}

type fixture struct {
	store    *testutil.Store
	clock    *clock.FakeClock
	codec    *qrcode.Codec
	queue    *recordingQueue
	ledger   CapacityLedger
	issuer   TicketIssuer
	waitlist WaitlistQueue
	rsvps    RsvpService
	checkIns CheckInService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithQueue(t, &recordingQueue{})
}

func newFixtureWithQueue(t *testing.T, notifications *recordingQueue) *fixture {
	t.Helper()

	store := testutil.NewStore()
	clk := clock.Fake(testutil.BaseTime)
	codec := qrcode.NewCodec("test-secret")

	ledger := NewCapacityLedger(store.Rsvps)
	issuer := NewTicketIssuer(store.Rsvps, store.Tickets, codec, clk)
	waitlist := NewWaitlistQueue(store, store.Events, store.Rsvps, store.Waitlist, ledger, issuer, notifications, clk)

	return &fixture{
		store:    store,
		clock:    clk,
		codec:    codec,
		queue:    notifications,
		ledger:   ledger,
		issuer:   issuer,
		waitlist: waitlist,
		rsvps: NewRsvpService(
			store, lock.NewLocalEventLocker(5*time.Second),
			store.Events, store.Rsvps, store.Tickets,
			ledger, waitlist, issuer, notifications, clk, 0,
		),
		checkIns: NewCheckInService(store, store.Events, store.Rsvps, store.Tickets, codec, clk),
	}
}

func (f *fixture) addEvent(capacity int) *model.Event {
	return f.store.AddEvent(testutil.NewEvent(capacity, nil))
}

func (f *fixture) submit(t *testing.T, caller model.Caller, eventID uuid.UUID, status model.RsvpStatus, plusOnes int) *model.SubmitResult {
	t.Helper()
	result, err := f.rsvps.Submit(context.Background(), caller, eventID, model.SubmitRsvpRequest{
		Status:       status,
		PlusOneCount: plusOnes,
	})
	require.NoError(t, err)
	return result
}

func (f *fixture) occupied(t *testing.T, eventID uuid.UUID) int {
	t.Helper()
	n, err := f.ledger.OccupiedSeats(context.Background(), nil, eventID)
	require.NoError(t, err)
	return n
}

func (f *fixture) waitingPositions(t *testing.T, eventID uuid.UUID) map[uuid.UUID]int {
	t.Helper()
	entries, err := f.waitlist.List(context.Background(), eventID)
	require.NoError(t, err)
	out := make(map[uuid.UUID]int, len(entries))
	for _, e := range entries {
		out[e.RsvpID] = e.Position
	}
	return out
}
