// Package testutil 提供 service 與 handler 測試用的 in-memory repository
//
// Store 同時實作 database.TxManager：交易內的寫入會記下還原動作，
// fn 回傳錯誤時依反序還原，行為與 pgx 交易 rollback 一致。
// 不模擬列鎖，同一活動的序列化交給 lock.EventLocker。
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-gin-rsvp/internal/model"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemTx 只用來在 repository 之間傳遞還原紀錄，內嵌的 pgx.Tx 不可呼叫
type MemTx struct {
	pgx.Tx
	undo []func()
}

type Store struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*model.Event
	rsvps    map[uuid.UUID]*model.Rsvp
	entries  map[uuid.UUID]*model.WaitlistEntry
	tickets  map[uuid.UUID]*model.Ticket
	txCount  int
	rollback int

	// TicketCreateHook 在寫入票券前呼叫，回傳錯誤即模擬發票失敗
	TicketCreateHook func(ticket *model.Ticket) error

	Events   *EventRepo
	Rsvps    *RsvpRepo
	Waitlist *WaitlistRepo
	Tickets  *TicketRepo
}

func NewStore() *Store {
	s := &Store{
		events:  make(map[uuid.UUID]*model.Event),
		rsvps:   make(map[uuid.UUID]*model.Rsvp),
		entries: make(map[uuid.UUID]*model.WaitlistEntry),
		tickets: make(map[uuid.UUID]*model.Ticket),
	}
	s.Events = &EventRepo{s: s}
	s.Rsvps = &RsvpRepo{s: s}
	s.Waitlist = &WaitlistRepo{s: s}
	s.Tickets = &TicketRepo{s: s}
	return s
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &MemTx{}
	s.mu.Lock()
	s.txCount++
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.rollback++
		s.mu.Unlock()
		return err
	}
	return nil
}

// Rollbacks 已 rollback 的交易數
func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollback
}

// record 呼叫前必須持有 s.mu
func (s *Store) record(tx pgx.Tx, undo func()) {
	if mt, ok := tx.(*MemTx); ok && mt != nil {
		mt.undo = append(mt.undo, undo)
	}
}

func put[V any](s *Store, tx pgx.Tx, m map[uuid.UUID]*V, id uuid.UUID, v *V) {
	prev, existed := m[id]
	m[id] = v
	s.record(tx, func() {
		if existed {
			m[id] = prev
		} else {
			delete(m, id)
		}
	})
}

func remove[V any](s *Store, tx pgx.Tx, m map[uuid.UUID]*V, id uuid.UUID) {
	prev, existed := m[id]
	if !existed {
		return
	}
	delete(m, id)
	s.record(tx, func() { m[id] = prev })
}

func cloneEvent(e *model.Event) *model.Event {
	c := *e
	if e.RsvpDeadline != nil {
		d := *e.RsvpDeadline
		c.RsvpDeadline = &d
	}
	return &c
}

func cloneRsvp(r *model.Rsvp) *model.Rsvp {
	c := *r
	if r.DietaryPreferences != nil {
		d := *r.DietaryPreferences
		c.DietaryPreferences = &d
	}
	if r.WaitlistPosition != nil {
		p := *r.WaitlistPosition
		c.WaitlistPosition = &p
	}
	if r.CheckInTime != nil {
		t := *r.CheckInTime
		c.CheckInTime = &t
	}
	return &c
}

func cloneEntry(e *model.WaitlistEntry) *model.WaitlistEntry {
	c := *e
	return &c
}

func cloneTicket(t *model.Ticket) *model.Ticket {
	c := *t
	if t.CheckInTime != nil {
		at := *t.CheckInTime
		c.CheckInTime = &at
	}
	return &c
}

// AddEvent 活動由外部服務建立，測試直接放進 store
func (s *Store) AddEvent(event *model.Event) *model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	s.events[event.ID] = cloneEvent(event)
	return event
}

// SetEventStatus 模擬活動被取消或結束
func (s *Store) SetEventStatus(eventID uuid.UUID, status model.EventStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[eventID]; ok {
		e.Status = status
	}
}

// Entries 回傳活動所有候補項目 (含非 waiting)，依 position 排序
func (s *Store) Entries(eventID uuid.UUID) []*model.WaitlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.WaitlistEntry, 0)
	for _, e := range s.entries {
		if e.EventID == eventID {
			out = append(out, cloneEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// EventRepo implements repository.EventRepository
type EventRepo struct{ s *Store }

func (r *EventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepo) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error) {
	return r.FindByID(ctx, id)
}

// RsvpRepo implements repository.RsvpRepository
type RsvpRepo struct{ s *Store }

func (r *RsvpRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rsvp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rsvp, ok := r.s.rsvps[id]
	if !ok {
		return nil, apperrors.ErrRsvpNotFound
	}
	return cloneRsvp(rsvp), nil
}

func (r *RsvpRepo) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*model.Rsvp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rsvp := range r.s.rsvps {
		if rsvp.EventID == eventID && rsvp.UserID == userID {
			return cloneRsvp(rsvp), nil
		}
	}
	return nil, apperrors.ErrRsvpNotFound
}

func (r *RsvpRepo) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Rsvp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Rsvp, 0)
	for _, rsvp := range r.s.rsvps {
		if rsvp.EventID == eventID {
			out = append(out, cloneRsvp(rsvp))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *RsvpRepo) Create(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.rsvps {
		if existing.EventID == rsvp.EventID && existing.UserID == rsvp.UserID {
			return nil, apperrors.ErrRsvpExists
		}
	}

	c := cloneRsvp(rsvp)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ApprovalStatus == "" {
		c.ApprovalStatus = model.ApprovalStatusApproved
	}
	if c.CheckInStatus == "" {
		c.CheckInStatus = model.CheckInStatusNotCheckedIn
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
	put(r.s, tx, r.s.rsvps, c.ID, c)
	return cloneRsvp(c), nil
}

func (r *RsvpRepo) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Rsvp, error) {
	return r.FindByID(ctx, id)
}

func (r *RsvpRepo) Update(ctx context.Context, tx pgx.Tx, rsvp *model.Rsvp) (*model.Rsvp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.rsvps[rsvp.ID]
	if !ok {
		return nil, apperrors.ErrRsvpNotFound
	}

	c := cloneRsvp(cur)
	c.Status = rsvp.Status
	c.PlusOneCount = rsvp.PlusOneCount
	c.DietaryPreferences = rsvp.DietaryPreferences
	c.IsWaitlisted = rsvp.IsWaitlisted
	c.WaitlistPosition = rsvp.WaitlistPosition
	c.RsvpDeadlineMet = rsvp.RsvpDeadlineMet
	c.ApprovalStatus = rsvp.ApprovalStatus
	c.CheckInStatus = rsvp.CheckInStatus
	if c.CheckInStatus == "" {
		c.CheckInStatus = model.CheckInStatusNotCheckedIn
	}
	c.CheckInTime = rsvp.CheckInTime
	c.UpdatedAt = rsvp.UpdatedAt
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	c = cloneRsvp(c)
	put(r.s, tx, r.s.rsvps, c.ID, c)
	return cloneRsvp(c), nil
}

func (r *RsvpRepo) UpdateCheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.rsvps[id]
	if !ok {
		return apperrors.ErrRsvpNotFound
	}
	c := cloneRsvp(cur)
	c.CheckInStatus = model.CheckInStatusCheckedIn
	c.CheckInTime = &at
	c.UpdatedAt = at
	put(r.s, tx, r.s.rsvps, id, c)
	return nil
}

func (r *RsvpRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rsvps[id]; !ok {
		return apperrors.ErrRsvpNotFound
	}
	remove(r.s, tx, r.s.rsvps, id)

	// 與外鍵 ON DELETE CASCADE 一致
	for tid, t := range r.s.tickets {
		if t.RsvpID == id {
			remove(r.s, tx, r.s.tickets, tid)
		}
	}
	for eid, e := range r.s.entries {
		if e.RsvpID == id {
			remove(r.s, tx, r.s.entries, eid)
		}
	}
	return nil
}

func (r *RsvpRepo) SumOccupiedSeats(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	occupied := 0
	for _, rsvp := range r.s.rsvps {
		if rsvp.EventID == eventID {
			occupied += rsvp.Seats()
		}
	}
	return occupied, nil
}

// WaitlistRepo implements repository.WaitlistRepository
type WaitlistRepo struct{ s *Store }

func (r *WaitlistRepo) waiting(eventID uuid.UUID) []*model.WaitlistEntry {
	out := make([]*model.WaitlistEntry, 0)
	for _, e := range r.s.entries {
		if e.EventID == eventID && e.IsWaiting() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (r *WaitlistRepo) ListWaiting(ctx context.Context, eventID uuid.UUID) ([]*model.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.WaitlistEntry, 0)
	for _, e := range r.waiting(eventID) {
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

func (r *WaitlistRepo) CountWaiting(ctx context.Context, eventID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.waiting(eventID)), nil
}

func (r *WaitlistRepo) Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.waiting(entry.EventID) {
		if e.Position == entry.Position || e.RsvpID == entry.RsvpID {
			return nil, apperrors.ErrCapacityRace
		}
	}

	c := cloneEntry(entry)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = model.WaitlistStatusWaiting
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
	put(r.s, tx, r.s.entries, c.ID, c)
	return cloneEntry(c), nil
}

func (r *WaitlistRepo) MaxWaitingPosition(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	position := 0
	for _, e := range r.waiting(eventID) {
		if e.Position > position {
			position = e.Position
		}
	}
	return position, nil
}

func (r *WaitlistRepo) FindHeadWithLock(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (*model.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	waiting := r.waiting(eventID)
	if len(waiting) == 0 {
		return nil, apperrors.ErrEntryNotFound
	}
	return cloneEntry(waiting[0]), nil
}

func (r *WaitlistRepo) FindWaitingByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) (*model.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		if e.RsvpID == rsvpID && e.IsWaiting() {
			return cloneEntry(e), nil
		}
	}
	return nil, apperrors.ErrEntryNotFound
}

func (r *WaitlistRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.WaitlistStatus, at time.Time) error {
	if !model.WaitlistStatusWaiting.CanTransitionTo(status) {
		return apperrors.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.entries[id]
	if !ok || !cur.IsWaiting() {
		return apperrors.ErrEntryNotFound
	}
	c := cloneEntry(cur)
	c.Status = status
	c.UpdatedAt = at
	put(r.s, tx, r.s.entries, id, c)
	return nil
}

func (r *WaitlistRepo) ExpireWaiting(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, at time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	waiting := r.waiting(eventID)
	for _, e := range waiting {
		c := cloneEntry(e)
		c.Status = model.WaitlistStatusExpired
		c.UpdatedAt = at
		put(r.s, tx, r.s.entries, c.ID, c)
	}
	return len(waiting), nil
}

// TicketRepo implements repository.TicketRepository
type TicketRepo struct{ s *Store }

func (r *TicketRepo) find(match func(t *model.Ticket) bool) (*model.Ticket, error) {
	for _, t := range r.s.tickets {
		if match(t) {
			return cloneTicket(t), nil
		}
	}
	return nil, apperrors.ErrTicketNotFound
}

func (r *TicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(t *model.Ticket) bool { return t.ID == id })
}

func (r *TicketRepo) FindByRsvpID(ctx context.Context, rsvpID uuid.UUID) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(t *model.Ticket) bool { return t.RsvpID == rsvpID })
}

func (r *TicketRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total, checkedIn := 0, 0
	for _, t := range r.s.tickets {
		if t.EventID != eventID {
			continue
		}
		total++
		if t.IsCheckedIn() {
			checkedIn++
		}
	}
	return total, checkedIn, nil
}

func (r *TicketRepo) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	if hook := r.s.TicketCreateHook; hook != nil {
		if err := hook(ticket); err != nil {
			return nil, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, err := r.find(func(t *model.Ticket) bool { return t.RsvpID == ticket.RsvpID }); err == nil {
		return existing, nil
	}

	c := cloneTicket(ticket)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CheckInStatus = model.CheckInStatusNotCheckedIn
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
	put(r.s, tx, r.s.tickets, c.ID, c)
	return cloneTicket(c), nil
}

func (r *TicketRepo) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Ticket, error) {
	return r.FindByID(ctx, id)
}

func (r *TicketRepo) FindByRsvpAndEvent(ctx context.Context, tx pgx.Tx, rsvpID, eventID uuid.UUID) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(t *model.Ticket) bool { return t.RsvpID == rsvpID && t.EventID == eventID })
}

func (r *TicketRepo) MarkCheckedIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tickets[id]
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}
	if cur.IsCheckedIn() && cur.CheckInTime != nil {
		return nil, &apperrors.AlreadyCheckedInError{TicketID: cur.ID, CheckedInAt: *cur.CheckInTime}
	}

	c := cloneTicket(cur)
	c.CheckInStatus = model.CheckInStatusCheckedIn
	c.CheckInTime = &at
	c.UpdatedAt = at
	put(r.s, tx, r.s.tickets, id, c)
	return cloneTicket(c), nil
}

func (r *TicketRepo) DeleteByRsvpID(ctx context.Context, tx pgx.Tx, rsvpID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.tickets {
		if t.RsvpID == rsvpID {
			remove(r.s, tx, r.s.tickets, id)
		}
	}
	return nil
}
