package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 分類用的根錯誤，handler 以 errors.Is 對應 HTTP 狀態碼
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrCapacityRace     = errors.New("capacity race lost, retry")
	ErrPromotionFailed  = errors.New("waitlist promotion failed")
)

var (
	ErrEventNotFound  = wrap(ErrNotFound, "event not found")
	ErrRsvpNotFound   = wrap(ErrNotFound, "rsvp not found")
	ErrTicketNotFound = wrap(ErrNotFound, "ticket not found")
	ErrEntryNotFound  = wrap(ErrNotFound, "waitlist entry not found")

	ErrRsvpExists           = wrap(ErrConflict, "rsvp already exists for this event")
	ErrRsvpDeadlinePassed   = wrap(ErrConflict, "rsvp deadline has passed")
	ErrEventClosed          = wrap(ErrConflict, "event is closed for rsvps")
	ErrInsufficientCapacity = wrap(ErrConflict, "insufficient capacity")

	ErrLockTimeout = wrap(ErrCapacityRace, "timed out waiting for event lock")
)

type kindError struct {
	kind error
	msg  string
}

func wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// AlreadyCheckedInError 重複報到，帶回第一次報到的時間供現場人員辨識
type AlreadyCheckedInError struct {
	TicketID    uuid.UUID
	CheckedInAt time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("ticket already checked in at %s", e.CheckedInAt.UTC().Format(time.RFC3339))
}

func (e *AlreadyCheckedInError) Unwrap() error { return ErrAlreadyCheckedIn }

// IsRetryable 只有搶位失敗 (含鎖等待逾時) 可以重試
func IsRetryable(err error) bool {
	return errors.Is(err, ErrCapacityRace)
}
