package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckInStatus 報到狀態：not_checked_in -> checked_in (不可逆)
type CheckInStatus string

const (
	CheckInStatusNotCheckedIn CheckInStatus = "not_checked_in"
	CheckInStatusCheckedIn    CheckInStatus = "checked_in"
)

// IsValid 驗證狀態是否有效
func (s CheckInStatus) IsValid() bool {
	switch s {
	case CheckInStatusNotCheckedIn, CheckInStatusCheckedIn:
		return true
	}
	return false
}

// Ticket 入場票券，每個 RSVP 至多一張
type Ticket struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	RsvpID        uuid.UUID     `json:"rsvp_id" db:"rsvp_id"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	EventID       uuid.UUID     `json:"event_id" db:"event_id"`
	QRCode        string        `json:"qr_code" db:"qr_code"`
	CheckInStatus CheckInStatus `json:"check_in_status" db:"check_in_status"`
	CheckInTime   *time.Time    `json:"check_in_time,omitempty" db:"check_in_time"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// IsCheckedIn 檢查是否已報到
func (t *Ticket) IsCheckedIn() bool {
	return t.CheckInStatus == CheckInStatusCheckedIn
}

// CheckInResult QR 掃描結果，失敗以資料回報而非錯誤，讓掃描機可以繼續掃下一張
type CheckInResult struct {
	Success     bool       `json:"success"`
	Ticket      *Ticket    `json:"ticket,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Message     string     `json:"message,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

// QR 掃描失敗原因
const (
	CheckInReasonInvalidFormat    = "invalid format"
	CheckInReasonInvalidSignature = "invalid signature"
	CheckInReasonNotFound         = "ticket not found"
	CheckInReasonAlreadyCheckedIn = "already checked in"
)

// CheckInStats 活動報到統計，每次由票券資料重新計算
type CheckInStats struct {
	EventID      uuid.UUID `json:"event_id"`
	TotalTickets int       `json:"total_tickets"`
	CheckedIn    int       `json:"checked_in"`
	NotCheckedIn int       `json:"not_checked_in"`
	CheckInRate  float64   `json:"check_in_rate"` // 百分比 0-100
}

// QRPayload 票券 QR code 內容
type QRPayload struct {
	RsvpID   uuid.UUID `cbor:"1,keyasint" json:"rsvp_id"`
	UserID   uuid.UUID `cbor:"2,keyasint" json:"user_id"`
	EventID  uuid.UUID `cbor:"3,keyasint" json:"event_id"`
	IssuedAt int64     `cbor:"4,keyasint" json:"issued_at"` // unix 秒
	Checksum string    `cbor:"5,keyasint" json:"checksum"`
}

// CheckInByQRRequest 掃描機送出的 QR 內容
type CheckInByQRRequest struct {
	Payload string `json:"payload" binding:"required"`
}
