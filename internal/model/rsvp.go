package model

import (
	"time"

	"github.com/google/uuid"
)

// RsvpStatus 出席回覆狀態
type RsvpStatus string

const (
	RsvpStatusGoing    RsvpStatus = "going"
	RsvpStatusMaybe    RsvpStatus = "maybe"
	RsvpStatusNotGoing RsvpStatus = "not_going"
)

// IsValid 驗證狀態是否有效
func (s RsvpStatus) IsValid() bool {
	switch s {
	case RsvpStatusGoing, RsvpStatusMaybe, RsvpStatusNotGoing:
		return true
	}
	return false
}

// ApprovalStatus 管理員審核狀態 (獨立欄位，不再塞進 JSON)
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid 驗證狀態是否有效
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s ApprovalStatus) CanTransitionTo(target ApprovalStatus) bool {
	transitions := map[ApprovalStatus][]ApprovalStatus{
		ApprovalStatusPending:  {ApprovalStatusApproved, ApprovalStatusRejected},
		ApprovalStatusApproved: {ApprovalStatusRejected},
		ApprovalStatusRejected: {ApprovalStatusApproved},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

// Rsvp 出席回覆，(event_id, user_id) 唯一
type Rsvp struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	EventID            uuid.UUID      `json:"event_id" db:"event_id"`
	UserID             uuid.UUID      `json:"user_id" db:"user_id"`
	Status             RsvpStatus     `json:"status" db:"status"`
	PlusOneCount       int            `json:"plus_one_count" db:"plus_one_count"`
	DietaryPreferences *string        `json:"dietary_preferences,omitempty" db:"dietary_preferences"`
	IsWaitlisted       bool           `json:"is_waitlisted" db:"is_waitlisted"`
	WaitlistPosition   *int           `json:"waitlist_position,omitempty" db:"waitlist_position"`
	RsvpDeadlineMet    bool           `json:"rsvp_deadline_met" db:"rsvp_deadline_met"`
	ApprovalStatus     ApprovalStatus `json:"approval_status" db:"approval_status"`
	CheckInStatus      CheckInStatus  `json:"check_in_status" db:"check_in_status"`
	CheckInTime        *time.Time     `json:"check_in_time,omitempty" db:"check_in_time"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// Seats 佔用的座位數：going 且不在候補名單才算 (本人 + 同行人數)
func (r *Rsvp) Seats() int {
	if r.Status != RsvpStatusGoing || r.IsWaitlisted {
		return 0
	}
	return 1 + r.PlusOneCount
}

// IsConfirmed going 且已取得座位
func (r *Rsvp) IsConfirmed() bool {
	return r.Status == RsvpStatusGoing && !r.IsWaitlisted
}

// IsApproved 只有審核通過的回覆可以佔位
func (r *Rsvp) IsApproved() bool {
	return r.ApprovalStatus == ApprovalStatusApproved
}

// ResetCheckIn 票券作廢或重發時，報到狀態跟著票券歸零
func (r *Rsvp) ResetCheckIn() {
	r.CheckInStatus = CheckInStatusNotCheckedIn
	r.CheckInTime = nil
}

// IsOwnedBy 檢查是否為本人的回覆
func (r *Rsvp) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// SubmitRsvpRequest 建立回覆請求
type SubmitRsvpRequest struct {
	Status             RsvpStatus `json:"status" binding:"required"`
	PlusOneCount       int        `json:"plus_one_count" binding:"min=0"`
	DietaryPreferences *string    `json:"dietary_preferences"`
}

// UpdateRsvpParams 更新回覆，nil 欄位代表不變
type UpdateRsvpParams struct {
	Status             *RsvpStatus `json:"status"`
	PlusOneCount       *int        `json:"plus_one_count"`
	DietaryPreferences *string     `json:"dietary_preferences"`
}

// IsEmpty 沒有任何欄位要更新
func (p UpdateRsvpParams) IsEmpty() bool {
	return p.Status == nil && p.PlusOneCount == nil && p.DietaryPreferences == nil
}

// SubmitResult 建立回覆結果
type SubmitResult struct {
	Rsvp       *Rsvp   `json:"rsvp"`
	Ticket     *Ticket `json:"ticket"`
	Waitlisted bool    `json:"waitlisted"`
}

// SetApprovalRequest 管理員審核請求
type SetApprovalRequest struct {
	ApprovalStatus ApprovalStatus `json:"approval_status" binding:"required"`
}
