package model

import "github.com/google/uuid"

// Role 呼叫者角色
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// Caller 已驗證的呼叫者身分，由 auth middleware 建立後顯式傳入 service
type Caller struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// IsAdmin 檢查是否為管理員
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanManage 活動主辦人或管理員
func (c Caller) CanManage(event *Event) bool {
	return c.IsAdmin() || (event != nil && event.OrganizerID == c.UserID)
}
