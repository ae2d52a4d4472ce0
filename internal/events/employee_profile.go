package events

import "time"

const EmployeeProfileTopic = "hr.employee.profile.v1"

const (
	EmployeeProfileCreated = "employee_profile_created"
	EmployeeProfileUpdated = "employee_profile_updated"
	EmployeeProfileDeleted = "employee_profile_deleted"
)

type EmployeeProfileEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	OccurredAt time.Time `json:"occurred_at"`
}
