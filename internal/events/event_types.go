package events

import (
	"time"

	"github.com/spec-kit/employee-records/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventPasswordChanged   EventType = "password_changed"
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventLeaveSubmitted    EventType = "leave_submitted"
	EventLeaveDecided      EventType = "leave_decided"
)

// Actor encapsulates actor metadata for an event. Login failures have
// no resolved actor; only the attempted username is known.
type Actor struct {
	AccountID *string      `json:"account_id,omitempty"`
	Role      *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginPayload payload for login outcomes.
type LoginPayload struct {
	Username string `json:"username"`
	Success  bool   `json:"success"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// EmployeeChangedPayload payload for employee create/update/delete.
type EmployeeChangedPayload struct {
	EmployeeID   string `json:"employee_id"`
	DepartmentID string `json:"department_id,omitempty"`
	Email        string `json:"email,omitempty"`
}

// LeavePayload payload for leave workflow events.
type LeavePayload struct {
	LeaveID    string             `json:"leave_id"`
	EmployeeID string             `json:"employee_id"`
	Status     domain.LeaveStatus `json:"status"`
}
