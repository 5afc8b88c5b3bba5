package domain

import "time"

// LeaveStatus tracks a leave request through its workflow.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// LeaveType enumerates supported leave categories.
type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeUnpaid LeaveType = "UNPAID"
)

// LeaveRequest is a request for time off submitted by an employee.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveStatus
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
