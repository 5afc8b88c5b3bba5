package dto

import (
	"time"

	"github.com/spec-kit/employee-records/internal/domain"
)

// EmployeeRequest payload for create/update.
type EmployeeRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id"`
	JobTitle     string `json:"job_title"`
	HireDate     string `json:"hire_date"` // YYYY-MM-DD
	Active       *bool  `json:"active"`
}

// EmployeeResponse is the outward employee shape.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"department_id"`
	JobTitle     string    `json:"job_title"`
	HireDate     string    `json:"hire_date"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps the domain model.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           employee.ID,
		FirstName:    employee.FirstName,
		LastName:     employee.LastName,
		Email:        employee.Email,
		DepartmentID: employee.DepartmentID,
		JobTitle:     employee.JobTitle,
		HireDate:     employee.HireDate.Format("2006-01-02"),
		Active:       employee.Active,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}

// DepartmentRequest payload for create/update.
type DepartmentRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   *bool  `json:"active"`
}

// DepartmentResponse is the outward department shape.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps the domain model.
func NewDepartmentResponse(department *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        department.ID,
		Name:      department.Name,
		Location:  department.Location,
		Active:    department.Active,
		CreatedAt: department.CreatedAt,
		UpdatedAt: department.UpdatedAt,
	}
}

// LeaveSubmitRequest payload for filing leave.
type LeaveSubmitRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`
}

// LeaveDecisionRequest payload for approving or rejecting.
type LeaveDecisionRequest struct {
	Approve bool `json:"approve"`
}

// LeaveResponse is the outward leave-request shape.
type LeaveResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Type       string     `json:"type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status"`
	DecidedBy  *string    `json:"decided_by,omitempty"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewLeaveResponse maps the domain model.
func NewLeaveResponse(leave *domain.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         leave.ID,
		EmployeeID: leave.EmployeeID,
		Type:       string(leave.Type),
		StartDate:  leave.StartDate.Format("2006-01-02"),
		EndDate:    leave.EndDate.Format("2006-01-02"),
		Reason:     leave.Reason,
		Status:     string(leave.Status),
		DecidedBy:  leave.DecidedBy,
		DecidedAt:  leave.DecidedAt,
		CreatedAt:  leave.CreatedAt,
	}
}
