package domain

import "time"

// Employee is the HR record for a member of staff.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	DepartmentID string
	JobTitle     string
	HireDate     time.Time
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
