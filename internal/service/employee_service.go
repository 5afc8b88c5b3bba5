package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/repository"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// EmployeeService coordinates employee and department records.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, departments repository.DepartmentRepository, dispatcher events.Dispatcher) *EmployeeService {
	return &EmployeeService{employees: employees, departments: departments, dispatcher: dispatcher}
}

// CreateEmployee validates and stores a new employee record.
func (s *EmployeeService) CreateEmployee(ctx context.Context, actor *domain.Account, employee *domain.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}

	if _, err := s.departments.GetByID(ctx, employee.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", map[string]any{"department_id": employee.DepartmentID})
		}
		return err
	}

	if _, err := s.employees.GetByEmail(ctx, employee.Email); err == nil {
		return apperrors.NewConflict("email already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return err
	}

	s.publishEmployee(ctx, events.EventEmployeeCreated, actor, employee)
	return nil
}

// UpdateEmployee validates and persists changes to an existing record.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor *domain.Account, employee *domain.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}
	if _, err := s.departments.GetByID(ctx, employee.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", map[string]any{"department_id": employee.DepartmentID})
		}
		return err
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", nil)
		}
		return err
	}

	s.publishEmployee(ctx, events.EventEmployeeUpdated, actor, employee)
	return nil
}

// DeleteEmployee removes an employee record.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, actor *domain.Account, id string) error {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", nil)
		}
		return err
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEmployee(ctx, events.EventEmployeeDeleted, actor, employee)
	return nil
}

// GetEmployee fetches one employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, err
	}
	return employee, nil
}

// ListEmployees lists employees, optionally scoped to a department.
func (s *EmployeeService) ListEmployees(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	return s.employees.List(ctx, departmentID)
}

// CreateDepartment stores a new department.
func (s *EmployeeService) CreateDepartment(ctx context.Context, department *domain.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("department name required", nil)
	}
	if _, err := s.departments.GetByName(ctx, department.Name); err == nil {
		return apperrors.NewConflict("department name already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return s.departments.Create(ctx, department)
}

// UpdateDepartment persists department changes.
func (s *EmployeeService) UpdateDepartment(ctx context.Context, department *domain.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("department name required", nil)
	}
	if err := s.departments.Update(ctx, department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", nil)
		}
		return err
	}
	return nil
}

// DeleteDepartment removes a department.
func (s *EmployeeService) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", nil)
		}
		return err
	}
	return nil
}

// GetDepartment fetches one department by id.
func (s *EmployeeService) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, err
	}
	return department, nil
}

// ListDepartments lists all departments.
func (s *EmployeeService) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return s.departments.List(ctx)
}

func validateEmployee(employee *domain.Employee) error {
	details := map[string]any{}
	if strings.TrimSpace(employee.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(employee.LastName) == "" {
		details["last_name"] = "required"
	}
	if _, err := mail.ParseAddress(employee.Email); err != nil {
		details["email"] = "invalid"
	}
	if employee.DepartmentID == "" {
		details["department_id"] = "required"
	}
	if employee.HireDate.IsZero() || employee.HireDate.After(time.Now().AddDate(1, 0, 0)) {
		details["hire_date"] = "invalid"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee", details)
	}
	return nil
}

func (s *EmployeeService) publishEmployee(ctx context.Context, eventType events.EventType, actor *domain.Account, employee *domain.Employee) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   employee.ID,
		Timestamp: time.Now(),
		Payload: events.EmployeeChangedPayload{
			EmployeeID:   employee.ID,
			DepartmentID: employee.DepartmentID,
			Email:        employee.Email,
		},
	}
	if actor != nil {
		event.Actor = events.Actor{AccountID: &actor.ID, Role: &actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
