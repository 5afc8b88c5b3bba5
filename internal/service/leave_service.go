package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/repository"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// LeaveService manages the leave request workflow.
type LeaveService struct {
	leaves     repository.LeaveRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// NewLeaveService builds the service.
func NewLeaveService(leaves repository.LeaveRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{leaves: leaves, employees: employees, dispatcher: dispatcher}
}

// Submit files a new leave request in PENDING state.
func (s *LeaveService) Submit(ctx context.Context, actor *domain.Account, leave *domain.LeaveRequest) error {
	if leave.StartDate.IsZero() || leave.EndDate.IsZero() || leave.EndDate.Before(leave.StartDate) {
		return apperrors.NewValidationError("invalid leave dates", nil)
	}
	switch leave.Type {
	case domain.LeaveTypeAnnual, domain.LeaveTypeSick, domain.LeaveTypeUnpaid:
	default:
		return apperrors.NewValidationError("unknown leave type", map[string]any{"type": leave.Type})
	}

	if _, err := s.employees.GetByID(ctx, leave.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", nil)
		}
		return err
	}

	leave.Status = domain.LeaveStatusPending
	if err := s.leaves.Create(ctx, leave); err != nil {
		return err
	}

	s.publishLeave(ctx, events.EventLeaveSubmitted, actor, leave)
	return nil
}

// Decide approves or rejects a pending leave request.
func (s *LeaveService) Decide(ctx context.Context, actor *domain.Account, leaveID string, approve bool) (*domain.LeaveRequest, error) {
	leave, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("leave request", nil)
		}
		return nil, err
	}
	if leave.Status != domain.LeaveStatusPending {
		return nil, apperrors.NewConflict("leave request already decided", map[string]any{"status": leave.Status})
	}

	now := time.Now()
	leave.Status = domain.LeaveStatusRejected
	if approve {
		leave.Status = domain.LeaveStatusApproved
	}
	if actor != nil {
		leave.DecidedBy = &actor.ID
	}
	leave.DecidedAt = &now

	if err := s.leaves.Update(ctx, leave); err != nil {
		return nil, err
	}

	s.publishLeave(ctx, events.EventLeaveDecided, actor, leave)
	return leave, nil
}

// ListByEmployee lists an employee's leave requests.
func (s *LeaveService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error) {
	return s.leaves.ListByEmployee(ctx, employeeID)
}

// ListPending lists requests awaiting a decision.
func (s *LeaveService) ListPending(ctx context.Context) ([]*domain.LeaveRequest, error) {
	return s.leaves.ListByStatus(ctx, domain.LeaveStatusPending)
}

func (s *LeaveService) publishLeave(ctx context.Context, eventType events.EventType, actor *domain.Account, leave *domain.LeaveRequest) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   leave.ID,
		Timestamp: time.Now(),
		Payload: events.LeavePayload{
			LeaveID:    leave.ID,
			EmployeeID: leave.EmployeeID,
			Status:     leave.Status,
		},
	}
	if actor != nil {
		event.Actor = events.Actor{AccountID: &actor.ID, Role: &actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
