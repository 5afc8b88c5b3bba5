package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-records/internal/domain"
)

// LeaveRepository defines persistence access for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	Update(ctx context.Context, leave *domain.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error)
	ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository returns a Postgres-backed implementation.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, reason, status, decided_by, decided_at, created_at, updated_at`

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		leave.EmployeeID,
		leave.Type,
		leave.StartDate,
		leave.EndDate,
		leave.Reason,
		leave.Status,
	).Scan(&leave.ID, &leave.CreatedAt, &leave.UpdatedAt)
}

func (r *leaveRepository) Update(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        UPDATE leave_requests
        SET status=$1, decided_by=$2, decided_at=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		leave.Status,
		leave.DecidedBy,
		leave.DecidedAt,
		leave.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id=$1`
	return scanLeave(r.pool.QueryRow(ctx, query, id))
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leave_requests WHERE employee_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, employeeID)
}

func (r *leaveRepository) ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leave_requests WHERE status=$1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

func (r *leaveRepository) list(ctx context.Context, query string, args ...any) ([]*domain.LeaveRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []*domain.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}
	return leaves, rows.Err()
}

func scanLeave(row pgx.Row) (*domain.LeaveRequest, error) {
	var leave domain.LeaveRequest
	if err := row.Scan(
		&leave.ID,
		&leave.EmployeeID,
		&leave.Type,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Reason,
		&leave.Status,
		&leave.DecidedBy,
		&leave.DecidedAt,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leave, nil
}
