package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-records/internal/domain"
)

// DepartmentRepository defines persistence access for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, department *domain.Department) error
	Update(ctx context.Context, department *domain.Department) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]*domain.Department, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository returns a Postgres-backed implementation.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, department *domain.Department) error {
	const query = `
        INSERT INTO departments (name, location, active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		department.Name,
		department.Location,
		department.Active,
	).Scan(&department.ID, &department.CreatedAt, &department.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, department *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, location=$2, active=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		department.Name,
		department.Location,
		department.Active,
		department.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `
        SELECT id, name, location, active, created_at, updated_at
        FROM departments WHERE id=$1`
	return scanDepartment(r.pool.QueryRow(ctx, query, id))
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	const query = `
        SELECT id, name, location, active, created_at, updated_at
        FROM departments WHERE name=$1`
	return scanDepartment(r.pool.QueryRow(ctx, query, name))
}

func (r *departmentRepository) List(ctx context.Context) ([]*domain.Department, error) {
	const query = `
        SELECT id, name, location, active, created_at, updated_at
        FROM departments ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var department domain.Department
	if err := row.Scan(
		&department.ID,
		&department.Name,
		&department.Location,
		&department.Active,
		&department.CreatedAt,
		&department.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &department, nil
}
