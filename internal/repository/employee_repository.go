package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-records/internal/domain"
)

// HeadcountRow is one department's aggregate in the headcount report.
type HeadcountRow struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Active         int64  `json:"active"`
	Total          int64  `json:"total"`
}

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, departmentID string) ([]*domain.Employee, error)
	HeadcountByDepartment(ctx context.Context) ([]HeadcountRow, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, first_name, last_name, email, department_id, job_title, hire_date, active, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, department_id, job_title, hire_date, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.DepartmentID,
		employee.JobTitle,
		employee.HireDate,
		employee.Active,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, department_id=$4, job_title=$5, hire_date=$6, active=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.DepartmentID,
		employee.JobTitle,
		employee.HireDate,
		employee.Active,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, email))
}

func (r *employeeRepository) List(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name`
	args := []any{}
	if departmentID != "" {
		query = `SELECT ` + employeeColumns + ` FROM employees WHERE department_id=$1 ORDER BY last_name, first_name`
		args = append(args, departmentID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) HeadcountByDepartment(ctx context.Context) ([]HeadcountRow, error) {
	const query = `
        SELECT d.id, d.name,
               COUNT(e.id) FILTER (WHERE e.active) AS active,
               COUNT(e.id) AS total
        FROM departments d
        LEFT JOIN employees e ON e.department_id = d.id
        GROUP BY d.id, d.name
        ORDER BY d.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []HeadcountRow
	for rows.Next() {
		var row HeadcountRow
		if err := rows.Scan(&row.DepartmentID, &row.DepartmentName, &row.Active, &row.Total); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.DepartmentID,
		&employee.JobTitle,
		&employee.HireDate,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}
