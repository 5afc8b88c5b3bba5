package service_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/repository"
)

// memAccountRepo is an in-memory user directory.
type memAccountRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Account
	byName   map[string]*domain.Account
	seq      int
	failWith error
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		byID:   make(map[string]*domain.Account),
		byName: make(map[string]*domain.Account),
	}
}

func (m *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.seq++
	account.ID = fmt.Sprintf("acct-%d", m.seq)
	copied := *account
	m.byID[account.ID] = &copied
	m.byName[account.Username] = &copied
	return nil
}

func (m *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	stored, ok := m.byID[account.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *account
	return nil
}

func (m *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	account, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (m *memAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	account, ok := m.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

// mockResetRepo stores reset tokens in memory.
type mockResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
	seq    int
}

func newMockResetRepo() *mockResetRepo {
	return &mockResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (m *mockResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	token.ID = fmt.Sprintf("reset-%d", m.seq)
	copied := *token
	m.tokens[token.Token] = &copied
	return nil
}

func (m *mockResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (m *mockResetRepo) MarkUsed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.tokens {
		if token.ID == id {
			now := token.ExpiresAt
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

// captureDispatcher records published events.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

// mockEmployeeRepo uses function fields so each test overrides only
// what it needs.
type mockEmployeeRepo struct {
	createFn     func(ctx context.Context, employee *domain.Employee) error
	updateFn     func(ctx context.Context, employee *domain.Employee) error
	deleteFn     func(ctx context.Context, id string) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Employee, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Employee, error)
	listFn       func(ctx context.Context, departmentID string) ([]*domain.Employee, error)
	headcountFn  func(ctx context.Context) ([]repository.HeadcountRow, error)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	if m.createFn != nil {
		return m.createFn(ctx, employee)
	}
	employee.ID = "emp-1"
	return nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *domain.Employee) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, employee)
	}
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockEmployeeRepo) List(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	if m.listFn != nil {
		return m.listFn(ctx, departmentID)
	}
	return nil, nil
}

func (m *mockEmployeeRepo) HeadcountByDepartment(ctx context.Context) ([]repository.HeadcountRow, error) {
	if m.headcountFn != nil {
		return m.headcountFn(ctx)
	}
	return nil, nil
}

// mockDepartmentRepo mirrors the function-field style.
type mockDepartmentRepo struct {
	createFn    func(ctx context.Context, department *domain.Department) error
	updateFn    func(ctx context.Context, department *domain.Department) error
	deleteFn    func(ctx context.Context, id string) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Department, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Department, error)
	listFn      func(ctx context.Context) ([]*domain.Department, error)
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *domain.Department) error {
	if m.createFn != nil {
		return m.createFn(ctx, department)
	}
	department.ID = "dept-1"
	return nil
}

func (m *mockDepartmentRepo) Update(ctx context.Context, department *domain.Department) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, department)
	}
	return nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDepartmentRepo) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]*domain.Department, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// mockLeaveRepo mirrors the function-field style.
type mockLeaveRepo struct {
	createFn       func(ctx context.Context, leave *domain.LeaveRequest) error
	updateFn       func(ctx context.Context, leave *domain.LeaveRequest) error
	getByIDFn      func(ctx context.Context, id string) (*domain.LeaveRequest, error)
	listByEmpFn    func(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error)
	listByStatusFn func(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error)
}

func (m *mockLeaveRepo) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, leave)
	}
	leave.ID = "leave-1"
	return nil
}

func (m *mockLeaveRepo) Update(ctx context.Context, leave *domain.LeaveRequest) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, leave)
	}
	return nil
}

func (m *mockLeaveRepo) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error) {
	if m.listByEmpFn != nil {
		return m.listByEmpFn(ctx, employeeID)
	}
	return nil, nil
}

func (m *mockLeaveRepo) ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}
