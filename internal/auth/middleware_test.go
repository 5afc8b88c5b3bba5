package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/domain"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

type mockAccountRepo struct {
	getByUsernameFn    func(ctx context.Context, username string) (*domain.Account, error)
	getByUsernameCalls int
}

func (m *mockAccountRepo) Create(context.Context, *domain.Account) error { return nil }
func (m *mockAccountRepo) Update(context.Context, *domain.Account) error { return nil }
func (m *mockAccountRepo) GetByID(context.Context, string) (*domain.Account, error) {
	return nil, pgx.ErrNoRows
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	m.getByUsernameCalls++
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, pgx.ErrNoRows
}

func enabledAccount(username string, role domain.Role) *domain.Account {
	return &domain.Account{
		ID:           "acct-1",
		Username:     username,
		PasswordHash: "irrelevant",
		Role:         role,
		Enabled:      true,
	}
}

// newTestApp wires the middleware in front of one open route and two
// protected routes, with an error handler that renders DomainError the
// way the service's global middleware does.
func newTestApp(tm *auth.TokenManager, repo *mockAccountRepo) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	m := auth.NewMiddleware(tm, repo, zap.NewNop())
	app.Use(m.Handle)

	app.Get("/open", func(c *fiber.Ctx) error {
		if identity, ok := auth.IdentityFromContext(c); ok {
			return c.JSON(fiber.Map{"authenticated": true, "username": identity.Account.Username})
		}
		return c.JSON(fiber.Map{"authenticated": false})
	})
	app.Get("/protected", auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareNoHeaderFailsOpen(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{}
	app := newTestApp(tm, repo)

	resp := doGet(t, app, "/open", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, repo.getByUsernameCalls)
}

func TestMiddlewareWrongSchemeTreatedAsMissing(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{}
	app := newTestApp(tm, repo)

	for _, header := range []string{"Basic dXNlcjpwYXNz", "bearer sometoken", "Token abc"} {
		resp := doGet(t, app, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
	assert.Zero(t, repo.getByUsernameCalls)
}

func TestMiddlewareGarbageTokenFailsOpen(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{}
	app := newTestApp(tm, repo)

	resp := doGet(t, app, "/open", "Bearer garbage.garbage.garbage")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/protected", "Bearer garbage.garbage.garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareValidTokenPopulatesIdentity(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return enabledAccount(username, domain.RoleUser), nil
		},
	}
	app := newTestApp(tm, repo)

	token, _, err := tm.Issue("alice", "acct-1", domain.RoleUser)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Authenticated but wrong role: forbidden, not unauthenticated.
	resp = doGet(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMiddlewareUnknownSubjectFailsOpen(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{}
	app := newTestApp(tm, repo)

	token, _, err := tm.Issue("ghost", "acct-9", domain.RoleUser)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, repo.getByUsernameCalls)
}

func TestMiddlewareDisabledAccountFailsOpen(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			account := enabledAccount(username, domain.RoleUser)
			account.Enabled = false
			return account, nil
		},
	}
	app := newTestApp(tm, repo)

	token, _, err := tm.Issue("alice", "acct-1", domain.RoleUser)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareExpiredTokenFailsOpen(t *testing.T) {
	issuedAt := time.Unix(1700000000, 0)
	now := issuedAt
	tm := auth.NewTokenManager("test-secret", time.Minute).
		WithClock(func() time.Time { return now })
	repo := &mockAccountRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return enabledAccount(username, domain.RoleUser), nil
		},
	}
	app := newTestApp(tm, repo)

	token, _, err := tm.Issue("alice", "acct-1", domain.RoleUser)
	require.NoError(t, err)

	now = issuedAt.Add(time.Hour)
	resp := doGet(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareDirectoryFailurePropagates(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{
		getByUsernameFn: func(context.Context, string) (*domain.Account, error) {
			return nil, errors.New("connection refused")
		},
	}
	app := newTestApp(tm, repo)

	token, _, err := tm.Issue("alice", "acct-1", domain.RoleUser)
	require.NoError(t, err)

	resp := doGet(t, app, "/open", "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode,
		"infrastructure failure must not be swallowed as unauthenticated")
}

func TestMiddlewareIdempotentPerRequest(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Minute)
	repo := &mockAccountRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return enabledAccount(username, domain.RoleUser), nil
		},
	}

	app := fiber.New()
	m := auth.NewMiddleware(tm, repo, zap.NewNop())
	// Registered twice to mimic an internal re-dispatch through the chain.
	app.Use(m.Handle)
	app.Use(m.Handle)
	app.Get("/protected", auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	token, _, err := tm.Issue("alice", "acct-1", domain.RoleUser)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, repo.getByUsernameCalls, "second pass must not re-authenticate")
}
