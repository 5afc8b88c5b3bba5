package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/repository"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

const identityKey = "auth_identity"

// The prefix match is case-sensitive: "bearer" or "Basic" schemes are
// treated the same as a missing header.
const bearerPrefix = "Bearer "

// Identity is the per-request security context. The middleware populates
// it at most once per request; it is never overwritten.
type Identity struct {
	Account     *domain.Account
	Role        domain.Role
	Authorities []string
}

// Middleware resolves bearer tokens into a request identity. It never
// blocks the pipeline: every non-infrastructure failure leaves the
// request unauthenticated and lets the access decision downstream
// reject it if the resource requires identity.
type Middleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, accounts repository.AccountRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts, logger: logger}
}

// Handle runs once per inbound request, ahead of protected handlers.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if _, ok := IdentityFromContext(c); ok {
		// Already authenticated on an internal re-dispatch.
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return c.Next()
	}
	tokenStr := header[len(bearerPrefix):]

	subject, err := m.tokens.ExtractSubject(tokenStr)
	if err != nil {
		m.logger.Debug("bearer token rejected", zap.Error(err))
		return c.Next()
	}

	account, err := m.accounts.GetByUsername(c.Context(), subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Next()
		}
		// Directory infrastructure failure is not a security decision.
		return apperrors.MapError(err)
	}
	if !account.Enabled {
		return c.Next()
	}

	if status := m.tokens.Validate(tokenStr, subject); status != StatusValid {
		m.logger.Debug("bearer token rejected",
			zap.String("subject", subject),
			zap.String("status", status.String()),
		)
		return c.Next()
	}

	c.Locals(identityKey, &Identity{
		Account:     account,
		Role:        account.Role,
		Authorities: account.Role.Authorities(),
	})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
