package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/domain"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// RequireAuthenticated rejects requests that reached a protected
// resource with an empty security context.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthenticated()
		}
		return c.Next()
	}
}

// RequireRole allows the request only when the identity's role is among
// the allowed set. An empty context is reported as unauthenticated,
// distinct from an authenticated identity with the wrong role.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated()
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
