package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/api/dto"
	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/service"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		return apperrors.NewValidationError("username, password, role required", nil)
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Username, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": authResponse(account, token, exp),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": authResponse(account, token, exp),
	})
}

// Validate handles POST /auth/validate.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	claims, err := h.auth.ValidateToken(c.Context(), req.Token)
	if err != nil {
		return err
	}

	resp := dto.ValidateResponse{
		Username: claims.RegisteredClaims.Subject,
		Role:     claims.Role,
		Roles:    claims.Roles,
	}
	// Timestamp claims are optional in the wire format.
	if claims.RegisteredClaims.IssuedAt != nil {
		resp.IssuedAt = claims.RegisteredClaims.IssuedAt.Time
	}
	if claims.RegisteredClaims.ExpiresAt != nil {
		resp.ExpiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), identity.Account.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" {
		return apperrors.NewValidationError("username required", nil)
	}

	token, err := h.auth.RequestPasswordReset(c.Context(), req.Username)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{
			"reset_token": token.Token,
			"expires_at":  token.ExpiresAt,
		},
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new password required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

func authResponse(account *domain.Account, token string, exp time.Time) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     token,
		Username:  account.Username,
		Role:      account.Role,
		ExpiresIn: int64(time.Until(exp).Seconds()),
	}
}
