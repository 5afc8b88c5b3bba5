package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/config"
	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/repository"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// AuthService coordinates registration, login and token validation.
type AuthService struct {
	accounts   repository.AccountRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo       repository.AccountRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates a new account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.Account, string, time.Time, error) {
	if !role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(account.Username, account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventAccountRegistered, account.Username, &account.ID, &account.Role,
		events.AccountRegisteredPayload{Username: account.Username, Role: account.Role})
	return account, token, exp, nil
}

// Login verifies credentials and issues a token. An unknown username, a
// disabled account and a wrong password all collapse to the same
// failure so callers cannot enumerate usernames. Repository failures
// other than not-found propagate unchanged.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, s.loginFailed(ctx, username)
		}
		return nil, "", time.Time{}, err
	}
	if !account.Enabled {
		return nil, "", time.Time{}, s.loginFailed(ctx, username)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, s.loginFailed(ctx, username)
	}

	token, exp, err := s.tokenMgr.Issue(account.Username, account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, account.Username, &account.ID, &account.Role,
		events.LoginPayload{Username: account.Username, Success: true})
	return account, token, exp, nil
}

// ValidateToken decodes a presented token and judges it against its own
// subject claim.
func (s *AuthService) ValidateToken(_ context.Context, tokenStr string) (*auth.Claims, error) {
	claims, err := s.tokenMgr.ExtractClaims(tokenStr)
	if err != nil {
		return nil, apperrors.NewDomainError("TOKEN_INVALID", "invalid or expired token", 401, nil)
	}
	if status := s.tokenMgr.Validate(tokenStr, claims.RegisteredClaims.Subject); status != auth.StatusValid {
		return nil, apperrors.NewDomainError("TOKEN_INVALID", "invalid or expired token", 401, nil)
	}
	return claims, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return apperrors.NewAuthenticationFailed()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, account.Username, &account.ID, &account.Role, nil)
	return nil
}

// RequestPasswordReset persists a reset token for the account. The
// caller is told nothing about whether the username exists: an unknown
// username receives a decoy token that is never persisted, so the
// response is indistinguishable from a real one. Only repository
// failures other than not-found propagate.
func (s *AuthService) RequestPasswordReset(ctx context.Context, username string) (*repository.PasswordResetToken, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &repository.PasswordResetToken{
				Token:     uuid.NewString(),
				ExpiresAt: time.Now().Add(s.resetTTL),
			}, nil
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, account.Username, &account.ID, &account.Role, nil)
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) loginFailed(ctx context.Context, username string) error {
	s.publish(ctx, events.EventLoginFailed, username, nil, nil,
		events.LoginPayload{Username: username, Success: false})
	return apperrors.NewAuthenticationFailed()
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, accountID *string, role *domain.Role, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Actor:     events.Actor{AccountID: accountID, Role: role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
