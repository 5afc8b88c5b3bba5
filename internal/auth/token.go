package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/employee-records/internal/domain"
)

// ErrMalformedToken reports a token that is structurally unparsable or
// whose signature does not verify against the configured secret.
var ErrMalformedToken = errors.New("malformed token")

// Status is the outcome of validating a token against an expected subject.
// Every branch of the decision is visible as its own value; Validate
// never signals through errors.
type Status int

const (
	StatusValid Status = iota
	StatusMalformed
	StatusSignatureMismatch
	StatusExpired
	StatusSubjectMismatch
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusMalformed:
		return "malformed"
	case StatusSignatureMismatch:
		return "signature_mismatch"
	case StatusExpired:
		return "expired"
	case StatusSubjectMismatch:
		return "subject_mismatch"
	default:
		return "unknown"
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string      `json:"uid,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	Roles  []string    `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed identity tokens. The secret
// and lifetime are fixed at construction; issuance and validation are
// pure computations over them, safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Tests use this to walk a token
// across its expiry boundary.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Issue builds and signs a token for the subject. Issued-at comes from
// the manager's clock, so tokens minted at distinct instants differ
// textually even for identical claims.
func (tm *TokenManager) Issue(subject, userID string, role domain.Role) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Roles:  role.Authorities(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ExtractClaims parses and signature-verifies the token and returns its
// claims. Claim validity is deliberately not checked here: an expired
// but authentic token still yields its claims, so the caller can decide
// freshness separately via Validate.
func (tm *TokenManager) ExtractClaims(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, tm.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// ExtractSubject returns the subject claim of an authentic token.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.RegisteredClaims.Subject, nil
}

// Validate judges a token against an expected subject. The token is
// valid only while the clock is strictly before its expiry and the
// subject claim matches exactly (case-sensitive).
func (tm *TokenManager) Validate(tokenStr, expectedSubject string) Status {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, tm.keyFunc, jwt.WithTimeFunc(tm.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return StatusSignatureMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return StatusExpired
		default:
			return StatusMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return StatusMalformed
	}
	if claims.RegisteredClaims.Subject != expectedSubject {
		return StatusSubjectMismatch
	}
	return StatusValid
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return tm.secret, nil
}
