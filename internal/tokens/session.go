package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/securebank/portal/internal/models"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the signed payload of the portal session cookie.
type SessionClaims struct {
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the decoded, normalized identity attached to a request.
type Session struct {
	AccountID   string
	DisplayName string
	Email       string
	Role        string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// NormalizeRole coerces any claim outside the three known roles to "user",
// so a forged or corrupted claim can never elevate privilege.
func NormalizeRole(role string) string {
	if models.KnownRole(role) {
		return role
	}
	return models.RoleUser
}

// Issue signs a session token for the account. TTL is fixed from issuance,
// not renewed on activity.
func Issue(account *models.Account, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := SessionClaims{
		DisplayName: account.DisplayName,
		Email:       account.Email,
		Role:        account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// SessionFromToken validates the raw token and returns the session it
// carries. Missing, malformed, expired and tampered tokens all come back as
// an error; callers must treat every failure as "not authenticated".
func SessionFromToken(raw string, secret []byte) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	s := &Session{
		AccountID:   claims.Subject,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		Role:        NormalizeRole(claims.Role),
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}
