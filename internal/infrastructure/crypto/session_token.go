// Package crypto implements password hashing and session token signing.
package crypto

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/service"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// tokenClaims is the wire shape of a session token. The tenant binding
// travels in a private claim next to the registered ones.
type tokenClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// SessionTokenManager signs and validates HS256 bearer tokens carrying the
// subject email and tenant binding.
type SessionTokenManager struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
	logger   logger.Logger
}

// NewSessionTokenManager creates the token manager from session config.
func NewSessionTokenManager(cfg *config.SessionConfig, log logger.Logger) service.SessionService {
	return &SessionTokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		tokenTTL: cfg.TokenTTL,
		logger:   log.WithComponent("session_token"),
	}
}

// Issue signs a token for the email bound to the tenant.
func (m *SessionTokenManager) Issue(ctx context.Context, email, tenantID string) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		m.logger.Error(ctx, "Failed to sign session token", err)
		return "", apperrors.ErrInternal("token signing failed").WithCause(err)
	}
	return signed, nil
}

// Validate parses and verifies the token. Signature, algorithm, issuer, and
// expiry failures all collapse to the same generic auth error so callers
// cannot distinguish why a token was rejected. The audience claim is not
// checked.
func (m *SessionTokenManager) Validate(ctx context.Context, token string) (*models.SessionClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, apperrors.ErrAuth()
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, apperrors.ErrAuth()
	}

	return &models.SessionClaims{
		Email:    claims.Subject,
		TenantID: claims.TenantID,
	}, nil
}
