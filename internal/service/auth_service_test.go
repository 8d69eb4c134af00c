package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

func signTestToken(t *testing.T, secret string, method jwt.SigningMethod, expiry time.Time) string {
	t.Helper()
	claims := models.SessionClaims{
		UserID: "user-1",
		Email:  "admin@example.org",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService("top-secret", zap.NewNop())
	token := signTestToken(t, "top-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.org", claims.Email)
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService("top-secret", zap.NewNop())
	token := signTestToken(t, "other-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	_, err := svc.ValidateToken(token)
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService("top-secret", zap.NewNop())
	token := signTestToken(t, "top-secret", jwt.SigningMethodHS256, time.Now().Add(-time.Minute))

	_, err := svc.ValidateToken(token)
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)
}

func TestAuthServiceRejectsGarbage(t *testing.T) {
	svc := NewAuthService("top-secret", zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)
}
