package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

// AuthService verifies session tokens minted by the external identity
// provider. Login, refresh and account management live with the provider;
// this API only needs to know whether a caller holds a valid session.
type AuthService struct {
	secret string
	logger *zap.Logger
}

// NewAuthService constructs the token verifier.
func NewAuthService(secret string, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{secret: secret, logger: logger}
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
