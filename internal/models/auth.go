package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload minted by the external identity provider.
// This service only verifies tokens; it never issues them.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
