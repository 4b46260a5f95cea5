package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/quatet/storefront-api/pkg/enums"
)

// AccessTokenClaims represents the typed JWT the platform issues at login.
// The storefront only ever verifies these; minting happens upstream.
type AccessTokenClaims struct {
	UserID   int64          `json:"user_id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name,omitempty"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
