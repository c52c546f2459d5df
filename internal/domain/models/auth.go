package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims holds the JWT claims this backend cares about. Subject carries
// the external identity id, Role must be "authenticated".
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
