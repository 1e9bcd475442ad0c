package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token issued by the external auth provider. Subject carries the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return strings.TrimSpace(c.Subject)
}

// TokenPayload captures the data available when minting a token.
type TokenPayload struct {
	UserID string
	Email  string
}
