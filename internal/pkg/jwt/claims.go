// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes.
const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

// Claims carried by every signed token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token was issued for the given role.
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}
	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}
	return false
}
