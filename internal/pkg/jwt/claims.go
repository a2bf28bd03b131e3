// internal/pkg/jwt/claims.go
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by a session token
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is an already authenticated user the issuer signs a token for
type Identity struct {
	UserID int64
	Role   string
}

// Credential is a freshly issued token together with the instants it was
// derived from. The cookie transport reads IssuedAt from here so both
// expiries come from one clock reading.
type Credential struct {
	Token     string
	JTI       string
	Subject   int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string) bool {
	if audience == "" {
		return true
	}
	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}
	return false
}
