// internal/pkg/jwt/generator.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const day = 24 * time.Hour

type Generator struct {
	secret     []byte
	issuer     string
	audience   string
	expireDays int
	now        func() time.Time
}

func NewGenerator(secret []byte, issuer, audience string, expireDays int) *Generator {
	return &Generator{
		secret:     secret,
		issuer:     issuer,
		audience:   audience,
		expireDays: expireDays,
		now:        time.Now,
	}
}

// TTL is the lifetime of every issued token.
func (g *Generator) TTL() time.Duration {
	return time.Duration(g.expireDays) * day
}

// Issue signs a token for an authenticated identity.
func (g *Generator) Issue(identity Identity) (*Credential, error) {
	if len(g.secret) == 0 {
		return nil, fmt.Errorf("jwt generator has no signing secret")
	}

	// The exp claim and the cookie Expires header both carry whole seconds.
	now := g.now().Truncate(time.Second)
	expiresAt := now.Add(g.TTL())
	jti := ulid.Make().String()

	claims := &Claims{
		UserID: identity.UserID,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   fmt.Sprintf("%d", identity.UserID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	if g.audience != "" {
		claims.Audience = []string{g.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Credential{
		Token:     signed,
		JTI:       jti,
		Subject:   identity.UserID,
		Role:      identity.Role,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}
