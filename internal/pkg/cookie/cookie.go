// Package cookie defines how a session credential travels to the browser.
package cookie

import (
	"net/http"
	"time"

	"jobportal-service/internal/pkg/jwt"
)

const (
	// Name is the cookie that carries the session token.
	Name = "token"

	millisPerDay int64 = 24 * 60 * 60 * 1000
)

// Policy holds the attributes applied to every session cookie.
type Policy struct {
	ExpireDays int
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// NewPolicy returns the session cookie policy. Secure is only set for
// production deployments since local development usually runs without TLS.
func NewPolicy(expireDays int, production bool) Policy {
	return Policy{
		ExpireDays: expireDays,
		Secure:     production,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ExpiresAt returns issuedAt plus the configured number of days, computed in
// milliseconds.
func (p Policy) ExpiresAt(issuedAt time.Time) time.Time {
	return time.UnixMilli(issuedAt.UnixMilli() + int64(p.ExpireDays)*millisPerDay).In(issuedAt.Location())
}

// For builds the Set-Cookie instruction for a freshly issued credential.
func (p Policy) For(cred *jwt.Credential) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    cred.Token,
		Path:     p.Path,
		Expires:  p.ExpiresAt(cred.IssuedAt),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// Cleared builds the instruction that removes the session cookie.
func (p Policy) Cleared(now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     p.Path,
		Expires:  now,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// Set issues the session cookie for cred.
func (p Policy) Set(w http.ResponseWriter, cred *jwt.Credential) {
	http.SetCookie(w, p.For(cred))
}

// Clear removes the session cookie from the client.
func (p Policy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, p.Cleared(time.Now()))
}
