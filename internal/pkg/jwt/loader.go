// internal/pkg/jwt/loader.go
package jwt

import (
	"time"

	xerrors "jobportal-service/internal/pkg/errors"
)

type Config struct {
	Secret     string
	Issuer     string
	Audience   string
	ExpireDays int
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

// NewManager validates the static token configuration and builds the
// generator/verifier pair. Errors are always *xerrors.ConfigurationError.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, xerrors.NewConfigurationError("JWT_SECRET_KEY", "signing secret is not set")
	}
	if cfg.ExpireDays <= 0 {
		return nil, xerrors.NewConfigurationError("JWT_EXPIRE", "token expiry must be a positive number of days")
	}

	secret := []byte(cfg.Secret)
	return &Manager{
		Generator: NewGenerator(secret, cfg.Issuer, cfg.Audience, cfg.ExpireDays),
		Verifier:  NewVerifier(secret, cfg.Issuer, cfg.Audience),
	}, nil
}

// WithClock pins both halves to the given clock.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.Generator.now = now
	m.Verifier.now = now
	return m
}
