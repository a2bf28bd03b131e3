package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	xerrors "jobportal-service/internal/pkg/errors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestManager(t *testing.T, days int) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: "test-secret", Issuer: "jobportal", ExpireDays: days})
	require.NoError(t, err)
	return m
}

func TestNewManager_configuration(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		m, err := NewManager(Config{ExpireDays: 7})
		require.Nil(t, m)
		require.True(t, xerrors.IsConfigurationError(err))
		require.Contains(t, err.Error(), "JWT_SECRET_KEY")
	})

	t.Run("missing expiry", func(t *testing.T) {
		m, err := NewManager(Config{Secret: "s"})
		require.Nil(t, m)
		require.True(t, xerrors.IsConfigurationError(err))
		require.Contains(t, err.Error(), "JWT_EXPIRE")
	})
}

func TestIssue(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 30, 15, 250_000_000, time.UTC)
	m := newTestManager(t, 7).WithClock(fixedClock(issued))

	cred, err := m.Generator.Issue(Identity{UserID: 42, Role: "Employer"})
	require.NoError(t, err)

	require.NotEmpty(t, cred.Token)
	require.NotEmpty(t, cred.JTI)
	require.Equal(t, int64(42), cred.Subject)
	require.Equal(t, issued.Truncate(time.Second), cred.IssuedAt)
	require.Equal(t, cred.IssuedAt.Add(7*24*time.Hour), cred.ExpiresAt)

	claims, err := m.Verifier.Verify(cred.Token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "Employer", claims.Role)
	require.Equal(t, cred.JTI, claims.ID)
	require.Equal(t, cred.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestIssue_uniqueIDs(t *testing.T) {
	m := newTestManager(t, 1)

	a, err := m.Generator.Issue(Identity{UserID: 1})
	require.NoError(t, err)
	b, err := m.Generator.Issue(Identity{UserID: 1})
	require.NoError(t, err)

	require.NotEqual(t, a.JTI, b.JTI)
}

func TestVerify_expired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestManager(t, 1).WithClock(fixedClock(issued))

	cred, err := m.Generator.Issue(Identity{UserID: 9})
	require.NoError(t, err)

	m.Verifier.now = fixedClock(issued.Add(25 * time.Hour))
	_, err = m.Verifier.Verify(cred.Token)
	require.Error(t, err)
	require.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestVerify_wrongSecret(t *testing.T) {
	cred, err := newTestManager(t, 1).Generator.Issue(Identity{UserID: 3})
	require.NoError(t, err)

	other, err := NewManager(Config{Secret: "another-secret", Issuer: "jobportal", ExpireDays: 1})
	require.NoError(t, err)

	_, err = other.Verifier.Verify(cred.Token)
	require.Error(t, err)
}

func TestVerify_rejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 5, RegisteredClaims: gojwt.RegisteredClaims{Issuer: "jobportal"}}
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager(t, 1).Verifier.Verify(unsigned)
	require.Error(t, err)
}

func TestVerify_wrongIssuer(t *testing.T) {
	other, err := NewManager(Config{Secret: "test-secret", Issuer: "someone-else", ExpireDays: 1})
	require.NoError(t, err)
	cred, err := other.Generator.Issue(Identity{UserID: 3})
	require.NoError(t, err)

	_, err = newTestManager(t, 1).Verifier.Verify(cred.Token)
	require.Error(t, err)
}
