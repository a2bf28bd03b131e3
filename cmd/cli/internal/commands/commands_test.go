package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobportal-service/cmd/cli/internal/credentials"
	"jobportal-service/internal/app"
	"jobportal-service/internal/pkg/cookie"
	"jobportal-service/internal/pkg/jwt"
	"jobportal-service/internal/repository/memory"
	authUsecase "jobportal-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := jwt.NewManager(jwt.Config{Secret: "cli-secret", Issuer: "jobportal", ExpireDays: 1})
	require.NoError(t, err)

	svc := authUsecase.NewAuthService(memory.NewUserRepository(), mgr, zap.NewNop(),
		authUsecase.WithHashCost(bcrypt.MinCost))

	srv := httptest.NewServer(app.NewHandler(testDeps(svc)))
	t.Cleanup(srv.Close)
	return srv
}

func testDeps(svc *authUsecase.AuthService) app.Deps {
	return app.Deps{
		AuthService: svc,
		Cookies:     cookie.NewPolicy(1, false),
		Logger:      zap.NewNop(),
	}
}

func TestCommandsKeepSessionAcrossRuns(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	globals := &Globals{Server: srv.URL, Home: t.TempDir()}

	register := &RegisterCmd{
		Name:     "Lin Employer",
		Email:    "lin@example.com",
		Phone:    "0700000000",
		Address:  "Mombasa",
		Password: "s3cretpass",
		Role:     "Employer",
	}
	require.NoError(t, register.Validate())
	require.NoError(t, register.Run(ctx, globals))

	creds, err := credentials.NewStore(globals.Home)
	require.NoError(t, err)
	u, err := creds.LoadIdentity()
	require.NoError(t, err)
	assert.Equal(t, "lin@example.com", u.Email)

	// A fresh process picks up the stored cookie.
	require.NoError(t, (&WhoamiCmd{}).Run(ctx, globals))
	require.NoError(t, (&WhoamiCmd{Offline: true}).Run(ctx, globals))

	require.NoError(t, (&LogoutCmd{}).Run(ctx, globals))
	_, err = creds.LoadIdentity()
	require.ErrorIs(t, err, credentials.ErrNoIdentity)

	err = (&WhoamiCmd{}).Run(ctx, globals)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User is not authenticated.")

	require.Error(t, (&LoginCmd{Email: "lin@example.com", Password: "wrong-pass", Role: "Employer"}).Run(ctx, globals))
	require.NoError(t, (&LoginCmd{Email: "lin@example.com", Password: "s3cretpass", Role: "Employer"}).Run(ctx, globals))
}

func employer() *RegisterCmd {
	return &RegisterCmd{
		Name:     "Lin Employer",
		Email:    "lin@example.com",
		Phone:    "0700000000",
		Address:  "Mombasa",
		Password: "s3cretpass",
		Role:     "Employer",
	}
}

func TestWhoamiDropsRejectedSession(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	globals := &Globals{Server: srv.URL, Home: t.TempDir()}

	require.NoError(t, employer().Run(ctx, globals))

	creds, err := credentials.NewStore(globals.Home)
	require.NoError(t, err)
	require.NoError(t, creds.SaveCookies(srv.URL, []*http.Cookie{{Name: cookie.Name, Value: "expired"}}))

	err = (&WhoamiCmd{}).Run(ctx, globals)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired token.")

	_, err = creds.LoadIdentity()
	require.ErrorIs(t, err, credentials.ErrNoIdentity)
	require.Error(t, (&WhoamiCmd{Offline: true}).Run(ctx, globals))
}

func TestWhoamiKeepsIdentityWhenServerUnreachable(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	globals := &Globals{Server: srv.URL, Home: t.TempDir()}

	require.NoError(t, employer().Run(ctx, globals))
	srv.Close()

	require.Error(t, (&WhoamiCmd{}).Run(ctx, globals))
	require.NoError(t, (&WhoamiCmd{Offline: true}).Run(ctx, globals))
}

func TestRegisterRejectsTooManyNiches(t *testing.T) {
	r := &RegisterCmd{Niche: []string{"a", "b", "c", "d"}}
	require.Error(t, r.Validate())
}
