package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobportal-service/internal/client/gateway"
	"jobportal-service/internal/client/session"
	"jobportal-service/internal/pkg/cookie"
	"jobportal-service/internal/pkg/jwt"
	"jobportal-service/internal/repository/memory"
	authUsecase "jobportal-service/internal/service/auth"
	"jobportal-service/internal/service/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type resetCounter struct{ paths []string }

func (r *resetCounter) HardReset(path string) { r.paths = append(r.paths, path) }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := jwt.NewManager(jwt.Config{Secret: "e2e-secret", Issuer: "jobportal", ExpireDays: 7})
	require.NoError(t, err)

	resumes, err := upload.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	svc := authUsecase.NewAuthService(memory.NewUserRepository(), mgr, zap.NewNop(),
		authUsecase.WithHashCost(bcrypt.MinCost),
		authUsecase.WithResumeStore(resumes),
	)

	srv := httptest.NewServer(NewHandler(Deps{
		AuthService: svc,
		Cookies:     cookie.NewPolicy(7, false),
		Origins:     []string{"http://localhost:5173"},
		UploadDir:   resumes.Dir(),
		Logger:      zap.NewNop(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	for path, msg := range map[string]string{
		"/":       "Job Portal Backend is running!",
		"/health": "Health check passed",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, msg, body["message"])
		require.Equal(t, "OK", body["status"])
	}

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreflightAllowsCredentials(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/user/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

// The gateway and the server agree on the cookie contract end to end.
func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	store := session.NewStore()
	host := &resetCounter{}
	gw, err := gateway.New(srv.URL, store, gateway.WithHost(host))
	require.NoError(t, err)

	res := gw.FetchCurrentUser(ctx)
	require.False(t, res.OK())
	require.Equal(t, "User is not authenticated.", store.State().Error)

	reg := gw.Register(ctx, gateway.RegisterForm{
		Name:       "Ada Seeker",
		Email:      "ada@example.com",
		Phone:      "0712345678",
		Address:    "Nairobi",
		Password:   "s3cretpass",
		Role:       "Job Seeker",
		FirstNiche: "Backend",
		Resume:     &gateway.Attachment{FileName: "cv.pdf", Content: strings.NewReader("%PDF")},
	})
	require.True(t, reg.OK(), "%v", reg.Err)
	require.Equal(t, "User registered.", reg.Value.Message)
	require.True(t, store.State().IsAuthenticated)

	login := gw.Login(ctx, gateway.Credentials{Email: "ada@example.com", Password: "bad-password", Role: "Job Seeker"})
	require.False(t, login.OK())
	require.Equal(t, "Invalid email or password.", store.State().Error)
	require.False(t, store.State().IsAuthenticated)

	// The cookie from registration is still in the jar.
	me := gw.FetchCurrentUser(ctx)
	require.True(t, me.OK(), "%v", me.Err)
	require.Equal(t, "ada@example.com", store.State().User.Email)
	require.Empty(t, store.State().Message)

	out := gw.Logout(ctx)
	require.True(t, out.OK(), "%v", out.Err)
	require.Equal(t, []string{"/"}, host.paths)
	require.False(t, store.State().IsAuthenticated)

	again := gw.FetchCurrentUser(ctx)
	require.False(t, again.OK())
	require.Equal(t, http.StatusUnauthorized, again.Err.Status)

	second := gw.Logout(ctx)
	require.False(t, second.OK())
	require.Equal(t, "User is not authenticated.", store.State().Error)
	require.Len(t, host.paths, 1)
}
