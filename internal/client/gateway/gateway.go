// Package gateway performs the auth HTTP calls and drives the session store
// through exactly one settling transition per call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"jobportal-service/internal/client/session"
	"jobportal-service/internal/domain/user"

	"go.uber.org/zap"
)

const (
	registerPath = "/api/v1/user/register"
	loginPath    = "/api/v1/user/login"
	getUserPath  = "/api/v1/user/getuser"
	logoutPath   = "/api/v1/user/logout"

	fetchedMessage = "User fetched successfully"
	maxBodyBytes   = 1 << 20
)

// Dispatcher applies session transitions. *session.Store implements it.
type Dispatcher interface {
	Dispatch(e session.Event) session.State
}

// Host is the application shell. HardReset throws away all in-memory client
// state and navigates to path.
type Host interface {
	HardReset(path string)
}

// IdentityCache holds locally cached identity markers.
type IdentityCache interface {
	Clear() error
}

// RegisterForm is sent as multipart so a resume can ride along.
type RegisterForm struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	Password    string
	Role        string
	FirstNiche  string
	SecondNiche string
	ThirdNiche  string
	CoverLetter string
	Resume      *Attachment
}

// Attachment is a file part of a multipart form.
type Attachment struct {
	FileName string
	Content  io.Reader
}

// Credentials is the JSON login body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Gateway struct {
	baseURL string
	client  *http.Client
	store   Dispatcher
	host    Host
	cache   IdentityCache
	logger  *zap.Logger
}

type Option func(*Gateway)

// WithHTTPClient uses c for every call. A client without a cookie jar gets
// one, since the session cookie must be included on every request.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

func WithHost(h Host) Option {
	return func(g *Gateway) { g.host = h }
}

func WithIdentityCache(c IdentityCache) Option {
	return func(g *Gateway) { g.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func New(baseURL string, store Dispatcher, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.client == nil {
		g.client = &http.Client{Timeout: 30 * time.Second}
	}
	if g.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c := *g.client
		c.Jar = jar
		g.client = &c
	}
	return g, nil
}

// Client exposes the underlying HTTP client and its cookie jar.
func (g *Gateway) Client() *http.Client {
	return g.client
}

// Register submits the registration form.
func (g *Gateway) Register(ctx context.Context, form RegisterForm) Result[Payload] {
	return g.authenticate(ctx, func() (*http.Request, error) {
		body, contentType, err := encodeRegisterForm(form)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+registerPath, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}, nil)
}

// Login posts the credentials as JSON.
func (g *Gateway) Login(ctx context.Context, creds Credentials) Result[Payload] {
	return g.authenticate(ctx, func() (*http.Request, error) {
		raw, err := json.Marshal(creds)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+loginPath, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, nil)
}

// FetchCurrentUser rehydrates the session from the cookie. The server's
// message is replaced since this is not a user-facing event.
func (g *Gateway) FetchCurrentUser(ctx context.Context) Result[Payload] {
	return g.authenticate(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+getUserPath, nil)
	}, func(p Payload) Payload {
		return Payload{User: p.User, Message: fetchedMessage}
	})
}

// Logout ends the session. On success the local identity cache is cleared
// and the host is hard reset to "/". On failure nothing but the error
// changes.
func (g *Gateway) Logout(ctx context.Context) Result[string] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+logoutPath, nil)
	if err != nil {
		authErr := buildError(err)
		g.store.Dispatch(session.LogoutFailed{Message: authErr.Message})
		return fail[string](authErr)
	}

	// Any 2xx ends the session, whatever the body holds.
	resp, authErr := g.send(req)
	if authErr == nil {
		authErr = resp.failure()
	}
	if authErr != nil {
		g.store.Dispatch(session.LogoutFailed{Message: authErr.Message})
		return fail[string](authErr)
	}

	g.store.Dispatch(session.LoggedOut{})
	if g.cache != nil {
		if err := g.cache.Clear(); err != nil {
			g.logger.Warn("failed to clear identity cache", zap.Error(err))
		}
	}
	if g.host != nil {
		g.host.HardReset("/")
	}
	return ok(resp.env.Message)
}

// authenticate runs the shared protocol: RequestStarted, the call, then
// either Succeeded followed by ErrorsCleared or a single Failed.
func (g *Gateway) authenticate(ctx context.Context, build func() (*http.Request, error), normalize func(Payload) Payload) Result[Payload] {
	g.store.Dispatch(session.RequestStarted{})

	req, err := build()
	if err != nil {
		authErr := buildError(err)
		g.store.Dispatch(session.Failed{Message: authErr.Message})
		return fail[Payload](authErr)
	}

	res := g.do(req)
	if res.OK() && res.Value.User == nil {
		res = fail[Payload](&AuthError{Kind: KindRequest, Message: session.MissingUserMessage})
	}
	if !res.OK() {
		g.store.Dispatch(session.Failed{Message: res.Err.Message})
		return res
	}

	p := res.Value
	if normalize != nil {
		p = normalize(p)
	}
	g.store.Dispatch(session.Succeeded{User: p.User, Message: p.Message})
	g.store.Dispatch(session.ErrorsCleared{})
	return ok(p)
}

type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

// reply is a received response with its body decoded as far as possible.
type reply struct {
	status    int
	env       envelope
	decodeErr error
}

// failure reports a non-2xx reply. The message comes from the body and
// falls back to the status text.
func (r *reply) failure() *AuthError {
	if r.status >= 200 && r.status <= 299 {
		return nil
	}
	msg := r.env.Message
	if r.decodeErr != nil || msg == "" {
		msg = http.StatusText(r.status)
	}
	return &AuthError{Kind: KindRequest, Status: r.status, Message: msg}
}

func (g *Gateway) send(req *http.Request) (*reply, *AuthError) {
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("auth request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(err)
	}

	r := &reply{status: resp.StatusCode}
	r.decodeErr = json.Unmarshal(raw, &r.env)
	return r, nil
}

// do performs req and normalizes every outcome into a Result.
func (g *Gateway) do(req *http.Request) Result[Payload] {
	r, authErr := g.send(req)
	if authErr == nil {
		authErr = r.failure()
	}
	if authErr != nil {
		return fail[Payload](authErr)
	}
	if r.decodeErr != nil {
		return fail[Payload](&AuthError{
			Kind:    KindRequest,
			Status:  r.status,
			Message: "Malformed response from server.",
		})
	}

	return ok(Payload{User: r.env.User, Message: r.env.Message, Token: r.env.Token})
}

func transportError(err error) *AuthError {
	return &AuthError{Kind: KindTransport, Message: "Network error: " + err.Error()}
}

// buildError covers requests that could not be constructed. No response
// exists, so it is reported like a transport failure.
func buildError(err error) *AuthError {
	return &AuthError{Kind: KindTransport, Message: "Could not send request: " + err.Error()}
}

func encodeRegisterForm(f RegisterForm) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"password", f.Password},
		{"role", f.Role},
		{"firstNiche", f.FirstNiche},
		{"secondNiche", f.SecondNiche},
		{"thirdNiche", f.ThirdNiche},
		{"coverLetter", f.CoverLetter},
	}
	for _, fld := range fields {
		if fld.value == "" {
			continue
		}
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}

	if f.Resume != nil {
		part, err := w.CreateFormFile("resume", f.Resume.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Resume.Content); err != nil {
			return nil, "", fmt.Errorf("failed to read resume: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
