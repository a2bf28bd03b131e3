package commands

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"jobportal-service/cmd/cli/internal/credentials"
	"jobportal-service/internal/client/gateway"
	"jobportal-service/internal/client/session"
	"jobportal-service/internal/domain/user"

	"go.uber.org/zap"
)

type Globals struct {
	Server  string
	Home    string
	Debug   bool
	Version string
}

// terminalHost resets the in-process session. A CLI has no page to reload,
// so the reset is the whole effect.
type terminalHost struct {
	store *session.Store
	out   io.Writer
}

func (h *terminalHost) HardReset(path string) {
	h.store.Reset()
	fmt.Fprintf(h.out, "Session cleared, back to %s\n", path)
}

// client bundles what every command needs. Cookies are loaded into the
// gateway's jar before a call and written back after it.
type client struct {
	gw        *gateway.Gateway
	store     *session.Store
	creds     *credentials.Store
	serverURL *url.URL
	out       io.Writer
	logger    *zap.Logger
}

func newClient(globals *Globals) (*client, error) {
	logger := zap.NewNop()
	if globals.Debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}

	serverURL, err := url.Parse(strings.TrimRight(globals.Server, "/"))
	if err != nil || serverURL.Scheme == "" || serverURL.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", globals.Server)
	}

	creds, err := credentials.NewStore(globals.Home)
	if err != nil {
		return nil, err
	}

	store := session.NewStore()
	if u, err := creds.LoadIdentity(); err == nil {
		store = session.NewStoreFrom(session.State{IsAuthenticated: true, User: u})
	}

	c := &client{store: store, creds: creds, serverURL: serverURL, out: os.Stdout, logger: logger}
	c.gw, err = gateway.New(serverURL.String(), store,
		gateway.WithHost(&terminalHost{store: store, out: c.out}),
		gateway.WithIdentityCache(creds),
		gateway.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	saved, err := creds.LoadCookies(serverURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	c.gw.Client().Jar.SetCookies(serverURL, saved)

	if globals.Debug {
		store.Subscribe(func(s session.State) {
			logger.Debug("session transition",
				zap.Stringer("phase", s.Phase()),
				zap.Bool("authenticated", s.IsAuthenticated),
				zap.String("error", s.Error),
			)
		})
	}
	return c, nil
}

// persist writes the jar's cookies back and caches the confirmed identity.
func (c *client) persist() error {
	if err := c.creds.SaveCookies(c.serverURL.String(), c.gw.Client().Jar.Cookies(c.serverURL)); err != nil {
		return err
	}
	if s := c.store.State(); s.IsAuthenticated && s.User != nil {
		return c.creds.SaveIdentity(s.User)
	}
	return nil
}

func (c *client) printUser(u *user.User) {
	fmt.Fprintf(c.out, "ID:      %d\n", u.ID)
	fmt.Fprintf(c.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(c.out, "Email:   %s\n", u.Email)
	fmt.Fprintf(c.out, "Role:    %s\n", u.Role)
	if len(u.Niches) > 0 {
		fmt.Fprintf(c.out, "Niches:  %s\n", strings.Join(u.Niches, ", "))
	}
	if u.Resume != nil && u.Resume.URL != "" {
		fmt.Fprintf(c.out, "Resume:  %s\n", u.Resume.URL)
	}
}

// settle turns a failed result into the error kong prints.
func settle[T any](res gateway.Result[T]) error {
	if res.OK() {
		return nil
	}
	return res.Err
}
