package commands

import (
	"context"
	"fmt"
	"net/http"

	"jobportal-service/internal/client/gateway"

	"go.uber.org/zap"
)

type WhoamiCmd struct {
	Offline bool `help:"Print the cached identity without asking the server"`
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := newClient(globals)
	if err != nil {
		return err
	}

	if w.Offline {
		s := c.store.State()
		if !s.IsAuthenticated {
			return fmt.Errorf("not logged in")
		}
		c.printUser(s.User)
		return nil
	}

	res := c.gw.FetchCurrentUser(ctx)
	if rejected(res.Err) {
		if err := c.creds.Clear(); err != nil {
			c.logger.Warn("failed to clear rejected session", zap.Error(err))
		}
	}
	if err := settle(res); err != nil {
		return err
	}
	if err := c.persist(); err != nil {
		return err
	}

	c.printUser(res.Value.User)
	return nil
}

// rejected reports whether the server refused the stored session.
func rejected(err *gateway.AuthError) bool {
	return err != nil && err.Kind == gateway.KindRequest && err.Status == http.StatusUnauthorized
}
