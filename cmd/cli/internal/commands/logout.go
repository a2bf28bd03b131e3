package commands

import (
	"context"
	"fmt"
)

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := newClient(globals)
	if err != nil {
		return err
	}

	res := c.gw.Logout(ctx)
	if err := settle(res); err != nil {
		// The stored session is kept so the user can retry.
		return err
	}
	if err := c.persist(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, res.Value)
	return nil
}
