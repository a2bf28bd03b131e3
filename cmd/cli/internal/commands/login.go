package commands

import (
	"context"
	"fmt"

	"jobportal-service/internal/client/gateway"
)

type LoginCmd struct {
	Email    string `help:"Email address" required:""`
	Password string `help:"Password" required:"" env:"JOBPORTAL_PASSWORD"`
	Role     string `help:"Account role" required:"" enum:"Job Seeker,Employer"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := newClient(globals)
	if err != nil {
		return err
	}

	res := c.gw.Login(ctx, gateway.Credentials{Email: l.Email, Password: l.Password, Role: l.Role})
	if err := settle(res); err != nil {
		return err
	}
	if err := c.persist(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, res.Value.Message)
	c.printUser(res.Value.User)
	return nil
}
