package main

import (
	"context"
	"os"
	"os/signal"

	"jobportal-service/cmd/cli/internal/commands"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Register commands.RegisterCmd `cmd:"" help:"Create an account and start a session"`
		Login    commands.LoginCmd    `cmd:"" help:"Log in and store the session cookie"`
		Whoami   commands.WhoamiCmd   `cmd:"" help:"Show the user behind the stored session"`
		Logout   commands.LogoutCmd   `cmd:"" help:"End the session and clear local state"`
		Server   string               `help:"API base URL" default:"http://localhost:4000" env:"JOBPORTAL_SERVER"`
		Home     string               `help:"Directory for the stored session (default ~/.jobportal)" env:"JOBPORTAL_HOME"`
		Debug    bool                 `help:"Enable debug mode."`
		Version  kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("jobportal"),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Server:  cli.Server,
		Home:    cli.Home,
		Debug:   cli.Debug,
		Version: version,
	})
	cmd.FatalIfErrorf(err)
}
