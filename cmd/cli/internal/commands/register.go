package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"jobportal-service/internal/client/gateway"
)

type RegisterCmd struct {
	Name        string   `help:"Full name" required:""`
	Email       string   `help:"Email address" required:""`
	Phone       string   `help:"Phone number" required:""`
	Address     string   `help:"Postal address" required:""`
	Password    string   `help:"Password (8 to 32 characters)" required:"" env:"JOBPORTAL_PASSWORD"`
	Role        string   `help:"Account role" required:"" enum:"Job Seeker,Employer"`
	Niche       []string `help:"Preferred job niche, up to three" name:"niche"`
	CoverLetter string   `help:"Cover letter text"`
	Resume      string   `help:"Resume file to upload" type:"existingfile"`
}

func (r *RegisterCmd) Validate() error {
	if len(r.Niche) > 3 {
		return fmt.Errorf("at most three niches can be given")
	}
	return nil
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := newClient(globals)
	if err != nil {
		return err
	}

	form := gateway.RegisterForm{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Password:    r.Password,
		Role:        r.Role,
		CoverLetter: r.CoverLetter,
	}
	niches := append(append([]string(nil), r.Niche...), "", "", "")
	form.FirstNiche, form.SecondNiche, form.ThirdNiche = niches[0], niches[1], niches[2]

	if r.Resume != "" {
		f, err := os.Open(r.Resume)
		if err != nil {
			return fmt.Errorf("failed to open resume: %w", err)
		}
		defer f.Close()
		form.Resume = &gateway.Attachment{FileName: filepath.Base(r.Resume), Content: f}
	}

	res := c.gw.Register(ctx, form)
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
