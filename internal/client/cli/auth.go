package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) SignUp(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.auth.SignUp(ctx, username, password, email); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return nil
	}
	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	mode, err := a.auth.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return nil
	}

	a.online.Store(mode == services.ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", username, mode)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", p.Username, p.Email)
	return nil
}
