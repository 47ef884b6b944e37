package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
)

// Welcome shows the stored identity, or sends the user to login when
// Session State is empty.
func (a *App) Welcome(ctx context.Context) error {
	user, screen, err := services.Enter(ctx, a.sessions)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.screen = screen
	if screen != services.ScreenWelcome {
		a.user = models.User{}
		fmt.Fprintln(a.out, "Please log in.")
		return nil
	}

	a.user = user
	fmt.Fprintf(a.out, "Welcome, %s (%s)!\n", user.Name, user.Email)
	return nil
}

// Logout clears Session State.
func (a *App) Logout(ctx context.Context) error {
	screen, err := services.Logout(ctx, a.sessions)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.screen = screen
	a.user = models.User{}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
