package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
)

// Login runs the two-step login: email first, then the pattern. A failed
// step keeps the flow where it is and prompts again: a failed lookup asks
// for the email, a failed verification asks for a new drawing on a blank
// surface. Typing
// "back" at the pattern step returns to the email step; an empty email or
// "cancel" at the drawing prompt ends the command.
func (a *App) Login(ctx context.Context) error {
	a.screen = services.ScreenLogin
	flow := services.NewLoginFlow(a.api, a.sessions, a.logger)

	for {
		switch flow.Step() {
		case services.LoginEmailEntered:
			email, err := getSimpleText(a.reader, "Enter email (empty line to cancel)", a.out)
			if err != nil {
				return err
			}
			if email == "" {
				fmt.Fprintln(a.out, "Login cancelled.")
				return nil
			}
			if err := flow.SubmitEmail(ctx, email); err != nil {
				if !isStepError(err) {
					return err
				}
				a.report(ctx, err)
			}

		case services.LoginAwaitingPattern:
			fmt.Fprintf(a.out, "Draw your pattern for %s.\n", flow.Email())
			surface := a.newSurface(flow.OnPatternChanged)
			surface.Clear()
			action, err := a.drawPattern(ctx, surface, true)
			if err != nil {
				return err
			}
			switch action {
			case drawCancel:
				fmt.Fprintln(a.out, "Login cancelled.")
				return nil
			case drawBack:
				if err := flow.Back(); err != nil {
					return err
				}
				continue
			}

			screen, err := flow.SubmitPattern(ctx)
			if err != nil {
				if !isStepError(err) {
					return err
				}
				a.report(ctx, err)
				continue
			}
			a.screen = screen

		case services.LoginAuthenticated:
			user, _ := flow.User()
			a.user = user
			fmt.Fprintf(a.out, "Login successful! Welcome, %s.\n", user.Name)
			return nil
		}
	}
}

func isStepError(err error) bool {
	var se *services.StepError
	return errors.As(err, &se)
}
