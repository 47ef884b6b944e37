package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
)

// Register collects a name, an email and a drawn pattern and submits them.
// On success the user is sent to login. A missing drawing brings the drawing
// prompt back; a rejected or failed submission offers a retry with the same
// form and drawing.
func (a *App) Register(ctx context.Context) error {
	a.screen = services.ScreenRegister
	flow := services.NewRegistrationFlow(a.api, a.logger)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	surface := a.newSurface(flow.OnPatternChanged)
	fmt.Fprintln(a.out, "Draw your security pattern.")
	for {
		action, err := a.drawPattern(ctx, surface, false)
		if err != nil {
			return err
		}
		if action == drawCancel {
			fmt.Fprintln(a.out, "Registration cancelled.")
			return nil
		}

		screen, err := flow.Submit(ctx, name, email)
		if err == nil {
			a.screen = screen
			fmt.Fprintln(a.out, "Registration successful! Please log in.")
			return nil
		}

		var se *services.StepError
		if !errors.As(err, &se) {
			return err
		}
		a.report(ctx, err)
		if se.Kind == services.KindValidation {
			continue
		}

		again, rerr := getSimpleText(a.reader, "Try again? (y/n)", a.out)
		if rerr != nil {
			return rerr
		}
		if !strings.EqualFold(again, "y") {
			return err
		}
	}
}
