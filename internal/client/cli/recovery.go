package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
)

// Forgot runs pattern recovery. The same surface is kept across retries so
// an empty line at the drawing prompt resubmits the previous drawing.
func (a *App) Forgot(ctx context.Context) error {
	a.screen = services.ScreenForgotPattern
	flow := services.NewRecoveryFlow(a.api, a.logger)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := flow.RequestCode(ctx, email); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, flow.Notice())

	surface := a.newSurface(flow.OnPatternChanged)
	for {
		code, err := getSecret(a.reader, "Enter reset code", a.out)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.out, "Draw your new pattern.")
		action, err := a.drawPattern(ctx, surface, false)
		if err != nil {
			return err
		}
		if action == drawCancel {
			fmt.Fprintln(a.out, "Recovery cancelled.")
			return nil
		}

		screen, err := flow.SubmitReset(ctx, code)
		if err == nil {
			a.screen = screen
			fmt.Fprintln(a.out, flow.Notice())
			return nil
		}
		a.report(ctx, err)

		again, rerr := getSimpleText(a.reader, "Try again? (y/n)", a.out)
		if rerr != nil {
			return rerr
		}
		if !strings.EqualFold(again, "y") {
			return err
		}
	}
}
