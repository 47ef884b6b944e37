package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
)

const (
	patternClear  = "clear"
	patternBack   = "back"
	patternCancel = "cancel"
)

// drawAction is how the user left the drawing prompt.
type drawAction int

const (
	drawDone drawAction = iota
	drawBack
	drawCancel
)

// drawPattern lets the user build a drawing on s from stroke scripts. Each
// path replays its strokes on top of what is already there; "clear" erases
// the surface; "cancel" abandons the command; an empty line finishes. With
// allowBack, "back" is accepted as well.
//
// An unreadable script is reported and the prompt repeats.
func (a *App) drawPattern(ctx context.Context, s *capture.Surface, allowBack bool) (drawAction, error) {
	prompt := "Stroke script path ('clear' to erase, 'cancel' to abort, empty line to finish)"
	if allowBack {
		prompt = "Stroke script path ('clear' to erase, 'back' to change email, 'cancel' to abort, empty line to finish)"
	}

	for {
		line, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return drawCancel, err
		}

		switch {
		case line == "":
			return drawDone, nil
		case line == patternCancel:
			return drawCancel, nil
		case line == patternClear:
			s.Clear()
			fmt.Fprintln(a.out, "Surface cleared.")
			continue
		case line == patternBack && allowBack:
			return drawBack, nil
		}

		script, err := capture.LoadScript(line)
		if err != nil {
			a.logger.Warn(ctx, "stroke script rejected", "path", line, "error", err)
			fmt.Fprintln(a.out, "Could not read stroke script:", err)
			continue
		}
		if err := script.Replay(s); err != nil {
			return drawCancel, err
		}
		fmt.Fprintf(a.out, "Replayed %d stroke(s).\n", len(script.Strokes))
	}
}
