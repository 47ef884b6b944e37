package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
	"github.com/dmitrijs2005/gatekeeper/internal/game"
)

const boardColumns = 4

// Play runs a memory game for the authenticated user and submits the score
// when the board is solved.
func (a *App) Play(ctx context.Context) error {
	_, screen, err := services.Enter(ctx, a.sessions)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if screen != services.ScreenWelcome {
		a.screen = screen
		fmt.Fprintln(a.out, "Please log in to play.")
		return services.ErrNoSession
	}

	a.screen = services.ScreenGame
	board := game.NewBoard(a.rng)

	for !board.GameOver() {
		a.printBoard(board)
		line, err := getSimpleText(a.reader, fmt.Sprintf("Pick a card (0-%d), 'restart' or 'q' to quit", game.Cards-1), a.out)
		if err != nil {
			return err
		}

		switch line {
		case "q", "quit":
			a.screen = services.ScreenWelcome
			return nil
		case "restart":
			board.Restart()
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(a.out, "Not a card number.")
			continue
		}
		outcome, err := board.Flip(id)
		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
			continue
		}

		switch outcome {
		case game.Matched:
			fmt.Fprintln(a.out, "Match!")
		case game.Mismatched:
			a.printBoard(board)
			fmt.Fprintln(a.out, "No match.")
			board.Settle()
		}
	}

	a.printBoard(board)
	score := board.Score()
	fmt.Fprintf(a.out, "Solved in %d moves. Score: %d\n", board.Moves(), score)

	a.screen = services.ScreenWelcome
	if err := a.scores.Submit(ctx, score, board.Moves()); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Score saved.")
	return nil
}

func (a *App) printBoard(b *game.Board) {
	var sb strings.Builder
	for i, c := range b.Cards() {
		if c.FaceUp || c.Solved {
			fmt.Fprintf(&sb, " %-4s", c.Icon)
		} else {
			fmt.Fprintf(&sb, "[%2d] ", c.ID)
		}
		if (i+1)%boardColumns == 0 {
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "Moves: %d\n", b.Moves())
	fmt.Fprint(a.out, sb.String())
}
