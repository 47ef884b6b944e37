// Package game implements the matching-pairs mini-game whose score is
// recorded for the authenticated identity.
package game

import (
	"errors"
	"math/rand/v2"
)

const (
	// Pairs is the number of distinct icons on a board.
	Pairs = 8
	// Cards is the board size.
	Cards = 2 * Pairs

	minScore = 10
)

// Icons is the pool each board draws its pairs from.
var Icons = []string{
	"🚀", "🌈", "🎨", "🎸", "🍦", "🍕", "💎", "💡",
	"🦄", "🌺", "⚡", "🔥", "🌟", "🍀", "🍎", "🍒",
	"🐯", "🐙", "🦋", "🌵", "🍄", "🌍", "🌙", "🚲",
	"⚓", "🎈", "🎁", "🏆", "⚽", "🏀", "🎮", "🧩",
	"🎲", "🎻", "🎷", "📷", "📺", "💻", "🤖", "👾",
}

var (
	ErrOutOfRange = errors.New("card index out of range")
	ErrGameOver   = errors.New("game is over")
)

// Outcome describes what a Flip did.
type Outcome int

const (
	Ignored Outcome = iota
	FirstUp
	Matched
	Mismatched
)

func (o Outcome) String() string {
	switch o {
	case FirstUp:
		return "first-up"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "ignored"
	}
}

// Card is one position on the board.
type Card struct {
	ID     int
	Icon   string
	FaceUp bool
	Solved bool
}

// Board is a single game. It is not safe for concurrent use.
type Board struct {
	rng     *rand.Rand
	cards   []Card
	flipped []int
	moves   int
}

// NewBoard deals a shuffled board. A nil rng uses a randomly seeded source.
func NewBoard(rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Board{rng: rng}
	b.Restart()
	return b
}

// Restart deals a fresh board and resets the move counter.
func (b *Board) Restart() {
	pool := append([]string(nil), Icons...)
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	icons := make([]string, 0, Cards)
	icons = append(icons, pool[:Pairs]...)
	icons = append(icons, pool[:Pairs]...)
	b.rng.Shuffle(len(icons), func(i, j int) { icons[i], icons[j] = icons[j], icons[i] })

	b.cards = make([]Card, Cards)
	for i, icon := range icons {
		b.cards[i] = Card{ID: i, Icon: icon}
	}
	b.flipped = b.flipped[:0]
	b.moves = 0
}

// Flip turns card id face up. Flips are ignored while a mismatched pair is
// still showing, and on cards already face up or solved. The second card of
// a pair counts as one move.
func (b *Board) Flip(id int) (Outcome, error) {
	if id < 0 || id >= len(b.cards) {
		return Ignored, ErrOutOfRange
	}
	if b.GameOver() {
		return Ignored, ErrGameOver
	}
	c := &b.cards[id]
	if len(b.flipped) == 2 || c.FaceUp || c.Solved {
		return Ignored, nil
	}

	c.FaceUp = true
	b.flipped = append(b.flipped, id)
	if len(b.flipped) == 1 {
		return FirstUp, nil
	}

	b.moves++
	first := &b.cards[b.flipped[0]]
	if first.Icon != c.Icon {
		return Mismatched, nil
	}
	first.Solved, c.Solved = true, true
	first.FaceUp, c.FaceUp = false, false
	b.flipped = b.flipped[:0]
	return Matched, nil
}

// Pending reports whether a mismatched pair is waiting for Settle.
func (b *Board) Pending() bool {
	return len(b.flipped) == 2
}

// Settle turns a pending mismatched pair back face down.
func (b *Board) Settle() {
	if !b.Pending() {
		return
	}
	for _, id := range b.flipped {
		b.cards[id].FaceUp = false
	}
	b.flipped = b.flipped[:0]
}

// Cards returns a copy of the board.
func (b *Board) Cards() []Card {
	return append([]Card(nil), b.cards...)
}

func (b *Board) Moves() int {
	return b.moves
}

// Solved is the number of solved cards.
func (b *Board) Solved() int {
	n := 0
	for _, c := range b.cards {
		if c.Solved {
			n++
		}
	}
	return n
}

// GameOver reports whether every card is solved.
func (b *Board) GameOver() bool {
	return len(b.cards) > 0 && b.Solved() == len(b.cards)
}

// Score is the score for the current move count.
func (b *Board) Score() int {
	return Score(b.moves)
}

// Score maps a move count to points: 100 minus two per move, never below 10.
func Score(moves int) int {
	return max(minScore, 100-2*moves)
}
