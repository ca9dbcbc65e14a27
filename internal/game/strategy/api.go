// Package strategy decides, once per dice roll, which piece a color moves.
//
// Every color runs the same validation pass (Evaluate) and differs only in
// how it scores the resulting candidate properties.
package strategy

import (
	"math"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
)

// Unmovable is the score of a piece that cannot move with the current roll.
const Unmovable = math.MinInt32

// Decision is the move a strategy commits to.
type Decision struct {
	Color board.Color
	Piece board.PieceID
	Plan  board.MovePlan
	Score int
}

// Strategy is implemented by each per-color decision schema.
type Strategy interface {
	// Color returns the color the strategy plays.
	Color() board.Color
	// Decide picks a piece for the dice value. It returns false when no
	// piece of the color can move, in which case the roll is forfeited.
	Decide(b *board.Board, dice int) (Decision, bool)
}

// pick returns the index of the first maximal score, or false when every
// candidate is unmovable.
func pick(scores []int) (int, bool) {
	best, bestScore := -1, Unmovable
	for i, s := range scores {
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, best >= 0
}

func decide(c board.Color, cands []Candidate, scores []int, idx int) Decision {
	return Decision{
		Color: c,
		Piece: cands[idx].Piece,
		Plan:  cands[idx].Plan(),
		Score: scores[idx],
	}
}
