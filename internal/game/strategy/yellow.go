package strategy

import "github.com/mysteryludo/ludo-sim-go/internal/game/board"

// Yellow gets pieces onto the board before anything else.
type Yellow struct {
	weights Weights
}

// NewYellow returns the Yellow strategy with its default weights.
func NewYellow() *Yellow { return &Yellow{weights: YellowWeights} }

func (y *Yellow) Color() board.Color { return board.Yellow }

func (y *Yellow) score(c Candidate) int {
	if !c.Movable() {
		return Unmovable
	}
	w := y.weights
	s := 0
	if c.Props.Has(PropFromBase) {
		s += w.FromBase
	}
	if c.Props.Has(PropCapture) {
		s += w.Capture
	}
	return s + movementScore(c.Props, w)
}

func (y *Yellow) Decide(b *board.Board, dice int) (Decision, bool) {
	cands := Evaluate(b, board.Yellow, dice)
	scores := make([]int, len(cands))
	for i, c := range cands {
		scores[i] = y.score(c)
	}
	best, ok := pick(scores)
	if !ok {
		return Decision{}, false
	}
	return decide(board.Yellow, cands, scores, best), true
}
