package strategy

import "github.com/mysteryludo/ludo-sim-go/internal/game/board"

// Green builds and moves blockades.
type Green struct {
	weights Weights
}

// NewGreen returns the Green strategy with its default weights.
func NewGreen() *Green { return &Green{weights: GreenWeights} }

func (g *Green) Color() board.Color { return board.Green }

func (g *Green) score(c Candidate) int {
	if !c.Movable() {
		return Unmovable
	}
	w := g.weights
	s := 0
	if c.Props.Has(PropFormBlock) && !c.UseBlock {
		s += w.FormBlock
	}
	if c.Props.Has(PropFromBase) {
		s += w.FromBase
	}
	if c.Props.Has(PropBlockMove) {
		s += w.BlockMove
	}
	return s + movementScore(c.Props, w)
}

// Decide keeps blockades together: a member moves the whole group whenever
// the group can move.
func (g *Green) Decide(b *board.Board, dice int) (Decision, bool) {
	cands := Evaluate(b, board.Green, dice)
	scores := make([]int, len(cands))
	for i := range cands {
		if cands[i].InBlock && cands[i].Block.Legal {
			cands[i].SetUseBlock(true)
		}
		scores[i] = g.score(cands[i])
	}
	best, ok := pick(scores)
	if !ok {
		return Decision{}, false
	}
	return decide(board.Green, cands, scores, best), true
}
