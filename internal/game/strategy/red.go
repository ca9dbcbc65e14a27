package strategy

import "github.com/mysteryludo/ludo-sim-go/internal/game/board"

// Red plays aggressively: any capture beats any other move.
type Red struct {
	weights Weights
}

// NewRed returns the Red strategy with its default weights.
func NewRed() *Red { return &Red{weights: RedWeights} }

func (r *Red) Color() board.Color { return board.Red }

func (r *Red) score(c Candidate) int {
	if !c.Movable() {
		return Unmovable
	}
	w := r.weights
	s := 0
	if c.Props.Has(PropCapture) {
		s += w.Capture
	}
	if c.Props.Has(PropFromBase) {
		s += w.FromBase
	}
	s += movementScore(c.Props, w)
	if c.InBlock && !c.Props.Has(PropExitBlock) {
		s += w.StuckInBlock
	}
	return s
}

// Decide scores every candidate; among equally scored captures it prefers
// the one whose victim is closest to its own home.
func (r *Red) Decide(b *board.Board, dice int) (Decision, bool) {
	cands := Evaluate(b, board.Red, dice)
	scores := make([]int, len(cands))
	for i, c := range cands {
		scores[i] = r.score(c)
	}
	best, ok := pick(scores)
	if !ok {
		return Decision{}, false
	}

	if cands[best].Plan().Captures() {
		nearest := victimDistance(b, cands[best].Plan())
		for i, c := range cands {
			if scores[i] != scores[best] || !c.Plan().Captures() {
				continue
			}
			if d := victimDistance(b, c.Plan()); d < nearest {
				best, nearest = i, d
			}
		}
	}
	return decide(board.Red, cands, scores, best), true
}

func victimDistance(b *board.Board, plan board.MovePlan) int {
	nearest := board.TrackLength * 2
	for _, v := range plan.Victims {
		if d := b.DistanceFromHome(v); d < nearest {
			nearest = d
		}
	}
	return nearest
}
