package strategy

import "github.com/mysteryludo/ludo-sim-go/internal/game/board"

// Blue rotates through its pieces, starting after the one it moved last,
// and steers clockwise pieces towards the mystery cell while keeping
// counter-clockwise pieces away from it.
type Blue struct {
	weights   Weights
	lastMoved int
}

// NewBlue returns the Blue strategy with no piece moved yet.
func NewBlue() *Blue { return &Blue{weights: BlueWeights, lastMoved: -1} }

func (bl *Blue) Color() board.Color { return board.Blue }

// LastMoved returns the ordinal of the piece committed last, or -1.
func (bl *Blue) LastMoved() int { return bl.lastMoved }

// rotationOffset is 1 for the piece right after the last moved one and
// PiecesPerColor for the last moved piece itself.
func (bl *Blue) rotationOffset(ordinal int) int {
	off := ((ordinal-bl.lastMoved)%board.PiecesPerColor + board.PiecesPerColor) % board.PiecesPerColor
	if off == 0 {
		off = board.PiecesPerColor
	}
	return off
}

func (bl *Blue) score(b *board.Board, c Candidate) int {
	if !c.Movable() {
		return Unmovable
	}
	w := bl.weights
	s := w.Rotation * (board.PiecesPerColor - bl.rotationOffset(c.Piece.Ordinal()))
	p := b.Piece(c.Piece)
	clockwise := p.Clockwise
	if c.UseBlock {
		clockwise = p.BlockClockwise
	}
	pull := mysteryPull(c.Plan(), b.MysteryCell(), clockwise, w.Mystery)
	if clockwise {
		s += pull
	} else {
		s -= pull
	}
	return s + movementScore(c.Props, w)
}

// mysteryPull scales weight by how much of the gap to the mystery cell,
// measured in the travel direction, the plan closes. Landing on the cell
// earns the full weight and passing it costs the full weight. Moves that
// start or end off the track score nothing.
func mysteryPull(plan board.MovePlan, mystery int, clockwise bool, weight int) int {
	if mystery == board.NoCell || !plan.From.OnTrack() || !plan.To.OnTrack() {
		return 0
	}
	before := board.Gap(plan.From.Index, mystery, clockwise)
	if before == 0 {
		return 0
	}
	closed := before - board.Gap(plan.To.Index, mystery, clockwise)
	if closed < -before {
		closed = -before
	}
	return weight * closed / before
}

// Decide commits the best piece and remembers it for the next rotation.
func (bl *Blue) Decide(b *board.Board, dice int) (Decision, bool) {
	cands := Evaluate(b, board.Blue, dice)
	scores := make([]int, len(cands))
	for i, c := range cands {
		scores[i] = bl.score(b, c)
	}
	best, ok := pick(scores)
	if !ok {
		return Decision{}, false
	}
	bl.lastMoved = cands[best].Piece.Ordinal()
	return decide(board.Blue, cands, scores, best), true
}
