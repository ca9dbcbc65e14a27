package board

import (
	"fmt"

	"github.com/mysteryludo/ludo-sim-go/internal/game/effects"
)

// PieceID indexes the piece arena. Pieces of a color occupy a contiguous range.
type PieceID int

// NewPieceID returns the id of the ordinal-th (0-based) piece of color.
func NewPieceID(c Color, ordinal int) PieceID {
	mustColor("NewPieceID", c)
	if ordinal < 0 || ordinal >= PiecesPerColor {
		invariant("NewPieceID", "ordinal %d out of range", ordinal)
	}
	return PieceID(int(c)*PiecesPerColor + ordinal)
}

// Valid reports whether id addresses the arena.
func (id PieceID) Valid() bool {
	return id >= 0 && int(id) < NumPieces
}

// Color returns the owning color.
func (id PieceID) Color() Color {
	return Color(int(id) / PiecesPerColor)
}

// Ordinal returns the 0-based index within the color.
func (id PieceID) Ordinal() int {
	return int(id) % PiecesPerColor
}

// Name returns the display name, e.g. "R1".
func (id PieceID) Name() string {
	if !id.Valid() {
		return fmt.Sprintf("P%d", int(id))
	}
	return fmt.Sprintf("%c%d", id.Color().Initial(), id.Ordinal()+1)
}

func (id PieceID) String() string { return id.Name() }

// Piece is one color-owned unit.
type Piece struct {
	ID             PieceID
	Color          Color
	Pos            Position
	Clockwise      bool
	BlockClockwise bool
	Captures       int
	ApproachPasses int
	Effect         effects.Movement
}

// Name returns the display name.
func (p *Piece) Name() string { return p.ID.Name() }

// MovementEffect exposes the effect for timed cleanup.
func (p *Piece) MovementEffect() *effects.Movement { return &p.Effect }

// EffectiveDice applies the active movement effect to a die value.
func (p *Piece) EffectiveDice(dice int) int {
	return p.Effect.Apply(dice)
}

// resetStats restores the defaults a captured piece returns with.
func (p *Piece) resetStats() {
	p.Clockwise = true
	p.BlockClockwise = true
	p.Captures = 0
	p.ApproachPasses = 0
	p.Effect = effects.Movement{}
}
