// Package board models the track, the home stretches and the pieces, and
// answers movement questions about them without mutating anything beyond
// explicit relocation calls.
package board

import "fmt"

const (
	// TrackLength is the number of cells on the shared circular track.
	TrackLength = 52
	// StretchLength is the number of cells in each color's home stretch.
	StretchLength = 5
	// PiecesPerColor is the number of pieces each color owns.
	PiecesPerColor = 4
	// NumColors is the number of players.
	NumColors = 4
	// NumPieces is the size of the piece arena.
	NumPieces = NumColors * PiecesPerColor
	// CellCapacity bounds the occupants of any cell.
	CellCapacity = 4
	// MaxDice is the highest face of the die.
	MaxDice = 6
)

// Fixed mystery destinations on the track.
const (
	BhawanaCell    = 9
	KotuwaCell     = 27
	PitaKotuwaCell = 46
)

// Color identifies a player. Values follow seating order.
type Color int

const (
	Yellow Color = iota
	Blue
	Red
	Green
)

// Colors lists every color in seating order.
var Colors = [NumColors]Color{Yellow, Blue, Red, Green}

var colorNames = [NumColors]string{"Yellow", "Blue", "Red", "Green"}

var startCells = [NumColors]int{2, 15, 28, 41}

// Valid reports whether c is one of the four colors.
func (c Color) Valid() bool {
	return c >= Yellow && c <= Green
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Initial returns the letter used in piece names.
func (c Color) Initial() byte {
	return c.String()[0]
}

// Start returns the track cell where the color's pieces enter from base.
func (c Color) Start() int {
	mustColor("Color.Start", c)
	return startCells[c]
}

// Approach returns the track cell from which the color enters its home stretch.
func (c Color) Approach() int {
	return Step(c.Start(), 2, false)
}

// ParseColor resolves a color by name, case-sensitively.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", name)
}

func mustColor(op string, c Color) {
	if !c.Valid() {
		invariant(op, "color %d out of range", int(c))
	}
}
