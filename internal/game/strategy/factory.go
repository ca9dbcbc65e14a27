package strategy

import (
	"fmt"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
)

// New creates the strategy that plays color c.
func New(c board.Color) (Strategy, error) {
	switch c {
	case board.Red:
		return NewRed(), nil
	case board.Green:
		return NewGreen(), nil
	case board.Yellow:
		return NewYellow(), nil
	case board.Blue:
		return NewBlue(), nil
	default:
		return nil, fmt.Errorf("unknown color: %d", int(c))
	}
}

// NewAll returns one strategy per color, indexed by color.
func NewAll() [board.NumColors]Strategy {
	var out [board.NumColors]Strategy
	for _, c := range board.Colors {
		s, err := New(c)
		if err != nil {
			panic(err)
		}
		out[c] = s
	}
	return out
}
