package board

import "github.com/mysteryludo/ludo-sim-go/internal/game/rules"

// Step returns the track cell n steps from cell in the given direction,
// wrapping in either direction.
func Step(cell, n int, clockwise bool) int {
	if !clockwise {
		n = -n
	}
	return ((cell+n)%TrackLength + TrackLength) % TrackLength
}

// Passable reports whether a party of travelers of color c may enter cell.
func (b *Board) Passable(cell, travelers int, c Color) bool {
	_, enemies := b.Counts(cell, c)
	if enemies == 0 {
		return true
	}
	return !rules.IsBlocked(travelers, enemies)
}

// MovableDistance walks from start towards start±dice and returns how many
// steps can be taken before the first impassable cell. Zero means the move
// is entirely illegal; less than dice means a partial move.
func (b *Board) MovableDistance(start, dice int, clockwise bool, travelers int, c Color) int {
	checkCell("Board.MovableDistance", start)
	if dice <= 0 {
		return 0
	}
	for k := 1; k <= dice; k++ {
		if !b.Passable(Step(start, k, clockwise), travelers, c) {
			return k - 1
		}
	}
	return dice
}

// PathCrosses reports whether any of the n cells after start in the given
// direction is target.
func PathCrosses(start, n int, clockwise bool, target int) bool {
	for k := 1; k <= n; k++ {
		if Step(start, k, clockwise) == target {
			return true
		}
	}
	return false
}

// Gap returns the track steps from cell to target in the given direction.
func Gap(cell, target int, clockwise bool) int {
	if clockwise {
		return (target - cell + TrackLength) % TrackLength
	}
	return (cell - target + TrackLength) % TrackLength
}

// StepsToApproach returns the track steps from cell to c's approach cell in
// the given direction.
func StepsToApproach(cell int, c Color, clockwise bool) int {
	return Gap(cell, c.Approach(), clockwise)
}

// DistanceFromHome estimates how many units a piece still has to travel.
// Base pieces are farther than any track position.
func (b *Board) DistanceFromHome(id PieceID) int {
	p := b.Piece(id)
	switch p.Pos.Zone {
	case ZoneHome:
		return 0
	case ZoneHomeStretch:
		return StretchLength - p.Pos.Index
	case ZoneTrack:
		return StepsToApproach(p.Pos.Index, p.Color, p.Clockwise) + 1 + StretchLength
	default:
		return TrackLength + 1 + StretchLength
	}
}
