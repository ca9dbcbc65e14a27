package rules

import (
	"fmt"
)

const (
	// BaseExitRoll is the die value required to bring a piece onto the track.
	BaseExitRoll = 6
	// MaxRollsPerTurn bounds the rolls a color may make in one turn.
	MaxRollsPerTurn = 3
)

// IsBlocked reports whether a cell holding enemies pieces of other colors
// stops a party of travelers same-color pieces. Equal counts do not block.
func IsBlocked(travelers, enemies int) bool {
	return enemies > travelers
}

// CanCapture reports whether a party of travelers landing on a cell holding
// enemies sends them back to base.
func CanCapture(travelers, enemies int) bool {
	return enemies > 0 && !IsBlocked(travelers, enemies)
}

// CanEnterHomeStraight is the gate a piece must satisfy before leaving the
// track for its home stretch: at least one capture, and a completed lap past
// its approach cell when travelling counter-clockwise.
func CanEnterHomeStraight(captures, approachPasses int, clockwise bool) bool {
	if captures < 1 {
		return false
	}
	if !clockwise && approachPasses < 1 {
		return false
	}
	return true
}

// CanLeaveBase reports whether the roll lets a piece enter the track.
func CanLeaveBase(dice int) bool {
	return dice == BaseExitRoll
}

// ExtendsTurn reports whether the active color rolls again after a commit.
// rolls is the number of rolls already made this turn.
func ExtendsTurn(dice int, captured bool, rolls int) bool {
	if rolls >= MaxRollsPerTurn {
		return false
	}
	return dice == BaseExitRoll || captured
}

// CellAccessor provides the occupancy view legality checks need.
type CellAccessor interface {
	// Occupancy returns how many pieces of color and of other colors sit on a track cell.
	Occupancy(cell int, color string) (own, enemies int)
	// TrackLength returns the number of cells on the standard track.
	TrackLength() int
}

// LegalityResult represents the result of a legality check.
type LegalityResult struct {
	Legal   bool
	Reason  string
	Details map[string]string
}

// LegalityChecker validates landings against the current board.
type LegalityChecker struct {
	cells CellAccessor
}

// NewLegalityChecker creates a new legality checker.
func NewLegalityChecker(cells CellAccessor) *LegalityChecker {
	return &LegalityChecker{cells: cells}
}

// CheckLanding validates a party of travelers of color arriving directly on
// cell, as a teleport does. Intermediate cells are not inspected.
func (lc *LegalityChecker) CheckLanding(cell, travelers int, color string) LegalityResult {
	if lc == nil || lc.cells == nil {
		return LegalityResult{Legal: false, Reason: "Legality checker not initialized"}
	}
	if cell < 0 || cell >= lc.cells.TrackLength() {
		return LegalityResult{
			Legal:  false,
			Reason: fmt.Sprintf("Cell %d is off the track", cell),
		}
	}
	if travelers < 1 {
		return LegalityResult{Legal: false, Reason: "No travelers"}
	}

	_, enemies := lc.cells.Occupancy(cell, color)
	if IsBlocked(travelers, enemies) {
		return LegalityResult{
			Legal:  false,
			Reason: "Destination blocked",
			Details: map[string]string{
				"enemies":   fmt.Sprint(enemies),
				"travelers": fmt.Sprint(travelers),
			},
		}
	}

	result := LegalityResult{Legal: true}
	if CanCapture(travelers, enemies) {
		result.Reason = "Capture"
		result.Details = map[string]string{"victims": fmt.Sprint(enemies)}
	}
	return result
}
