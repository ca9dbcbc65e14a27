package rules

import (
	"fmt"
	"strings"
)

// Phase represents the broad phases of a match round.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseUpkeep
	PhaseTurn
	PhaseRoundEnd
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSetup:    "SETUP",
	PhaseUpkeep:   "UPKEEP",
	PhaseTurn:     "TURN",
	PhaseRoundEnd: "ROUND_END",
	PhaseGameOver: "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// TurnManager tracks round progression, the active color and finishing ranks.
type TurnManager struct {
	order      []string
	orderIndex int
	round      int
	phase      Phase
	active     string
	rolls      int
	finished   []string
	isFinished map[string]bool
}

// NewTurnManager creates a turn manager for the given seating order. The order
// may be replaced with SetOrder once the opening rolls have been made.
func NewTurnManager(order []string) *TurnManager {
	tm := &TurnManager{
		orderIndex: -1,
		phase:      PhaseSetup,
		isFinished: make(map[string]bool),
	}
	tm.SetOrder(order)
	return tm
}

// SetOrder replaces the per-round turn order.
func (tm *TurnManager) SetOrder(order []string) {
	tm.order = make([]string, 0, len(order))
	for _, color := range order {
		if c := strings.TrimSpace(color); c != "" {
			tm.order = append(tm.order, c)
		}
	}
}

// Order returns a copy of the turn order.
func (tm *TurnManager) Order() []string {
	return append([]string(nil), tm.order...)
}

// Round returns the current round number (1-based, 0 before the first round).
func (tm *TurnManager) Round() int {
	return tm.round
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return tm.phase
}

// ActiveColor returns the color that currently has the turn.
func (tm *TurnManager) ActiveColor() string {
	return tm.active
}

// StartRound increments the round counter and rewinds to the top of the order.
func (tm *TurnManager) StartRound() int {
	tm.round++
	tm.orderIndex = -1
	tm.active = ""
	tm.rolls = 0
	tm.phase = PhaseUpkeep
	return tm.round
}

// NextTurn advances to the next color in the order that has not finished.
// It returns false once the round is exhausted.
func (tm *TurnManager) NextTurn() (string, bool) {
	if tm.phase == PhaseGameOver {
		return "", false
	}
	for tm.orderIndex+1 < len(tm.order) {
		tm.orderIndex++
		color := tm.order[tm.orderIndex]
		if tm.isFinished[color] {
			continue
		}
		tm.active = color
		tm.rolls = 0
		tm.phase = PhaseTurn
		return color, true
	}
	tm.active = ""
	tm.phase = PhaseRoundEnd
	return "", false
}

// RecordRoll counts a roll for the active color and returns the running total.
func (tm *TurnManager) RecordRoll() int {
	tm.rolls++
	return tm.rolls
}

// RollsThisTurn returns the number of rolls the active color has made.
func (tm *TurnManager) RollsThisTurn() int {
	return tm.rolls
}

// MarkFinished appends color to the finishing ranks and returns its 1-based rank.
// Marking an already finished color returns its existing rank.
func (tm *TurnManager) MarkFinished(color string) int {
	if tm.isFinished[color] {
		return tm.Rank(color)
	}
	tm.isFinished[color] = true
	tm.finished = append(tm.finished, color)
	return len(tm.finished)
}

// IsFinished reports whether color has already finished.
func (tm *TurnManager) IsFinished(color string) bool {
	return tm.isFinished[color]
}

// Rank returns the 1-based finishing rank of color, or 0 if it has not finished.
func (tm *TurnManager) Rank(color string) int {
	for i, c := range tm.finished {
		if c == color {
			return i + 1
		}
	}
	return 0
}

// Finished returns the finishing ranks in order.
func (tm *TurnManager) Finished() []string {
	return append([]string(nil), tm.finished...)
}

// Remaining returns the colors that have not finished, in turn order.
func (tm *TurnManager) Remaining() []string {
	var out []string
	for _, c := range tm.order {
		if !tm.isFinished[c] {
			out = append(out, c)
		}
	}
	return out
}

// EndGame moves the manager into its terminal phase.
func (tm *TurnManager) EndGame() {
	tm.phase = PhaseGameOver
	tm.active = ""
}
