package watchers

import (
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

// CaptureWatcher tracks captures made by one color since its last reset.
// The scheduler resets it before every commit to decide turn extension.
type CaptureWatcher struct {
	*rules.BaseWatcher
	victims []string
}

// NewCaptureWatcher creates a capture watcher for color.
func NewCaptureWatcher(color string) *CaptureWatcher {
	w := &CaptureWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeColor),
	}
	w.SetColor(color)
	w.SetKey(color + "_CaptureWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CaptureWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPieceCaptured || event.Color != w.GetColor() {
		return
	}
	w.victims = append(w.victims, event.TargetID)
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CaptureWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.victims = nil
}

// Victims returns the pieces captured since the last reset.
func (w *CaptureWatcher) Victims() []string {
	return append([]string(nil), w.victims...)
}

// Count returns the number of captures since the last reset.
func (w *CaptureWatcher) Count() int {
	return len(w.victims)
}

// RollStreakWatcher tracks one color's consecutive sixes within a turn.
// Its condition is met once the streak reaches the roll limit.
type RollStreakWatcher struct {
	*rules.BaseWatcher
	streak int
	rolls  []int
}

// NewRollStreakWatcher creates a roll streak watcher for color.
func NewRollStreakWatcher(color string) *RollStreakWatcher {
	w := &RollStreakWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeColor),
	}
	w.SetColor(color)
	w.SetKey(color + "_RollStreakWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *RollStreakWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDiceRolled || event.Color != w.GetColor() {
		return
	}
	w.rolls = append(w.rolls, event.Amount)
	if event.Amount == rules.BaseExitRoll {
		w.streak++
	} else {
		w.streak = 0
	}
	w.SetCondition(w.streak >= rules.MaxRollsPerTurn)
}

// Reset clears the watcher's state.
func (w *RollStreakWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.streak = 0
	w.rolls = nil
}

// Streak returns the current run of sixes.
func (w *RollStreakWatcher) Streak() int {
	return w.streak
}

// Rolls returns the values rolled since the last reset.
func (w *RollStreakWatcher) Rolls() []int {
	return append([]int(nil), w.rolls...)
}

// ColorStats is the running tally kept for one color.
type ColorStats struct {
	Rolls         int
	Moves         int
	BlockedMoves  int
	Captures      int
	Captured      int
	PiecesHome    int
	MysteryLands  int
	BlockadesMade int
}

// MatchStatsWatcher keeps match-long statistics per color. It is game
// scoped and survives turn resets.
type MatchStatsWatcher struct {
	*rules.BaseWatcher
	stats map[string]*ColorStats
}

// NewMatchStatsWatcher creates a match statistics watcher.
func NewMatchStatsWatcher() *MatchStatsWatcher {
	w := &MatchStatsWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		stats:       make(map[string]*ColorStats),
	}
	w.SetKey("MatchStatsWatcher")
	return w
}

func (w *MatchStatsWatcher) entry(color string) *ColorStats {
	s, ok := w.stats[color]
	if !ok {
		s = &ColorStats{}
		w.stats[color] = s
	}
	return s
}

// Watch implements the Watcher interface.
func (w *MatchStatsWatcher) Watch(event rules.Event) {
	if event.Color == "" {
		return
	}
	switch event.Type {
	case rules.EventDiceRolled:
		w.entry(event.Color).Rolls++
	case rules.EventPieceMoved, rules.EventPieceEnteredBoard, rules.EventBlockadeMoved, rules.EventEnteredHomeStretch:
		w.entry(event.Color).Moves++
	case rules.EventMoveBlocked, rules.EventNoMovablePiece:
		w.entry(event.Color).BlockedMoves++
	case rules.EventPieceCaptured:
		w.entry(event.Color).Captures++
		if victim := event.Metadata["victim_color"]; victim != "" {
			w.entry(victim).Captured++
		}
	case rules.EventReachedHome:
		w.entry(event.Color).PiecesHome++
	case rules.EventMysteryEffectRolled:
		w.entry(event.Color).MysteryLands++
	case rules.EventBlockadeFormed:
		w.entry(event.Color).BlockadesMade++
	default:
		return
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *MatchStatsWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.stats = make(map[string]*ColorStats)
}

// Stats returns a copy of the tally for color.
func (w *MatchStatsWatcher) Stats(color string) ColorStats {
	if s, ok := w.stats[color]; ok {
		return *s
	}
	return ColorStats{}
}

