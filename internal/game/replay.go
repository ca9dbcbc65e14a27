package game

import (
	"sync"
	"time"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
)

// PieceSnapshot is the recorded state of one piece.
type PieceSnapshot struct {
	Name           string
	Color          string
	Position       string
	Clockwise      bool
	BlockClockwise bool
	Captures       int
	ApproachPasses int
	Effect         string
}

// Snapshot is the state of a match at the end of a round.
type Snapshot struct {
	MatchID           string
	Round             int
	Pieces            []PieceSnapshot
	MysteryCell       int
	MysteryRoundsLeft int
	MysteryHistory    []int
	Order             []string
	Phase             string
	Finished          []string
	Timestamp         time.Time
}

// Snapshot captures the current board, mystery and ranking state.
func (m *Match) Snapshot() *Snapshot {
	mystery := m.engine.Mystery()
	snap := &Snapshot{
		MatchID:           m.id,
		Round:             m.turns.Round(),
		Pieces:            make([]PieceSnapshot, 0, board.NumPieces),
		MysteryCell:       m.board.MysteryCell(),
		MysteryRoundsLeft: mystery.RoundsLeft,
		MysteryHistory:    mystery.History,
		Order:             m.turns.Order(),
		Phase:             m.turns.CurrentPhase().String(),
		Finished:          m.turns.Finished(),
		Timestamp:         time.Now(),
	}
	for _, p := range m.board.AllPieces() {
		snap.Pieces = append(snap.Pieces, PieceSnapshot{
			Name:           p.Name(),
			Color:          p.Color.String(),
			Position:       p.Pos.String(),
			Clockwise:      p.Clockwise,
			BlockClockwise: p.BlockClockwise,
			Captures:       p.Captures,
			ApproachPasses: p.ApproachPasses,
			Effect:         p.Effect.String(),
		})
	}
	return snap
}

// Replay is the sequence of round snapshots of one match.
type Replay struct {
	MatchID      string
	States       []*Snapshot
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(matchID string) *Replay {
	return &Replay{
		MatchID: matchID,
		States:  make([]*Snapshot, 0),
	}
}

// RecordSnapshot appends a snapshot.
func (r *Replay) RecordSnapshot(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, snapshot)
}

// Start rewinds playback to the first snapshot.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the snapshot at the cursor and advances it.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		state := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return state
	}
	return nil
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// Checksums returns the checksum of every snapshot in order. Two matches
// played from the same seed produce the same sequence.
func (r *Replay) Checksums() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.States))
	for _, state := range r.States {
		sum, err := state.ComputeChecksum()
		if err != nil {
			return nil, err
		}
		out = append(out, sum.Hash)
	}
	return out, nil
}
