package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/effects"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

const (
	// MysteryWarmupRounds is how many rounds must begin with a piece on the
	// board before the mystery cell first appears.
	MysteryWarmupRounds = 3
	// MysteryLifetime is how many rounds a mystery cell stays in place.
	MysteryLifetime = 4
)

// MysteryOutcome is the effect rolled when a piece lands on the mystery cell.
type MysteryOutcome int

const (
	MysterySpeed MysteryOutcome = iota + 1
	MysteryMeeting
	MysteryReversal
	MysteryBase
	MysteryStart
	MysteryApproach
)

var mysteryOutcomeNames = map[MysteryOutcome]string{
	MysterySpeed:    "Bhawana",
	MysteryMeeting:  "Kotuwa",
	MysteryReversal: "Pita-Kotuwa",
	MysteryBase:     "Base",
	MysteryStart:    "Start",
	MysteryApproach: "Approach",
}

func (o MysteryOutcome) String() string {
	if name, ok := mysteryOutcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("MysteryOutcome(%d)", int(o))
}

// Destination returns where the outcome sends a piece of color c.
func (o MysteryOutcome) Destination(c board.Color) board.Position {
	switch o {
	case MysterySpeed:
		return board.TrackPosition(board.BhawanaCell)
	case MysteryMeeting:
		return board.TrackPosition(board.KotuwaCell)
	case MysteryReversal:
		return board.TrackPosition(board.PitaKotuwaCell)
	case MysteryStart:
		return board.TrackPosition(c.Start())
	case MysteryApproach:
		return board.TrackPosition(c.Approach())
	default:
		return board.BasePosition()
	}
}

// MysteryState is the roaming mystery cell's bookkeeping. The cell itself
// lives on the board.
type MysteryState struct {
	Warmup     int
	RoundsLeft int
	History    []int
	Previous   int
}

func newMysteryState() MysteryState {
	return MysteryState{Previous: board.NoCell}
}

// Mystery returns a copy of the mystery cell bookkeeping.
func (e *Engine) Mystery() MysteryState {
	m := e.mystery
	m.History = append([]int(nil), e.mystery.History...)
	return m
}

// AdvanceMystery runs the per-round mystery cell clock. The cell appears
// once MysteryWarmupRounds rounds have begun with a piece on the board and
// moves every MysteryLifetime rounds after that.
func (e *Engine) AdvanceMystery() {
	m := &e.mystery
	if m.Warmup < MysteryWarmupRounds {
		if e.board.HasPieceOnBoard() {
			m.Warmup++
		}
		return
	}
	if m.RoundsLeft > 0 {
		m.RoundsLeft--
		if m.RoundsLeft > 0 {
			return
		}
	}
	e.placeMystery()
}

// placeMystery moves the mystery cell to a uniformly chosen empty track
// cell that is neither the current cell nor a previous location. When the
// history leaves no candidate it is forgotten; if the track has no empty
// cell at all the placement is skipped until next round.
func (e *Engine) placeMystery() {
	m := &e.mystery
	current := e.board.MysteryCell()

	candidates := e.mysteryCandidates(current, true)
	if len(candidates) == 0 && len(m.History) > 0 {
		m.History = m.History[:0]
		candidates = e.mysteryCandidates(current, false)
	}
	if len(candidates) == 0 {
		e.board.SetMysteryCell(board.NoCell)
		m.Previous = current
		m.RoundsLeft = 0
		e.publish(rules.NewEvent(rules.EventMysteryCellSkipped, "", ""))
		e.logger.Warn("mystery cell placement skipped, no empty cell",
			zap.String("match_id", e.matchID),
			zap.Int("round", e.round),
		)
		return
	}

	cell := candidates[e.rng.Intn(len(candidates))]
	m.Previous = current
	m.History = append(m.History, cell)
	m.RoundsLeft = MysteryLifetime
	e.board.SetMysteryCell(cell)

	evt := rules.NewEventWithAmount(rules.EventMysteryCellSpawned, "", "", MysteryLifetime)
	evt.To = board.TrackPosition(cell).String()
	if current != board.NoCell {
		evt.From = board.TrackPosition(current).String()
	}
	e.publish(evt)

	e.logger.Debug("mystery cell placed",
		zap.Int("cell", cell),
		zap.Int("round", e.round),
	)
}

func (e *Engine) mysteryCandidates(current int, useHistory bool) []int {
	used := make(map[int]bool, len(e.mystery.History))
	if useHistory {
		for _, c := range e.mystery.History {
			used[c] = true
		}
	}
	var out []int
	for cell := 0; cell < board.TrackLength; cell++ {
		if cell == current || used[cell] || !e.board.Track(cell).Empty() {
			continue
		}
		out = append(out, cell)
	}
	return out
}

type mysteryJob struct {
	pieces  []board.PieceID
	outcome MysteryOutcome
	chained bool
}

// triggerMystery rolls an effect for the pieces of c standing on the mystery
// cell and applies it. A reversal on pieces already moving counter-clockwise
// queues one follow-up meeting effect for them; queued effects never queue
// further ones.
func (e *Engine) triggerMystery(cell int, c board.Color) []board.PieceID {
	outcome := MysteryOutcome(e.rng.MysteryEffect())
	travelers := e.board.Group(cell, c)

	evt := rules.NewEventWithAmount(rules.EventMysteryEffectRolled, c.String(), travelers[0].Name(), int(outcome))
	evt.From = board.TrackPosition(cell).String()
	evt.Targets = pieceNames(travelers)
	evt.Description = outcome.String()
	e.publish(evt)

	var captured []board.PieceID
	queue := []mysteryJob{{pieces: travelers, outcome: outcome}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		victims, next := e.applyMystery(job)
		captured = append(captured, victims...)
		if next != nil && !job.chained {
			queue = append(queue, *next)
		}
	}
	return captured
}

// applyMystery teleports the job's pieces and applies the outcome's effect.
// It returns any pieces captured on arrival and the chained job, if any.
func (e *Engine) applyMystery(job mysteryJob) ([]board.PieceID, *mysteryJob) {
	first := e.board.Piece(job.pieces[0])
	c := first.Color
	from := first.Pos
	dest := job.outcome.Destination(c)

	if dest.Zone == board.ZoneBase {
		for _, id := range job.pieces {
			e.board.Move(id, dest)
			e.board.Piece(id).Effect = effects.Movement{}
		}
		e.publishApplied(job, from, dest)
		return nil, nil
	}

	cell := dest.Index
	check := e.checker.CheckLanding(cell, len(job.pieces), c.String())
	if !check.Legal {
		evt := rules.NewEventWithAmount(rules.EventTeleportRefused, c.String(), first.Name(), int(job.outcome))
		evt.From = from.String()
		evt.To = dest.String()
		evt.Targets = pieceNames(job.pieces)
		evt.Description = check.Reason
		for k, v := range check.Details {
			evt.Metadata[k] = v
		}
		e.publish(evt)
		return nil, nil
	}

	victims := e.CaptureByBlock(job.pieces, cell)
	var reversed []board.PieceID
	for _, id := range job.pieces {
		e.board.Move(id, dest)
		p := e.board.Piece(id)
		switch job.outcome {
		case MysterySpeed:
			p.Effect = effects.NewSpeed(e.rng.CoinToss(), effects.DefaultDuration).Held()
		case MysteryMeeting:
			p.Effect = effects.NewHalt(effects.DefaultDuration).Held()
		case MysteryReversal:
			if p.Clockwise {
				p.Clockwise = false
				p.BlockClockwise = false
			} else {
				p.Effect = effects.NewHalt(effects.DefaultDuration).Held()
				reversed = append(reversed, id)
			}
		}
	}
	e.publishApplied(job, from, dest)

	if own, _ := e.board.Counts(cell, c); own >= 2 {
		e.FormBlock(cell, c)
	}

	if len(reversed) == 0 {
		return victims, nil
	}
	return victims, &mysteryJob{pieces: reversed, outcome: MysteryMeeting, chained: true}
}

func (e *Engine) publishApplied(job mysteryJob, from, dest board.Position) {
	first := e.board.Piece(job.pieces[0])
	evt := rules.NewEventWithAmount(rules.EventMysteryEffectApplied, first.Color.String(), first.Name(), int(job.outcome))
	evt.From = from.String()
	evt.To = dest.String()
	evt.Flag = job.chained
	evt.Targets = pieceNames(job.pieces)
	evt.Metadata["effect"] = job.outcome.String()
	if first.Effect.Active() {
		evt.Metadata["movement"] = first.Effect.String()
	}
	evt.Description = fmt.Sprintf("%s teleported to %s (%s)", first.Name(), dest, job.outcome)
	e.publish(evt)

	e.logger.Debug("mystery effect applied",
		zap.String("piece", first.Name()),
		zap.String("effect", job.outcome.String()),
		zap.String("to", dest.String()),
		zap.Bool("chained", job.chained),
	)
}
