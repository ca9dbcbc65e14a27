package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/dice"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

// Outcome reports what committing a plan changed.
type Outcome struct {
	Plan     board.MovePlan
	Moved    bool
	Captured []board.PieceID
	Home     []board.PieceID
}

// Engine applies committed move plans to the board along with every rule
// side effect: captures, blockade formation, home stretch entry and the
// mystery cell. It is the only writer of the board during a match.
type Engine struct {
	logger  *zap.Logger
	board   *board.Board
	bus     *rules.EventBus
	rng     dice.Source
	checker *rules.LegalityChecker
	mystery MysteryState

	matchID string
	round   int
}

// NewEngine creates an engine over b. Events are published on bus; a nil
// bus discards them.
func NewEngine(logger *zap.Logger, b *board.Board, bus *rules.EventBus, rng dice.Source) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:  logger,
		board:   b,
		bus:     bus,
		rng:     rng,
		checker: rules.NewLegalityChecker(b),
		mystery: newMysteryState(),
	}
}

// Board returns the board the engine mutates.
func (e *Engine) Board() *board.Board {
	return e.board
}

// SetMatch tags subsequently published events with a match id.
func (e *Engine) SetMatch(matchID string) {
	e.matchID = matchID
}

// SetRound tags subsequently published events with a round number.
func (e *Engine) SetRound(round int) {
	e.round = round
}

func (e *Engine) publish(evt rules.Event) {
	evt.ID = uuid.NewString()
	evt.MatchID = e.matchID
	evt.Round = e.round
	if e.bus != nil {
		e.bus.Publish(evt)
	}
}

// Commit executes plan. Illegal plans leave the board untouched and are
// reported as blocked moves or home overshoots.
func (e *Engine) Commit(plan board.MovePlan) Outcome {
	out := Outcome{Plan: plan}
	if !plan.Legal {
		e.reject(plan)
		return out
	}

	switch plan.Kind {
	case board.MoveFromBase:
		e.moveFromBase(plan, &out)
	case board.MoveSingle:
		e.moveSingle(plan, &out)
	case board.MoveBlock:
		e.moveBlock(plan, &out)
	case board.MoveHomeStretch:
		e.moveInHomeStretch(plan, &out)
	default:
		panic(&board.InvariantError{Op: "Engine.Commit", Detail: fmt.Sprintf("unknown move kind %d", plan.Kind)})
	}
	out.Moved = true
	return out
}

func (e *Engine) reject(plan board.MovePlan) {
	name := ""
	if len(plan.Pieces) > 0 {
		name = plan.Pieces[0].Name()
	}
	evtType := rules.EventMoveBlocked
	if plan.Overshoot {
		evtType = rules.EventHomeOvershoot
	}
	evt := rules.NewEventWithAmount(evtType, plan.Color.String(), name, plan.Requested)
	evt.From = plan.From.String()
	evt.Targets = pieceNames(plan.Pieces)
	evt.Description = string(plan.Reason)
	if plan.BlockedAt != board.NoCell {
		evt.Metadata["blocked_at"] = fmt.Sprintf("L%d", plan.BlockedAt)
	}
	e.publish(evt)

	e.logger.Debug("move rejected",
		zap.String("color", plan.Color.String()),
		zap.String("piece", name),
		zap.String("kind", plan.Kind.String()),
		zap.String("reason", string(plan.Reason)),
	)
}

func (e *Engine) moveFromBase(plan board.MovePlan, out *Outcome) {
	id := plan.Pieces[0]
	p := e.board.Piece(id)
	p.Clockwise = e.rng.CoinToss()
	p.BlockClockwise = p.Clockwise

	cell := plan.To.Index
	out.Captured = e.CaptureByPiece(id, cell)
	e.board.Move(id, plan.To)

	evt := rules.NewEventWithFlag(rules.EventPieceEnteredBoard, p.Color.String(), p.Name(), p.Clockwise)
	evt.From = plan.From.String()
	evt.To = plan.To.String()
	evt.Description = fmt.Sprintf("%s enters the board at %s moving %s", p.Name(), plan.To, direction(p.Clockwise))
	e.publish(evt)

	e.afterTrackLanding(cell, p.Color, out)
}

func (e *Engine) moveSingle(plan board.MovePlan, out *Outcome) {
	id := plan.Pieces[0]
	p := e.board.Piece(id)
	if plan.CrossesApproach {
		e.passApproach(p)
	}

	if plan.EntersHomeStretch {
		e.board.Move(id, plan.To)
		evt := rules.NewEventWithAmount(rules.EventEnteredHomeStretch, p.Color.String(), p.Name(), plan.Distance)
		evt.From = plan.From.String()
		evt.To = plan.To.String()
		evt.Requested = plan.Requested
		e.publish(evt)
		if plan.Overshoot {
			over := rules.NewEventWithAmount(rules.EventHomeOvershoot, p.Color.String(), p.Name(), plan.Requested-plan.Distance)
			over.To = plan.To.String()
			e.publish(over)
		}
		if plan.ReachesHome {
			e.reachHome(p, out)
		}
		return
	}

	cell := plan.To.Index
	out.Captured = e.CaptureByPiece(id, cell)
	e.board.Move(id, plan.To)
	e.publishMoved(plan, p)
	e.afterTrackLanding(cell, p.Color, out)
}

func (e *Engine) moveBlock(plan board.MovePlan, out *Outcome) {
	if plan.CrossesApproach {
		for _, id := range plan.Pieces {
			e.passApproach(e.board.Piece(id))
		}
	}

	cell := plan.To.Index
	out.Captured = e.CaptureByBlock(plan.Pieces, cell)
	for _, id := range plan.Pieces {
		e.board.Move(id, plan.To)
	}

	evt := rules.NewEventWithAmount(rules.EventBlockadeMoved, plan.Color.String(), plan.Pieces[0].Name(), plan.Distance)
	evt.From = plan.From.String()
	evt.To = plan.To.String()
	evt.Requested = plan.Requested
	evt.Flag = plan.Partial
	evt.Targets = pieceNames(plan.Pieces)
	e.publish(evt)

	e.afterTrackLanding(cell, plan.Color, out)
}

func (e *Engine) moveInHomeStretch(plan board.MovePlan, out *Outcome) {
	id := plan.Pieces[0]
	p := e.board.Piece(id)
	e.board.Move(id, plan.To)
	e.publishMoved(plan, p)
	if plan.ReachesHome {
		e.reachHome(p, out)
	}
}

func (e *Engine) publishMoved(plan board.MovePlan, p *board.Piece) {
	evt := rules.NewEventWithAmount(rules.EventPieceMoved, p.Color.String(), p.Name(), plan.Distance)
	evt.From = plan.From.String()
	evt.To = plan.To.String()
	evt.Requested = plan.Requested
	evt.Flag = plan.Partial
	if plan.BlockedAt != board.NoCell {
		evt.Metadata["blocked_at"] = fmt.Sprintf("L%d", plan.BlockedAt)
	}
	e.publish(evt)

	e.logger.Debug("piece moved",
		zap.String("piece", p.Name()),
		zap.String("from", plan.From.String()),
		zap.String("to", plan.To.String()),
		zap.Int("distance", plan.Distance),
		zap.Bool("partial", plan.Partial),
	)
}

func (e *Engine) passApproach(p *board.Piece) {
	p.ApproachPasses++
	evt := rules.NewEventWithAmount(rules.EventApproachPassed, p.Color.String(), p.Name(), p.ApproachPasses)
	evt.To = board.TrackPosition(p.Color.Approach()).String()
	e.publish(evt)
}

func (e *Engine) reachHome(p *board.Piece, out *Outcome) {
	out.Home = append(out.Home, p.ID)
	evt := rules.NewEvent(rules.EventReachedHome, p.Color.String(), p.Name())
	evt.Amount = e.board.CountIn(p.Color, board.ZoneHome)
	e.publish(evt)
}

// afterTrackLanding forms a blockade when the landing joined own pieces and
// triggers the mystery cell when the move ended on it.
func (e *Engine) afterTrackLanding(cell int, c board.Color, out *Outcome) {
	own, _ := e.board.Counts(cell, c)
	if own >= 2 {
		e.FormBlock(cell, c)
	}
	if cell == e.board.MysteryCell() {
		out.Captured = append(out.Captured, e.triggerMystery(cell, c)...)
	}
}

// CaptureByPiece sends every enemy on cell back to base and credits the
// attacker with one capture.
func (e *Engine) CaptureByPiece(attacker board.PieceID, cell int) []board.PieceID {
	return e.capture([]board.PieceID{attacker}, cell)
}

// CaptureByBlock sends every enemy on cell back to base and credits each
// member of the attacking group with one capture.
func (e *Engine) CaptureByBlock(attackers []board.PieceID, cell int) []board.PieceID {
	return e.capture(attackers, cell)
}

func (e *Engine) capture(attackers []board.PieceID, cell int) []board.PieceID {
	if len(attackers) == 0 {
		return nil
	}
	captor := e.board.Piece(attackers[0])
	victims := e.board.Enemies(cell, captor.Color)
	if len(victims) == 0 {
		return nil
	}

	for _, id := range attackers {
		e.board.Piece(id).Captures++
	}
	for _, v := range victims {
		e.board.ResetToBase(v)

		evt := rules.NewEvent(rules.EventPieceCaptured, captor.Color.String(), captor.Name())
		evt.TargetID = v.Name()
		evt.To = board.TrackPosition(cell).String()
		evt.Targets = pieceNames(attackers)
		evt.Metadata["victim_color"] = v.Color().String()
		evt.Description = fmt.Sprintf("%s captures %s at L%d", captor.Name(), v.Name(), cell)
		e.publish(evt)
	}

	e.logger.Debug("capture",
		zap.String("captor", captor.Name()),
		zap.Int("cell", cell),
		zap.Int("victims", len(victims)),
	)
	return victims
}

// FormBlock unifies the travel direction of the blockade of c on cell. The
// member farthest from its own home decides the direction for all.
func (e *Engine) FormBlock(cell int, c board.Color) {
	members := e.board.Group(cell, c)
	if len(members) < 2 {
		return
	}

	leader := members[0]
	farthest := e.board.DistanceFromHome(leader)
	for _, id := range members[1:] {
		if d := e.board.DistanceFromHome(id); d > farthest {
			leader, farthest = id, d
		}
	}
	clockwise := e.board.Piece(leader).Clockwise
	for _, id := range members {
		e.board.Piece(id).BlockClockwise = clockwise
	}

	evt := rules.NewEventWithFlag(rules.EventBlockadeFormed, c.String(), leader.Name(), clockwise)
	evt.To = board.TrackPosition(cell).String()
	evt.Targets = pieceNames(members)
	evt.Amount = len(members)
	e.publish(evt)
}

// SeparateBlockade forcibly splits the blockade of c on cell. Members move
// one at a time along the single-piece path: the i-th member tries
// MaxDice/size + i cells and shortens the distance until it lands somewhere
// without its own pieces. A member with no such landing stays put.
func (e *Engine) SeparateBlockade(cell int, c board.Color) []Outcome {
	members := e.board.Group(cell, c)
	if len(members) < 2 {
		return nil
	}
	step := board.MaxDice / len(members)

	evt := rules.NewEventWithAmount(rules.EventBlockadeSeparated, c.String(), members[0].Name(), step)
	evt.From = board.TrackPosition(cell).String()
	evt.Targets = pieceNames(members)
	e.publish(evt)

	e.logger.Debug("separating blockade",
		zap.String("color", c.String()),
		zap.Int("cell", cell),
		zap.Int("members", len(members)),
		zap.Int("step", step),
	)

	outcomes := make([]Outcome, 0, len(members))
	for i, id := range members {
		plan, ok := e.separationPlan(id, step+i)
		if !ok {
			e.logger.Debug("blockade member cannot leave", zap.String("piece", id.Name()))
			continue
		}
		outcomes = append(outcomes, e.Commit(plan))
	}
	return outcomes
}

// separationPlan returns the longest legal move of id, at most dist cells,
// that does not land on a cell already holding its own color.
func (e *Engine) separationPlan(id board.PieceID, dist int) (board.MovePlan, bool) {
	for d := dist; d > 0; d-- {
		plan := e.board.PlanSingle(id, d)
		if plan.Legal && !plan.JoinsOwn {
			return plan, true
		}
	}
	return board.MovePlan{}, false
}

func pieceNames(ids []board.PieceID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name()
	}
	return names
}

func direction(clockwise bool) string {
	if clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}
