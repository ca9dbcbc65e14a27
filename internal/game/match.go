package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/dice"
	"github.com/mysteryludo/ludo-sim-go/internal/game/effects"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
	"github.com/mysteryludo/ludo-sim-go/internal/game/strategy"
	"github.com/mysteryludo/ludo-sim-go/internal/game/watchers"
)

// DefaultMaxRounds is the safety limit after which a match is aborted.
const DefaultMaxRounds = 500

var (
	// ErrMatchFinished is returned when Run is called on a match that already ran.
	ErrMatchFinished = errors.New("match already finished")
	// ErrInvalidOption is returned by NewMatch for unusable options.
	ErrInvalidOption = errors.New("invalid match option")
)

// Result summarizes a completed match.
type Result struct {
	MatchID   string
	Seed      int64
	Rounds    int
	Standings []board.Color
	Aborted   bool
	Checksum  string
	Duration  time.Duration
}

// Winner returns the first finisher, or false for an aborted match.
func (r *Result) Winner() (board.Color, bool) {
	if r == nil || r.Aborted || len(r.Standings) == 0 {
		return 0, false
	}
	return r.Standings[0], true
}

// Option configures a Match.
type Option func(*Match) error

// WithSeed seeds the default random source. Zero draws a fresh seed.
func WithSeed(seed int64) Option {
	return func(m *Match) error {
		m.seed = seed
		return nil
	}
}

// WithSource replaces the random source entirely.
func WithSource(src dice.Source) Option {
	return func(m *Match) error {
		if src == nil {
			return fmt.Errorf("%w: nil random source", ErrInvalidOption)
		}
		m.rng = src
		return nil
	}
}

// WithMaxRounds sets the round safety limit.
func WithMaxRounds(n int) Option {
	return func(m *Match) error {
		if n <= 0 {
			return fmt.Errorf("%w: max rounds must be positive, got %d", ErrInvalidOption, n)
		}
		m.maxRounds = n
		return nil
	}
}

// WithReplay enables or disables per-round snapshots.
func WithReplay(enabled bool) Option {
	return func(m *Match) error {
		m.recordReplay = enabled
		return nil
	}
}

// WithEventBus publishes match events on bus instead of a private one.
func WithEventBus(bus *rules.EventBus) Option {
	return func(m *Match) error {
		if bus == nil {
			return fmt.Errorf("%w: nil event bus", ErrInvalidOption)
		}
		m.bus = bus
		return nil
	}
}

// WithStrategy replaces the strategy of one color.
func WithStrategy(s strategy.Strategy) Option {
	return func(m *Match) error {
		if s == nil || !s.Color().Valid() {
			return fmt.Errorf("%w: strategy without a valid color", ErrInvalidOption)
		}
		m.strategies[s.Color()] = s
		return nil
	}
}

// WithBoard starts the match from a prepared board.
func WithBoard(b *board.Board) Option {
	return func(m *Match) error {
		if b == nil {
			return fmt.Errorf("%w: nil board", ErrInvalidOption)
		}
		if err := b.CheckIntegrity(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOption, err)
		}
		m.board = b
		return nil
	}
}

// Match runs one simulated game from the initial roll to the final standings.
type Match struct {
	id     string
	logger *zap.Logger

	seed         int64
	rng          dice.Source
	board        *board.Board
	bus          *rules.EventBus
	engine       *Engine
	turns        *rules.TurnManager
	watchers     *rules.WatcherRegistry
	stats        *watchers.MatchStatsWatcher
	strategies   [board.NumColors]strategy.Strategy
	maxRounds    int
	recordReplay bool
	replay       *Replay
	result       *Result
}

// NewMatch creates a match with default strategies, a seeded random source
// and a fresh board, adjusted by opts.
func NewMatch(logger *zap.Logger, opts ...Option) (*Match, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Match{
		id:           uuid.NewString(),
		strategies:   strategy.NewAll(),
		maxRounds:    DefaultMaxRounds,
		recordReplay: true,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.rng == nil {
		if m.seed == 0 {
			seed, err := dice.NewSeed()
			if err != nil {
				return nil, fmt.Errorf("seed random source: %w", err)
			}
			m.seed = seed
		}
		m.rng = dice.NewSeeded(m.seed)
	}
	if m.board == nil {
		m.board = board.New()
	}
	if m.bus == nil {
		m.bus = rules.NewEventBus()
	}

	m.logger = logger.With(zap.String("match_id", m.id))
	m.engine = NewEngine(m.logger, m.board, m.bus, m.rng)
	m.engine.SetMatch(m.id)
	m.turns = rules.NewTurnManager(nil)
	m.replay = NewReplay(m.id)

	m.watchers = rules.NewWatcherRegistry()
	for _, c := range board.Colors {
		m.watchers.AddWatcher(watchers.NewCaptureWatcher(c.String()))
		m.watchers.AddWatcher(watchers.NewRollStreakWatcher(c.String()))
	}
	m.stats = watchers.NewMatchStatsWatcher()
	m.watchers.AddWatcher(m.stats)
	m.bus.Subscribe(m.watchers.NotifyWatchers)

	return m, nil
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// Seed returns the seed of the default random source, or zero when a
// custom source was supplied.
func (m *Match) Seed() int64 { return m.seed }

// Board returns the live board.
func (m *Match) Board() *board.Board { return m.board }

// Events returns the bus the match publishes on.
func (m *Match) Events() *rules.EventBus { return m.bus }

// Replay returns the recorded snapshots.
func (m *Match) Replay() *Replay { return m.replay }

// Stats returns the running tally for c.
func (m *Match) Stats(c board.Color) watchers.ColorStats { return m.stats.Stats(c.String()) }

// Engine returns the engine applying moves for this match.
func (m *Match) Engine() *Engine { return m.engine }

func (m *Match) publish(evt rules.Event) {
	m.engine.publish(evt)
}

// Run plays the match to completion. An invariant violation aborts the
// match and is returned as an error wrapping board.ErrInvariant.
func (m *Match) Run() (res *Result, err error) {
	if m.turns.CurrentPhase() == rules.PhaseGameOver {
		return nil, ErrMatchFinished
	}
	started := time.Now()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok || !errors.Is(cause, board.ErrInvariant) {
			panic(r)
		}
		res, err = m.fail(cause, started)
	}()

	m.logger.Info("match started", zap.Int64("seed", m.seed), zap.Int("max_rounds", m.maxRounds))
	evt := rules.NewEvent(rules.EventMatchStarted, "", "")
	evt.Metadata["seed"] = fmt.Sprint(m.seed)
	m.publish(evt)

	m.decideOrder()

	for len(m.turns.Remaining()) > 1 {
		if m.turns.Round() >= m.maxRounds {
			m.logger.Warn("round limit reached, aborting match", zap.Int("rounds", m.turns.Round()))
			m.abort("round limit reached", started)
			return m.result, nil
		}
		if err := m.playRound(); err != nil {
			return m.fail(err, started)
		}
	}

	return m.finish(started), nil
}

func (m *Match) fail(cause error, started time.Time) (*Result, error) {
	m.logger.Error("invariant violation, aborting match",
		zap.Int("round", m.turns.Round()),
		zap.Error(cause),
	)
	m.abort(cause.Error(), started)
	return m.result, fmt.Errorf("match %s: %w", m.id, cause)
}

// decideOrder rolls once per color in seating order. The strictly highest
// roll starts, the earliest color winning ties, and play continues in
// seating order from there.
func (m *Match) decideOrder() {
	first, best := board.Colors[0], 0
	for _, c := range board.Colors {
		roll := m.rng.RollDie()
		m.publish(rules.NewEventWithAmount(rules.EventInitialRoll, c.String(), "", roll))
		if roll > best {
			first, best = c, roll
		}
	}

	order := make([]string, 0, board.NumColors)
	for i := 0; i < board.NumColors; i++ {
		order = append(order, board.Colors[(int(first)+i)%board.NumColors].String())
	}
	m.turns.SetOrder(order)

	evt := rules.NewEventWithAmount(rules.EventTurnOrderDecided, first.String(), "", best)
	evt.Targets = order
	m.publish(evt)

	m.logger.Info("turn order decided", zap.Strings("order", order), zap.Int("roll", best))
}

func (m *Match) playRound() error {
	round := m.turns.StartRound()
	m.engine.SetRound(round)
	m.publish(rules.NewEventWithAmount(rules.EventRoundStarted, "", "", round))

	m.engine.AdvanceMystery()

	for {
		name, ok := m.turns.NextTurn()
		if !ok {
			break
		}
		c, err := board.ParseColor(name)
		if err != nil {
			return &board.InvariantError{Op: "Match.playRound", Detail: err.Error()}
		}
		m.playTurn(c)
		if len(m.turns.Remaining()) <= 1 {
			break
		}
	}

	if err := m.board.CheckIntegrity(); err != nil {
		return err
	}
	m.publishRoundSummary(round)
	if m.recordReplay {
		m.replay.RecordSnapshot(m.Snapshot())
	}
	return nil
}

// playTurn rolls for c and commits its strategy's choice, rolling again
// after a six or a capture up to rules.MaxRollsPerTurn rolls.
func (m *Match) playTurn(c board.Color) {
	name := c.String()
	captures := m.watchers.GetWatcher(name + "_CaptureWatcher").(*watchers.CaptureWatcher)
	streak := m.watchers.GetWatcher(name + "_RollStreakWatcher").(*watchers.RollStreakWatcher)
	m.watchers.ResetWatchersByScope(rules.WatcherScopeColor)
	strat := m.strategies[c]
	m.logger.Debug("turn started",
		zap.String("color", m.turns.ActiveColor()),
		zap.Stringer("phase", m.turns.CurrentPhase()),
		zap.Int("round", m.turns.Round()),
	)

	for {
		rolls := m.turns.RecordRoll()
		roll := m.rng.RollDie()
		m.publish(rules.NewEventWithAmount(rules.EventDiceRolled, name, "", roll))

		captures.Reset()
		if decision, ok := strat.Decide(m.board, roll); ok {
			m.logger.Debug("strategy decision",
				zap.String("color", name),
				zap.Int("roll", roll),
				zap.String("piece", decision.Piece.Name()),
				zap.String("kind", decision.Plan.Kind.String()),
				zap.Int("score", decision.Score),
			)
			m.engine.Commit(decision.Plan)
		} else {
			m.publish(rules.NewEventWithAmount(rules.EventNoMovablePiece, name, "", roll))
		}

		if m.board.AllHome(c) {
			m.finishColor(c)
			break
		}
		if !rules.ExtendsTurn(roll, captures.ConditionMet(), rolls) {
			break
		}
		if victims := captures.Victims(); len(victims) > 0 {
			m.logger.Debug("capture extends turn", zap.String("color", name), zap.Strings("victims", victims))
		}
		m.publish(rules.NewEventWithAmount(rules.EventTurnExtended, name, "", rolls))
	}

	if !m.turns.IsFinished(name) && streak.ConditionMet() {
		if cells := m.board.BlockadeCells(c); len(cells) > 0 {
			cell := cells[m.rng.Intn(len(cells))]
			evt := rules.NewEventWithAmount(rules.EventBalancingRuleUsed, name, "", streak.Streak())
			evt.From = board.TrackPosition(cell).String()
			evt.Metadata["rolls"] = fmt.Sprint(streak.Rolls())
			m.publish(evt)
			m.engine.SeparateBlockade(cell, c)
		}
	}

	for _, p := range effects.CleanupExpired(m.board.Pieces(c)) {
		m.publish(rules.NewEvent(rules.EventEffectExpired, name, p.Name()))
	}

	m.publish(rules.NewEventWithAmount(rules.EventTurnEnded, name, "", m.turns.RollsThisTurn()))
}

// finishColor ranks c and drops its per-turn watchers. Once a single color
// remains it is ranked last.
func (m *Match) finishColor(c board.Color) {
	rank := m.turns.MarkFinished(c.String())
	m.publish(rules.NewEventWithAmount(rules.EventColorFinished, c.String(), "", rank))
	m.dropColorWatchers(c.String())
	m.logger.Info("color finished", zap.String("color", c.String()), zap.Int("rank", rank))

	if remaining := m.turns.Remaining(); len(remaining) == 1 {
		last := remaining[0]
		rank = m.turns.MarkFinished(last)
		evt := rules.NewEventWithAmount(rules.EventColorFinished, last, "", rank)
		evt.Flag = true
		m.publish(evt)
		m.dropColorWatchers(last)
		m.turns.EndGame()
	}
}

func (m *Match) dropColorWatchers(name string) {
	m.watchers.RemoveWatcher(name + "_CaptureWatcher")
	m.watchers.RemoveWatcher(name + "_RollStreakWatcher")
}

func (m *Match) publishRoundSummary(round int) {
	evt := rules.NewEventWithAmount(rules.EventRoundSummary, "", "", round)
	for _, c := range board.Colors {
		key := c.String()
		evt.Metadata[key] = fmt.Sprintf("base=%d track=%d stretch=%d home=%d",
			m.board.CountIn(c, board.ZoneBase),
			m.board.CountIn(c, board.ZoneTrack),
			m.board.CountIn(c, board.ZoneHomeStretch),
			m.board.CountIn(c, board.ZoneHome),
		)
	}
	if cell := m.board.MysteryCell(); cell != board.NoCell {
		evt.To = board.TrackPosition(cell).String()
		evt.Metadata["mystery_rounds_left"] = fmt.Sprint(m.engine.Mystery().RoundsLeft)
	}
	m.publish(evt)
}

func (m *Match) standings() []board.Color {
	finished := m.turns.Finished()
	out := make([]board.Color, 0, len(finished))
	for _, name := range finished {
		c, err := board.ParseColor(name)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (m *Match) finish(started time.Time) *Result {
	m.turns.EndGame()
	m.result = m.newResult(false, started)

	evt := rules.NewEventWithAmount(rules.EventFinalStandings, "", "", m.result.Rounds)
	evt.Targets = m.turns.Finished()
	m.publish(evt)

	m.logger.Info("match finished",
		zap.Int("rounds", m.result.Rounds),
		zap.Strings("standings", evt.Targets),
		zap.Duration("duration", m.result.Duration),
	)
	return m.result
}

func (m *Match) abort(reason string, started time.Time) {
	m.turns.EndGame()
	m.result = m.newResult(true, started)

	evt := rules.NewEventWithAmount(rules.EventMatchAborted, "", "", m.result.Rounds)
	evt.Targets = m.turns.Finished()
	evt.Description = reason
	m.publish(evt)
}

func (m *Match) newResult(aborted bool, started time.Time) *Result {
	res := &Result{
		MatchID:   m.id,
		Seed:      m.seed,
		Rounds:    m.turns.Round(),
		Standings: m.standings(),
		Aborted:   aborted,
		Duration:  time.Since(started),
	}
	if sum, err := m.Snapshot().ComputeChecksum(); err == nil {
		res.Checksum = sum.Hash
	}
	return res
}
