package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/dice"
	"github.com/mysteryludo/ludo-sim-go/internal/game/effects"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
	"github.com/mysteryludo/ludo-sim-go/internal/game/strategy"
	"github.com/mysteryludo/ludo-sim-go/internal/game/watchers"
)

func newTestMatch(t *testing.T, opts ...Option) (*Match, *eventLog) {
	t.Helper()
	m, err := NewMatch(zaptest.NewLogger(t), opts...)
	require.NoError(t, err)
	log := &eventLog{}
	m.Events().Subscribe(func(e rules.Event) { log.events = append(log.events, e) })
	return m, log
}

func rollsOf(log *eventLog, color string) []int {
	var out []int
	for _, e := range log.of(rules.EventDiceRolled) {
		if e.Color == color {
			out = append(out, e.Amount)
		}
	}
	return out
}

func TestInitialOrderHighestRollStarts(t *testing.T) {
	m, log := newTestMatch(t, WithSource(dice.NewScripted(3, 5, 5, 2)))

	m.decideOrder()

	assert.Equal(t, []string{"Blue", "Red", "Green", "Yellow"}, m.turns.Order())
	assert.Len(t, log.of(rules.EventInitialRoll), board.NumColors)
	decided := log.of(rules.EventTurnOrderDecided)
	require.Len(t, decided, 1)
	assert.Equal(t, "Blue", decided[0].Color)
	assert.Equal(t, 5, decided[0].Amount)
}

func TestTurnEndsWithoutSixOrCapture(t *testing.T) {
	m, log := newTestMatch(t, WithSource(dice.NewScripted(6, 3).WithCoins(true)))
	m.turns.SetOrder([]string{"Red"})

	m.playTurn(board.Red)

	assert.Equal(t, []int{6, 3}, rollsOf(log, "Red"))
	assert.Equal(t, board.TrackPosition(31), m.board.Piece(board.NewPieceID(board.Red, 0)).Pos)
	assert.Len(t, log.of(rules.EventTurnExtended), 1)
}

func TestTurnExtendsOnCapture(t *testing.T) {
	m, log := newTestMatch(t, WithSource(dice.NewScripted(3, 2, 4)))
	r := place(m.board, board.Red, 0, 10)
	place(m.board, board.Blue, 0, 13)

	m.playTurn(board.Red)

	assert.Equal(t, []int{3, 2}, rollsOf(log, "Red"), "the capture earns one more roll")
	assert.Equal(t, board.TrackPosition(15), m.board.Piece(r).Pos)
}

func TestThreeSixesSeparateBlockade(t *testing.T) {
	src := dice.NewScripted(6, 6, 6, 6).WithCoins(true, false, true)
	m, log := newTestMatch(t, WithSource(src))

	m.playTurn(board.Red)

	assert.Equal(t, []int{6, 6, 6}, rollsOf(log, "Red"), "turn stops after three rolls")
	require.Len(t, log.of(rules.EventBalancingRuleUsed), 1)
	require.Len(t, log.of(rules.EventBlockadeSeparated), 1)

	r1 := m.board.Piece(board.NewPieceID(board.Red, 0))
	r2 := m.board.Piece(board.NewPieceID(board.Red, 1))
	r3 := m.board.Piece(board.NewPieceID(board.Red, 2))
	assert.Equal(t, board.TrackPosition(30), r1.Pos)
	assert.Equal(t, board.TrackPosition(25), r2.Pos)
	assert.Equal(t, board.TrackPosition(32), r3.Pos)
	assert.True(t, m.board.Track(28).Empty())
	for _, cell := range []int{25, 28, 30, 32} {
		assert.False(t, m.board.IsBlockade(cell), "L%d", cell)
	}
	require.NoError(t, m.board.CheckIntegrity())
}

func TestEffectsTickAfterTurn(t *testing.T) {
	m, log := newTestMatch(t, WithSource(dice.NewScripted(2)))
	r := place(m.board, board.Red, 0, 10)
	p := m.board.Piece(r)
	p.Effect.Multiplier = 2
	p.Effect.Divider = 1
	p.Effect.RoundsLeft = 1

	m.playTurn(board.Red)

	assert.Equal(t, board.TrackPosition(14), p.Pos, "boost applied before ticking")
	assert.False(t, p.Effect.Active())
	expired := log.of(rules.EventEffectExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, "R1", expired[0].PieceID)
}

func TestEffectGainedThisTurnKeepsFullDuration(t *testing.T) {
	src := dice.NewScripted(2, 3).WithMystery(1).WithCoins(true)
	m, log := newTestMatch(t, WithSource(src))
	r := place(m.board, board.Red, 0, 20)
	m.board.SetMysteryCell(22)
	p := m.board.Piece(r)

	m.playTurn(board.Red)
	require.Equal(t, board.TrackPosition(board.BhawanaCell), p.Pos)
	assert.Equal(t, effects.DefaultDuration, p.Effect.RoundsLeft, "the landing turn does not count")

	m.playTurn(board.Red)
	assert.Equal(t, board.TrackPosition(board.BhawanaCell+6), p.Pos, "boost doubles the next roll")
	assert.Equal(t, effects.DefaultDuration-1, p.Effect.RoundsLeft)
	assert.Empty(t, log.of(rules.EventEffectExpired))
}

func TestFinishedColorIsRankedOnceAndSkipped(t *testing.T) {
	b := board.New()
	for i := 0; i < 3; i++ {
		b.Move(board.NewPieceID(board.Red, i), board.HomePosition())
	}
	b.Move(board.NewPieceID(board.Red, 3), board.StretchPosition(4))

	// Initial rolls put Red first, then every other color fails to leave base.
	src := dice.NewScripted(1, 1, 6, 1, 1, 2, 2, 2, 2, 2, 2)
	m, log := newTestMatch(t, WithSource(src), WithBoard(b), WithMaxRounds(2))

	res, err := m.Run()
	require.NoError(t, err)
	assert.True(t, res.Aborted)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, []board.Color{board.Red}, res.Standings)
	_, ok := res.Winner()
	assert.False(t, ok, "aborted matches have no winner")

	finished := log.of(rules.EventColorFinished)
	require.Len(t, finished, 1)
	assert.Equal(t, "Red", finished[0].Color)
	assert.Equal(t, 1, finished[0].Amount)

	assert.Equal(t, []int{1}, rollsOf(log, "Red"), "Red does not roll after finishing")
	assert.Len(t, rollsOf(log, "Green"), 2)
	assert.Len(t, log.of(rules.EventMatchAborted), 1)

	assert.Nil(t, m.watchers.GetWatcher("Red_CaptureWatcher"))
	assert.Nil(t, m.watchers.GetWatcher("Red_RollStreakWatcher"))
	assert.NotNil(t, m.watchers.GetWatcher("Green_RollStreakWatcher"))
}

func TestLastColorRankedAutomatically(t *testing.T) {
	b := board.New()
	for _, c := range []board.Color{board.Yellow, board.Blue} {
		for i := 0; i < board.PiecesPerColor; i++ {
			b.Move(board.NewPieceID(c, i), board.HomePosition())
		}
	}
	for i := 0; i < 3; i++ {
		b.Move(board.NewPieceID(board.Red, i), board.HomePosition())
	}
	b.Move(board.NewPieceID(board.Red, 3), board.StretchPosition(3))

	src := dice.NewScripted(1, 1, 6, 1, 2)
	m, log := newTestMatch(t, WithSource(src), WithBoard(b))
	m.turns.MarkFinished("Yellow")
	m.turns.MarkFinished("Blue")

	res, err := m.Run()
	require.NoError(t, err)
	assert.False(t, res.Aborted)
	assert.Equal(t, []board.Color{board.Yellow, board.Blue, board.Red, board.Green}, res.Standings)
	winner, ok := res.Winner()
	require.True(t, ok)
	assert.Equal(t, board.Yellow, winner)

	finished := log.of(rules.EventColorFinished)
	require.Len(t, finished, 2)
	assert.Equal(t, "Green", finished[1].Color)
	assert.Equal(t, 4, finished[1].Amount)
	assert.True(t, finished[1].Flag)
	require.Len(t, log.of(rules.EventFinalStandings), 1)

	for _, color := range []string{"Red", "Green"} {
		assert.Nil(t, m.watchers.GetWatcher(color+"_CaptureWatcher"), color)
		assert.Nil(t, m.watchers.GetWatcher(color+"_RollStreakWatcher"), color)
	}
	assert.NotNil(t, m.watchers.GetWatcher("MatchStatsWatcher"))
}

func TestSameSeedSameMatch(t *testing.T) {
	run := func() (*Result, []string) {
		m, err := NewMatch(zap.NewNop(), WithSeed(42), WithMaxRounds(200))
		require.NoError(t, err)
		res, err := m.Run()
		require.NoError(t, err)
		sums, err := m.Replay().Checksums()
		require.NoError(t, err)
		require.NoError(t, m.Board().CheckIntegrity())
		return res, sums
	}

	first, firstSums := run()
	second, secondSums := run()

	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, first.Standings, second.Standings)
	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, firstSums, secondSums)
	assert.Len(t, firstSums, first.Rounds)
	assert.NotEqual(t, first.MatchID, second.MatchID)
}

func TestMatchesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m, err := NewMatch(zap.NewNop(), WithSeed(seed))
		require.NoError(t, err)
		res, err := m.Run()
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, m.Board().CheckIntegrity(), "seed %d", seed)

		seen := make(map[board.Color]bool)
		for _, c := range res.Standings {
			assert.False(t, seen[c], "seed %d: %s ranked twice", seed, c)
			seen[c] = true
		}
		if res.Aborted {
			continue
		}
		require.Len(t, res.Standings, board.NumColors, "seed %d", seed)
		for _, c := range res.Standings[:board.NumColors-1] {
			assert.True(t, m.Board().AllHome(c), "seed %d: %s ranked without all pieces home", seed, c)
		}
	}
}

func TestRunTwice(t *testing.T) {
	m, _ := newTestMatch(t, WithSeed(7), WithMaxRounds(5))
	_, err := m.Run()
	require.NoError(t, err)

	_, err = m.Run()
	assert.ErrorIs(t, err, ErrMatchFinished)
	assert.Equal(t, rules.PhaseGameOver, m.turns.CurrentPhase())
}

func TestRunAfterGameOverPhase(t *testing.T) {
	m, log := newTestMatch(t, WithSeed(7))
	m.turns.EndGame()

	res, err := m.Run()
	assert.ErrorIs(t, err, ErrMatchFinished)
	assert.Nil(t, res)
	assert.Empty(t, log.events)
}

func TestTurnResetsStreakOfPreviousTurn(t *testing.T) {
	m, _ := newTestMatch(t, WithSource(dice.NewScripted(6, 6, 2, 3).WithCoins(true, true)))
	streak := m.watchers.GetWatcher("Red_RollStreakWatcher").(*watchers.RollStreakWatcher)

	m.playTurn(board.Red)
	assert.Equal(t, []int{6, 6, 2}, streak.Rolls())

	m.playTurn(board.Red)
	assert.Equal(t, []int{3}, streak.Rolls())
	assert.Equal(t, 0, streak.Streak())
}

func TestNewMatchRejectsInvalidOptions(t *testing.T) {
	_, err := NewMatch(nil, WithMaxRounds(0))
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewMatch(nil, WithSource(nil))
	assert.ErrorIs(t, err, ErrInvalidOption)

	bad := board.New()
	bad.Move(board.NewPieceID(board.Red, 0), board.TrackPosition(3))
	bad.Move(board.NewPieceID(board.Blue, 0), board.TrackPosition(3))
	_, err = NewMatch(nil, WithBoard(bad))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

type brokenStrategy struct{}

func (brokenStrategy) Color() board.Color { return board.Yellow }

func (brokenStrategy) Decide(b *board.Board, roll int) (strategy.Decision, bool) {
	plan := board.MovePlan{
		Kind:   board.MoveKind(99),
		Color:  board.Yellow,
		Pieces: []board.PieceID{board.NewPieceID(board.Yellow, 0)},
		Legal:  true,
	}
	return strategy.Decision{Color: board.Yellow, Piece: plan.Pieces[0], Plan: plan}, true
}

func TestInvariantViolationAbortsMatch(t *testing.T) {
	m, log := newTestMatch(t,
		WithSource(dice.NewScripted(6, 1, 1, 1, 3)),
		WithStrategy(brokenStrategy{}),
	)

	res, err := m.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrInvariant)
	require.NotNil(t, res)
	assert.True(t, res.Aborted)
	assert.Len(t, log.of(rules.EventMatchAborted), 1)
}
