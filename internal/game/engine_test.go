package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/dice"
	"github.com/mysteryludo/ludo-sim-go/internal/game/effects"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

type eventLog struct {
	events []rules.Event
}

func (l *eventLog) of(t rules.EventType) []rules.Event {
	var out []rules.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestEngine(t *testing.T, src dice.Source) (*Engine, *board.Board, *eventLog) {
	t.Helper()
	b := board.New()
	bus := rules.NewEventBus()
	log := &eventLog{}
	bus.Subscribe(func(e rules.Event) { log.events = append(log.events, e) })
	return NewEngine(zaptest.NewLogger(t), b, bus, src), b, log
}

func place(b *board.Board, c board.Color, ordinal, cell int) board.PieceID {
	id := board.NewPieceID(c, ordinal)
	b.Move(id, board.TrackPosition(cell))
	return id
}

func TestCommitFromBaseTossesDirection(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted().WithCoins(false))
	id := board.NewPieceID(board.Red, 0)

	out := e.Commit(b.PlanFromBase(id, 6))
	require.True(t, out.Moved)

	p := b.Piece(id)
	assert.Equal(t, board.TrackPosition(28), p.Pos)
	assert.False(t, p.Clockwise)
	assert.False(t, p.BlockClockwise)
	for i := 1; i < board.PiecesPerColor; i++ {
		assert.Equal(t, board.BasePosition(), b.Piece(board.NewPieceID(board.Red, i)).Pos)
	}

	entered := log.of(rules.EventPieceEnteredBoard)
	require.Len(t, entered, 1)
	assert.Equal(t, "R1", entered[0].PieceID)
	assert.Equal(t, "L28", entered[0].To)
	assert.False(t, entered[0].Flag)
}

func TestMutualCaptureLeavesSingleOccupant(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	red := place(b, board.Red, 0, 20)
	blue := place(b, board.Blue, 0, 20)

	captured := e.CaptureByPiece(red, 20)

	assert.Equal(t, []board.PieceID{blue}, captured)
	assert.Equal(t, []board.PieceID{red}, b.Track(20).IDs())
	assert.Equal(t, board.BasePosition(), b.Piece(blue).Pos)
	assert.Equal(t, 1, b.Piece(red).Captures)
	require.NoError(t, b.CheckIntegrity())

	events := log.of(rules.EventPieceCaptured)
	require.Len(t, events, 1)
	assert.Equal(t, "Red", events[0].Color)
	assert.Equal(t, "B1", events[0].TargetID)
	assert.Equal(t, "L20", events[0].To)
	assert.Equal(t, "Blue", events[0].Metadata["victim_color"])
}

func TestCommitCapturesOnLanding(t *testing.T) {
	e, b, _ := newTestEngine(t, dice.NewScripted())
	red := place(b, board.Red, 0, 10)
	blue := place(b, board.Blue, 0, 13)

	out := e.Commit(b.PlanSingle(red, 3))

	assert.Equal(t, []board.PieceID{blue}, out.Captured)
	assert.Equal(t, []board.PieceID{red}, b.Track(13).IDs())
	require.NoError(t, b.CheckIntegrity())
}

func TestCaptureResetsVictim(t *testing.T) {
	e, b, _ := newTestEngine(t, dice.NewScripted())
	red := place(b, board.Red, 0, 5)
	blue := place(b, board.Blue, 0, 7)
	v := b.Piece(blue)
	v.Captures = 2
	v.ApproachPasses = 1
	v.Clockwise = false
	v.Effect = effects.NewHalt(effects.DefaultDuration)

	e.Commit(b.PlanSingle(red, 2))

	assert.Equal(t, board.BasePosition(), v.Pos)
	assert.Zero(t, v.Captures)
	assert.Zero(t, v.ApproachPasses)
	assert.True(t, v.Clockwise)
	assert.False(t, v.Effect.Active())
}

func TestCaptureByBlockCreditsEveryMember(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	g1 := place(b, board.Green, 0, 40)
	g2 := place(b, board.Green, 1, 40)
	y1 := place(b, board.Yellow, 0, 42)
	y2 := place(b, board.Yellow, 1, 42)

	out := e.Commit(b.PlanBlock(40, board.Green, 4))
	require.True(t, out.Moved)

	assert.ElementsMatch(t, []board.PieceID{y1, y2}, out.Captured)
	assert.Equal(t, 1, b.Piece(g1).Captures)
	assert.Equal(t, 1, b.Piece(g2).Captures)
	assert.ElementsMatch(t, []board.PieceID{g1, g2}, b.Track(42).IDs())
	assert.True(t, b.Track(40).Empty())
	assert.Len(t, log.of(rules.EventPieceCaptured), 2)
	assert.Len(t, log.of(rules.EventBlockadeMoved), 1)
	require.NoError(t, b.CheckIntegrity())
}

func TestFormBlockFollowsFarthestMember(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r1 := place(b, board.Red, 0, 10)
	r2 := place(b, board.Red, 1, 12)
	b.Piece(r2).Clockwise = false

	e.Commit(b.PlanSingle(r1, 2))

	require.True(t, b.IsBlockade(12))
	assert.False(t, b.Piece(r1).BlockClockwise, "the counter-clockwise member has farther to go")
	assert.False(t, b.Piece(r2).BlockClockwise)

	formed := log.of(rules.EventBlockadeFormed)
	require.Len(t, formed, 1)
	assert.Equal(t, "R2", formed[0].PieceID)
	assert.Equal(t, 2, formed[0].Amount)
}

func TestSeparateBlockadeMovesMembersIndividually(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r1 := place(b, board.Red, 0, 10)
	r2 := place(b, board.Red, 1, 10)
	b.Piece(r2).Clockwise = false

	outcomes := e.SeparateBlockade(10, board.Red)
	require.Len(t, outcomes, 2)

	assert.Equal(t, board.TrackPosition(13), b.Piece(r1).Pos)
	assert.Equal(t, board.TrackPosition(6), b.Piece(r2).Pos, "later members travel one cell further")
	for _, cell := range []int{10, 13, 6} {
		assert.False(t, b.IsBlockade(cell), "L%d", cell)
	}

	sep := log.of(rules.EventBlockadeSeparated)
	require.Len(t, sep, 1)
	assert.Equal(t, board.MaxDice/2, sep[0].Amount)

	assert.Nil(t, e.SeparateBlockade(13, board.Red), "a lone piece is not a blockade")
}

func TestSeparateBlockadeSameDirectionDissolves(t *testing.T) {
	e, b, _ := newTestEngine(t, dice.NewScripted())
	r1 := place(b, board.Red, 0, 10)
	r2 := place(b, board.Red, 1, 10)

	e.SeparateBlockade(10, board.Red)

	assert.Equal(t, board.TrackPosition(13), b.Piece(r1).Pos)
	assert.Equal(t, board.TrackPosition(14), b.Piece(r2).Pos)
	for _, cell := range []int{10, 13, 14} {
		assert.False(t, b.IsBlockade(cell), "L%d", cell)
	}
	require.NoError(t, b.CheckIntegrity())
}

func TestSeparateBlockadeAvoidsOwnPieces(t *testing.T) {
	e, b, _ := newTestEngine(t, dice.NewScripted())
	r1 := place(b, board.Red, 0, 10)
	r2 := place(b, board.Red, 1, 10)
	place(b, board.Red, 2, 14)

	e.SeparateBlockade(10, board.Red)

	assert.Equal(t, board.TrackPosition(13), b.Piece(r1).Pos)
	assert.Equal(t, board.TrackPosition(12), b.Piece(r2).Pos, "L14 and L13 already hold Red")
	for _, cell := range []int{10, 12, 13, 14} {
		assert.False(t, b.IsBlockade(cell), "L%d", cell)
	}
}

func TestSeparateBlockadeMemberWithNoExitStays(t *testing.T) {
	e, b, _ := newTestEngine(t, dice.NewScripted())
	r1 := place(b, board.Red, 0, 10)
	r2 := place(b, board.Red, 1, 10)
	b.Piece(r1).Clockwise = false
	place(b, board.Blue, 0, 9)
	place(b, board.Blue, 1, 9)

	outcomes := e.SeparateBlockade(10, board.Red)

	require.Len(t, outcomes, 1)
	assert.Equal(t, board.TrackPosition(10), b.Piece(r1).Pos, "two Blues block the only way")
	assert.Equal(t, board.TrackPosition(14), b.Piece(r2).Pos)
	assert.False(t, b.IsBlockade(10))
}

func TestHomeStretchEntryReachesHome(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r := place(b, board.Red, 0, 26)
	b.Piece(r).Captures = 1

	out := e.Commit(b.PlanSingle(r, 6))

	assert.Equal(t, []board.PieceID{r}, out.Home)
	assert.Equal(t, board.HomePosition(), b.Piece(r).Pos)
	assert.Zero(t, b.Piece(r).ApproachPasses, "starting on the approach cell is not a pass")
	assert.Len(t, log.of(rules.EventEnteredHomeStretch), 1)
	require.Len(t, log.of(rules.EventReachedHome), 1)
	assert.Equal(t, 1, log.of(rules.EventReachedHome)[0].Amount)
}

func TestApproachPassWithoutCapture(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r := place(b, board.Red, 0, 24)

	e.Commit(b.PlanSingle(r, 6))

	assert.Equal(t, board.TrackPosition(30), b.Piece(r).Pos)
	assert.Equal(t, 1, b.Piece(r).ApproachPasses)
	assert.Len(t, log.of(rules.EventApproachPassed), 1)
	assert.Empty(t, log.of(rules.EventEnteredHomeStretch))
}

func TestEnteringOvershootStopsAtStretchStart(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r := place(b, board.Red, 0, 25)
	b.Piece(r).Captures = 1

	// One step to the approach cell, one to enter, six more would pass Home.
	e.Commit(b.PlanSingle(r, 8))

	assert.Equal(t, board.StretchPosition(0), b.Piece(r).Pos)
	assert.Len(t, log.of(rules.EventHomeOvershoot), 1)
}

func TestIllegalPlansLeaveBoardUntouched(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted())
	r := place(b, board.Red, 0, 10)
	place(b, board.Blue, 0, 11)
	place(b, board.Blue, 1, 11)

	out := e.Commit(b.PlanSingle(r, 4))
	assert.False(t, out.Moved)
	assert.Equal(t, board.TrackPosition(10), b.Piece(r).Pos)

	blocked := log.of(rules.EventMoveBlocked)
	require.Len(t, blocked, 1)
	assert.Equal(t, "L11", blocked[0].Metadata["blocked_at"])

	y := board.NewPieceID(board.Yellow, 0)
	b.Move(y, board.StretchPosition(4))
	out = e.Commit(b.PlanSingle(y, 3))
	assert.False(t, out.Moved)
	assert.Equal(t, board.StretchPosition(4), b.Piece(y).Pos)
	assert.Len(t, log.of(rules.EventHomeOvershoot), 1)
}

func TestEventsCarryMatchAndRound(t *testing.T) {
	e, b, log := newTestEngine(t, dice.NewScripted().WithCoins(true))
	e.SetMatch("m-1")
	e.SetRound(7)

	e.Commit(b.PlanFromBase(board.NewPieceID(board.Green, 0), 6))

	require.NotEmpty(t, log.events)
	for _, evt := range log.events {
		assert.Equal(t, "m-1", evt.MatchID)
		assert.Equal(t, 7, evt.Round)
		assert.NotEmpty(t, evt.ID)
	}
}
