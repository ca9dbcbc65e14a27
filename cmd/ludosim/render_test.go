package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mysteryludo/ludo-sim-go/internal/config"
	"github.com/mysteryludo/ludo-sim-go/internal/game"
	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

func TestDescribeCapture(t *testing.T) {
	evt := rules.NewEvent(rules.EventPieceCaptured, "Red", "R1")
	evt.TargetID = "B2"
	evt.To = "L13"
	evt.Metadata["victim_color"] = "Blue"

	assert.Equal(t, "Red piece R1 lands on L13, captures Blue piece B2 and returns it to Base", describe(evt))
}

func TestDescribePartialMove(t *testing.T) {
	evt := rules.NewEventWithAmount(rules.EventPieceMoved, "Green", "G3", 2)
	evt.From = "L40"
	evt.To = "L42"
	evt.Requested = 5
	evt.Flag = true
	evt.Metadata["blocked_at"] = "L43"

	assert.Equal(t, "Green moves G3 from L40 to L42 by 2 of 5, blocked at L43", describe(evt))
}

func TestDescribeIgnoresInternalEvents(t *testing.T) {
	assert.Empty(t, describe(rules.NewEvent(rules.EventTurnEnded, "Red", "")))
	assert.Empty(t, describe(rules.NewEvent(rules.EventApproachPassed, "Red", "R1")))
}

func TestRendererSummary(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)

	r.Summary(&game.Result{
		MatchID:   "m",
		Rounds:    120,
		Standings: []board.Color{board.Blue, board.Red, board.Yellow, board.Green},
	})

	out := buf.String()
	assert.Contains(t, out, "finished after 120 rounds")
	assert.Contains(t, out, "1. Blue")
	assert.Contains(t, out, "4. Green")
}

func TestPlayMatchRendersEvents(t *testing.T) {
	var buf bytes.Buffer
	bus := rules.NewEventBus()
	bus.Subscribe(newRenderer(&buf).Render)

	m, err := game.NewMatch(zap.NewNop(), game.WithSeed(5), game.WithMaxRounds(10), game.WithEventBus(bus))
	require.NoError(t, err)
	_, err = m.Run()
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 10, strings.Count(out, "=============== Round"))
	assert.Contains(t, out, "The order of a round is")
}

func TestQuietRenderingShowsOnlyFinishes(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)
	bus := rules.NewEventBus()
	bus.SubscribeTyped(rules.EventColorFinished, r.Render)

	bus.Publish(rules.NewEventWithAmount(rules.EventDiceRolled, "Red", "", 6))
	bus.Publish(rules.NewEventWithAmount(rules.EventColorFinished, "Red", "", 1))

	assert.Equal(t, "Red finishes in place 1\n", buf.String())
}

func TestVerifyReplayReturnsRoundChecksums(t *testing.T) {
	m, err := game.NewMatch(zap.NewNop(), game.WithSeed(21), game.WithMaxRounds(8), game.WithReplay(true))
	require.NoError(t, err)
	_, err = m.Run()
	require.NoError(t, err)

	sums, err := verifyReplay(m.Replay())
	require.NoError(t, err)
	require.Len(t, sums, 8)

	var buf bytes.Buffer
	newRenderer(&buf).Checksums(sums)
	assert.Equal(t, 8, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), sums[7])
}

func TestInitLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		logger, err := initLogger(config.LoggingConfig{Level: level, Format: "json"})
		require.NoError(t, err, level)
		require.NotNil(t, logger)
	}
	logger, err := initLogger(config.LoggingConfig{Level: "info", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
