package spectator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mysteryludo/ludo-sim-go/internal/config"
	"github.com/mysteryludo/ludo-sim-go/internal/game"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

// Message types written by the feed.
const (
	MessageEvent  = "event"
	MessageResult = "result"
)

// Broadcaster delivers messages to viewers.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg Message) error
}

// EventPayload is the JSON form of a match event.
type EventPayload struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Color       string            `json:"color,omitempty"`
	Piece       string            `json:"piece,omitempty"`
	Target      string            `json:"target,omitempty"`
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	Amount      int               `json:"amount"`
	Requested   int               `json:"requested,omitempty"`
	Flag        bool              `json:"flag,omitempty"`
	Movement    bool              `json:"movement"`
	Targets     []string          `json:"targets,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Description string            `json:"description,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// ResultPayload is the JSON form of a finished match.
type ResultPayload struct {
	Seed      int64    `json:"seed"`
	Rounds    int      `json:"rounds"`
	Standings []string `json:"standings"`
	Aborted   bool     `json:"aborted"`
	Checksum  string   `json:"checksum,omitempty"`
}

// NewEventMessage wraps evt for viewers.
func NewEventMessage(evt rules.Event) Message {
	return Message{
		Type:    MessageEvent,
		MatchID: evt.MatchID,
		Round:   evt.Round,
		Data: EventPayload{
			ID:          evt.ID,
			Type:        string(evt.Type),
			Color:       evt.Color,
			Piece:       evt.PieceID,
			Target:      evt.TargetID,
			From:        evt.From,
			To:          evt.To,
			Amount:      evt.Amount,
			Requested:   evt.Requested,
			Flag:        evt.Flag,
			Movement:    evt.Type.IsMovement(),
			Targets:     evt.Targets,
			Metadata:    evt.Metadata,
			Description: evt.Description,
			Timestamp:   evt.Timestamp,
		},
	}
}

// NewResultMessage wraps res for viewers.
func NewResultMessage(res *game.Result) Message {
	standings := make([]string, 0, len(res.Standings))
	for _, c := range res.Standings {
		standings = append(standings, c.String())
	}
	return Message{
		Type:    MessageResult,
		MatchID: res.MatchID,
		Round:   res.Rounds,
		Data: ResultPayload{
			Seed:      res.Seed,
			Rounds:    res.Rounds,
			Standings: standings,
			Aborted:   res.Aborted,
			Checksum:  res.Checksum,
		},
	}
}

// Feed plays matches back to back and streams their events.
type Feed struct {
	logger *zap.Logger
	out    Broadcaster
	match  config.MatchConfig
	pacing config.SpectatorConfig
}

// NewFeed creates a feed writing to out.
func NewFeed(logger *zap.Logger, out Broadcaster, match config.MatchConfig, pacing config.SpectatorConfig) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{logger: logger, out: out, match: match, pacing: pacing}
}

// Run plays matches until ctx is done. Consecutive matches use
// consecutive seeds when a seed is configured.
func (f *Feed) Run(ctx context.Context) error {
	seed := f.match.Seed
	for n := 1; ; n++ {
		res, err := f.PlayMatch(ctx, seed)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			f.logger.Error("match failed", zap.Int("match", n), zap.Error(err))
		} else {
			f.logger.Info("match streamed",
				zap.Int("match", n),
				zap.String("match_id", res.MatchID),
				zap.Int("rounds", res.Rounds),
			)
		}
		if seed != 0 {
			seed++
		}
		if !sleep(ctx, f.pacing.MatchPause) {
			return nil
		}
	}
}

// PlayMatch runs one match, forwarding each event as it is published and
// the result once it ends. When ctx is cancelled or the broadcaster has
// stopped the match still runs to completion but nothing more is sent.
func (f *Feed) PlayMatch(ctx context.Context, seed int64) (*game.Result, error) {
	closed := false
	bus := rules.NewEventBus()
	bus.Subscribe(func(evt rules.Event) {
		if closed || ctx.Err() != nil {
			return
		}
		err := f.out.Broadcast(ctx, NewEventMessage(evt))
		switch {
		case errors.Is(err, ErrHubClosed):
			f.logger.Debug("hub closed, dropping remaining events", zap.String("event", string(evt.Type)))
			closed = true
			return
		case err != nil && !errors.Is(err, context.Canceled):
			f.logger.Warn("broadcast failed", zap.String("event", string(evt.Type)), zap.Error(err))
			return
		}
		sleep(ctx, f.pacing.EventDelay)
	})

	m, err := game.NewMatch(f.logger,
		game.WithSeed(seed),
		game.WithMaxRounds(f.match.MaxRounds),
		game.WithReplay(false),
		game.WithEventBus(bus),
	)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	res, runErr := m.Run()
	if res != nil && !closed && ctx.Err() == nil {
		if err := f.out.Broadcast(ctx, NewResultMessage(res)); err != nil {
			f.logger.Warn("broadcast result failed", zap.Error(err))
		}
	}
	return res, runErr
}

// sleep waits d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
