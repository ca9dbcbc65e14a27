package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mysteryludo/ludo-sim-go/internal/game"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

// renderer prints match events as plain text.
type renderer struct {
	w io.Writer
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

// Render writes the line for evt, if it has one.
func (r *renderer) Render(evt rules.Event) {
	if line := describe(evt); line != "" {
		fmt.Fprintln(r.w, line)
	}
}

// Summary writes the final standings of a match.
func (r *renderer) Summary(res *game.Result) {
	if res == nil {
		return
	}
	if res.Aborted {
		fmt.Fprintf(r.w, "Match %s aborted after %d rounds\n", res.MatchID, res.Rounds)
	} else {
		fmt.Fprintf(r.w, "Match %s finished after %d rounds\n", res.MatchID, res.Rounds)
	}
	for i, c := range res.Standings {
		fmt.Fprintf(r.w, "  %d. %s\n", i+1, c)
	}
	fmt.Fprintf(r.w, "  seed %d, checksum %s\n", res.Seed, res.Checksum)
}

// Checksums writes one replay checksum per round.
func (r *renderer) Checksums(sums []string) {
	for i, sum := range sums {
		fmt.Fprintf(r.w, "  round %3d %s\n", i+1, sum)
	}
}

func describe(evt rules.Event) string {
	switch evt.Type {
	case rules.EventInitialRoll:
		return fmt.Sprintf("%s rolls %d for the opening order", evt.Color, evt.Amount)
	case rules.EventTurnOrderDecided:
		return fmt.Sprintf("%s starts with %d. The order of a round is %s\n", evt.Color, evt.Amount, strings.Join(evt.Targets, ", "))
	case rules.EventRoundStarted:
		return fmt.Sprintf("=============== Round %d ===============", evt.Amount)
	case rules.EventDiceRolled:
		return fmt.Sprintf("%s rolled %d", evt.Color, evt.Amount)
	case rules.EventNoMovablePiece:
		return fmt.Sprintf("%s has no piece that can move with %d", evt.Color, evt.Amount)
	case rules.EventPieceEnteredBoard:
		return fmt.Sprintf("%s moves %s from Base to %s (%s)", evt.Color, evt.PieceID, evt.To, direction(evt.Flag))
	case rules.EventPieceMoved:
		if evt.Flag {
			return fmt.Sprintf("%s moves %s from %s to %s by %d of %d, blocked at %s",
				evt.Color, evt.PieceID, evt.From, evt.To, evt.Amount, evt.Requested, evt.Metadata["blocked_at"])
		}
		return fmt.Sprintf("%s moves %s from %s to %s by %d", evt.Color, evt.PieceID, evt.From, evt.To, evt.Amount)
	case rules.EventMoveBlocked:
		return fmt.Sprintf("%s piece %s at %s cannot move: %s", evt.Color, evt.PieceID, evt.From, evt.Description)
	case rules.EventPieceCaptured:
		return fmt.Sprintf("%s piece %s lands on %s, captures %s piece %s and returns it to Base",
			evt.Color, evt.PieceID, evt.To, evt.Metadata["victim_color"], evt.TargetID)
	case rules.EventBlockadeFormed:
		return fmt.Sprintf("%s forms a blockade of %d at %s (%s)", evt.Color, evt.Amount, evt.To, direction(evt.Flag))
	case rules.EventBlockadeMoved:
		return fmt.Sprintf("%s moves blockade %s from %s to %s", evt.Color, strings.Join(evt.Targets, "+"), evt.From, evt.To)
	case rules.EventBlockadeSeparated:
		return fmt.Sprintf("%s blockade at %s is separated, each piece moves %d", evt.Color, evt.From, evt.Amount)
	case rules.EventBalancingRuleUsed:
		return fmt.Sprintf("%s rolled three sixes while holding a blockade", evt.Color)
	case rules.EventEnteredHomeStretch:
		return fmt.Sprintf("%s piece %s enters the home straight at %s", evt.Color, evt.PieceID, evt.To)
	case rules.EventHomeOvershoot:
		return fmt.Sprintf("%s piece %s overshoots Home", evt.Color, evt.PieceID)
	case rules.EventReachedHome:
		return fmt.Sprintf("%s piece %s reaches Home (%d/4)", evt.Color, evt.PieceID, evt.Amount)
	case rules.EventMysteryCellSpawned:
		return fmt.Sprintf("A mystery cell has spawned at %s for the next %d rounds", evt.To, evt.Amount)
	case rules.EventMysteryCellSkipped:
		return "No empty cell is available for the mystery cell this round"
	case rules.EventMysteryEffectApplied:
		return fmt.Sprintf("%s feels the effect of %s and is teleported to %s", strings.Join(evt.Targets, ", "), evt.Metadata["effect"], evt.To)
	case rules.EventTeleportRefused:
		return fmt.Sprintf("%s cannot be teleported to %s: %s", strings.Join(evt.Targets, ", "), evt.To, strings.ToLower(evt.Description))
	case rules.EventEffectExpired:
		return fmt.Sprintf("The effect on %s has worn off", evt.PieceID)
	case rules.EventColorFinished:
		return fmt.Sprintf("%s finishes in place %d", evt.Color, evt.Amount)
	case rules.EventRoundSummary:
		return roundSummary(evt)
	case rules.EventMatchAborted:
		return fmt.Sprintf("Match aborted after %d rounds: %s", evt.Amount, evt.Description)
	}
	return ""
}

func roundSummary(evt rules.Event) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, color := range []string{"Yellow", "Blue", "Red", "Green"} {
		if line, ok := evt.Metadata[color]; ok {
			fmt.Fprintf(&b, "%s: %s\n", color, line)
		}
	}
	if evt.To != "" {
		fmt.Fprintf(&b, "The mystery cell is at %s for the next %s rounds\n", evt.To, evt.Metadata["mystery_rounds_left"])
	} else {
		b.WriteString("No mystery cell yet\n")
	}
	return b.String()
}

func direction(clockwise bool) string {
	if clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}
