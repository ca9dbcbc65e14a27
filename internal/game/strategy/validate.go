package strategy

import (
	"strings"

	"github.com/mysteryludo/ludo-sim-go/internal/game/board"
)

// Prop is a bitset of candidate move properties.
type Prop uint16

const (
	PropFromBase Prop = 1 << iota
	PropFullMove
	PropPartialMove
	PropCapture
	PropFormBlock
	PropExitBlock
	PropBlockMove
	PropLandsOnMystery
	PropReachesHome
)

var propNames = []struct {
	prop Prop
	name string
}{
	{PropFromBase, "FROM_BASE"},
	{PropFullMove, "FULL"},
	{PropPartialMove, "PARTIAL"},
	{PropCapture, "CAPTURE"},
	{PropFormBlock, "FORM_BLOCK"},
	{PropExitBlock, "EXIT_BLOCK"},
	{PropBlockMove, "BLOCK_MOVE"},
	{PropLandsOnMystery, "MYSTERY"},
	{PropReachesHome, "HOME"},
}

// Has reports whether every bit of q is set.
func (p Prop) Has(q Prop) bool { return p&q == q }

func (p Prop) String() string {
	var parts []string
	for _, pn := range propNames {
		if p.Has(pn.prop) {
			parts = append(parts, pn.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Candidate is the validation result for one piece.
type Candidate struct {
	Piece    board.PieceID
	Dice     int
	Props    Prop
	InBlock  bool
	UseBlock bool
	Single   board.MovePlan
	Block    board.MovePlan
}

// Movable reports whether any plan for the piece is legal.
func (c Candidate) Movable() bool {
	return c.Single.Legal || (c.InBlock && c.Block.Legal)
}

// SetUseBlock chooses between the single and the group plan of a blockade
// member and recomputes Props. ExitBlock and BlockMove report which plans
// are legal; every other bit describes the chosen plan only.
func (c *Candidate) SetUseBlock(useBlock bool) {
	c.UseBlock = useBlock
	c.Props = 0
	if c.Single.Legal {
		c.Props |= PropExitBlock
	}
	if c.Block.Legal {
		c.Props |= PropBlockMove
	}
	plan := planProps(c.Plan())
	if useBlock {
		plan &^= PropFormBlock
	}
	c.Props |= plan
}

// Plan returns the plan a commit executes for this candidate.
func (c Candidate) Plan() board.MovePlan {
	if c.UseBlock {
		return c.Block
	}
	return c.Single
}

func planProps(plan board.MovePlan) Prop {
	if !plan.Legal {
		return 0
	}
	var p Prop
	switch {
	case plan.Kind == board.MoveFromBase:
		p |= PropFromBase
	case plan.Partial:
		p |= PropPartialMove
	default:
		p |= PropFullMove
	}
	if len(plan.Victims) > 0 {
		p |= PropCapture
	}
	if plan.JoinsOwn {
		p |= PropFormBlock
	}
	if plan.LandsOnMystery {
		p |= PropLandsOnMystery
	}
	if plan.ReachesHome {
		p |= PropReachesHome
	}
	return p
}

// Evaluate runs the validation pass for every piece of c, in ordinal order.
// Base pieces use the raw die; all others use their effective dice value.
// Blockade members are validated twice: alone and as the group.
func Evaluate(b *board.Board, c board.Color, dice int) []Candidate {
	pieces := b.Pieces(c)
	out := make([]Candidate, 0, len(pieces))
	for _, p := range pieces {
		cand := Candidate{Piece: p.ID, Dice: p.EffectiveDice(dice)}
		switch p.Pos.Zone {
		case board.ZoneHome:
		case board.ZoneBase:
			cand.Dice = dice
			cand.Single = b.PlanFromBase(p.ID, dice)
			cand.Props = planProps(cand.Single)
		case board.ZoneHomeStretch:
			cand.Single = b.PlanHomeStretch(p.ID, cand.Dice)
			cand.Props = planProps(cand.Single)
		case board.ZoneTrack:
			cand.Single = b.PlanSingle(p.ID, cand.Dice)
			cand.Props = planProps(cand.Single)
			if b.InBlockade(p.ID) {
				cand.InBlock = true
				cand.Block = b.PlanBlock(p.Pos.Index, c, cand.Dice)
				cand.SetUseBlock(preferBlock(cand.Single, cand.Block))
			}
		}
		out = append(out, cand)
	}
	return out
}

// preferBlock decides whether a blockade member drags the group along
// rather than leaving it.
func preferBlock(single, block board.MovePlan) bool {
	if !block.Legal {
		return false
	}
	if !single.Legal {
		return true
	}
	if block.Captures() && !single.Captures() {
		return true
	}
	return single.Partial && !block.Partial
}

// movementScore scores full over partial movement.
func movementScore(p Prop, w Weights) int {
	switch {
	case p.Has(PropFullMove), p.Has(PropFromBase):
		return w.FullMove
	case p.Has(PropPartialMove):
		return w.PartialMove
	default:
		return 0
	}
}
