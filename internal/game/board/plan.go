package board

import "github.com/mysteryludo/ludo-sim-go/internal/game/rules"

// MoveKind is the kind of movement a plan describes.
type MoveKind int

const (
	MoveFromBase MoveKind = iota
	MoveSingle
	MoveBlock
	MoveHomeStretch
)

var moveKindNames = map[MoveKind]string{
	MoveFromBase:    "FROM_BASE",
	MoveSingle:      "SINGLE",
	MoveBlock:       "BLOCK",
	MoveHomeStretch: "HOME_STRETCH",
}

func (k MoveKind) String() string {
	if name, ok := moveKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Reason explains why a plan is not legal.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonAtHome      Reason = "piece already home"
	ReasonNeedsSix    Reason = "needs a six to leave base"
	ReasonImmobile    Reason = "effective dice value is zero"
	ReasonBlocked     Reason = "path blocked"
	ReasonOvershoot   Reason = "overshoots home"
	ReasonNotBlockade Reason = "not a blockade"
)

// MovePlan is the outcome of a movement question asked of the board. Plans
// never mutate the board; the engine commits them.
type MovePlan struct {
	Kind      MoveKind
	Color     Color
	Pieces    []PieceID
	From      Position
	To        Position
	Requested int
	Distance  int
	Legal     bool
	Reason    Reason
	BlockedAt int

	Partial           bool
	EntersHomeStretch bool
	ReachesHome       bool
	Overshoot         bool
	CrossesApproach   bool
	Victims           []PieceID
	JoinsOwn          bool
	LandsOnMystery    bool
}

// Captures reports whether committing the plan sends enemies to base.
func (p MovePlan) Captures() bool {
	return p.Legal && len(p.Victims) > 0
}

func (b *Board) finishTrackLanding(plan *MovePlan, cell int) {
	plan.To = TrackPosition(cell)
	plan.Victims = b.Enemies(cell, plan.Color)
	own, _ := b.Counts(cell, plan.Color)
	plan.JoinsOwn = own > 0
	plan.LandsOnMystery = cell == b.mystery
}

// PlanFromBase plans bringing id onto its start cell with the raw die value.
func (b *Board) PlanFromBase(id PieceID, dice int) MovePlan {
	p := b.Piece(id)
	plan := MovePlan{
		Kind:      MoveFromBase,
		Color:     p.Color,
		Pieces:    []PieceID{id},
		From:      p.Pos,
		To:        p.Pos,
		Requested: dice,
		BlockedAt: NoCell,
	}
	if p.Pos.Zone != ZoneBase {
		return plan
	}
	if !rules.CanLeaveBase(dice) {
		plan.Reason = ReasonNeedsSix
		return plan
	}
	start := p.Color.Start()
	if !b.Passable(start, 1, p.Color) {
		plan.Reason = ReasonBlocked
		plan.BlockedAt = start
		return plan
	}
	plan.Legal = true
	b.finishTrackLanding(&plan, start)
	return plan
}

// PlanSingle plans moving id alone by an effective dice value. Base and home
// stretch pieces are delegated to PlanFromBase and PlanHomeStretch.
//
// On the track the piece walks cell by cell. Standing on its approach cell
// with the home gate open, the next unit enters the home stretch at offset 0
// and the remainder continues inside the stretch; an overshoot there stops
// the piece at offset 0.
func (b *Board) PlanSingle(id PieceID, dice int) MovePlan {
	p := b.Piece(id)
	switch p.Pos.Zone {
	case ZoneBase:
		return b.PlanFromBase(id, dice)
	case ZoneHomeStretch:
		return b.PlanHomeStretch(id, dice)
	}

	plan := MovePlan{
		Kind:      MoveSingle,
		Color:     p.Color,
		Pieces:    []PieceID{id},
		From:      p.Pos,
		To:        p.Pos,
		Requested: dice,
		BlockedAt: NoCell,
	}
	if p.Pos.Zone == ZoneHome {
		plan.Reason = ReasonAtHome
		return plan
	}
	if dice <= 0 {
		plan.Reason = ReasonImmobile
		return plan
	}

	approach := p.Color.Approach()
	gate := rules.CanEnterHomeStraight(p.Captures, p.ApproachPasses, p.Clockwise)
	cur := p.Pos.Index
	steps := 0
	for k := 1; k <= dice; k++ {
		if cur == approach && gate {
			rest := dice - k
			plan.Legal = true
			plan.EntersHomeStretch = true
			switch {
			case rest == StretchLength:
				plan.To = HomePosition()
				plan.ReachesHome = true
				plan.Distance = dice
			case rest < StretchLength:
				plan.To = StretchPosition(rest)
				plan.Distance = dice
			default:
				plan.To = StretchPosition(0)
				plan.Overshoot = true
				plan.Distance = k
			}
			return plan
		}
		next := Step(cur, 1, p.Clockwise)
		if !b.Passable(next, 1, p.Color) {
			plan.BlockedAt = next
			break
		}
		cur = next
		steps = k
		if cur == approach {
			plan.CrossesApproach = true
		}
	}

	if steps == 0 {
		plan.Reason = ReasonBlocked
		return plan
	}
	plan.Legal = true
	plan.Distance = steps
	plan.Partial = steps < dice
	b.finishTrackLanding(&plan, cur)
	return plan
}

// PlanBlock plans moving the whole blockade on cell. Each member advances
// dice / size cells along the blockade's shared direction; the size of the
// group is the traveler count for blocking.
func (b *Board) PlanBlock(cell int, c Color, dice int) MovePlan {
	members := b.Group(cell, c)
	plan := MovePlan{
		Kind:      MoveBlock,
		Color:     c,
		Pieces:    members,
		From:      TrackPosition(cell),
		To:        TrackPosition(cell),
		BlockedAt: NoCell,
	}
	size := len(members)
	if size < 2 {
		plan.Reason = ReasonNotBlockade
		return plan
	}
	step := dice / size
	plan.Requested = step
	if step <= 0 {
		plan.Reason = ReasonImmobile
		return plan
	}

	clockwise := b.Piece(members[0]).BlockClockwise
	d := b.MovableDistance(cell, step, clockwise, size, c)
	if d < step {
		plan.BlockedAt = Step(cell, d+1, clockwise)
	}
	if d == 0 {
		plan.Reason = ReasonBlocked
		return plan
	}
	plan.Legal = true
	plan.Distance = d
	plan.Partial = d < step
	plan.CrossesApproach = PathCrosses(cell, d, clockwise, c.Approach())
	b.finishTrackLanding(&plan, Step(cell, d, clockwise))
	return plan
}

// PlanHomeStretch plans advancing id inside its home stretch. Landing
// exactly on Home finishes the piece; overshooting is rejected.
func (b *Board) PlanHomeStretch(id PieceID, dice int) MovePlan {
	p := b.Piece(id)
	plan := MovePlan{
		Kind:      MoveHomeStretch,
		Color:     p.Color,
		Pieces:    []PieceID{id},
		From:      p.Pos,
		To:        p.Pos,
		Requested: dice,
		BlockedAt: NoCell,
	}
	if p.Pos.Zone != ZoneHomeStretch {
		return plan
	}
	if dice <= 0 {
		plan.Reason = ReasonImmobile
		return plan
	}
	remaining := StretchLength - p.Pos.Index
	switch {
	case dice == remaining:
		plan.Legal = true
		plan.To = HomePosition()
		plan.ReachesHome = true
		plan.Distance = dice
	case dice < remaining:
		plan.Legal = true
		plan.To = StretchPosition(p.Pos.Index + dice)
		plan.Distance = dice
	default:
		plan.Overshoot = true
		plan.Reason = ReasonOvershoot
	}
	return plan
}
