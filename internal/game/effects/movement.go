package effects

import "fmt"

// DefaultDuration is the number of rounds a mystery-cell effect lasts.
const DefaultDuration = 4

// Kind classifies a movement effect.
type Kind string

const (
	KindNone Kind = "None"
	// KindBoost doubles effective dice values.
	KindBoost Kind = "Boost"
	// KindSlow halves effective dice values.
	KindSlow Kind = "Slow"
	// KindHalt forces effective dice values to zero.
	KindHalt Kind = "Halt"
)

// Movement is a timed modifier on a piece's effective dice value.
// The zero value is an inactive effect.
type Movement struct {
	Multiplier int
	Divider    int
	Disabled   bool
	RoundsLeft int

	held bool
}

// NewSpeed returns a doubling (double=true) or halving effect.
func NewSpeed(double bool, rounds int) Movement {
	if double {
		return Movement{Multiplier: 2, Divider: 1, RoundsLeft: rounds}
	}
	return Movement{Multiplier: 1, Divider: 2, RoundsLeft: rounds}
}

// NewHalt returns an effect that immobilizes the piece.
func NewHalt(rounds int) Movement {
	return Movement{Multiplier: 1, Divider: 1, Disabled: true, RoundsLeft: rounds}
}

// Active reports whether the effect still modifies movement.
func (m Movement) Active() bool {
	return m.RoundsLeft > 0
}

// Kind classifies the effect.
func (m Movement) Kind() Kind {
	switch {
	case !m.Active():
		return KindNone
	case m.Disabled:
		return KindHalt
	case m.Multiplier > m.Divider:
		return KindBoost
	case m.Multiplier < m.Divider:
		return KindSlow
	default:
		return KindNone
	}
}

// Apply returns the effective dice value under this effect.
func (m Movement) Apply(dice int) int {
	if !m.Active() {
		return dice
	}
	if m.Disabled {
		return 0
	}
	mult, div := m.Multiplier, m.Divider
	if mult < 1 {
		mult = 1
	}
	if div < 1 {
		div = 1
	}
	return dice * mult / div
}

// Held returns the effect with its next tick skipped. Effects gained during
// a turn are held so that the end of that turn does not count as a round.
func (m Movement) Held() Movement {
	m.held = m.Active()
	return m
}

// Tick consumes one round and reports whether the effect just expired.
// A held effect only drops its hold.
func (m *Movement) Tick() bool {
	if !m.Active() {
		return false
	}
	if m.held {
		m.held = false
		return false
	}
	m.RoundsLeft--
	if m.RoundsLeft == 0 {
		*m = Movement{}
		return true
	}
	return false
}

func (m Movement) String() string {
	if !m.Active() {
		return "none"
	}
	if m.Disabled {
		return fmt.Sprintf("halted (%d rounds)", m.RoundsLeft)
	}
	return fmt.Sprintf("x%d/%d (%d rounds)", m.Multiplier, m.Divider, m.RoundsLeft)
}
