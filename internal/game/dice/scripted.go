package dice

// Scripted replays queued values and falls back to a seeded source once a
// queue is empty. It is meant for reproducible scenarios in tests.
type Scripted struct {
	rolls    []int
	coins    []bool
	mystery  []int
	picks    []int
	fallback Source
}

// NewScripted creates a scripted source whose die rolls come from rolls.
func NewScripted(rolls ...int) *Scripted {
	return &Scripted{
		rolls:    append([]int(nil), rolls...),
		fallback: NewSeeded(1),
	}
}

// WithCoins queues coin toss results.
func (s *Scripted) WithCoins(coins ...bool) *Scripted {
	s.coins = append(s.coins, coins...)
	return s
}

// WithMystery queues mystery outcomes.
func (s *Scripted) WithMystery(outcomes ...int) *Scripted {
	s.mystery = append(s.mystery, outcomes...)
	return s
}

// WithPicks queues Intn results. Each value is reduced modulo the bound.
func (s *Scripted) WithPicks(picks ...int) *Scripted {
	s.picks = append(s.picks, picks...)
	return s
}

// WithFallback replaces the source used once queues are exhausted.
func (s *Scripted) WithFallback(fallback Source) *Scripted {
	if fallback != nil {
		s.fallback = fallback
	}
	return s
}

// Remaining returns the number of queued die rolls not yet consumed.
func (s *Scripted) Remaining() int {
	return len(s.rolls)
}

// RollDie returns the next queued roll.
func (s *Scripted) RollDie() int {
	if len(s.rolls) == 0 {
		return s.fallback.RollDie()
	}
	v := s.rolls[0]
	s.rolls = s.rolls[1:]
	return v
}

// CoinToss returns the next queued coin.
func (s *Scripted) CoinToss() bool {
	if len(s.coins) == 0 {
		return s.fallback.CoinToss()
	}
	v := s.coins[0]
	s.coins = s.coins[1:]
	return v
}

// MysteryEffect returns the next queued outcome.
func (s *Scripted) MysteryEffect() int {
	if len(s.mystery) == 0 {
		return s.fallback.MysteryEffect()
	}
	v := s.mystery[0]
	s.mystery = s.mystery[1:]
	return v
}

// Intn returns the next queued pick reduced into 0..n-1.
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic(ErrInvalidBound)
	}
	if len(s.picks) == 0 {
		return s.fallback.Intn(n)
	}
	v := s.picks[0]
	s.picks = s.picks[1:]
	return ((v % n) + n) % n
}
