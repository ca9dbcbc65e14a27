// Package dice provides the randomness consumed by a match: die rolls, coin
// tosses for starting direction, mystery effect selection and uniform picks.
package dice

import (
	"errors"
	"math/rand"
)

const (
	// Sides is the number of faces on the die.
	Sides = 6
	// MysteryOutcomes is the number of mystery cell outcomes.
	MysteryOutcomes = 6
)

// ErrInvalidBound indicates a uniform pick over an empty range.
var ErrInvalidBound = errors.New("bound must be positive")

// Source is the randomness provider a match draws from.
type Source interface {
	// RollDie returns a uniform value in 1..6.
	RollDie() int
	// CoinToss returns a fair boolean.
	CoinToss() bool
	// MysteryEffect returns a uniform outcome in 1..6.
	MysteryEffect() int
	// Intn returns a uniform value in 0..n-1. n must be positive.
	Intn(n int) int
}

// Seeded is a Source backed by a seeded math/rand generator.
// Two Seeded sources built from the same seed produce the same sequence.
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded creates a deterministic source for the seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// RollDie returns a uniform value in 1..6.
func (s *Seeded) RollDie() int {
	return s.rng.Intn(Sides) + 1
}

// CoinToss returns a fair boolean.
func (s *Seeded) CoinToss() bool {
	return s.rng.Intn(2) == 1
}

// MysteryEffect returns a uniform outcome in 1..6.
func (s *Seeded) MysteryEffect() int {
	return s.rng.Intn(MysteryOutcomes) + 1
}

// Intn returns a uniform value in 0..n-1.
func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		panic(ErrInvalidBound)
	}
	return s.rng.Intn(n)
}
