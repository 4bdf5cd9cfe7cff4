package game

// Rand is the engine's only source of randomness (dice, card draws, turn
// order shuffling). *rand.Rand from math/rand/v2 satisfies it; tests inject
// scripted sequences instead.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}
