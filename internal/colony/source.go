package colony

import "math/rand/v2"

// Source is the randomness an ant draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// SourceFactory returns the source of an ant for a given iteration.
type SourceFactory func(iteration, ant int) Source

// NewSource derives an independent, reproducible stream for one ant of one iteration.
func NewSource(seed uint64, iteration, ant int) Source {
	stream := uint64(iteration)<<32 | uint64(uint32(ant))
	return rand.New(rand.NewPCG(seed, stream))
}

// SeededSources returns a SourceFactory built on NewSource.
func SeededSources(seed uint64) SourceFactory {
	return func(iteration, ant int) Source {
		return NewSource(seed, iteration, ant)
	}
}
