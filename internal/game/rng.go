package game

import (
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"
)

// RNG is the single seeded randomness source for a game. Every shuffle,
// random assignment, and random issue direction routes through one RNG
// instance so that a fixed seed reproduces an identical game for an
// identical intent sequence.
//
// RNG is not safe for concurrent use; the owning game serializes access.
type RNG struct {
	seed string
	src  *rand.Rand
}

// NewRNG creates an RNG from the given seed string. An empty seed gets a
// generated one, retrievable via Seed so the game can be replayed later.
func NewRNG(seed string) *RNG {
	if seed == "" {
		seed = uuid.NewString()
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(int64(h.Sum64()))),
	}
}

// Seed returns the seed string this RNG was constructed with (or generated).
func (r *RNG) Seed() string {
	return r.seed
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.src.Float64()
}

// IntBetween returns a uniform integer in [min, max], inclusive on both
// ends. Precondition: min <= max.
func (r *RNG) IntBetween(min, max int) int {
	return min + r.src.Intn(max-min+1)
}

// Pick returns one uniformly chosen element. Precondition: list is
// non-empty.
func (r *RNG) Pick(list []string) string {
	return list[r.IntBetween(0, len(list)-1)]
}

// Shuffle returns a new slice holding a Fisher-Yates permutation of list,
// driven exclusively by IntBetween. The input is not modified.
func (r *RNG) Shuffle(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntBetween(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
