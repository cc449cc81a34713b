/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sampler.go
Description: Weighted random byte sampler. Turns a frequency model into a cumulative
weight table and draws bytes from a privately seeded PCG generator, so a seed and a
model always reproduce the same byte stream.
*/

package core

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// pcgStream is the fixed second PCG word; the seed alone selects the stream
const pcgStream = 0x9e3779b97f4a7c15

// WeightedSampler draws bytes with probability proportional to their frequency count
type WeightedSampler struct {
	symbols    []byte   // Byte values in ascending order
	cumulative []uint64 // cumulative[i] = sum of counts of symbols[0..i]
	total      uint64   // Total weight, equals payload length
	seed       uint64
	rng        *rand.Rand
}

// NewWeightedSampler builds a sampler over the model seeded with seed
// Returns ErrConfiguration when the model carries no weight
func NewWeightedSampler(model FrequencyModel, seed uint64) (*WeightedSampler, error) {
	if model.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot build weighted distribution from an empty payload", ErrConfiguration)
	}

	symbols := model.Symbols()
	cumulative := make([]uint64, len(symbols))
	var running uint64
	for i, b := range symbols {
		running += model.Count(b)
		cumulative[i] = running
	}

	return &WeightedSampler{
		symbols:    symbols,
		cumulative: cumulative,
		total:      running,
		seed:       seed,
		rng:        rand.New(rand.NewPCG(seed, pcgStream)),
	}, nil
}

// NextByte advances the generator and returns one weighted-random byte
func (s *WeightedSampler) NextByte() byte {
	r := s.rng.Uint64N(s.total)
	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > r
	})
	return s.symbols[i]
}

// Seed returns the seed the sampler was created with
func (s *WeightedSampler) Seed() uint64 {
	return s.seed
}

// Symbols returns the number of distinct byte values the sampler can emit
func (s *WeightedSampler) Symbols() int {
	return len(s.symbols)
}
