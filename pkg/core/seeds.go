/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: seeds.go
Description: Worker seed derivation. Supports the consecutive base, base+1, ... scheme
and an independent scheme that expands the base seed through splitmix64, plus the
entropy source used to pick a base seed for a fresh run.
*/

package core

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedStrategy selects how worker seeds derive from the base seed
type SeedStrategy string

const (
	// SeedConsecutive assigns base, base+1, ..., base+n-1
	SeedConsecutive SeedStrategy = "consecutive"
	// SeedIndependent assigns successive splitmix64 outputs of base
	SeedIndependent SeedStrategy = "independent"
)

// ParseSeedStrategy validates a seed strategy name
func ParseSeedStrategy(s string) (SeedStrategy, error) {
	switch SeedStrategy(s) {
	case SeedConsecutive, SeedIndependent:
		return SeedStrategy(s), nil
	case "":
		return SeedConsecutive, nil
	default:
		return "", fmt.Errorf("%w: unknown seed strategy %q", ErrConfiguration, s)
	}
}

// DeriveSeeds returns n worker seeds for base
// Both strategies are pure functions of base so a run can always be replayed
func DeriveSeeds(strategy SeedStrategy, base uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	switch strategy {
	case SeedIndependent:
		state := base
		for i := range seeds {
			state += 0x9e3779b97f4a7c15
			seeds[i] = splitmix64(state)
		}
	default:
		for i := range seeds {
			seeds[i] = base + uint64(i)
		}
	}
	return seeds
}

func splitmix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// NewBaseSeed draws a base seed from the operating system entropy source
func NewBaseSeed() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to read entropy for base seed: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
