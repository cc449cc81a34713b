/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: seeds_test.go
Description: Tests for worker seed derivation strategies.
*/

package core_test

import (
	"math"
	"testing"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSeedsConsecutive(t *testing.T) {
	assert.Equal(t, []uint64{10, 11, 12}, core.DeriveSeeds(core.SeedConsecutive, 10, 3))
	// Wraps like unsigned addition
	assert.Equal(t, []uint64{math.MaxUint64, 0}, core.DeriveSeeds(core.SeedConsecutive, math.MaxUint64, 2))
}

func TestDeriveSeedsIndependent(t *testing.T) {
	seeds := core.DeriveSeeds(core.SeedIndependent, 10, 8)

	assert.Equal(t, seeds, core.DeriveSeeds(core.SeedIndependent, 10, 8))
	seen := make(map[uint64]bool)
	for _, s := range seeds {
		assert.False(t, seen[s], "duplicate seed %d", s)
		seen[s] = true
	}
	assert.NotEqual(t, core.DeriveSeeds(core.SeedConsecutive, 10, 8), seeds)
}

func TestParseSeedStrategy(t *testing.T) {
	s, err := core.ParseSeedStrategy("")
	require.NoError(t, err)
	assert.Equal(t, core.SeedConsecutive, s)

	s, err = core.ParseSeedStrategy("independent")
	require.NoError(t, err)
	assert.Equal(t, core.SeedIndependent, s)

	_, err = core.ParseSeedStrategy("random")
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestParseWaitMode(t *testing.T) {
	m, err := core.ParseWaitMode("")
	require.NoError(t, err)
	assert.Equal(t, core.WaitExhaustive, m)

	m, err = core.ParseWaitMode("first-match")
	require.NoError(t, err)
	assert.Equal(t, core.WaitFirstMatch, m)

	_, err = core.ParseWaitMode("never")
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestNewBaseSeed(t *testing.T) {
	a, err := core.NewBaseSeed()
	require.NoError(t, err)
	b, err := core.NewBaseSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
