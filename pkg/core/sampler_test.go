/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sampler_test.go
Description: Tests for the weighted byte sampler: construction errors, determinism and
convergence of the empirical distribution to the payload histogram.
*/

package core_test

import (
	"testing"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawBytes(t *testing.T, model core.FrequencyModel, seed uint64, n int) []byte {
	t.Helper()
	sampler, err := core.NewWeightedSampler(model, seed)
	require.NoError(t, err)
	out := make([]byte, n)
	for i := range out {
		out[i] = sampler.NextByte()
	}
	return out
}

func TestWeightedSamplerEmptyModel(t *testing.T) {
	sampler, err := core.NewWeightedSampler(core.AnalyzeFrequencies(nil), 1)

	assert.Nil(t, sampler)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestWeightedSamplerDeterministic(t *testing.T) {
	model := core.AnalyzeFrequencies([]byte("the quick brown fox"))

	first := drawBytes(t, model, 42, 4096)
	second := drawBytes(t, model, 42, 4096)
	other := drawBytes(t, model, 43, 4096)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestWeightedSamplerSingleSymbol(t *testing.T) {
	model := core.AnalyzeFrequencies([]byte{0x41, 0x41, 0x41})
	for _, b := range drawBytes(t, model, 7, 256) {
		require.Equal(t, byte(0x41), b)
	}
}

func TestWeightedSamplerOnlyEmitsPresentBytes(t *testing.T) {
	model := core.AnalyzeFrequencies([]byte{1, 3, 200})
	for _, b := range drawBytes(t, model, 99, 10000) {
		require.NotZero(t, model.Count(b), "sampled byte %d is absent from the model", b)
	}
}

func TestWeightedSamplerConvergesToHistogram(t *testing.T) {
	payload := []byte("aaaaaaaabbbbccd")
	model := core.AnalyzeFrequencies(payload)

	const draws = 200000
	counts := make(map[byte]int)
	for _, b := range drawBytes(t, model, 2024, draws) {
		counts[b]++
	}

	for _, b := range model.Symbols() {
		empirical := float64(counts[b]) / draws
		assert.InDelta(t, model.Proportion(b), empirical, 0.01, "byte %q", b)
	}
}

func TestWeightedSamplerAccessors(t *testing.T) {
	sampler, err := core.NewWeightedSampler(core.AnalyzeFrequencies([]byte("abcabc")), 5)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), sampler.Seed())
	assert.Equal(t, 3, sampler.Symbols())
}
