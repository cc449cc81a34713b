/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: window_test.go
Description: Tests for the sliding window matcher: length bound, offset accounting and
exact matching across ring wrap-around.
*/

package core_test

import (
	"testing"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(w *core.SlidingWindow, data []byte) []bool {
	hits := make([]bool, len(data))
	for i, b := range data {
		hits[i] = w.PushAndCheck(b)
	}
	return hits
}

func TestSlidingWindowEmptyTarget(t *testing.T) {
	w, err := core.NewSlidingWindow(nil)

	assert.Nil(t, w)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestSlidingWindowMatchesAfterEviction(t *testing.T) {
	w, err := core.NewSlidingWindow([]byte("abc"))
	require.NoError(t, err)

	hits := pushAll(w, []byte("zzabc"))

	assert.Equal(t, []bool{false, false, false, false, true}, hits)
	assert.Equal(t, uint64(2), w.Offset())
	assert.Equal(t, uint64(5), w.Pushed())
	assert.Equal(t, []byte("abc"), w.Contents())
}

func TestSlidingWindowOverlappingMatches(t *testing.T) {
	w, err := core.NewSlidingWindow([]byte("aba"))
	require.NoError(t, err)

	hits := pushAll(w, []byte("ababa"))

	assert.Equal(t, []bool{false, false, true, false, true}, hits)
}

func TestSlidingWindowRejectsRotation(t *testing.T) {
	w, err := core.NewSlidingWindow([]byte("abcd"))
	require.NoError(t, err)

	hits := pushAll(w, []byte("bcdabcdx"))

	assert.Equal(t, []bool{false, false, false, false, false, false, true, false}, hits)
	assert.Equal(t, []byte("bcdx"), w.Contents())
}

func TestSlidingWindowSingleByteTarget(t *testing.T) {
	w, err := core.NewSlidingWindow([]byte{0x41})
	require.NoError(t, err)

	assert.False(t, w.PushAndCheck(0x40))
	assert.True(t, w.PushAndCheck(0x41))
	assert.Equal(t, uint64(1), w.Offset())
}

func TestSlidingWindowLengthAndOffsetInvariants(t *testing.T) {
	target := []byte("needle!")
	w, err := core.NewSlidingWindow(target)
	require.NoError(t, err)

	sampler, err := core.NewWeightedSampler(core.AnalyzeFrequencies(target), 11)
	require.NoError(t, err)

	L := uint64(len(target))
	for n := uint64(1); n <= 50000; n++ {
		matched := w.PushAndCheck(sampler.NextByte())

		require.LessOrEqual(t, w.Len(), len(target))
		if n >= L {
			require.Equal(t, n-L, w.Offset())
		} else {
			require.Zero(t, w.Offset())
		}
		if matched {
			require.Equal(t, target, w.Contents())
		}
	}
}
