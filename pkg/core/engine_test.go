/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for the search orchestrator: configuration errors, seed assignment,
exhaustive and first-match wait policies and interruption.
*/

package core_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures engine events for assertions
type recordingReporter struct {
	mu      sync.Mutex
	started []uint64
	matches []*core.MatchResult
	stopped map[int]error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{stopped: make(map[int]error)}
}

func (r *recordingReporter) OnWorkerStarted(id int, seed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, seed)
}

func (r *recordingReporter) OnMatchFound(result *core.MatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append(r.matches, result)
}

func (r *recordingReporter) OnWorkerStopped(id int, seed uint64, generated uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped[id] = err
}

func newEngine(t *testing.T, target []byte, config core.EngineConfig) *core.Engine {
	t.Helper()
	engine, err := core.NewEngine(target, core.AnalyzeFrequencies(target), config, quietLogger())
	require.NoError(t, err)
	return engine
}

func TestNewEngineEmptyPayload(t *testing.T) {
	engine, err := core.NewEngine(nil, core.AnalyzeFrequencies(nil), core.EngineConfig{Workers: 4}, nil)

	assert.Nil(t, engine)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestNewEngineInvalidConfig(t *testing.T) {
	target := []byte("abc")
	model := core.AnalyzeFrequencies(target)

	_, err := core.NewEngine(target, model, core.EngineConfig{Workers: 0}, nil)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = core.NewEngine(target, model, core.EngineConfig{Workers: 1, WaitMode: "whenever"}, nil)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = core.NewEngine(target, model, core.EngineConfig{Workers: 1, SeedStrategy: "lucky"}, nil)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestNewEngineDefaults(t *testing.T) {
	engine := newEngine(t, []byte("abc"), core.EngineConfig{Workers: 2})

	assert.Equal(t, core.WaitExhaustive, engine.Config().WaitMode)
	assert.Equal(t, core.SeedConsecutive, engine.Config().SeedStrategy)
	assert.Empty(t, engine.GetStats())
}

func TestEngineExhaustiveRun(t *testing.T) {
	const base = uint64(1000)
	engine := newEngine(t, []byte("ab"), core.EngineConfig{Workers: 4, BaseSeed: base})
	reporter := newRecordingReporter()
	engine.AddReporter(reporter)

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []uint64{1000, 1001, 1002, 1003}, summary.Seeds)
	assert.Equal(t, []uint64{1000, 1001, 1002, 1003}, reporter.started)
	require.Len(t, summary.Results, 4)
	assert.Zero(t, summary.Unmatched)

	var generated uint64
	seeds := make([]uint64, 0, len(summary.Results))
	for _, r := range summary.Results {
		assert.Equal(t, r.Generated-2, r.Offset)
		generated += r.Generated
		seeds = append(seeds, r.Seed)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	assert.Equal(t, summary.Seeds, seeds)
	assert.Equal(t, generated, summary.Generated)
	assert.Len(t, reporter.matches, 4)
	assert.NotNil(t, summary.First())
}

func TestEngineRunIsReproducible(t *testing.T) {
	config := core.EngineConfig{Workers: 3, BaseSeed: 77, SeedStrategy: core.SeedIndependent}

	first, err := newEngine(t, []byte("abc"), config).Run(context.Background())
	require.NoError(t, err)
	second, err := newEngine(t, []byte("abc"), config).Run(context.Background())
	require.NoError(t, err)

	byWorker := func(s *core.RunSummary) map[int][2]uint64 {
		out := make(map[int][2]uint64)
		for _, r := range s.Results {
			out[r.WorkerID] = [2]uint64{r.Offset, r.Generated}
		}
		return out
	}
	assert.Equal(t, first.Seeds, second.Seeds)
	assert.Equal(t, byWorker(first), byWorker(second))
}

func TestEngineFirstMatch(t *testing.T) {
	engine := newEngine(t, []byte("ab"), core.EngineConfig{Workers: 4, BaseSeed: 5, WaitMode: core.WaitFirstMatch})

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(summary.Results), 1)
	assert.Equal(t, 4, len(summary.Results)+summary.Unmatched)
	assert.Equal(t, core.WaitFirstMatch, summary.WaitMode)
}

func TestEngineInterrupted(t *testing.T) {
	target := make([]byte, 48)
	for i := range target {
		target[i] = byte(i * 5)
	}
	engine := newEngine(t, target, core.EngineConfig{Workers: 2, BaseSeed: 1})
	reporter := newRecordingReporter()
	engine.AddReporter(reporter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	summary, err := engine.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Results)
	assert.Equal(t, 2, summary.Unmatched)
	assert.Positive(t, summary.Generated)
	assert.Len(t, reporter.stopped, 2)
	for _, stopErr := range reporter.stopped {
		assert.ErrorIs(t, stopErr, context.DeadlineExceeded)
	}
	assert.Len(t, engine.GetStats(), 2)
}

func TestEngineCancelled(t *testing.T) {
	target := make([]byte, 48)
	for i := range target {
		target[i] = byte(i * 3)
	}
	engine := newEngine(t, target, core.EngineConfig{Workers: 2, BaseSeed: 1})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	summary, err := engine.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Unmatched)
}

func TestEngineStatsAfterRun(t *testing.T) {
	engine := newEngine(t, []byte("ab"), core.EngineConfig{Workers: 3, BaseSeed: 20})

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)

	stats := engine.GetStats()
	require.Len(t, stats, 3)
	var generated uint64
	for i, s := range stats {
		assert.Equal(t, i, s["id"])
		assert.Equal(t, summary.Seeds[i], s["seed"])
		assert.Equal(t, "terminated", s["state"])
		assert.Contains(t, s, "uptime")
		generated += s["generated"].(uint64)
	}
	assert.Equal(t, summary.Generated, generated)
}

func TestEngineLogsRun(t *testing.T) {
	logger, hook := test.NewNullLogger()
	target := []byte{0x41}
	engine, err := core.NewEngine(target, core.AnalyzeFrequencies(target), core.EngineConfig{Workers: 1, BaseSeed: 3}, logger)
	require.NoError(t, err)

	_, err = engine.Run(context.Background())
	require.NoError(t, err)

	messages := make([]string, 0, len(hook.AllEntries()))
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "Starting search")
	assert.Contains(t, messages, "Search finished")
}
