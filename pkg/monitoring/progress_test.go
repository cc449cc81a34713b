/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: progress_test.go
Description: Tests for the progress monitor sampling loop and snapshot history.
*/

package monitoring_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kleascm/bytehunt/pkg/monitoring"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	generated atomic.Uint64
}

func (f *fakeSource) Generated() uint64 { return f.generated.Load() }

type recordingStats struct {
	mu      sync.Mutex
	entries []logrus.Fields
	counts  []uint64
}

func (r *recordingStats) LogStats(generated uint64, workers int, fields logrus.Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fields["workers"] = workers
	r.entries = append(r.entries, fields)
	r.counts = append(r.counts, generated)
}

func (r *recordingStats) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestProgressMonitorCollect(t *testing.T) {
	source := &fakeSource{}
	stats := &recordingStats{}
	pm := monitoring.NewProgressMonitor(source, stats, 3, time.Hour, logrus.Fields{"run_id": "r1"})

	source.generated.Store(100)
	first := pm.Collect()
	source.generated.Store(250)
	second := pm.Collect()

	assert.Equal(t, uint64(100), first.Generated)
	assert.Equal(t, uint64(250), second.Generated)
	assert.Positive(t, second.BytesPerSec)
	assert.Positive(t, second.GoRoutines)

	require.Len(t, pm.History(), 2)
	require.Equal(t, 2, stats.len())
	assert.Equal(t, []uint64{100, 250}, stats.counts)
	assert.Equal(t, "r1", stats.entries[1]["run_id"])
	assert.Equal(t, 3, stats.entries[1]["workers"])
}

func TestProgressMonitorLoop(t *testing.T) {
	stats := &recordingStats{}
	pm := monitoring.NewProgressMonitor(&fakeSource{}, stats, 1, 5*time.Millisecond, nil)

	require.NoError(t, pm.Start(context.Background()))
	assert.True(t, pm.IsRunning())
	assert.Error(t, pm.Start(context.Background()))

	assert.Eventually(t, func() bool { return stats.len() >= 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, pm.Stop())
	assert.False(t, pm.IsRunning())
	assert.Error(t, pm.Stop())
}

func TestProgressMonitorRejectsZeroInterval(t *testing.T) {
	pm := monitoring.NewProgressMonitor(&fakeSource{}, nil, 1, 0, nil)
	assert.Error(t, pm.Start(context.Background()))
}
