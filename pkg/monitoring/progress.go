/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: progress.go
Description: Progress monitoring for running searches. Periodically samples the bytes
generated across all workers together with runtime memory statistics, keeps a bounded
history of snapshots and hands every snapshot to a statistics logger.
*/

package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ProgressSource is anything that reports search progress
type ProgressSource interface {
	Generated() uint64
}

// StatsLogger receives each progress snapshot
type StatsLogger interface {
	LogStats(generated uint64, workers int, fields logrus.Fields)
}

// Snapshot is a single progress sample
type Snapshot struct {
	Timestamp    time.Time `json:"timestamp"`
	Generated    uint64    `json:"generated"`     // Bytes generated across all workers
	BytesPerSec  float64   `json:"bytes_per_sec"` // Rate since the previous sample
	HeapAlloc    uint64    `json:"heap_alloc"`
	GoRoutines   int       `json:"go_routines"`
	NumGC        uint32    `json:"num_gc"`
	PauseTotalNs uint64    `json:"pause_total_ns"`
}

// ProgressMonitor samples a ProgressSource at a fixed interval
type ProgressMonitor struct {
	source  ProgressSource
	stats   StatsLogger
	workers int
	fields  logrus.Fields

	// Configuration
	interval    time.Duration
	historySize int

	// State
	history []Snapshot
	last    Snapshot
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
}

// NewProgressMonitor creates a monitor; fields are attached to every stats entry
func NewProgressMonitor(source ProgressSource, stats StatsLogger, workers int, interval time.Duration, fields logrus.Fields) *ProgressMonitor {
	return &ProgressMonitor{
		source:      source,
		stats:       stats,
		workers:     workers,
		fields:      fields,
		interval:    interval,
		historySize: 1000,
	}
}

// Start begins sampling until ctx ends or Stop is called
func (pm *ProgressMonitor) Start(ctx context.Context) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.running {
		return fmt.Errorf("progress monitor already running")
	}
	if pm.interval <= 0 {
		return fmt.Errorf("progress interval must be positive, got %v", pm.interval)
	}

	var loopCtx context.Context
	loopCtx, pm.cancel = context.WithCancel(ctx)
	pm.running = true
	pm.last = Snapshot{Timestamp: time.Now()}

	pm.wg.Add(1)
	go pm.collectionLoop(loopCtx)
	return nil
}

// Stop ends sampling and waits for the loop to exit
func (pm *ProgressMonitor) Stop() error {
	pm.mu.Lock()
	if !pm.running {
		pm.mu.Unlock()
		return fmt.Errorf("progress monitor not running")
	}
	pm.running = false
	pm.cancel()
	pm.mu.Unlock()

	pm.wg.Wait()
	return nil
}

func (pm *ProgressMonitor) collectionLoop(ctx context.Context) {
	defer pm.wg.Done()

	ticker := time.NewTicker(pm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pm.Collect()
		}
	}
}

// Collect takes one sample immediately
func (pm *ProgressMonitor) Collect() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := Snapshot{
		Timestamp:    time.Now(),
		Generated:    pm.source.Generated(),
		HeapAlloc:    m.HeapAlloc,
		GoRoutines:   runtime.NumGoroutine(),
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}

	pm.mu.Lock()
	if secs := snap.Timestamp.Sub(pm.last.Timestamp).Seconds(); secs > 0 && snap.Generated >= pm.last.Generated {
		snap.BytesPerSec = float64(snap.Generated-pm.last.Generated) / secs
	}
	pm.last = snap
	pm.history = append(pm.history, snap)
	if len(pm.history) > pm.historySize {
		pm.history = pm.history[len(pm.history)-pm.historySize:]
	}
	pm.mu.Unlock()

	if pm.stats != nil {
		fields := logrus.Fields{
			"interval_rate": snap.BytesPerSec,
			"heap_alloc":    snap.HeapAlloc,
			"goroutines":    snap.GoRoutines,
		}
		for k, v := range pm.fields {
			fields[k] = v
		}
		pm.stats.LogStats(snap.Generated, pm.workers, fields)
	}
	return snap
}

// History returns a copy of the recorded snapshots, oldest first
func (pm *ProgressMonitor) History() []Snapshot {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	history := make([]Snapshot, len(pm.history))
	copy(history, pm.history)
	return history
}

// IsRunning returns whether the monitor is sampling
func (pm *ProgressMonitor) IsRunning() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.running
}
