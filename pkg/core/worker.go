/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: worker.go
Description: Search worker implementation. Each worker owns one seeded sampler and one
sliding window and runs the generate, push and compare loop until it matches the
target or its context is cancelled.
*/

package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// checkInterval is how many bytes a worker generates between cancellation checks
const checkInterval = 1 << 12

// SearchWorker searches for the target with a single seeded generator
// Moves through Running, Found and Terminated; cancellation skips Found
type SearchWorker struct {
	ID   int    // Worker identifier within a run
	seed uint64 // Generator seed

	sampler *WeightedSampler
	window  *SlidingWindow
	logger  logrus.FieldLogger

	state      atomic.Int32
	generated  atomic.Uint64 // Published progress, refreshed every checkInterval bytes
	started    atomic.Bool
	startedAt  atomic.Int64 // Unix nanoseconds of loop start, for stats
	finishedAt atomic.Int64 // Unix nanoseconds of loop exit, 0 while running
}

// NewSearchWorker creates a worker over its own copy of the model
// Fails with ErrConfiguration when the model or target is empty
func NewSearchWorker(id int, seed uint64, model FrequencyModel, target []byte, logger logrus.FieldLogger) (*SearchWorker, error) {
	sampler, err := NewWeightedSampler(model.Clone(), seed)
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", id, err)
	}
	window, err := NewSlidingWindow(target)
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", id, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	w := &SearchWorker{
		ID:      id,
		seed:    seed,
		sampler: sampler,
		window:  window,
		logger:  logger.WithFields(logrus.Fields{"worker": id, "seed": seed}),
	}
	w.state.Store(int32(StateRunning))
	return w, nil
}

// Run generates bytes until the window equals the target or ctx is done
// A match returns the result; cancellation returns ctx.Err()
func (w *SearchWorker) Run(ctx context.Context) (*MatchResult, error) {
	if !w.started.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("worker %d has already run", w.ID)
	}

	start := time.Now()
	w.startedAt.Store(start.UnixNano())
	defer func() { w.finishedAt.Store(time.Now().UnixNano()) }()
	w.logger.Debug("Worker search loop started")

	var generated uint64
	for {
		if generated%checkInterval == 0 {
			w.generated.Store(generated)
			if err := ctx.Err(); err != nil {
				w.state.Store(int32(StateTerminated))
				w.logger.WithField("generated", generated).Debugf("Worker stopped: %v", err)
				return nil, err
			}
		}

		b := w.sampler.NextByte()
		generated++
		if !w.window.PushAndCheck(b) {
			continue
		}

		w.state.Store(int32(StateFound))
		result := &MatchResult{
			WorkerID:  w.ID,
			Seed:      w.seed,
			Offset:    w.window.Offset(),
			Generated: generated,
			Elapsed:   time.Since(start),
		}
		w.generated.Store(generated)
		w.state.Store(int32(StateTerminated))

		w.logger.WithFields(logrus.Fields{
			"offset":    result.Offset,
			"generated": result.Generated,
			"elapsed":   result.Elapsed,
		}).Debug("Worker found matching sequence")
		return result, nil
	}
}

// Seed returns the worker's generator seed
func (w *SearchWorker) Seed() uint64 {
	return w.seed
}

// State returns the current lifecycle state
func (w *SearchWorker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Generated returns the bytes generated so far
// While running the value trails the true count by less than checkInterval
func (w *SearchWorker) Generated() uint64 {
	return w.generated.Load()
}

// Window returns the window contents oldest first
// Only meaningful once Run has returned
func (w *SearchWorker) Window() []byte {
	return w.window.Contents()
}

// GetStats returns worker performance statistics
// Uptime stops growing once the loop has exited
func (w *SearchWorker) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})
	stats["id"] = w.ID
	stats["seed"] = w.seed
	stats["state"] = w.State().String()
	stats["generated"] = w.Generated()

	if nanos := w.startedAt.Load(); nanos != 0 {
		end := time.Now()
		if finished := w.finishedAt.Load(); finished != 0 {
			end = time.Unix(0, finished)
		}
		uptime := end.Sub(time.Unix(0, nanos))
		stats["uptime"] = uptime
		if secs := uptime.Seconds(); secs > 0 {
			stats["bytes_per_second"] = float64(w.Generated()) / secs
		}
	}
	return stats
}
