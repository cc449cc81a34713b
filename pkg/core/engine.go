/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Search orchestrator. Derives worker seeds from an injected base seed, builds
one worker per seed over the shared frequency model, fans them out in parallel and
joins them under either the exhaustive or the first-match wait policy.
*/

package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine runs a parallel brute-force search for a target payload
// A single Engine runs one search at a time
type Engine struct {
	config EngineConfig
	target []byte
	model  FrequencyModel
	logger logrus.FieldLogger

	reporters MultiReporter

	// State management
	workers []*SearchWorker
	running bool
	mu      sync.RWMutex
}

// NewEngine creates an engine for target using a model built from it
// Fails with ErrConfiguration for an empty target or an invalid configuration
func NewEngine(target []byte, model FrequencyModel, config EngineConfig, logger logrus.FieldLogger) (*Engine, error) {
	if len(target) == 0 || model.IsEmpty() {
		return nil, fmt.Errorf("%w: target payload is empty", ErrConfiguration)
	}
	if config.Workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrConfiguration, config.Workers)
	}

	var err error
	if config.WaitMode, err = ParseWaitMode(string(config.WaitMode)); err != nil {
		return nil, err
	}
	if config.SeedStrategy, err = ParseSeedStrategy(string(config.SeedStrategy)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Engine{
		config: config,
		target: target,
		model:  model,
		logger: logger,
	}, nil
}

// AddReporter registers a Reporter for worker lifecycle events.
func (e *Engine) AddReporter(reporter Reporter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reporters = append(e.reporters, reporter)
}

// Config returns the normalized engine configuration
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Seeds returns the worker seeds this engine will use
func (e *Engine) Seeds() []uint64 {
	return DeriveSeeds(e.config.SeedStrategy, e.config.BaseSeed, e.config.Workers)
}

// Run builds every worker, starts them and blocks until the wait policy is satisfied
// or ctx ends. Worker construction errors abort the run before any worker starts.
func (e *Engine) Run(ctx context.Context) (*RunSummary, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("engine is already running")
	}

	seeds := e.Seeds()
	workers := make([]*SearchWorker, len(seeds))
	for i, seed := range seeds {
		w, err := NewSearchWorker(i, seed, e.model, e.target, e.logger)
		if err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("failed to create workers: %w", err)
		}
		workers[i] = w
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.workers = workers
	e.running = true
	reporters := e.reporters
	e.mu.Unlock()

	defer func() {
		cancel()
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	e.logger.WithFields(logrus.Fields{
		"workers":       len(workers),
		"base_seed":     e.config.BaseSeed,
		"wait_mode":     e.config.WaitMode,
		"seed_strategy": e.config.SeedStrategy,
		"target_length": len(e.target),
	}).Info("Starting search")

	start := time.Now()
	results := make([]*MatchResult, len(workers))

	for _, w := range workers {
		reporters.OnWorkerStarted(w.ID, w.Seed())
	}

	var g errgroup.Group
	for i, w := range workers {
		g.Go(func() error {
			result, err := w.Run(runCtx)
			if err != nil {
				reporters.OnWorkerStopped(w.ID, w.Seed(), w.Generated(), err)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return err
			}

			results[i] = result
			reporters.OnMatchFound(result)
			reporters.OnWorkerStopped(w.ID, w.Seed(), result.Generated, nil)
			if e.config.WaitMode == WaitFirstMatch {
				cancel()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	summary := &RunSummary{
		BaseSeed: e.config.BaseSeed,
		Seeds:    seeds,
		Duration: time.Since(start),
		WaitMode: e.config.WaitMode,
		Strategy: e.config.SeedStrategy,
	}
	for i, r := range results {
		summary.Generated += workers[i].Generated()
		if r == nil {
			summary.Unmatched++
			continue
		}
		summary.Results = append(summary.Results, r)
	}

	e.logger.WithFields(logrus.Fields{
		"matches":   len(summary.Results),
		"unmatched": summary.Unmatched,
		"generated": summary.Generated,
		"duration":  summary.Duration,
	}).Info("Search finished")

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("search interrupted: %w", err)
	}
	return summary, nil
}

// Generated returns the bytes generated so far across all workers of the current or last run
func (e *Engine) Generated() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var total uint64
	for _, w := range e.workers {
		total += w.Generated()
	}
	return total
}

// GetStats returns per-worker statistics of the current or last run
func (e *Engine) GetStats() []map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stats := make([]map[string]interface{}, 0, len(e.workers))
	for _, w := range e.workers {
		stats = append(stats, w.GetStats())
	}
	return stats
}
