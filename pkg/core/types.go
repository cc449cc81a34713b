/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the bytehunt search engine. Defines match results, worker
states, wait policies, seed strategies and the run summary shared by the engine, its
reporters and the command layer.
*/

package core

import (
	"fmt"
	"time"
)

// MatchResult records a single worker's successful search
// Created exactly once per matching worker and never modified afterwards
type MatchResult struct {
	WorkerID  int           `json:"worker_id" yaml:"worker_id"` // Worker that found the match
	Seed      uint64        `json:"seed" yaml:"seed"`           // Seed of the worker's generator
	Offset    uint64        `json:"offset" yaml:"offset"`       // Bytes evicted before the match
	Generated uint64        `json:"generated" yaml:"generated"` // Bytes generated including the match
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`     // Wall time since the loop started
}

// WorkerState represents the lifecycle state of a search worker
type WorkerState int32

const (
	StateRunning WorkerState = iota
	StateFound
	StateTerminated
)

// String returns the state name
func (s WorkerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// WaitMode selects when the engine stops waiting for workers
type WaitMode string

const (
	// WaitExhaustive waits until every worker found its own match
	WaitExhaustive WaitMode = "exhaustive"
	// WaitFirstMatch cancels the remaining workers once any worker matches
	WaitFirstMatch WaitMode = "first-match"
)

// ParseWaitMode validates a wait mode name
func ParseWaitMode(s string) (WaitMode, error) {
	switch WaitMode(s) {
	case WaitExhaustive, WaitFirstMatch:
		return WaitMode(s), nil
	case "":
		return WaitExhaustive, nil
	default:
		return "", fmt.Errorf("%w: unknown wait mode %q", ErrConfiguration, s)
	}
}

// EngineConfig contains the parameters of a single search run
type EngineConfig struct {
	Workers      int          // Number of parallel workers (>= 1)
	BaseSeed     uint64       // Seed all worker seeds are derived from
	SeedStrategy SeedStrategy // How worker seeds are derived from BaseSeed
	WaitMode     WaitMode     // When the run ends
}

// RunSummary describes a completed run
type RunSummary struct {
	BaseSeed  uint64         `json:"base_seed" yaml:"base_seed"`
	Seeds     []uint64       `json:"seeds" yaml:"seeds"`
	Results   []*MatchResult `json:"results" yaml:"results"`
	Unmatched int            `json:"unmatched" yaml:"unmatched"` // Workers terminated without a match
	Generated uint64         `json:"generated" yaml:"generated"` // Bytes generated across all workers
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	WaitMode  WaitMode       `json:"wait_mode" yaml:"wait_mode"`
	Strategy  SeedStrategy   `json:"seed_strategy" yaml:"seed_strategy"`
}

// First returns the earliest-finishing match, or nil if nothing matched
func (s *RunSummary) First() *MatchResult {
	var first *MatchResult
	for _, r := range s.Results {
		if first == nil || r.Elapsed < first.Elapsed {
			first = r
		}
	}
	return first
}
