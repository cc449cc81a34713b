/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for bytehunt run events. Supports
the line-oriented console protocol, structured logrus logging and fan-out to several
reporters at once.
*/

package core

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Reporter defines the interface for worker lifecycle hooks.
// Implementations must be safe for concurrent use by several workers.
type Reporter interface {
	// OnWorkerStarted is called once per worker before its loop starts.
	OnWorkerStarted(id int, seed uint64)
	// OnMatchFound is called when a worker matches the target.
	OnMatchFound(result *MatchResult)
	// OnWorkerStopped is called when a worker terminates; err is nil after a match.
	OnWorkerStopped(id int, seed uint64, generated uint64, err error)
}

// ConsoleReporter writes the human-readable line protocol to an io.Writer.
type ConsoleReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// OnWorkerStarted prints the worker's seed.
func (r *ConsoleReporter) OnWorkerStarted(id int, seed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Matching seed: %d\n", seed)
}

// OnMatchFound prints the match block as one uninterrupted record.
func (r *ConsoleReporter) OnMatchFound(result *MatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Matching sequence found after generating %d bytes!\n", result.Generated)
	fmt.Fprintf(r.out, "Offset: %d\n", result.Offset)
	fmt.Fprintf(r.out, "Seed: %d\n", result.Seed)
	fmt.Fprintf(r.out, "Time needed: %v\n", result.Elapsed)
}

// OnWorkerStopped prints nothing; the console protocol only covers starts and matches.
func (r *ConsoleReporter) OnWorkerStopped(int, uint64, uint64, error) {}

// LoggerReporter logs worker events as structured entries.
type LoggerReporter struct {
	logger logrus.FieldLogger
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger logrus.FieldLogger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnWorkerStarted logs the worker start.
func (r *LoggerReporter) OnWorkerStarted(id int, seed uint64) {
	r.logger.WithFields(logrus.Fields{"worker": id, "seed": seed}).Info("Worker started")
}

// OnMatchFound logs the match.
func (r *LoggerReporter) OnMatchFound(result *MatchResult) {
	r.logger.WithFields(logrus.Fields{
		"worker":    result.WorkerID,
		"seed":      result.Seed,
		"offset":    result.Offset,
		"generated": result.Generated,
		"elapsed":   result.Elapsed,
	}).Info("Matching sequence found")
}

// OnWorkerStopped logs workers that terminated without a match.
func (r *LoggerReporter) OnWorkerStopped(id int, seed uint64, generated uint64, err error) {
	fields := logrus.Fields{"worker": id, "seed": seed, "generated": generated}
	if err != nil {
		r.logger.WithFields(fields).Warnf("Worker terminated without a match: %v", err)
		return
	}
	r.logger.WithFields(fields).Debug("Worker terminated")
}

// MultiReporter forwards every event to each wrapped reporter in order.
type MultiReporter []Reporter

// OnWorkerStarted forwards the event.
func (m MultiReporter) OnWorkerStarted(id int, seed uint64) {
	for _, r := range m {
		r.OnWorkerStarted(id, seed)
	}
}

// OnMatchFound forwards the event.
func (m MultiReporter) OnMatchFound(result *MatchResult) {
	for _, r := range m {
		r.OnMatchFound(result)
	}
}

// OnWorkerStopped forwards the event.
func (m MultiReporter) OnWorkerStopped(id int, seed uint64, generated uint64, err error) {
	for _, r := range m {
		r.OnWorkerStopped(id, seed, generated, err)
	}
}
