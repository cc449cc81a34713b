/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: search.go
Description: Search command implementation. Loads the target payload, prints the
run header, drives the engine with console and log reporters attached and writes
the optional run report once the workers have stopped.
*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/monitoring"
	"github.com/kleascm/bytehunt/pkg/payload"
	"github.com/kleascm/bytehunt/pkg/reporting"
	"github.com/sirupsen/logrus"
)

// RunSearch executes a complete search run
func (a *App) RunSearch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := a.SearchConfig()
	if err != nil {
		return err
	}

	logger, err := a.SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	runID := uuid.New().String()
	log := logger.WithRun(runID)
	if cfg.WorkersDefaulted {
		log.WithField("workers", cfg.Workers).Debug("Unusable worker count, using default")
	}

	target, err := payload.NewLoader(a.Fs).Load(cfg.FilePath)
	if err != nil {
		return err
	}
	model := core.AnalyzeFrequencies(target)

	fmt.Fprintf(a.Stdout, "File: %s\n", cfg.FilePath)
	fmt.Fprintf(a.Stdout, "Bytes to match: %d\n", len(target))

	baseSeed := cfg.Seed
	if !cfg.SeedSet {
		if baseSeed, err = core.NewBaseSeed(); err != nil {
			return err
		}
	}

	engine, err := core.NewEngine(target, model, cfg.EngineConfig(baseSeed), log)
	if err != nil {
		return err
	}
	engine.AddReporter(core.NewConsoleReporter(a.Stdout))
	engine.AddReporter(core.NewLoggerReporter(log))

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if cfg.ProgressInterval > 0 {
		monitor := monitoring.NewProgressMonitor(engine, logger, cfg.Workers, cfg.ProgressInterval, logrus.Fields{"run_id": runID})
		if err := monitor.Start(ctx); err != nil {
			return err
		}
		defer monitor.Stop()
	}

	summary, runErr := engine.Run(ctx)
	if summary == nil {
		return runErr
	}

	if cfg.ReportPath != "" {
		report := reporting.NewRunReport(runID, cfg, target, model, summary, runErr)
		report.AddWorkerStats(engine.GetStats())
		if _, err := reporting.NewWriter(a.Fs, log).Write(report, cfg.ReportPath, cfg.ReportFormat); err != nil {
			return err
		}
	}

	// A configured timeout ends the run normally
	if errors.Is(runErr, context.DeadlineExceeded) {
		log.WithFields(logrus.Fields{
			"timeout":   cfg.Timeout,
			"matches":   len(summary.Results),
			"unmatched": summary.Unmatched,
		}).Warn("Search timed out")
		return nil
	}
	return runErr
}
