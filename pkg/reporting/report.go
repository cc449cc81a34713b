/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Run report generation for bytehunt. Collects the payload metadata, the
effective configuration and the run summary of a search and writes them atomically
as JSON, YAML or a standalone HTML page.
*/

package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/bytehunt/pkg/config"
	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Supported report formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// RunReport contains everything known about a finished search
type RunReport struct {
	RunID        string               `json:"run_id" yaml:"run_id"`
	GeneratedAt  time.Time            `json:"generated_at" yaml:"generated_at"`
	File         string               `json:"file" yaml:"file"`
	TargetLength int                  `json:"target_length" yaml:"target_length"`
	Distinct     int                  `json:"distinct_bytes" yaml:"distinct_bytes"`
	Config       *config.SearchConfig `json:"config" yaml:"config"`
	Summary      *core.RunSummary     `json:"summary" yaml:"summary"`
	Workers      []WorkerReport       `json:"workers,omitempty" yaml:"workers,omitempty"`
	Interrupted  bool                 `json:"interrupted" yaml:"interrupted"`
	Error        string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRunReport creates a report for a search over target
// runID may be empty, in which case a fresh one is generated
func NewRunReport(runID string, cfg *config.SearchConfig, target []byte, model core.FrequencyModel, summary *core.RunSummary, runErr error) *RunReport {
	if runID == "" {
		runID = uuid.New().String()
	}
	report := &RunReport{
		RunID:        runID,
		GeneratedAt:  time.Now().UTC(),
		File:         cfg.FilePath,
		TargetLength: len(target),
		Distinct:     model.Distinct(),
		Config:       cfg,
		Summary:      summary,
	}
	if runErr != nil {
		report.Interrupted = true
		report.Error = runErr.Error()
	}
	return report
}

// WorkerReport is the final statistics of one worker
type WorkerReport struct {
	ID             int           `json:"id" yaml:"id"`
	Seed           uint64        `json:"seed" yaml:"seed"`
	State          string        `json:"state" yaml:"state"`
	Generated      uint64        `json:"generated" yaml:"generated"`
	Uptime         time.Duration `json:"uptime" yaml:"uptime"`
	BytesPerSecond float64       `json:"bytes_per_second" yaml:"bytes_per_second"`
}

// AddWorkerStats records the per-worker statistics maps returned by the engine
func (r *RunReport) AddWorkerStats(stats []map[string]interface{}) {
	for _, s := range stats {
		r.Workers = append(r.Workers, WorkerReport{
			ID:             cast.ToInt(s["id"]),
			Seed:           cast.ToUint64(s["seed"]),
			State:          cast.ToString(s["state"]),
			Generated:      cast.ToUint64(s["generated"]),
			Uptime:         cast.ToDuration(s["uptime"]),
			BytesPerSecond: cast.ToFloat64(s["bytes_per_second"]),
		})
	}
}

// Matches returns the number of workers that found the target
func (r *RunReport) Matches() int {
	if r.Summary == nil {
		return 0
	}
	return len(r.Summary.Results)
}

// Marshal encodes the report in the given format
func (r *RunReport) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return buf.Bytes(), nil
	case FormatHTML:
		return renderHTML(r)
	default:
		return nil, fmt.Errorf("%w: unsupported report format %q", core.ErrConfiguration, format)
	}
}

// Writer persists run reports
type Writer struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewWriter creates a report writer over fs; a nil fs means the operating system filesystem
func NewWriter(fs afero.Fs, logger logrus.FieldLogger) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Writer{fs: fs, logger: logger}
}

// Write stores the report at path and returns the file actually written
// A directory path receives a timestamped file named after the run
func (w *Writer) Write(report *RunReport, path, format string) (string, error) {
	if format == "" {
		format = FormatJSON
	}
	data, err := report.Marshal(format)
	if err != nil {
		return "", err
	}

	name := utils.TimestampedName(report.GeneratedAt, "bytehunt", report.RunID, format)
	target := utils.ResolvePath(w.fs, path, name)
	if err := utils.WriteFileAtomic(w.fs, target, data); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"path":    target,
		"format":  format,
		"run_id":  report.RunID,
		"matches": report.Matches(),
	}).Info("Run report written")
	return target, nil
}
