/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for bytehunt. Wraps logrus with validated configuration,
text, JSON and custom formats, an optional timestamped log file and run-scoped
entries. Console output goes to stderr so stdout keeps the search line protocol.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

// filePrefix names every log file this package creates
const filePrefix = "bytehunt_"

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"` // Empty disables file output
	MaxFiles  int       `json:"max_files"`  // Log files kept in OutputDir
	Compress  bool      `json:"compress"`   // Gzip older log files on close
	Timestamp bool      `json:"timestamp"`
	Caller    bool      `json:"caller"`
	Colors    bool      `json:"colors"`

	Console io.Writer `json:"-"` // Defaults to os.Stderr
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    false,
	}
}

// Validate checks the LoggerConfig for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive when output_dir is set")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides logging for commands and the search engine
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	filePath   string
	startTime  time.Time
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)

	l.setFormatter()

	console := l.config.Console
	if console == nil {
		console = os.Stderr
	}
	l.logger.SetOutput(console)

	return l.setupFileOutput(console)
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() {
	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: callerPrettyfier,
		})
	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: callerPrettyfier,
		})
	default:
		l.logger.SetFormatter(&CustomFormatter{
			Timestamp: l.config.Timestamp,
			Caller:    l.config.Caller,
			Colors:    l.config.Colors,
		})
	}
}

// setupFileOutput adds a timestamped log file next to the console output
func (l *Logger) setupFileOutput(console io.Writer) error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := l.startTime.Format("2006-01-02_15-04-05.000")
	path := filepath.Join(l.config.OutputDir, fmt.Sprintf("%s%s.log", filePrefix, timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.fileHandle = file
	l.filePath = path
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"log_file": path,
		"level":    l.config.Level,
		"format":   l.config.Format,
	}).Debug("Logging to file")
	return nil
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// FilePath returns the active log file, or "" without file output
func (l *Logger) FilePath() string {
	return l.filePath
}

// WithRun returns an entry tagged with a run identifier
func (l *Logger) WithRun(runID string) *logrus.Entry {
	return l.logger.WithField("run_id", runID)
}

// LogStats logs a progress update for a running search
func (l *Logger) LogStats(generated uint64, workers int, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	uptime := time.Since(l.startTime)
	fields["generated"] = generated
	fields["workers"] = workers
	fields["uptime"] = uptime
	if secs := uptime.Seconds(); secs > 0 {
		fields["bytes_per_sec"] = float64(generated) / secs
	}
	l.logger.WithFields(fields).Info("Statistics update")
}

// Close closes the log file and applies the retention policy
func (l *Logger) Close() error {
	if l.fileHandle == nil {
		return nil
	}
	l.logger.SetOutput(io.Discard)
	if err := l.fileHandle.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.fileHandle = nil

	manager := NewLogManager(l.config.OutputDir, l.config.MaxFiles, l.config.Compress)
	if err := manager.Maintain(l.filePath); err != nil {
		return fmt.Errorf("failed to maintain log files: %w", err)
	}
	return nil
}
