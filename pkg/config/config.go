/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Search configuration for bytehunt. Binds configuration keys to the process
environment, applies defaults and resolves a SearchConfig from viper, recovering
silently from an unusable worker count.
*/

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/payload"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyWorkers          = "workers"
	KeyFilePath         = "file_path"
	KeySeed             = "seed"
	KeyWaitMode         = "wait_mode"
	KeySeedStrategy     = "seed_strategy"
	KeyTimeout          = "timeout"
	KeyProgressInterval = "progress_interval"
	KeyReportPath       = "report_path"
	KeyReportFormat     = "report_format"
)

// DefaultWorkers is used when the worker count is absent or unusable
const DefaultWorkers = 4

// EnvPrefix prefixes every environment variable bound automatically
const EnvPrefix = "BYTEHUNT"

// SearchConfig contains everything a search run needs
type SearchConfig struct {
	FilePath         string            `json:"file_path" yaml:"file_path"`
	Workers          int               `json:"workers" yaml:"workers"`
	Seed             uint64            `json:"seed" yaml:"seed"`
	SeedSet          bool              `json:"seed_set" yaml:"seed_set"` // False means draw a base seed from entropy
	WaitMode         core.WaitMode     `json:"wait_mode" yaml:"wait_mode"`
	SeedStrategy     core.SeedStrategy `json:"seed_strategy" yaml:"seed_strategy"`
	Timeout          time.Duration     `json:"timeout" yaml:"timeout"`
	ProgressInterval time.Duration     `json:"progress_interval" yaml:"progress_interval"`
	ReportPath       string            `json:"report_path" yaml:"report_path"`
	ReportFormat     string            `json:"report_format" yaml:"report_format"`

	WorkersDefaulted bool `json:"-" yaml:"-"` // Set when an unusable worker count was replaced
}

// Bind registers defaults and environment bindings on v
// THREADS and FILE_PATH are honoured alongside their prefixed forms
func Bind(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeyFilePath, payload.DefaultPath)
	v.SetDefault(KeyWaitMode, string(core.WaitExhaustive))
	v.SetDefault(KeySeedStrategy, string(core.SeedConsecutive))
	v.SetDefault(KeyReportFormat, "json")

	if err := v.BindEnv(KeyWorkers, "THREADS", EnvPrefix+"_WORKERS"); err != nil {
		return fmt.Errorf("failed to bind worker env: %w", err)
	}
	if err := v.BindEnv(KeyFilePath, "FILE_PATH", EnvPrefix+"_FILE_PATH"); err != nil {
		return fmt.Errorf("failed to bind file path env: %w", err)
	}
	if err := v.BindEnv(KeyWaitMode, EnvPrefix+"_WAIT", EnvPrefix+"_WAIT_MODE"); err != nil {
		return fmt.Errorf("failed to bind wait mode env: %w", err)
	}
	return nil
}

// ReadFile merges a configuration file into v; an empty path is a no-op
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load resolves a SearchConfig from v
func Load(v *viper.Viper) (*SearchConfig, error) {
	cfg := &SearchConfig{
		FilePath:         v.GetString(KeyFilePath),
		Timeout:          v.GetDuration(KeyTimeout),
		ProgressInterval: v.GetDuration(KeyProgressInterval),
		ReportPath:       v.GetString(KeyReportPath),
		ReportFormat:     v.GetString(KeyReportFormat),
	}
	if cfg.FilePath == "" {
		cfg.FilePath = payload.DefaultPath
	}
	cfg.Workers, cfg.WorkersDefaulted = parseWorkers(v.Get(KeyWorkers))

	if raw := v.GetString(KeySeed); raw != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid seed %q", core.ErrConfiguration, raw)
		}
		cfg.Seed = seed
		cfg.SeedSet = true
	}

	var err error
	if cfg.WaitMode, err = core.ParseWaitMode(v.GetString(KeyWaitMode)); err != nil {
		return nil, err
	}
	if cfg.SeedStrategy, err = core.ParseSeedStrategy(v.GetString(KeySeedStrategy)); err != nil {
		return nil, err
	}

	switch cfg.ReportFormat {
	case "json", "yaml", "html":
	default:
		return nil, fmt.Errorf("%w: unsupported report format %q", core.ErrConfiguration, cfg.ReportFormat)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: timeout must not be negative", core.ErrConfiguration)
	}
	return cfg, nil
}

// ParseWorkers converts a raw worker count, falling back to DefaultWorkers when the
// value is absent, unparsable or below one
func ParseWorkers(raw interface{}) int {
	n, _ := parseWorkers(raw)
	return n
}

// parseWorkers also reports whether a present value had to be replaced
// Strings are read as plain decimal; "010" is ten workers and "0x10" is unparsable
func parseWorkers(raw interface{}) (int, bool) {
	if raw == nil {
		return DefaultWorkers, false
	}
	var (
		n   int
		err error
	)
	if s, ok := raw.(string); ok {
		n, err = strconv.Atoi(strings.TrimSpace(s))
	} else {
		n, err = cast.ToIntE(raw)
	}
	if err != nil || n < 1 {
		return DefaultWorkers, true
	}
	return n, false
}

// EngineConfig converts the search configuration into engine parameters
func (c *SearchConfig) EngineConfig(baseSeed uint64) core.EngineConfig {
	return core.EngineConfig{
		Workers:      c.Workers,
		BaseSeed:     baseSeed,
		SeedStrategy: c.SeedStrategy,
		WaitMode:     c.WaitMode,
	}
}
