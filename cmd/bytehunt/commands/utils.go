/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the bytehunt commands. Provides configuration
loading, logging setup and exit code mapping used across all command
implementations.
*/

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kleascm/bytehunt/pkg/config"
	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Process exit codes
const (
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitPayload       = 3
)

// App carries the state shared by every command
type App struct {
	Viper  *viper.Viper
	Fs     afero.Fs
	Stdout io.Writer // Line protocol and command output
	Stderr io.Writer // Logs
}

// NewApp creates an App bound to the process environment and file system
func NewApp() *App {
	return &App{
		Viper:  viper.New(),
		Fs:     afero.NewOsFs(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LoadConfig binds defaults and environment and merges the configuration file
func (a *App) LoadConfig() error {
	if err := config.Bind(a.Viper); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.ReadFile(a.Viper, a.Viper.GetString(keyConfig)); err != nil {
		return fmt.Errorf("%w: %v", core.ErrConfiguration, err)
	}
	return nil
}

// SearchConfig resolves the search configuration
func (a *App) SearchConfig() (*config.SearchConfig, error) {
	return config.Load(a.Viper)
}

// LoggerConfig builds the logger configuration from the persistent flags
func (a *App) LoggerConfig() *logging.LoggerConfig {
	cfg := logging.DefaultConfig()
	if level := a.Viper.GetString(keyLogLevel); level != "" {
		cfg.Level = logging.LogLevel(level)
	}
	if format := a.Viper.GetString(keyLogFormat); format != "" {
		cfg.Format = logging.LogFormat(format)
	}
	if maxFiles := a.Viper.GetInt(keyLogMaxFiles); maxFiles != 0 {
		cfg.MaxFiles = maxFiles
	}
	cfg.OutputDir = a.Viper.GetString(keyLogDir)
	cfg.Compress = a.Viper.GetBool(keyLogCompress)
	cfg.Console = a.Stderr
	return cfg
}

// SetupLogging configures the logging system
func (a *App) SetupLogging() (*logging.Logger, error) {
	logger, err := logging.NewLogger(a.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConfiguration, err)
	}
	return logger, nil
}

// ExitCode maps a command error to a process exit code
func ExitCode(err error) int {
	var payloadErr *core.PayloadReadError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &payloadErr):
		return ExitPayload
	case errors.Is(err, core.ErrConfiguration):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
