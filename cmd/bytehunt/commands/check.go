/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command for bytehunt. Validates the configuration, the logger
settings, the target payload and the report destination without starting a search.
*/

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/kleascm/bytehunt/pkg/config"
	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/payload"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newCheckCommand creates the check command
func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and the target payload",
		Long: `Perform the checks a search would do before starting any worker: resolve the
configuration, validate the logger settings, read the target payload and make sure
the report destination is usable. Useful for CI/CD integration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.PerformSelfCheck()
		},
	}
}

// PerformSelfCheck runs every check and reports the results
func (a *App) PerformSelfCheck() error {
	fmt.Fprintln(a.Stdout, "🔍 bytehunt - Self-Check")
	fmt.Fprintln(a.Stdout, "========================")

	var cfg *config.SearchConfig
	checks := []struct {
		name     string
		function func() error
	}{
		{"Configuration", func() (err error) {
			cfg, err = a.SearchConfig()
			return err
		}},
		{"Logging", func() error {
			return a.LoggerConfig().Validate()
		}},
		{"Target Payload", func() error {
			if cfg == nil {
				return fmt.Errorf("configuration unavailable")
			}
			data, err := payload.NewLoader(a.Fs).Load(cfg.FilePath)
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return fmt.Errorf("%w: %s is empty", core.ErrConfiguration, cfg.FilePath)
			}
			return nil
		}},
		{"Report Destination", func() error {
			if cfg == nil || cfg.ReportPath == "" {
				return nil
			}
			return a.checkReportPath(cfg.ReportPath)
		}},
	}

	passed := 0
	for _, check := range checks {
		fmt.Fprintf(a.Stdout, "%s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Fprintf(a.Stdout, "❌ FAILED: %v\n", err)
			continue
		}
		fmt.Fprintln(a.Stdout, "✅ PASSED")
		passed++
	}

	total := len(checks)
	fmt.Fprintf(a.Stdout, "📊 Results: %d/%d checks passed\n", passed, total)
	if passed != total {
		return fmt.Errorf("%w: %d/%d checks failed", core.ErrConfiguration, total-passed, total)
	}
	return nil
}

// checkReportPath verifies the report target is a directory or sits in an existing one
func (a *App) checkReportPath(path string) error {
	if isDir, err := afero.IsDir(a.Fs, path); err == nil && isDir {
		return nil
	}
	parent := filepath.Dir(path)
	isDir, err := afero.IsDir(a.Fs, parent)
	if err != nil || !isDir {
		return fmt.Errorf("report directory %s does not exist", parent)
	}
	return nil
}
