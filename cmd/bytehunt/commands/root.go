/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Root command for bytehunt. Registers the persistent configuration and
logging flags, binds them to viper and wires the search, histogram and check
subcommands.
*/

package commands

import (
	"github.com/kleascm/bytehunt/pkg/config"
	"github.com/spf13/cobra"
)

// Persistent configuration keys
const (
	keyConfig      = "config"
	keyLogLevel    = "log_level"
	keyLogFormat   = "log_format"
	keyLogDir      = "log_dir"
	keyLogMaxFiles = "log_max_files"
	keyLogCompress = "log_compress"
)

// NewRootCommand creates the bytehunt command tree around app
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytehunt",
		Short: "bytehunt - parallel brute-force search for a byte sequence",
		Long: `bytehunt reproduces a target file by sampling random bytes weighted by the
file's own byte frequencies. Several seeded workers search in parallel until the
trailing window of generated bytes equals the target.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.LoadConfig()
		},
	}
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	// Add persistent flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "custom", "Log format (text, json, custom)")
	flags.String("log-dir", "", "Log output directory (empty disables file logging)")
	flags.Int("log-max-files", 10, "Maximum number of log files to keep")
	flags.Bool("log-compress", false, "Compress older log files")

	// Bind flags to viper
	v := app.Viper
	v.BindPFlag(keyConfig, flags.Lookup("config"))
	v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))
	v.BindPFlag(keyLogDir, flags.Lookup("log-dir"))
	v.BindPFlag(keyLogMaxFiles, flags.Lookup("log-max-files"))
	v.BindPFlag(keyLogCompress, flags.Lookup("log-compress"))

	rootCmd.AddCommand(newSearchCommand(app))
	rootCmd.AddCommand(newHistogramCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	return rootCmd
}

// newSearchCommand creates the search command and binds its flags
func newSearchCommand(app *App) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search for the target file's byte sequence",
		Long: `Load the target file, build its byte frequency model and run one seeded worker
per configured thread until the wait policy is satisfied. Each match is printed with
its offset, seed and the time it took.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunSearch(cmd.Context())
		},
	}

	flags := searchCmd.Flags()
	flags.String("file", "", "Target file (default /bin/chmod)")
	flags.Int("workers", config.DefaultWorkers, "Number of parallel workers")
	flags.String("seed", "", "Base seed (default: drawn from the system entropy source)")
	flags.String("wait", "exhaustive", "Wait policy (exhaustive, first-match)")
	flags.String("seed-strategy", "consecutive", "Worker seed derivation (consecutive, independent)")
	flags.Duration("timeout", 0, "Stop searching after this long (0 = unbounded)")
	flags.Duration("progress", 0, "Log progress statistics at this interval (0 = off)")
	flags.String("report", "", "Write a run report to this file or directory")
	flags.String("report-format", "json", "Run report format (json, yaml, html)")

	v := app.Viper
	v.BindPFlag(config.KeyFilePath, flags.Lookup("file"))
	v.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))
	v.BindPFlag(config.KeySeed, flags.Lookup("seed"))
	v.BindPFlag(config.KeyWaitMode, flags.Lookup("wait"))
	v.BindPFlag(config.KeySeedStrategy, flags.Lookup("seed-strategy"))
	v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	v.BindPFlag(config.KeyProgressInterval, flags.Lookup("progress"))
	v.BindPFlag(config.KeyReportPath, flags.Lookup("report"))
	v.BindPFlag(config.KeyReportFormat, flags.Lookup("report-format"))
	return searchCmd
}
