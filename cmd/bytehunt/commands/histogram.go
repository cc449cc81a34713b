/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: histogram.go
Description: Histogram command implementation. Prints the byte occurrence table of
a file as a text bar chart or as JSON.
*/

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/kleascm/bytehunt/pkg/analysis"
	"github.com/kleascm/bytehunt/pkg/config"
	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/kleascm/bytehunt/pkg/payload"
	"github.com/spf13/cobra"
)

// newHistogramCommand creates the histogram command
func newHistogramCommand(app *App) *cobra.Command {
	histogramCmd := &cobra.Command{
		Use:   "histogram [file]",
		Short: "Show the byte distribution of a file",
		Long: `Count the occurrences of every 8-bit value in a file and print them as a bar
chart with a tick every 16 byte values. Without an argument the configured target
file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Viper.GetString(config.KeyFilePath)
			if len(args) == 1 {
				path = args[0]
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			width, _ := cmd.Flags().GetInt("width")
			return app.RunHistogram(path, asJSON, width)
		},
	}
	histogramCmd.Flags().Bool("json", false, "Print the histogram as JSON")
	histogramCmd.Flags().Int("width", 60, "Width of the longest bar")
	return histogramCmd
}

// RunHistogram prints the histogram of the file at path
func (a *App) RunHistogram(path string, asJSON bool, width int) error {
	if path == "" {
		path = payload.DefaultPath
	}
	data, err := payload.NewLoader(a.Fs).Load(path)
	if err != nil {
		return err
	}

	h := analysis.NewHistogram(path, core.AnalyzeFrequencies(data))
	if asJSON {
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("failed to encode histogram: %w", err)
		}
		return nil
	}
	return h.Render(a.Stdout, width)
}
