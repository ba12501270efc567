package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
	"github.com/peakinfer/peakinfer-action/internal/report"
	"github.com/peakinfer/peakinfer-action/internal/verdict"
)

var previewRaw bool

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

var previewCmd = &cobra.Command{
	Use:   "preview [result.json]",
	Short: "Render the PR comment for a saved analysis result",
	Long: `Render the success comment body for an analysis result saved as JSON,
without posting anything. The local loop for checking comment layout:

  peakinfer preview testdata/result.json
  peakinfer preview --raw result.json > comment.md`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print raw markdown instead of rendering it")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read result file: %w", err)
	}

	var result peakinfer.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse result file: %w", err)
	}

	v := verdict.Classify(verdict.Input{
		CriticalCount:     result.Summary.CriticalCount,
		WarningCount:      result.Summary.WarningCount,
		HasInferencePoint: len(result.InferencePoints) > 0,
	})
	body := report.Success(&result, v, true)

	if previewRaw {
		fmt.Print(body)
		return nil
	}

	titleColor.Println("PeakInfer comment preview")
	dimColor.Printf("   Source: %s\n", args[0])

	rendered, err := glamour.Render(body, "dark")
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Print(rendered)
	return nil
}
