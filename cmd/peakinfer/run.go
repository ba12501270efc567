package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peakinfer/peakinfer-action/internal/collector"
	"github.com/peakinfer/peakinfer-action/internal/config"
	"github.com/peakinfer/peakinfer-action/internal/ghaction"
	"github.com/peakinfer/peakinfer-action/internal/github"
	"github.com/peakinfer/peakinfer-action/internal/logger"
	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
	"github.com/peakinfer/peakinfer-action/internal/runner"
	"github.com/peakinfer/peakinfer-action/internal/verdict"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze the current pull request and post the findings",
	Long: `Run the full analysis sequence for the pull request that triggered
this workflow: collect source files, call the PeakInfer service, post the
comment, and publish workflow outputs. All inputs are read from the
INPUT_* environment variables GitHub Actions provides.`,
	RunE: runAction,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(runCmd)
}

func runAction(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, nil)
	outputPath := os.Getenv("GITHUB_OUTPUT")

	// Anything that escapes the run still fails it cleanly, with the
	// verdict exported so downstream steps see ERROR rather than nothing.
	defer func() {
		if p := recover(); p != nil {
			log.Error("Run panicked", "panic", p)
			if werr := ghaction.WriteOutputs(outputPath, []ghaction.Output{
				{Name: "verdict", Value: string(verdict.Error)},
			}); werr != nil {
				log.Warn("Failed to write workflow outputs", "error", werr)
			}
			err = fmt.Errorf("run panicked: %v", p)
		}
	}()

	actx, err := ghaction.LoadContext()
	if err != nil {
		return fmt.Errorf("failed to read workflow context: %w", err)
	}

	ctx := cmd.Context()
	gh := github.NewTokenClient(ctx, cfg.GitHubToken, log)
	api := peakinfer.NewClient(cfg.APIURL, cfg.PeakInferToken, nil, log)

	r := runner.New(*cfg, actx, gh, api, collector.New(log), outputPath, log)
	return r.Run(ctx)
}
