package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peakinfer",
	Short: "peakinfer sends pull-request source files to the PeakInfer analysis service.",
	Long: `PeakInfer is the CI entrypoint for the PeakInfer analysis service.

On each pull request it collects a bounded sample of source files, forwards
them for analysis, posts the findings as a PR comment, and publishes
structured workflow outputs.`,
	SilenceUsage: true,
}
