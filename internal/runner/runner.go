// Package runner sequences one analysis run: collect files, call the
// analysis service, classify the outcome, render and post the comment,
// and publish workflow outputs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peakinfer/peakinfer-action/internal/collector"
	"github.com/peakinfer/peakinfer-action/internal/config"
	"github.com/peakinfer/peakinfer-action/internal/ghaction"
	"github.com/peakinfer/peakinfer-action/internal/github"
	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
	"github.com/peakinfer/peakinfer-action/internal/report"
	"github.com/peakinfer/peakinfer-action/internal/verdict"
)

// Runner executes one full analysis run.
type Runner struct {
	cfg        config.Config
	actx       *ghaction.Context
	gh         github.Client
	api        peakinfer.Client
	files      *collector.Collector
	outputPath string
	logger     *slog.Logger
}

// New creates a Runner. outputPath is the GITHUB_OUTPUT file; empty means
// outputs are skipped with a warning.
func New(cfg config.Config, actx *ghaction.Context, gh github.Client, api peakinfer.Client, files *collector.Collector, outputPath string, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		actx:       actx,
		gh:         gh,
		api:        api,
		files:      files,
		outputPath: outputPath,
		logger:     logger,
	}
}

// Run performs the full sequence. A non-nil return marks the run failed;
// soft outcomes (non-PR trigger, empty collection, credit exhaustion)
// return nil. The comment is always posted before any failure is raised
// so failing never suppresses user-visible feedback.
func (r *Runner) Run(ctx context.Context) error {
	if !r.actx.IsPullRequest() {
		r.logger.Warn("Not a pull request event, skipping analysis", "event", r.actx.EventName)
		return nil
	}

	run := peakinfer.RunContext{
		Repo:     r.actx.Repo,
		PRNumber: r.actx.PRNumber,
		SHA:      r.actx.HeadSHA,
	}

	files := r.files.Collect(r.cfg.ScanPath, r.cfg.MaxFiles)
	if len(files) == 0 {
		if r.cfg.CommentMode == config.CommentAlways {
			if err := r.postComment(ctx, report.NoCode()); err != nil {
				return err
			}
		}
		r.publishVerdict(verdict.Skip)
		return nil
	}

	result, err := r.api.Analyze(ctx, files, run, r.cfg.Layers)
	if err != nil {
		return r.handleAnalyzeError(ctx, err, len(files))
	}

	return r.finishSuccess(ctx, result)
}

// handleAnalyzeError turns an analysis failure into either a paused run
// (credit exhaustion, not a failure) or a failed run with an error
// comment.
func (r *Runner) handleAnalyzeError(ctx context.Context, err error, fileCount int) error {
	var apiErr *peakinfer.APIError
	if errors.As(err, &apiErr) && apiErr.CreditsExhausted() {
		r.logger.Info("Analysis paused, credits exhausted", "available", apiErr.Available, "needed", apiErr.CreditsNeeded)

		stats, statsErr := r.api.FetchStats(ctx)
		if statsErr != nil {
			r.logger.Debug("Stats fetch failed, using zero-valued stats", "error", statsErr)
			stats = peakinfer.OrgStats{}
		}

		if r.cfg.CommentMode != config.CommentNever {
			if postErr := r.postComment(ctx, report.Paused(fileCount, stats)); postErr != nil {
				return postErr
			}
		}
		r.publishVerdict(verdict.Paused)
		return nil
	}

	message := err.Error()
	hint := ""
	if errors.As(err, &apiErr) {
		message = apiErr.Message
		hint = apiErr.Hint
	}

	if r.cfg.CommentMode != config.CommentNever {
		if postErr := r.postComment(ctx, report.Failure(message, hint)); postErr != nil {
			r.logger.Error("Failed to post error comment", "error", postErr)
		}
	}
	r.publishVerdict(verdict.Error)
	return fmt.Errorf("analysis failed: %w", err)
}

func (r *Runner) finishSuccess(ctx context.Context, result *peakinfer.AnalysisResult) error {
	v := verdict.Classify(verdict.Input{
		CriticalCount:     result.Summary.CriticalCount,
		WarningCount:      result.Summary.WarningCount,
		HasInferencePoint: len(result.InferencePoints) > 0,
	})
	r.logger.Info("Run classified", "verdict", v,
		"critical", result.Summary.CriticalCount, "warnings", result.Summary.WarningCount)

	if r.shouldComment(result) {
		body := report.Success(result, v, r.cfg.ShowEnhancementPrompts)
		if err := r.postComment(ctx, body); err != nil {
			return err
		}
	}

	r.publishOutputs(v, result)

	if r.cfg.FailOnCritical && result.Summary.CriticalCount > 0 {
		return fmt.Errorf("%d critical issue(s) found and fail-on-critical is set", result.Summary.CriticalCount)
	}
	return nil
}

func (r *Runner) shouldComment(result *peakinfer.AnalysisResult) bool {
	switch r.cfg.CommentMode {
	case config.CommentNever:
		return false
	case config.CommentOnIssues:
		return result.Summary.CriticalCount+result.Summary.WarningCount > 0
	default:
		return true
	}
}

func (r *Runner) postComment(ctx context.Context, body string) error {
	if err := r.gh.CreateComment(ctx, r.actx.Owner, r.actx.Name, r.actx.PRNumber, body); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	r.logger.Info("Posted comment", "repo", r.actx.Repo, "pr", r.actx.PRNumber)
	return nil
}

// publishVerdict exports only the verdict label, used on the paths that
// stop before a full result exists.
func (r *Runner) publishVerdict(v verdict.Verdict) {
	r.writeOutputs([]ghaction.Output{{Name: "verdict", Value: string(v)}})
}

func (r *Runner) publishOutputs(v verdict.Verdict, result *peakinfer.AnalysisResult) {
	outputs := []ghaction.Output{
		{Name: "verdict", Value: string(v)},
		{Name: "inference-points", Value: strconv.Itoa(len(result.InferencePoints))},
		{Name: "critical-count", Value: strconv.Itoa(result.Summary.CriticalCount)},
		{Name: "warning-count", Value: strconv.Itoa(result.Summary.WarningCount)},
		{Name: "drift-count", Value: strconv.Itoa(result.Summary.DriftCount)},
		{Name: "layers-used", Value: strings.Join(result.LayersUsed, ",")},
	}
	if result.Credits != nil {
		outputs = append(outputs,
			ghaction.Output{Name: "credits-used", Value: strconv.Itoa(result.Credits.Consumed)},
			ghaction.Output{Name: "credits-remaining", Value: strconv.Itoa(result.Credits.Remaining)},
		)
	}
	r.writeOutputs(outputs)
}

// writeOutputs publishes best-effort: a broken outputs sink should not
// fail a run whose comment already landed.
func (r *Runner) writeOutputs(outputs []ghaction.Output) {
	if err := ghaction.WriteOutputs(r.outputPath, outputs); err != nil {
		r.logger.Warn("Failed to write workflow outputs", "error", err)
	}
}
