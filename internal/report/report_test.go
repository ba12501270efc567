package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
	"github.com/peakinfer/peakinfer-action/internal/verdict"
)

func resultWithIssues() *peakinfer.AnalysisResult {
	return &peakinfer.AnalysisResult{
		InferencePoints: []peakinfer.InferencePoint{
			{
				ID: "ip-1", File: "src/chat.ts", Line: 42, Provider: "openai", Model: "gpt-4o",
				Issues: []peakinfer.Issue{
					{Type: "prompt", Severity: peakinfer.SeverityWarning, Headline: "Unpinned model version", Evidence: "model: \"gpt-4o\""},
					{Type: "cost", Severity: peakinfer.SeverityCritical, Headline: "Unbounded max_tokens", Evidence: "max_tokens not set", SuggestedFix: "Set max_tokens explicitly"},
				},
			},
			{
				ID: "ip-2", File: "src/agent.ts", Line: 7, Provider: "anthropic", Model: "claude-sonnet-4-5",
				Issues: []peakinfer.Issue{
					{Type: "retry", Severity: peakinfer.SeverityWarning, Headline: "No retry on rate limit"},
				},
			},
		},
		Summary:    peakinfer.Summary{CriticalCount: 1, WarningCount: 2},
		LayersUsed: []string{peakinfer.LayerCode},
	}
}

func TestSuccessZeroInferencePoints(t *testing.T) {
	res := &peakinfer.AnalysisResult{LayersUsed: []string{peakinfer.LayerCode}}
	body := Success(res, verdict.Skip, true)

	assert.Contains(t, body, "No inference points were found")
	assert.NotContains(t, body, "All findings")
	assert.NotContains(t, body, "|----------|")
}

func TestSuccessTopIssueIsFirstCritical(t *testing.T) {
	body := Success(resultWithIssues(), verdict.Review, false)

	assert.Contains(t, body, "Unbounded max_tokens")
	assert.Contains(t, body, "`src/chat.ts:42`")
	assert.Contains(t, body, "Suggested fix")
	// The expanded issue is the critical one even though a warning
	// precedes it in the service's ordering.
	criticalIdx := strings.Index(body, "Unbounded max_tokens")
	tableIdx := strings.Index(body, "All findings")
	assert.Less(t, criticalIdx, tableIdx)
}

func TestSuccessTopIssueFallsBackToFirstWarning(t *testing.T) {
	res := resultWithIssues()
	res.InferencePoints[0].Issues = res.InferencePoints[0].Issues[:1]
	res.Summary.CriticalCount = 0

	body := Success(res, verdict.OK, false)
	assert.Contains(t, body, "### 🟠 Unpinned model version")
}

func TestSuccessOmitsAbsentSections(t *testing.T) {
	res := resultWithIssues()
	body := Success(res, verdict.Review, false)

	assert.NotContains(t, body, "Runtime drift")
	assert.NotContains(t, body, "Benchmark comparisons")
	assert.NotContains(t, body, "Insights")
	assert.NotContains(t, body, "Credits:")
	assert.NotContains(t, body, "Get more from PeakInfer")
}

func TestSuccessDriftSectionRequiresRuntimeLayer(t *testing.T) {
	res := resultWithIssues()
	res.Drifts = []peakinfer.Drift{{File: "src/chat.ts", Line: 42, Field: "temperature", Declared: "0.2", Observed: "0.9"}}

	body := Success(res, verdict.Review, false)
	assert.NotContains(t, body, "Runtime drift")

	res.LayersUsed = append(res.LayersUsed, peakinfer.LayerRuntime)
	body = Success(res, verdict.Review, false)
	assert.Contains(t, body, "Runtime drift (1)")
	assert.Contains(t, body, "temperature")
}

func TestSuccessEnhancementBlock(t *testing.T) {
	res := resultWithIssues()

	body := Success(res, verdict.Review, true)
	assert.Contains(t, body, "Get more from PeakInfer")
	assert.Contains(t, body, "**runtime**")

	res.LayersUsed = []string{peakinfer.LayerCode, peakinfer.LayerRuntime, peakinfer.LayerBenchmarks, peakinfer.LayerEvals}
	body = Success(res, verdict.Review, true)
	assert.NotContains(t, body, "Get more from PeakInfer")
}

func TestSuccessCreditsFooter(t *testing.T) {
	res := resultWithIssues()
	res.Credits = &peakinfer.CreditState{Consumed: 3, Remaining: 17, ExpiringSoon: true}

	body := Success(res, verdict.Review, false)
	assert.Contains(t, body, "3 used this run, 17 remaining")
	assert.Contains(t, body, "expiring soon")
}

func TestSuccessInsightsSkipTrivial(t *testing.T) {
	res := resultWithIssues()
	res.Insights = []peakinfer.Insight{
		{Title: "Empty", Body: "   "},
		{Title: "Real", Body: "Consider batching calls."},
	}

	body := Success(res, verdict.Review, false)
	assert.Contains(t, body, "Insights (1)")
	assert.Contains(t, body, "Consider batching calls.")
	assert.NotContains(t, body, "**Empty**")
}

func TestPausedUsesStatsAndEstimate(t *testing.T) {
	body := Paused(12, peakinfer.OrgStats{AnalysesRun: 40, IssuesFound: 90, CriticalCaught: 4, DriftsCaught: 2})

	assert.Contains(t, body, "Analysis Paused")
	assert.Contains(t, body, "Analyses run: 40")
	assert.Contains(t, body, "12 file(s)")
	assert.Contains(t, body, "estimated 36 inference point(s)")
}

func TestPausedZeroStats(t *testing.T) {
	body := Paused(0, peakinfer.OrgStats{})
	assert.Contains(t, body, "Issues found: 0")
	assert.NotContains(t, body, "undefined")
}

func TestNoCodeListsPatterns(t *testing.T) {
	body := NoCode()
	assert.Contains(t, body, "No Analyzable Code Found")
	assert.Contains(t, body, "SDK calls")
}

func TestFailure(t *testing.T) {
	body := Failure("invalid token", "Rotate the token in your org settings")
	assert.Contains(t, body, "Analysis Failed")
	assert.Contains(t, body, "invalid token")
	assert.Contains(t, body, "Rotate the token")
	assert.Contains(t, body, supportURL)
}

func TestFailureWithoutHint(t *testing.T) {
	body := Failure("boom", "")
	assert.Contains(t, body, "boom")
	assert.NotContains(t, body, "Hint")
}
