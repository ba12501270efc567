// Package report renders analysis outcomes into pull-request comment
// bodies. Each outcome kind has one renderer; all of them tolerate absent
// optional fields and always return a well-formed markdown body.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
	"github.com/peakinfer/peakinfer-action/internal/verdict"
)

// estimatedPointsPerFile is the placeholder heuristic used in the paused
// comment for inference points that went unanalyzed. It is an estimate,
// not a measurement.
const estimatedPointsPerFile = 3

// supportURL is where failed runs point users.
const supportURL = "https://peakinfer.com/support"

// Success renders the comment for a completed analysis. With zero
// inference points the body says so and carries no issue table; every
// optional section appears only when its data is present.
func Success(res *peakinfer.AnalysisResult, v verdict.Verdict, showEnhancements bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s PeakInfer Analysis: %s\n\n", verdictEmoji(v), v)

	if len(res.InferencePoints) == 0 {
		sb.WriteString("No inference points were found in the scanned files.\n\n")
		sb.WriteString("PeakInfer looks for code that calls a language model. ")
		sb.WriteString("If this pull request contains such code, check that the scan path covers it.\n")
		writeCreditsFooter(&sb, res.Credits)
		return sb.String()
	}

	writeSummaryLine(&sb, res)

	if issue, point := topIssue(res); issue != nil {
		writeTopIssue(&sb, issue, point)
	}

	if slices.Contains(res.LayersUsed, peakinfer.LayerRuntime) && len(res.Drifts) > 0 {
		writeDriftSection(&sb, res.Drifts)
	}
	if slices.Contains(res.LayersUsed, peakinfer.LayerBenchmarks) && len(res.BenchmarkComparisons) > 0 {
		writeBenchmarkSection(&sb, res.BenchmarkComparisons)
	}

	writeIssueTable(&sb, res.InferencePoints)
	writeInsights(&sb, res.Insights)

	if showEnhancements {
		writeEnhancements(&sb, res.LayersUsed)
	}

	writeCreditsFooter(&sb, res.Credits)
	return sb.String()
}

// Paused renders the comment for a run stopped by credit exhaustion. The
// stats block degrades to zeros when the stats call failed.
func Paused(fileCount int, stats peakinfer.OrgStats) string {
	var sb strings.Builder

	sb.WriteString("## ⏸️ PeakInfer Analysis Paused\n\n")
	sb.WriteString("Your organization's analysis credits for this month are exhausted, so this pull request was not analyzed.\n\n")

	sb.WriteString("**Value delivered this month**\n\n")
	fmt.Fprintf(&sb, "- Analyses run: %d\n", stats.AnalysesRun)
	fmt.Fprintf(&sb, "- Issues found: %d\n", stats.IssuesFound)
	fmt.Fprintf(&sb, "- Critical issues caught: %d\n", stats.CriticalCaught)
	fmt.Fprintf(&sb, "- Drifts detected: %d\n\n", stats.DriftsCaught)

	fmt.Fprintf(&sb, "This run collected %d file(s), an estimated %d inference point(s), that went unanalyzed.\n",
		fileCount, fileCount*estimatedPointsPerFile)
	return sb.String()
}

// NoCode renders the informational comment for runs where no analyzable
// source files were found.
func NoCode() string {
	var sb strings.Builder

	sb.WriteString("## 🔍 PeakInfer: No Analyzable Code Found\n\n")
	sb.WriteString("No source files eligible for analysis were found under the configured scan path.\n\n")
	sb.WriteString("PeakInfer recognizes, among others:\n\n")
	sb.WriteString("- OpenAI, Anthropic, Google, Mistral and Cohere SDK calls\n")
	sb.WriteString("- AWS Bedrock and Vertex AI invocations\n")
	sb.WriteString("- LangChain, LlamaIndex and similar framework chains\n")
	sb.WriteString("- Raw HTTP requests to known model endpoints\n\n")
	sb.WriteString("Supported languages: JavaScript/TypeScript, Python, Go, Java, Kotlin, Rust and Ruby.\n")
	return sb.String()
}

// Failure renders the comment for a failed analysis call.
func Failure(message, hint string) string {
	var sb strings.Builder

	sb.WriteString("## ❌ PeakInfer Analysis Failed\n\n")
	fmt.Fprintf(&sb, "The analysis service returned an error:\n\n> %s\n\n", message)
	if hint != "" {
		fmt.Fprintf(&sb, "**Hint**: %s\n\n", hint)
	}
	fmt.Fprintf(&sb, "If the problem persists, reach out at %s.\n", supportURL)
	return sb.String()
}

func writeSummaryLine(sb *strings.Builder, res *peakinfer.AnalysisResult) {
	s := res.Summary
	fmt.Fprintf(sb, "**%d inference point(s)** scanned: %d critical, %d warning(s), %d info",
		len(res.InferencePoints), s.CriticalCount, s.WarningCount, s.InfoCount)
	if s.DriftCount > 0 {
		fmt.Fprintf(sb, ", %d drift(s) detected", s.DriftCount)
	}
	sb.WriteString("\n\n")
}

// topIssue returns the highest-priority issue: the first critical in file
// order, otherwise the first warning. Issue order inside a point is as the
// service delivered it.
func topIssue(res *peakinfer.AnalysisResult) (*peakinfer.Issue, *peakinfer.InferencePoint) {
	var firstWarning *peakinfer.Issue
	var firstWarningPoint *peakinfer.InferencePoint

	for i := range res.InferencePoints {
		point := &res.InferencePoints[i]
		for j := range point.Issues {
			issue := &point.Issues[j]
			switch issue.Severity {
			case peakinfer.SeverityCritical:
				return issue, point
			case peakinfer.SeverityWarning:
				if firstWarning == nil {
					firstWarning = issue
					firstWarningPoint = point
				}
			}
		}
	}
	return firstWarning, firstWarningPoint
}

func writeTopIssue(sb *strings.Builder, issue *peakinfer.Issue, point *peakinfer.InferencePoint) {
	fmt.Fprintf(sb, "### %s %s\n\n", severityEmoji(issue.Severity), issue.Headline)
	fmt.Fprintf(sb, "`%s:%d`", point.File, point.Line)
	if point.Model != "" {
		fmt.Fprintf(sb, " (%s", point.Model)
		if point.Provider != "" {
			fmt.Fprintf(sb, " via %s", point.Provider)
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n\n")
	if issue.Evidence != "" {
		fmt.Fprintf(sb, "> %s\n\n", issue.Evidence)
	}
	if issue.SuggestedFix != "" {
		fmt.Fprintf(sb, "**Suggested fix**: %s\n\n", issue.SuggestedFix)
	}
}

func writeDriftSection(sb *strings.Builder, drifts []peakinfer.Drift) {
	fmt.Fprintf(sb, "<details>\n<summary>📉 Runtime drift (%d)</summary>\n\n", len(drifts))
	sb.WriteString("| Location | Field | Declared | Observed |\n")
	sb.WriteString("|----------|-------|----------|----------|\n")
	for _, d := range drifts {
		fmt.Fprintf(sb, "| `%s:%d` | %s | %s | %s |\n", d.File, d.Line, d.Field, d.Declared, d.Observed)
	}
	sb.WriteString("\n</details>\n\n")
}

func writeBenchmarkSection(sb *strings.Builder, comparisons []peakinfer.BenchmarkComparison) {
	fmt.Fprintf(sb, "<details>\n<summary>📊 Benchmark comparisons (%d)</summary>\n\n", len(comparisons))
	sb.WriteString("| Model | Alternative | Metric | Delta |\n")
	sb.WriteString("|-------|-------------|--------|-------|\n")
	for _, c := range comparisons {
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n", c.Model, c.Alternative, c.Metric, c.Delta)
	}
	sb.WriteString("\n</details>\n\n")
}

func writeIssueTable(sb *strings.Builder, points []peakinfer.InferencePoint) {
	total := 0
	for _, p := range points {
		total += len(p.Issues)
	}
	if total == 0 {
		return
	}

	fmt.Fprintf(sb, "<details>\n<summary>🗂 All findings (%d)</summary>\n\n", total)
	for _, p := range points {
		if len(p.Issues) == 0 {
			continue
		}
		fmt.Fprintf(sb, "**`%s`**\n\n", p.File)
		sb.WriteString("| Severity | Type | Finding |\n")
		sb.WriteString("|----------|------|--------|\n")
		for _, issue := range p.Issues {
			fmt.Fprintf(sb, "| %s %s | %s | %s |\n", severityEmoji(issue.Severity), issue.Severity, issue.Type, issue.Headline)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</details>\n\n")
}

func writeInsights(sb *strings.Builder, insights []peakinfer.Insight) {
	var kept []peakinfer.Insight
	for _, in := range insights {
		if strings.TrimSpace(in.Body) != "" {
			kept = append(kept, in)
		}
	}
	if len(kept) == 0 {
		return
	}

	fmt.Fprintf(sb, "<details>\n<summary>💡 Insights (%d)</summary>\n\n", len(kept))
	for _, in := range kept {
		fmt.Fprintf(sb, "**%s**\n\n%s\n\n", in.Title, in.Body)
	}
	sb.WriteString("</details>\n\n")
}

func writeEnhancements(sb *strings.Builder, layersUsed []string) {
	var unused []string
	if !slices.Contains(layersUsed, peakinfer.LayerRuntime) {
		unused = append(unused, "**runtime**: detect drift between code and production behavior by supplying an events file")
	}
	if !slices.Contains(layersUsed, peakinfer.LayerBenchmarks) {
		unused = append(unused, "**benchmarks**: compare your model choices against published benchmark data")
	}
	if !slices.Contains(layersUsed, peakinfer.LayerEvals) {
		unused = append(unused, "**evals**: gate recommendations on your own eval results")
	}
	if len(unused) == 0 {
		return
	}

	sb.WriteString("<details>\n<summary>✨ Get more from PeakInfer</summary>\n\n")
	for _, line := range unused {
		fmt.Fprintf(sb, "- %s\n", line)
	}
	sb.WriteString("\n</details>\n\n")
}

func writeCreditsFooter(sb *strings.Builder, credits *peakinfer.CreditState) {
	if credits == nil {
		return
	}
	fmt.Fprintf(sb, "---\n🪙 Credits: %d used this run, %d remaining", credits.Consumed, credits.Remaining)
	if credits.ExpiringSoon {
		sb.WriteString(" (expiring soon)")
	}
	sb.WriteString("\n")
}

// verdictEmoji returns the marker for a verdict header.
func verdictEmoji(v verdict.Verdict) string {
	switch v {
	case verdict.Pass:
		return "✅"
	case verdict.OK:
		return "🟢"
	case verdict.Review:
		return "🟡"
	case verdict.Block:
		return "🚫"
	case verdict.Paused:
		return "⏸️"
	case verdict.Skip:
		return "🔍"
	default:
		return "❌"
	}
}

// severityEmoji returns the marker for an issue severity.
func severityEmoji(severity string) string {
	switch severity {
	case peakinfer.SeverityCritical:
		return "🔴"
	case peakinfer.SeverityWarning:
		return "🟠"
	case peakinfer.SeverityInfo:
		return "🔵"
	default:
		return "⚪"
	}
}
