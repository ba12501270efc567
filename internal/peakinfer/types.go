// Package peakinfer implements the client for the PeakInfer analysis
// service. The service receives a batch of source files plus pull-request
// context and returns structured findings; all analysis intelligence lives
// on the service side.
package peakinfer

// Severity levels assigned by the service to individual issues.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// File is a single collected source file sent for analysis.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RunContext identifies the pull request a run belongs to.
type RunContext struct {
	Repo     string `json:"repo"`
	PRNumber int    `json:"prNumber"`
	SHA      string `json:"sha"`
}

// Issue is a single finding attached to an inference point.
type Issue struct {
	Type         string `json:"type"`
	Severity     string `json:"severity"`
	Headline     string `json:"headline"`
	Evidence     string `json:"evidence"`
	SuggestedFix string `json:"suggestedFix,omitempty"`
}

// InferencePoint is a location in source code where the service detected
// a language-model call. Issue order within a point is service-determined
// and preserved as received.
type InferencePoint struct {
	ID       string  `json:"id"`
	File     string  `json:"file"`
	Line     int     `json:"line"`
	Provider string  `json:"provider"`
	Model    string  `json:"model"`
	Issues   []Issue `json:"issues"`
}

// Drift is a discrepancy between declared code behavior and observed
// runtime behavior, reported only when the runtime layer was supplied.
type Drift struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Field       string `json:"field"`
	Declared    string `json:"declared"`
	Observed    string `json:"observed"`
	Description string `json:"description"`
}

// BenchmarkComparison relates a model choice to published benchmark data.
type BenchmarkComparison struct {
	Model       string `json:"model"`
	Alternative string `json:"alternative"`
	Metric      string `json:"metric"`
	Delta       string `json:"delta"`
	Note        string `json:"note,omitempty"`
}

// Insight is a free-form observation from the service.
type Insight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Summary carries the aggregate counts for a result.
type Summary struct {
	CriticalCount int `json:"criticalCount"`
	WarningCount  int `json:"warningCount"`
	InfoCount     int `json:"infoCount"`
	DriftCount    int `json:"driftCount"`
}

// CreditState reports credit metering for the run. A nil CreditState on a
// result means the call succeeded without metering context.
type CreditState struct {
	Consumed     int  `json:"consumed"`
	Remaining    int  `json:"remaining"`
	ExpiringSoon bool `json:"expiringSoon"`
}

// AnalysisResult is the success outcome of one analysis call. It is
// produced entirely by the service and treated as read-only input to
// verdict classification and rendering.
type AnalysisResult struct {
	InferencePoints      []InferencePoint      `json:"inferencePoints"`
	Drifts               []Drift               `json:"drifts,omitempty"`
	BenchmarkComparisons []BenchmarkComparison `json:"benchmarkComparisons,omitempty"`
	Insights             []Insight             `json:"insights"`
	Summary              Summary               `json:"summary"`
	LayersUsed           []string              `json:"layersUsed"`
	Credits              *CreditState          `json:"credits,omitempty"`
}

// OrgStats is the monthly aggregate usage for the organization, fetched
// independently of analysis and used only to enrich the paused comment.
type OrgStats struct {
	AnalysesRun    int `json:"analysesRun"`
	IssuesFound    int `json:"issuesFound"`
	CriticalCaught int `json:"criticalCaught"`
	DriftsCaught   int `json:"driftsCaught"`
}

// Layer names accepted by the service. The code layer is always enabled
// and carries no parameters.
const (
	LayerCode       = "code"
	LayerRuntime    = "runtime"
	LayerBenchmarks = "benchmarks"
	LayerEvals      = "evals"
)

// RuntimeLayer enables drift detection against recorded runtime events.
type RuntimeLayer struct {
	EventsFile string            `json:"eventsFile"`
	Events     string            `json:"events"`
	FieldMap   map[string]string `json:"fieldMap,omitempty"`
}

// BenchmarksLayer enables benchmark-backed model comparisons.
type BenchmarksLayer struct {
	Framework string `json:"framework"`
}

// EvalsLayer gates recommendations on the org's own eval results.
type EvalsLayer struct {
	Source string `json:"source"`
	APIKey string `json:"apiKey"`
}

// Layers bundles the optional analysis capabilities for one run. A nil
// pointer means the layer is disabled and its key is omitted from the
// request entirely, so the service can tell "not configured" from
// "explicitly disabled".
type Layers struct {
	Runtime    *RuntimeLayer
	Benchmarks *BenchmarksLayer
	Evals      *EvalsLayer
}

// Enabled returns the names of all layers active for this run, the
// always-on code layer included.
func (l Layers) Enabled() []string {
	names := []string{LayerCode}
	if l.Runtime != nil {
		names = append(names, LayerRuntime)
	}
	if l.Benchmarks != nil {
		names = append(names, LayerBenchmarks)
	}
	if l.Evals != nil {
		names = append(names, LayerEvals)
	}
	return names
}
