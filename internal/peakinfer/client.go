package peakinfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// DefaultBaseURL is the production analysis endpoint.
const DefaultBaseURL = "https://api.peakinfer.com"

// ErrorCodeCreditExhausted is the service's code for a metered quota that
// has run out mid-cycle.
const ErrorCodeCreditExhausted = "CREDIT_EXHAUSTED"

// APIError is the structured error branch of an analysis call. It is the
// mutually exclusive alternative to AnalysisResult.
type APIError struct {
	Message       string `json:"error"`
	Code          string `json:"code,omitempty"`
	Hint          string `json:"hint,omitempty"`
	Available     int    `json:"available,omitempty"`
	CreditsNeeded int    `json:"creditsNeeded,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("peakinfer: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("peakinfer: %s", e.Message)
}

// CreditsExhausted reports whether this error means the org's credits ran
// out, which callers treat as a pause rather than a failure.
func (e *APIError) CreditsExhausted() bool {
	return e.Code == ErrorCodeCreditExhausted
}

// Client talks to the PeakInfer analysis service.
//
//go:generate mockgen -destination=../mocks/mock_peakinfer_client.go -package=mocks -mock_names Client=MockPeakInferClient . Client
type Client interface {
	Analyze(ctx context.Context, files []File, run RunContext, layers Layers) (*AnalysisResult, error)
	FetchStats(ctx context.Context) (OrgStats, error)
}

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a Client for the given endpoint and credential. A nil
// httpClient falls back to http.DefaultClient; each analysis is a single
// attempt with no retry or backoff.
func NewClient(baseURL, token string, httpClient *http.Client, logger *slog.Logger) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{baseURL: baseURL, token: token, httpClient: httpClient, logger: logger}
}

// analyzeRequest is the wire shape of one analysis call. Disabled layers
// are omitted from the layers object rather than sent as null.
type analyzeRequest struct {
	Files    []File                 `json:"files"`
	Repo     string                 `json:"repo"`
	PRNumber int                    `json:"prNumber"`
	SHA      string                 `json:"sha"`
	Layers   map[string]any `json:"layers"`
}

func layerPayload(layers Layers) map[string]any {
	out := map[string]any{
		LayerCode: struct{}{},
	}
	if layers.Runtime != nil {
		out[LayerRuntime] = layers.Runtime
	}
	if layers.Benchmarks != nil {
		out[LayerBenchmarks] = layers.Benchmarks
	}
	if layers.Evals != nil {
		out[LayerEvals] = layers.Evals
	}
	return out
}

// Analyze sends the collected files and run context to the service and
// returns either the parsed result or an error. A non-2xx status with a
// parsable body yields an *APIError so callers can branch on the code.
func (c *client) Analyze(ctx context.Context, files []File, run RunContext, layers Layers) (*AnalysisResult, error) {
	payload := analyzeRequest{
		Files:    files,
		Repo:     run.Repo,
		PRNumber: run.PRNumber,
		SHA:      run.SHA,
		Layers:   layerPayload(layers),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Info("Sending analysis request", "files", len(files), "repo", run.Repo, "pr", run.PRNumber, "layers", layers.Enabled())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("analysis service returned status %d", resp.StatusCode)
		}
		c.logger.Error("Analysis call failed", "status", resp.StatusCode, "code", apiErr.Code, "message", apiErr.Message)
		return nil, apiErr
	}

	var result AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}

	c.logger.Info("Analysis complete",
		"inference_points", len(result.InferencePoints),
		"critical", result.Summary.CriticalCount,
		"warnings", result.Summary.WarningCount)
	return &result, nil
}

// FetchStats retrieves the org's monthly aggregate usage. Callers treat a
// failure here as zero-valued stats; it never blocks a run.
func (c *client) FetchStats(ctx context.Context) (OrgStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/stats", nil)
	if err != nil {
		return OrgStats{}, fmt.Errorf("failed to build stats request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return OrgStats{}, fmt.Errorf("stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return OrgStats{}, fmt.Errorf("stats service returned status %d", resp.StatusCode)
	}

	var stats OrgStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return OrgStats{}, fmt.Errorf("failed to parse stats response: %w", err)
	}
	return stats, nil
}
