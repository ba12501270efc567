// Package config loads the action's inputs into an immutable configuration
// struct. All environment access happens here; every other component
// receives the resulting Config by value.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/peakinfer/peakinfer-action/internal/collector"
	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
)

// CommentMode controls when a PR comment is posted.
type CommentMode string

const (
	CommentAlways   CommentMode = "always"
	CommentOnIssues CommentMode = "on-issues"
	CommentNever    CommentMode = "never"
)

// Config holds the validated configuration for one run.
type Config struct {
	ScanPath               string
	PeakInferToken         string
	GitHubToken            string
	APIURL                 string
	FailOnCritical         bool
	CommentMode            CommentMode
	MaxFiles               int
	ShowEnhancementPrompts bool
	Layers                 peakinfer.Layers
	LogLevel               string
	LogFormat              string
}

// inputBindings maps each viper key to the environment variables it can be
// sourced from, in precedence order. GitHub Actions exposes action inputs
// as INPUT_<NAME> with the name uppercased and hyphens preserved.
var inputBindings = map[string][]string{
	"path":                     {"INPUT_PATH"},
	"peakinfer-token":          {"INPUT_PEAKINFER-TOKEN", "INPUT_TOKEN", "PEAKINFER_TOKEN"},
	"github-token":             {"INPUT_GITHUB-TOKEN", "GITHUB_TOKEN"},
	"api-url":                  {"INPUT_API-URL", "PEAKINFER_API_URL"},
	"fail-on-critical":         {"INPUT_FAIL-ON-CRITICAL"},
	"comment-mode":             {"INPUT_COMMENT-MODE"},
	"max-files":                {"INPUT_MAX-FILES"},
	"events":                   {"INPUT_EVENTS"},
	"events-file":              {"INPUT_EVENTS-FILE"},
	"events-map":               {"INPUT_EVENTS-MAP"},
	"include-benchmarks":       {"INPUT_INCLUDE-BENCHMARKS"},
	"benchmark-framework":      {"INPUT_BENCHMARK-FRAMEWORK"},
	"evals-source":             {"INPUT_EVALS-SOURCE"},
	"evals-api-key":            {"INPUT_EVALS-API-KEY"},
	"show-enhancement-prompts": {"INPUT_SHOW-ENHANCEMENT-PROMPTS"},
	"log-level":                {"INPUT_LOG-LEVEL"},
	"log-format":               {"INPUT_LOG-FORMAT"},
}

// Load reads action inputs from the environment, applies defaults, and
// validates required fields. A missing credential is a hard error: the run
// must fail before any network call is attempted.
func Load() (*Config, error) {
	v := viper.New()

	for key, envs := range inputBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind input %q: %w", key, err)
		}
	}

	v.SetDefault("path", "./src")
	v.SetDefault("comment-mode", string(CommentAlways))
	v.SetDefault("max-files", collector.DefaultMaxFiles)
	v.SetDefault("include-benchmarks", true)
	v.SetDefault("benchmark-framework", "api")
	v.SetDefault("show-enhancement-prompts", true)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")

	if v.GetString("peakinfer-token") == "" {
		return nil, fmt.Errorf("peakinfer-token must be set")
	}
	if v.GetString("github-token") == "" {
		return nil, fmt.Errorf("github-token must be set")
	}

	mode := CommentMode(strings.ToLower(v.GetString("comment-mode")))
	switch mode {
	case CommentAlways, CommentOnIssues, CommentNever:
	default:
		return nil, fmt.Errorf("invalid comment-mode %q (valid: always, on-issues, never)", mode)
	}

	layers, err := buildLayers(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		ScanPath:               v.GetString("path"),
		PeakInferToken:         v.GetString("peakinfer-token"),
		GitHubToken:            v.GetString("github-token"),
		APIURL:                 v.GetString("api-url"),
		FailOnCritical:         v.GetBool("fail-on-critical"),
		CommentMode:            mode,
		MaxFiles:               v.GetInt("max-files"),
		ShowEnhancementPrompts: v.GetBool("show-enhancement-prompts"),
		Layers:                 layers,
		LogLevel:               v.GetString("log-level"),
		LogFormat:              v.GetString("log-format"),
	}, nil
}

// buildLayers assembles the optional layer configuration. A layer is
// either absent or fully parameterized; a partially configured layer is a
// configuration error, never a request with missing fields.
func buildLayers(v *viper.Viper) (peakinfer.Layers, error) {
	var layers peakinfer.Layers

	events := v.GetString("events")
	eventsFile := v.GetString("events-file")
	if events != "" || eventsFile != "" {
		runtime := &peakinfer.RuntimeLayer{EventsFile: eventsFile, Events: events}
		if eventsFile != "" && events == "" {
			data, err := os.ReadFile(eventsFile)
			if err != nil {
				return layers, fmt.Errorf("failed to read events-file %s: %w", eventsFile, err)
			}
			runtime.Events = string(data)
		}
		if mapping := v.GetString("events-map"); mapping != "" {
			fieldMap := map[string]string{}
			if err := yaml.Unmarshal([]byte(mapping), &fieldMap); err != nil {
				return layers, fmt.Errorf("failed to parse events-map: %w", err)
			}
			runtime.FieldMap = fieldMap
		}
		layers.Runtime = runtime
	}

	if v.GetBool("include-benchmarks") {
		layers.Benchmarks = &peakinfer.BenchmarksLayer{Framework: v.GetString("benchmark-framework")}
	}

	evalsSource := v.GetString("evals-source")
	evalsKey := v.GetString("evals-api-key")
	if evalsSource != "" || evalsKey != "" {
		if evalsSource == "" || evalsKey == "" {
			return layers, fmt.Errorf("evals-source and evals-api-key must be set together")
		}
		layers.Evals = &peakinfer.EvalsLayer{Source: evalsSource, APIKey: evalsKey}
	}

	return layers, nil
}
