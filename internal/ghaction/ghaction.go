// Package ghaction reads the GitHub Actions runtime context and publishes
// workflow outputs.
package ghaction

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Context is the slice of the Actions environment one run needs.
type Context struct {
	EventName string
	Repo      string // "owner/name"
	Owner     string
	Name      string
	PRNumber  int
	HeadSHA   string
}

// IsPullRequest reports whether the triggering event carries a pull
// request.
func (c *Context) IsPullRequest() bool {
	return c.EventName == "pull_request" || c.EventName == "pull_request_target"
}

// prEvent holds the pull_request fields of the event payload file.
type prEvent struct {
	PullRequest struct {
		Number int `json:"number"`
		Head   struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// LoadContext builds a Context from the Actions environment. For non-PR
// events it returns a Context with only the event name filled in, so the
// caller can decline the run without treating it as an error.
func LoadContext() (*Context, error) {
	ctx := &Context{
		EventName: os.Getenv("GITHUB_EVENT_NAME"),
		Repo:      os.Getenv("GITHUB_REPOSITORY"),
	}
	if !ctx.IsPullRequest() {
		return ctx, nil
	}

	if owner, name, ok := strings.Cut(ctx.Repo, "/"); ok {
		ctx.Owner = owner
		ctx.Name = name
	} else {
		return nil, fmt.Errorf("GITHUB_REPOSITORY %q is not owner/name", ctx.Repo)
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil, fmt.Errorf("GITHUB_EVENT_PATH not set")
	}
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	var event prEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("parse event JSON: %w", err)
	}
	if event.PullRequest.Number <= 0 {
		return nil, fmt.Errorf("event payload has no pull request number")
	}

	ctx.PRNumber = event.PullRequest.Number
	ctx.HeadSHA = event.PullRequest.Head.SHA
	return ctx, nil
}

// Output is one name=value pair published to the workflow.
type Output struct {
	Name  string
	Value string
}

// WriteOutputs appends the outputs to the GITHUB_OUTPUT file at path.
// Multiline values use the delimiter syntax the runner expects.
func WriteOutputs(path string, outputs []Output) error {
	if path == "" {
		return fmt.Errorf("GITHUB_OUTPUT path not set")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outputs file: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, out := range outputs {
		if strings.Contains(out.Value, "\n") {
			fmt.Fprintf(&sb, "%s<<PEAKINFER_EOF\n%s\nPEAKINFER_EOF\n", out.Name, out.Value)
		} else {
			fmt.Fprintf(&sb, "%s=%s\n", out.Name, out.Value)
		}
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	return nil
}
