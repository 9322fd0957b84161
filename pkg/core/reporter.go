package core

import (
	"context"
	"fmt"
	"strings"
)

// Source provides the pull request text to scan
type Source interface {
	PullRequestTitle(ctx context.Context) (string, error)
	CommitMessages(ctx context.Context) ([]string, error)
}

// Reporter publishes the outcome of a check. Message and Warning are
// informational; Failure must mark the check as failed.
type Reporter interface {
	Message(ctx context.Context, text string) error
	Warning(ctx context.Context, text string) error
	Failure(ctx context.Context, text string) error
}

// IssueURL joins the base URL and key with exactly one slash
func IssueURL(baseURL, key string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + key
}

// FormatLinks composes the links message for the given keys
func FormatLinks(cfg Config, keys []string) string {
	links := make([]string, 0, len(keys))
	for _, key := range keys {
		links = append(links, fmt.Sprintf("<a href='%s'>%s</a>", IssueURL(cfg.BaseURL, key), key))
	}
	return cfg.Emoji + " " + strings.Join(links, ", ")
}

// Report publishes exactly one of a links message, a warning, a failure or
// nothing, depending on the result and configuration
func Report(ctx context.Context, cfg Config, result Result, reporter Reporter) error {
	if len(result.Keys) > 0 && result.HasIssues {
		if err := reporter.Message(ctx, FormatLinks(cfg, result.Keys)); err != nil {
			return fmt.Errorf("failed to post issue links: %w", err)
		}
		return nil
	}

	if !cfg.ReportMissing {
		return nil
	}

	if cfg.FailOnWarning {
		if err := reporter.Failure(ctx, MissingIssuesMessage); err != nil {
			return fmt.Errorf("failed to post failure: %w", err)
		}
		return nil
	}

	if err := reporter.Warning(ctx, MissingIssuesMessage); err != nil {
		return fmt.Errorf("failed to post warning: %w", err)
	}
	return nil
}
