package core

import (
	"context"
	"fmt"
)

// Check scans the pull request for issue keys and reports them. The
// configuration is validated before the source or reporter is used, and
// only the sources enabled in cfg are read.
func Check(ctx context.Context, cfg Config, source Source, reporter Reporter) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	var (
		title   string
		commits []string
		err     error
	)

	if cfg.SearchTitle {
		title, err = source.PullRequestTitle(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get pull request title: %w", err)
		}
	}

	if cfg.SearchCommits {
		commits, err = source.CommitMessages(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get commit messages: %w", err)
		}
	}

	result, err := Extract(cfg, title, commits)
	if err != nil {
		return Result{}, err
	}

	if err := Report(ctx, cfg, result, reporter); err != nil {
		return result, err
	}

	return result, nil
}
