package main

import (
	"context"

	"github.com/ksysoev/jira-action/pkg/action"
	"github.com/ksysoev/jira-action/pkg/core"
	"github.com/ksysoev/jira-action/pkg/github"
	"github.com/sethvargo/go-githubactions"
)

// Exit codes
const (
	exitSuccess = 0
	exitFailure = 1
)

// run performs the check for the pull request that triggered the workflow
// and returns the process exit code
func run(ctx context.Context, gha *githubactions.Action) int {
	inputs, err := action.ReadInputs(gha)
	if err != nil {
		gha.Errorf("Invalid configuration: %v", err)
		return exitFailure
	}

	// Get GitHub context
	ghctx, err := gha.Context()
	if err != nil {
		gha.Errorf("Failed to read GitHub context: %v", err)
		return exitFailure
	}

	if ghctx.EventName != "pull_request" && ghctx.EventName != "pull_request_target" {
		gha.Errorf("This action only works on pull_request or pull_request_target events, got: %s", ghctx.EventName)
		return exitFailure
	}

	if ghctx.Repository == "" {
		gha.Errorf("GITHUB_REPOSITORY environment variable is not set")
		return exitFailure
	}

	prNumber, err := github.ResolvePRNumber(gha, ghctx.EventPath, ghctx.Ref, gha.Getenv("GITHUB_REF_NAME"))
	if err != nil {
		gha.Errorf("Failed to extract PR number: %v", err)
		return exitFailure
	}

	var opts []github.ClientOption
	if ghctx.APIURL != "" {
		opts = append(opts, github.WithBaseURL(ghctx.APIURL))
	}

	client, err := github.NewClient(inputs.GitHubToken, ghctx.Repository, prNumber, opts...)
	if err != nil {
		gha.Errorf("Failed to create GitHub client: %v", err)
		return exitFailure
	}

	var commenter action.Commenter
	if inputs.PostComment {
		commenter = client
	}
	reporter := action.NewReporter(gha, commenter)

	gha.Infof("Checking PR #%d for issue keys %v", prNumber, inputs.Check.Keys)

	result, err := core.Check(ctx, inputs.Check, client, reporter)
	if err != nil {
		gha.Errorf("Issue key check failed: %v", err)
		return exitFailure
	}

	action.SetOutputs(gha, result)
	gha.Infof("Found %d issue keys: %v", len(result.Keys), result.Keys)

	if reporter.Failed() {
		return exitFailure
	}
	return exitSuccess
}
