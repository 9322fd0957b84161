// Package action connects the issue key check to the GitHub Actions
// runtime: inputs, workflow annotations, step outputs and the PR comment.
package action

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ksysoev/jira-action/pkg/core"
	"github.com/sethvargo/go-githubactions"
)

// Commenter posts the report to the pull request conversation
type Commenter interface {
	UpsertComment(ctx context.Context, body string) error
}

// Reporter publishes check results as workflow annotations and, when a
// Commenter is set, as a pull request comment
type Reporter struct {
	action    *githubactions.Action
	commenter Commenter
	failed    bool
}

// NewReporter creates a Reporter. commenter may be nil to skip PR comments.
func NewReporter(action *githubactions.Action, commenter Commenter) *Reporter {
	return &Reporter{
		action:    action,
		commenter: commenter,
	}
}

// Message reports the linked issues as a notice. A failed PR comment is
// logged and does not fail the check.
func (r *Reporter) Message(ctx context.Context, text string) error {
	r.action.Noticef("%s", text)
	r.commentOrWarn(ctx, text)
	return nil
}

// Warning reports text as a warning annotation. A failed PR comment is
// logged and does not fail the check.
func (r *Reporter) Warning(ctx context.Context, text string) error {
	r.action.Warningf("%s", text)
	r.commentOrWarn(ctx, ":warning: "+text)
	return nil
}

// Failure reports text as an error annotation and marks the check failed
func (r *Reporter) Failure(ctx context.Context, text string) error {
	r.failed = true
	r.action.Errorf("%s", text)
	return r.comment(ctx, ":no_entry_sign: "+text)
}

// Failed reports whether Failure was called
func (r *Reporter) Failed() bool {
	return r.failed
}

// commentOrWarn posts body, turning a comment error into a warning
// annotation. Read-only tokens, as on pull requests from forks, end up here.
func (r *Reporter) commentOrWarn(ctx context.Context, body string) {
	if err := r.comment(ctx, body); err != nil {
		r.action.Warningf("%v", err)
	}
}

func (r *Reporter) comment(ctx context.Context, body string) error {
	if r.commenter == nil {
		return nil
	}

	if err := r.commenter.UpsertComment(ctx, body); err != nil {
		return fmt.Errorf("failed to comment on pull request: %w", err)
	}
	return nil
}

// SetOutputs exposes the found keys as step outputs
func SetOutputs(action *githubactions.Action, result core.Result) {
	action.SetOutput("issue_keys", strings.Join(result.Keys, ","))
	action.SetOutput("has_issues", strconv.FormatBool(result.HasIssues))
}
