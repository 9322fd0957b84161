package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-github/v60/github"
)

// LoadPullRequestEvent reads the webhook payload that triggered the workflow
func LoadPullRequestEvent(path string) (*github.PullRequestEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload %s: %w", path, err)
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}

	return &event, nil
}

// PRNumberFromRef extracts the pull request number from a ref such as
// refs/pull/123/merge or a ref name such as 123/merge
func PRNumberFromRef(ref string) (int, error) {
	numStr := strings.TrimPrefix(ref, "refs/pull/")
	numStr, _, _ = strings.Cut(numStr, "/")

	n, err := strconv.Atoi(numStr)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("could not extract PR number from ref: %s", ref)
	}

	return n, nil
}

// Logger receives diagnostics while resolving workflow context.
// *githubactions.Action satisfies it.
type Logger interface {
	Debugf(msg string, args ...any)
}

// ResolvePRNumber finds the pull request number from the event payload,
// falling back to the workflow refs. A payload that cannot be used is
// logged, and joined into the error when no ref matches either.
func ResolvePRNumber(log Logger, eventPath, ref, refName string) (int, error) {
	var payloadErr error

	if eventPath != "" {
		event, err := LoadPullRequestEvent(eventPath)
		switch {
		case err != nil:
			payloadErr = err
		case event.GetNumber() > 0:
			return event.GetNumber(), nil
		case event.GetPullRequest().GetNumber() > 0:
			return event.GetPullRequest().GetNumber(), nil
		default:
			payloadErr = fmt.Errorf("event payload %s has no pull request number", eventPath)
		}
		log.Debugf("Falling back to refs for PR number: %v", payloadErr)
	}

	var (
		n   int
		err error
	)
	switch {
	case strings.HasPrefix(ref, "refs/pull/"):
		n, err = PRNumberFromRef(ref)
	case refName != "":
		n, err = PRNumberFromRef(refName)
	default:
		err = fmt.Errorf("could not extract PR number from refs: %s", ref)
	}
	if err != nil {
		return 0, errors.Join(err, payloadErr)
	}

	return n, nil
}
