package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// CommentMarker identifies the comment owned by this action so that
// re-runs edit it instead of adding new comments
const CommentMarker = "<!-- jira-action -->"

const perPage = 100

// Client handles interaction with the GitHub API for a single pull request
type Client struct {
	client   *github.Client
	owner    string
	repo     string
	prNumber int
}

// ClientOption configures a Client
type ClientOption func(*Client) error

// WithBaseURL points the client at a different API endpoint, such as a
// GitHub Enterprise server
func WithBaseURL(rawURL string) ClientOption {
	return func(c *Client) error {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub API URL %q: %w", rawURL, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewClient creates a new GitHub client for the given pull request
func NewClient(token, repoFullName string, prNumber int, opts ...ClientOption) (*Client, error) {
	owner, repo, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository name %q, expected owner/repo", repoFullName)
	}

	c := &Client{
		client:   NewRawClient(token),
		owner:    owner,
		repo:     repo,
		prNumber: prNumber,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewRawClient creates a new raw GitHub client
func NewRawClient(token string) *github.Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// PullRequestTitle returns the current title of the pull request
func (c *Client) PullRequestTitle(ctx context.Context) (string, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, c.prNumber)
	if err != nil {
		return "", fmt.Errorf("failed to get PR #%d: %w", c.prNumber, err)
	}

	return pr.GetTitle(), nil
}

// CommitMessages returns the messages of all commits in the pull request,
// oldest first
func (c *Client) CommitMessages(ctx context.Context) ([]string, error) {
	var messages []string

	opts := &github.ListOptions{PerPage: perPage}
	for {
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, c.owner, c.repo, c.prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of PR #%d: %w", c.prNumber, err)
		}

		for _, commit := range commits {
			messages = append(messages, commit.GetCommit().GetMessage())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return messages, nil
}

// UpsertComment posts body as the pull request comment owned by this
// action, editing the previous one when it exists
func (c *Client) UpsertComment(ctx context.Context, body string) error {
	body = CommentMarker + "\n" + body

	existing, err := c.findComment(ctx)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.GetBody() == body {
			return nil
		}

		_, _, err = c.client.Issues.EditComment(ctx, c.owner, c.repo, existing.GetID(), &github.IssueComment{Body: &body})
		if err != nil {
			return fmt.Errorf("failed to edit comment %d on PR #%d: %w", existing.GetID(), c.prNumber, err)
		}
		return nil
	}

	_, _, err = c.client.Issues.CreateComment(ctx, c.owner, c.repo, c.prNumber, &github.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to create comment on PR #%d: %w", c.prNumber, err)
	}

	return nil
}

// findComment returns the comment carrying CommentMarker, or nil
func (c *Client) findComment(ctx context.Context) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, c.prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of PR #%d: %w", c.prNumber, err)
		}

		for _, comment := range comments {
			if strings.HasPrefix(comment.GetBody(), CommentMarker) {
				return comment, nil
			}
		}

		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}
