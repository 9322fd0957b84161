package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// report is a single call made to recordingReporter
type report struct {
	Kind string
	Text string
}

type recordingReporter struct {
	reports []report
	err     error
}

func (r *recordingReporter) Message(_ context.Context, text string) error {
	r.reports = append(r.reports, report{Kind: "message", Text: text})
	return r.err
}

func (r *recordingReporter) Warning(_ context.Context, text string) error {
	r.reports = append(r.reports, report{Kind: "warning", Text: text})
	return r.err
}

func (r *recordingReporter) Failure(_ context.Context, text string) error {
	r.reports = append(r.reports, report{Kind: "failure", Text: text})
	return r.err
}

func TestIssueURL(t *testing.T) {
	assert.Equal(t, "https://x.atlassian.net/browse/KEY-1", IssueURL("https://x.atlassian.net/browse", "KEY-1"))
	assert.Equal(t, "https://x.atlassian.net/browse/KEY-1", IssueURL("https://x.atlassian.net/browse/", "KEY-1"))
}

func TestFormatLinks(t *testing.T) {
	cfg, err := NewConfig([]string{"KEY"}, "https://x.atlassian.net/browse")
	require.NoError(t, err)

	assert.Equal(t,
		":link: <a href='https://x.atlassian.net/browse/KEY-1'>KEY-1</a>",
		FormatLinks(cfg, []string{"KEY-1"}))

	cfg.Emoji = ":ticket:"
	assert.Equal(t,
		":ticket: <a href='https://x.atlassian.net/browse/KEY-1'>KEY-1</a>, <a href='https://x.atlassian.net/browse/KEY-2'>KEY-2</a>",
		FormatLinks(cfg, []string{"KEY-1", "KEY-2"}))
}

func TestReport(t *testing.T) {
	found := Result{TitleKeys: []string{"KEY-1"}, Keys: []string{"KEY-1"}, HasIssues: true}
	empty := Result{}

	tests := []struct {
		name          string
		result        Result
		failOnWarning bool
		reportMissing bool
		want          []report
	}{
		{
			name:          "Keys found",
			result:        found,
			reportMissing: true,
			want: []report{
				{Kind: "message", Text: ":link: <a href='https://x.atlassian.net/browse/KEY-1'>KEY-1</a>"},
			},
		},
		{
			name:          "Keys found ignores fail on warning",
			result:        found,
			failOnWarning: true,
			want: []report{
				{Kind: "message", Text: ":link: <a href='https://x.atlassian.net/browse/KEY-1'>KEY-1</a>"},
			},
		},
		{
			name:          "Missing keys warns",
			result:        empty,
			reportMissing: true,
			want:          []report{{Kind: "warning", Text: MissingIssuesMessage}},
		},
		{
			name:          "Missing keys fails",
			result:        empty,
			reportMissing: true,
			failOnWarning: true,
			want:          []report{{Kind: "failure", Text: MissingIssuesMessage}},
		},
		{
			name:          "Missing keys not reported",
			result:        empty,
			failOnWarning: true,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig([]string{"KEY"}, "https://x.atlassian.net/browse/",
				WithFailOnWarning(tt.failOnWarning),
				WithReportMissing(tt.reportMissing),
			)
			require.NoError(t, err)

			rep := &recordingReporter{}
			require.NoError(t, Report(context.Background(), cfg, tt.result, rep))
			assert.Equal(t, tt.want, rep.reports)
		})
	}
}

func TestReportPropagatesReporterError(t *testing.T) {
	cfg, err := NewConfig([]string{"KEY"}, "https://x.atlassian.net/browse")
	require.NoError(t, err)

	rep := &recordingReporter{err: errors.New("boom")}
	err = Report(context.Background(), cfg, Result{}, rep)
	assert.ErrorContains(t, err, "failed to post warning")
	assert.ErrorContains(t, err, "boom")
}

func TestMissingIssuesMessage(t *testing.T) {
	assert.Equal(t,
		"This PR does not contain any JIRA issue keys in the PR title or commit messages (e.g. KEY-123)",
		MissingIssuesMessage)
}
