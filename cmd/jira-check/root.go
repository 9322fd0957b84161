package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ksysoev/jira-action/pkg/config"
	"github.com/ksysoev/jira-action/pkg/core"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitSuccess    = 0
	exitFailure    = 1
	exitUsageError = 2
)

type options struct {
	keys          []string
	baseURL       string
	emoji         string
	title         string
	commits       []string
	commitsFile   string
	configFile    string
	searchTitle   bool
	searchCommits bool
	failOnWarning bool
	reportMissing bool
	verbose       bool
}

// errCheckFailed signals that the check reported a failure
var errCheckFailed = errors.New("check failed")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errCheckFailed) {
			return exitFailure
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	return exitSuccess
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "jira-check",
		Short: "Check a pull request title and commits for JIRA issue keys",
		Long: "jira-check scans a pull request title and commit messages for bracketed issue keys " +
			"such as [KEY-123] and prints the links, warning or failure the GitHub Action would report.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			return runCheck(cmd, opts, stdin, stdout, logger)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringSliceVarP(&opts.keys, "key", "k", nil, "JIRA project key (repeatable or comma separated)")
	f.StringVarP(&opts.baseURL, "url", "u", "", "JIRA browse URL, e.g. https://example.atlassian.net/browse")
	f.StringVar(&opts.emoji, "emoji", core.DefaultEmoji, "emoji prefixed to the links message")
	f.StringVarP(&opts.title, "title", "t", "", "pull request title")
	f.StringArrayVarP(&opts.commits, "commit", "m", nil, "commit message (repeatable)")
	f.StringVar(&opts.commitsFile, "commits-file", "", "file of NUL separated commit messages as printed by git log -z --format=%B, or - for stdin")
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	f.BoolVar(&opts.searchTitle, "search-title", true, "search the pull request title")
	f.BoolVar(&opts.searchCommits, "search-commits", false, "search commit messages")
	f.BoolVar(&opts.failOnWarning, "fail-on-warning", false, "fail instead of warning when no keys are found")
	f.BoolVar(&opts.reportMissing, "report-missing", true, "report when no keys are found")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	file := &config.File{}
	if opts.configFile != "" {
		var err error
		file, err = config.Load(opts.configFile, true)
		if err != nil {
			return err
		}
		logger.Debug("Loaded config file", "path", opts.configFile)
	}

	cfg, err := file.Merge(flagOverrides(cmd, opts)).CheckConfig()
	if err != nil {
		return err
	}

	commits := opts.commits
	if opts.commitsFile != "" {
		fromFile, err := readCommits(opts.commitsFile, stdin)
		if err != nil {
			return err
		}
		commits = append(commits, fromFile...)
	}

	logger.Debug("Running check",
		"keys", cfg.Keys,
		"search_title", cfg.SearchTitle,
		"search_commits", cfg.SearchCommits,
		"commits", len(commits),
	)

	reporter := &printReporter{out: stdout}
	result, err := core.Check(cmd.Context(), cfg, staticSource{title: opts.title, commits: commits}, reporter)
	if err != nil {
		return err
	}

	logger.Info("Check complete", "keys", result.Keys)

	if reporter.failed {
		return errCheckFailed
	}
	return nil
}

// flagOverrides turns the flags set on the command line into config
// overrides. Flags left at their defaults do not override the file.
func flagOverrides(cmd *cobra.Command, opts *options) config.File {
	f := cmd.Flags()

	var overrides config.File
	overrides.Keys = core.ParseKeys(strings.Join(opts.keys, ","))
	overrides.BaseURL = opts.baseURL
	if f.Changed("emoji") {
		overrides.Emoji = opts.emoji
	}

	bools := []struct {
		name string
		val  bool
		dst  **bool
	}{
		{"search-title", opts.searchTitle, &overrides.SearchTitle},
		{"search-commits", opts.searchCommits, &overrides.SearchCommits},
		{"fail-on-warning", opts.failOnWarning, &overrides.FailOnWarning},
		{"report-missing", opts.reportMissing, &overrides.ReportMissing},
	}
	for _, b := range bools {
		if f.Changed(b.name) {
			v := b.val
			*b.dst = &v
		}
	}

	return overrides
}

func readCommits(path string, stdin io.Reader) ([]string, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read commit messages: %w", err)
	}

	var commits []string
	for _, msg := range strings.Split(string(data), "\x00") {
		if msg = strings.TrimSpace(msg); msg != "" {
			commits = append(commits, msg)
		}
	}

	return commits, nil
}

// staticSource serves a title and commit messages known up front
type staticSource struct {
	title   string
	commits []string
}

func (s staticSource) PullRequestTitle(_ context.Context) (string, error) {
	return s.title, nil
}

func (s staticSource) CommitMessages(_ context.Context) ([]string, error) {
	return s.commits, nil
}

// printReporter writes reports to out, one line each
type printReporter struct {
	out    io.Writer
	failed bool
}

func (p *printReporter) Message(_ context.Context, text string) error {
	_, err := fmt.Fprintf(p.out, "message: %s\n", text)
	return err
}

func (p *printReporter) Warning(_ context.Context, text string) error {
	_, err := fmt.Fprintf(p.out, "warning: %s\n", text)
	return err
}

func (p *printReporter) Failure(_ context.Context, text string) error {
	p.failed = true
	_, err := fmt.Fprintf(p.out, "failure: %s\n", text)
	return err
}
