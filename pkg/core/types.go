package core

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults for optional configuration fields
const (
	DefaultEmoji = ":link:"

	// MissingIssuesMessage is reported when no issue keys are found
	MissingIssuesMessage = "This PR does not contain any JIRA issue keys in the PR title or commit messages (e.g. KEY-123)"
)

var (
	// ErrKeyMissing is matched by a ConfigurationError for missing project keys
	ErrKeyMissing = errors.New("'key' missing - must supply JIRA issue key")
	// ErrURLMissing is matched by a ConfigurationError for a missing base URL
	ErrURLMissing = errors.New("'url' missing - must supply JIRA installation URL")
)

// ConfigurationError reports an unusable check configuration.
// It is raised before any pull request data is read.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Config represents the check configuration
type Config struct {
	Keys          []string
	BaseURL       string
	Emoji         string
	SearchTitle   bool
	SearchCommits bool
	FailOnWarning bool
	ReportMissing bool
}

// Option customizes a Config built by NewConfig
type Option func(*Config)

// WithEmoji sets the emoji prefixed to the links message
func WithEmoji(emoji string) Option {
	return func(c *Config) {
		c.Emoji = emoji
	}
}

// WithSearchTitle toggles scanning of the pull request title
func WithSearchTitle(enabled bool) Option {
	return func(c *Config) {
		c.SearchTitle = enabled
	}
}

// WithSearchCommits toggles scanning of commit messages
func WithSearchCommits(enabled bool) Option {
	return func(c *Config) {
		c.SearchCommits = enabled
	}
}

// WithFailOnWarning turns the missing-issues warning into a failure
func WithFailOnWarning(enabled bool) Option {
	return func(c *Config) {
		c.FailOnWarning = enabled
	}
}

// WithReportMissing toggles reporting when no issue keys are found
func WithReportMissing(enabled bool) Option {
	return func(c *Config) {
		c.ReportMissing = enabled
	}
}

// NewConfig builds a validated configuration. Unset options take their
// defaults: ":link:" emoji, title search on, commit search off,
// fail on warning off and report missing on.
func NewConfig(keys []string, baseURL string, opts ...Option) (Config, error) {
	cfg := Config{
		Keys:          normalizeKeys(keys),
		BaseURL:       strings.TrimSpace(baseURL),
		Emoji:         DefaultEmoji,
		SearchTitle:   true,
		ReportMissing: true,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that project keys and a base URL are present
func (c Config) Validate() error {
	if len(normalizeKeys(c.Keys)) == 0 {
		return &ConfigurationError{Field: "key", Err: ErrKeyMissing}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return &ConfigurationError{Field: "url", Err: ErrURLMissing}
	}
	return nil
}

// ParseKeys splits a comma or newline separated list of project keys
func ParseKeys(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	return normalizeKeys(fields)
}

// normalizeKeys trims keys and drops blanks, keeping the supplied order.
// It always returns a fresh slice so a Config never aliases caller memory.
func normalizeKeys(keys []string) []string {
	var out []string
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}

// Result holds the issue keys found in a pull request
type Result struct {
	TitleKeys  []string
	CommitKeys []string
	// Keys lists title keys followed by commit keys
	Keys      []string
	HasIssues bool
}
