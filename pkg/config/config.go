// Package config loads the optional YAML file that provides defaults for
// the issue key check. Values set explicitly through action inputs or
// command line flags take precedence over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ksysoev/jira-action/pkg/core"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the action looks for a config file when none is given
const DefaultPath = ".github/jira.yml"

// File represents the YAML config file. Pointer fields distinguish an unset
// value from an explicit false.
type File struct {
	Keys          []string `yaml:"keys,omitempty"`
	BaseURL       string   `yaml:"base_url,omitempty"`
	Emoji         string   `yaml:"emoji,omitempty"`
	SearchTitle   *bool    `yaml:"search_title,omitempty"`
	SearchCommits *bool    `yaml:"search_commits,omitempty"`
	FailOnWarning *bool    `yaml:"fail_on_warning,omitempty"`
	ReportMissing *bool    `yaml:"report_missing,omitempty"`
	PostComment   *bool    `yaml:"post_comment,omitempty"`
}

// Load reads the config file at path. A missing file yields an empty File
// and no error unless required is set.
func Load(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		// An empty document leaves every field unset
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &f, nil
}

// Merge returns a copy of f with every field set in override replacing
// the file value
func (f File) Merge(override File) File {
	merged := f
	if len(override.Keys) > 0 {
		merged.Keys = override.Keys
	}
	if override.BaseURL != "" {
		merged.BaseURL = override.BaseURL
	}
	if override.Emoji != "" {
		merged.Emoji = override.Emoji
	}
	if override.SearchTitle != nil {
		merged.SearchTitle = override.SearchTitle
	}
	if override.SearchCommits != nil {
		merged.SearchCommits = override.SearchCommits
	}
	if override.FailOnWarning != nil {
		merged.FailOnWarning = override.FailOnWarning
	}
	if override.ReportMissing != nil {
		merged.ReportMissing = override.ReportMissing
	}
	if override.PostComment != nil {
		merged.PostComment = override.PostComment
	}
	return merged
}

// CheckConfig builds the validated check configuration, leaving unset
// fields at their defaults
func (f File) CheckConfig() (core.Config, error) {
	var opts []core.Option
	if f.Emoji != "" {
		opts = append(opts, core.WithEmoji(f.Emoji))
	}
	if f.SearchTitle != nil {
		opts = append(opts, core.WithSearchTitle(*f.SearchTitle))
	}
	if f.SearchCommits != nil {
		opts = append(opts, core.WithSearchCommits(*f.SearchCommits))
	}
	if f.FailOnWarning != nil {
		opts = append(opts, core.WithFailOnWarning(*f.FailOnWarning))
	}
	if f.ReportMissing != nil {
		opts = append(opts, core.WithReportMissing(*f.ReportMissing))
	}

	return core.NewConfig(f.Keys, f.BaseURL, opts...)
}

// CommentEnabled reports whether results should be posted as a PR comment
func (f File) CommentEnabled() bool {
	return f.PostComment == nil || *f.PostComment
}
