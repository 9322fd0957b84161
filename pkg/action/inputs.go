package action

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ksysoev/jira-action/pkg/config"
	"github.com/ksysoev/jira-action/pkg/core"
	"github.com/sethvargo/go-githubactions"
)

// Inputs holds the resolved action configuration
type Inputs struct {
	GitHubToken string
	Check       core.Config
	PostComment bool
}

// input reads an action input, falling back to an environment variable
func input(action *githubactions.Action, name, env string) string {
	if v := action.GetInput(name); v != "" {
		return v
	}
	return action.Getenv(env)
}

func boolInput(action *githubactions.Action, name, env string) (*bool, error) {
	raw := input(action, name, env)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("input %s must be a boolean, got %q", name, raw)
	}
	return &v, nil
}

// ReadInputs collects the action inputs, merged over the optional config
// file. Empty inputs fall back to JIRA_* environment variables.
func ReadInputs(action *githubactions.Action) (*Inputs, error) {
	token := input(action, "github_token", "JIRA_GITHUB_TOKEN")
	if token == "" {
		token = action.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("github_token input is required")
	}

	overrides := config.File{
		Keys:    core.ParseKeys(input(action, "keys", "JIRA_KEYS")),
		BaseURL: input(action, "base_url", "JIRA_BASE_URL"),
		Emoji:   input(action, "emoji", "JIRA_EMOJI"),
	}

	flags := []struct {
		name string
		env  string
		dst  **bool
	}{
		{"search_title", "JIRA_SEARCH_TITLE", &overrides.SearchTitle},
		{"search_commits", "JIRA_SEARCH_COMMITS", &overrides.SearchCommits},
		{"fail_on_warning", "JIRA_FAIL_ON_WARNING", &overrides.FailOnWarning},
		{"report_missing", "JIRA_REPORT_MISSING", &overrides.ReportMissing},
		{"post_comment", "JIRA_POST_COMMENT", &overrides.PostComment},
	}
	for _, f := range flags {
		v, err := boolInput(action, f.name, f.env)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	configPath := input(action, "config_file", "JIRA_CONFIG_FILE")
	required := configPath != ""
	if !required {
		configPath = config.DefaultPath
		if workspace := action.Getenv("GITHUB_WORKSPACE"); workspace != "" {
			configPath = filepath.Join(workspace, config.DefaultPath)
		}
	}

	file, err := config.Load(configPath, required)
	if err != nil {
		return nil, err
	}

	merged := file.Merge(overrides)

	check, err := merged.CheckConfig()
	if err != nil {
		return nil, err
	}

	return &Inputs{
		GitHubToken: token,
		Check:       check,
		PostComment: merged.CommentEnabled(),
	}, nil
}
