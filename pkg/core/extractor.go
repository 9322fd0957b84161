package core

import (
	"regexp"
	"strings"
)

// BuildPattern builds a regular expression matching bracketed issue keys
// such as [KEY-123] for any of the given project keys. The first submatch
// holds the key without brackets. Keys are tried in the order supplied.
func BuildPattern(keys ...string) (*regexp.Regexp, error) {
	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return nil, &ConfigurationError{Field: "key", Err: ErrKeyMissing}
	}

	alternatives := make([]string, 0, len(keys))
	for _, key := range keys {
		alternatives = append(alternatives, "(?:"+regexp.QuoteMeta(key)+")")
	}

	return regexp.Compile(`\[((?:` + strings.Join(alternatives, "|") + `)-[0-9]+)\]`)
}

// ExtractKeys returns the unique issue keys matched in texts, in order of
// first appearance
func ExtractKeys(re *regexp.Regexp, texts ...string) []string {
	seen := make(map[string]bool)
	var keys []string

	for _, text := range texts {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			key := match[1]
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	return keys
}

// Extract scans the title and commit messages enabled by cfg. Keys are
// deduplicated per source, so a key found in both the title and a commit
// is listed twice.
func Extract(cfg Config, title string, commits []string) (Result, error) {
	re, err := BuildPattern(cfg.Keys...)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if cfg.SearchTitle {
		result.TitleKeys = ExtractKeys(re, title)
	}
	if cfg.SearchCommits {
		result.CommitKeys = ExtractKeys(re, commits...)
	}

	result.Keys = make([]string, 0, len(result.TitleKeys)+len(result.CommitKeys))
	result.Keys = append(result.Keys, result.TitleKeys...)
	result.Keys = append(result.Keys, result.CommitKeys...)
	result.HasIssues = len(result.Keys) > 0

	return result, nil
}
