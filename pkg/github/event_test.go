package github

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPRNumberFromRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr bool
	}{
		{name: "Merge ref", ref: "refs/pull/42/merge", want: 42},
		{name: "Ref name", ref: "17/merge", want: 17},
		{name: "Bare number", ref: "5", want: 5},
		{name: "Branch ref", ref: "refs/heads/main", wantErr: true},
		{name: "Empty", ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PRNumberFromRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(msg string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(msg, args...))
}

func TestResolvePRNumber(t *testing.T) {
	tempDir := t.TempDir()

	eventPath := filepath.Join(tempDir, "event.json")
	err := os.WriteFile(eventPath, []byte(`{"action":"opened","number":99,"pull_request":{"number":99,"title":"[KEY-1] Add"}}`), 0644)
	require.NoError(t, err)

	pushPath := filepath.Join(tempDir, "push.json")
	err = os.WriteFile(pushPath, []byte(`{"ref":"refs/heads/main"}`), 0644)
	require.NoError(t, err)

	tests := []struct {
		name      string
		eventPath string
		ref       string
		refName   string
		want      int
		wantErr   bool
	}{
		{name: "From event payload", eventPath: eventPath, ref: "refs/pull/1/merge", want: 99},
		{name: "Event without number falls back to ref", eventPath: pushPath, ref: "refs/pull/7/merge", want: 7},
		{name: "Missing payload falls back to ref", eventPath: filepath.Join(tempDir, "nope.json"), ref: "refs/pull/8/merge", want: 8},
		{name: "From ref name", ref: "refs/heads/x", refName: "12/merge", want: 12},
		{name: "Nothing usable", ref: "refs/heads/main", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePRNumber(&recordingLogger{}, tt.eventPath, tt.ref, tt.refName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePRNumberReportsPayloadError(t *testing.T) {
	tempDir := t.TempDir()

	badPath := filepath.Join(tempDir, "event.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{not json`), 0644))

	log := &recordingLogger{}
	got, err := ResolvePRNumber(log, badPath, "refs/pull/3/merge", "")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "failed to parse event payload")

	log = &recordingLogger{}
	_, err = ResolvePRNumber(log, badPath, "refs/heads/main", "")
	assert.ErrorContains(t, err, "could not extract PR number from refs")
	assert.ErrorContains(t, err, "failed to parse event payload")

	log = &recordingLogger{}
	_, err = ResolvePRNumber(log, filepath.Join(tempDir, "missing.json"), "refs/heads/main", "")
	assert.ErrorContains(t, err, "failed to read event payload")
	assert.Len(t, log.lines, 1)
}
