package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scalediv/internal/config"
)

const testAxesYAML = `axes:
  - name: percent
    min: 0
    max: 100
    max_major: 5
    max_minor: 3
  - name: fortnight
    engine: time
    min: 2024-01-01
    max: 2024-01-15
    max_major: 7
    max_minor: 0
    timezone: UTC
  - name: decades
    engine: log
    min: 1
    max: 1000
    max_major: 5
`

// writeAxesFile writes content to a file in a temp dir and returns its path.
func writeAxesFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateValidAxes(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", testAxesYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ All axes valid (3)")
}

func TestValidateValidAxesJSON(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", testAxesYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Axes)
}

func TestValidateCUEFile(t *testing.T) {
	path := writeAxesFile(t, "axes.cue", `axes: [{name: "percent", min: 0, max: 100}]`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓ All axes valid (1)")
}

func TestValidateNonExistentFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/axes.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E005]")
	assert.Contains(t, buf.String(), "axes file not found")
}

func TestValidateInvalidAxes(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", `axes:
  - name: " "
    min: 0
    max: 1
  - name: clock
    engine: time
    min: 0
    max: 1
    timezone: Mars/Olympus
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 2 error(s)")

	output := buf.String()
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, "E203: axes[0].name: name is required")
	assert.Contains(t, output, "E206: axes[1].timezone")
}

func TestValidateInvalidAxesJSON(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", "axes:\n  - name: a\n    min: 0\n    max: 1\n    colour: red\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.NotEmpty(t, resp.Data.Errors)
	require.NotNil(t, resp.Error)
	assert.Equal(t, config.ErrSchema, resp.Error.Code)
}

func TestValidateSyntaxErrorReportsLine(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", "axes:\n  - name: a\n    min: [\n")

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), config.ErrSyntax)
}

func TestValidateVerboseOutput(t *testing.T) {
	path := writeAxesFile(t, "axes.yaml", testAxesYAML)

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, errBuf.String(), "Axis percent: linear [0, 100]")
	assert.Contains(t, errBuf.String(), "Axis fortnight: time [2024-01-01, 2024-01-15]")
	assert.NotContains(t, buf.String(), "Axis percent")
}
