package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidManifest(t *testing.T) {
	path := writeManifest(t, "source.cue", sourceManifest)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Module "Source" is valid`)
}

func TestValidateValidManifestJSON(t *testing.T) {
	path := writeManifest(t, "source.cue", sourceManifest)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateMissingManifest(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/module.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateUnknownMarker(t *testing.T) {
	path := writeManifest(t, "bad.cue", `
module: Bad: {
	types: {
		Widget: {
			markers: ["export"]
		}
	}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, `Module "Bad" is invalid`)
	assert.Contains(t, output, "E105")
	assert.Contains(t, output, "export")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	path := writeManifest(t, "bad.cue", `
module: Bad: {
	types: {
		Widget: {
			markers: ["export"]
			fields: {
				dup: "int32"
			}
			methods: {
				dup: { returns: "void", markers: ["frozen"] }
			}
		}
	}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)

	// Both unknown markers are reported, not just the first.
	output := buf.String()
	assert.Contains(t, output, "export")
	assert.Contains(t, output, "frozen")
}

func TestValidateInvalidManifestJSON(t *testing.T) {
	path := writeManifest(t, "bad.cue", `
module: Bad: {
	types: {
		Widget: { markers: ["export"] }
	}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	// The payload carries valid=false plus the collected errors.
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
	assert.NotEmpty(t, data["errors"])
}

func TestValidateBrokenCUE(t *testing.T) {
	path := writeManifest(t, "broken.cue", `module: 42`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E003]")
}

func TestValidateVerboseOutput(t *testing.T) {
	path := writeManifest(t, "source.cue", sourceManifest)

	stdoutBuf := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf) // Verbose output goes to stderr
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, stderrBuf.String(), "Compiled module")
	assert.Contains(t, stderrBuf.String(), "Source")
}
