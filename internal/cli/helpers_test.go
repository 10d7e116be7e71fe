package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: click_button
description: One click and one key on a button
session: cli-session
document: |
  <div id="app"><button id="go">Go</button></div>
target: "#go"
steps:
  - do: click
  - do: keydown
    keyboard:
      key: a
assertions:
  - type: trace_count
    kind: click
    count: 1
    target: button#go
`

const failingScenario = `name: wrong_count
description: Expects two clicks but makes one
session: cli-session-2
document: |
  <button id="go">Go</button>
target: "#go"
steps:
  - do: click
assertions:
  - type: trace_count
    kind: click
    count: 2
`

const sessionlessScenario = `name: no_session
description: Leaves the session to the runner
document: |
  <input id="name">
target: "#name"
steps:
  - do: write
    text: ok
`

// Valid YAML that the CUE schema rejects: steps is required.
const schemaInvalidScenario = `name: no_steps
description: Has nothing to do
document: <p></p>
`

// Passes the CUE schema but names a keyboard field that does not exist.
const structurallyInvalidScenario = `name: typo
description: Misspelled modifier
document: <input id="x">
steps:
  - do: keydown
    target: "#x"
    keyboard:
      shiftKy: true
`

// writeScenario writes body to dir/name.yaml and returns the path.
func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// execute runs cmd with args, returning stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
