package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/apinorm/config"
	"github.com/erraggy/apinorm/node"
)

// captureOutput redirects the command streams to buffers for one test.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = prevOut, prevErr
	})
	return out, errOut
}

// setStdin feeds data to commands reading "-".
func setStdin(t *testing.T, data string) {
	t.Helper()
	prev := stdin
	stdin = strings.NewReader(data)
	t.Cleanup(func() { stdin = prev })
}

// clearConfigEnv blanks every variable config.Load reads.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvPostmanAPIKey, config.EnvPostmanCollectionID, config.EnvPostmanWorkspaceID,
		config.EnvPostmanAPIBase, config.EnvPreferredServer, config.EnvServerDescription,
		config.EnvOpenAPIOutput, config.EnvCollectionName, config.EnvEnvironmentName, config.EnvStrict,
	} {
		t.Setenv(key, "")
	}
}

// writeDoc writes doc as indented JSON to dir/name.
func writeDoc(t *testing.T, dir, name string, doc *node.Node) string {
	t.Helper()
	data, err := node.MarshalJSONIndent(doc, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func readDoc(t *testing.T, path string) *node.Node {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := node.Decode(data)
	require.NoError(t, err)
	return doc
}
