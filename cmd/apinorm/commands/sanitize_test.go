package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apinorm/internal/testutil"
	"github.com/erraggy/apinorm/node"
)

func TestSetupSanitizeFlags(t *testing.T) {
	fs, flags := SetupSanitizeFlags()
	assert.False(t, flags.DryRun)
	assert.False(t, flags.KeepSchema)

	require.NoError(t, fs.Parse([]string{"--dry-run", "--keep-schema", "--keys", "id,uid", "--collection-name", "Public", "postman"}))
	assert.True(t, flags.DryRun)
	assert.True(t, flags.KeepSchema)
	assert.Equal(t, "id,uid", flags.Keys)
	assert.Equal(t, "Public", flags.CollectionName)
	assert.Equal(t, []string{"postman"}, fs.Args())
}

func TestHandleSanitize_NoArgs(t *testing.T) {
	captureOutput(t)
	assert.Error(t, HandleSanitize(nil))
}

func TestHandleSanitize_RewritesOnlyWhenChanged(t *testing.T) {
	clearConfigEnv(t)
	out, _ := captureOutput(t)
	dir := t.TempDir()
	col := writeDoc(t, dir, "demo.postman_collection.json", testutil.NewCollection())
	env := writeDoc(t, dir, "staging.postman_environment.json", testutil.NewEnvironment())

	require.NoError(t, HandleSanitize([]string{"--collection-name", "Public API", dir}))

	doc := readDoc(t, col)
	assert.False(t, doc.Lookup("info").Has("_postman_id"))
	assert.False(t, doc.Lookup("info").Has("_exporter_id"))
	assert.False(t, doc.Lookup("item").Index(0).Has("id"))
	assert.False(t, doc.Lookup("item").Index(1).Lookup("response").Index(0).Has("uid"))
	name, _ := doc.Lookup("info", "name").StringValue()
	assert.Equal(t, "Public API", name)
	schema, _ := doc.Lookup("info", "schema").StringValue()
	assert.Equal(t, testutil.CollectionSchema, schema)

	envDoc := readDoc(t, env)
	assert.False(t, envDoc.Has("id"))
	assert.False(t, envDoc.Has("owner"))
	assert.True(t, envDoc.Has("values"))

	assert.Contains(t, out.String(), "✓ "+col+": ")
	assert.Contains(t, out.String(), "2 documents")

	info, err := os.Stat(col)
	require.NoError(t, err)
	firstMod := info.ModTime()
	firstBytes, err := os.ReadFile(col)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, HandleSanitize([]string{"--collection-name", "Public API", dir}))
	assert.Contains(t, out.String(), "✓ "+col+": unchanged")
	assert.Contains(t, out.String(), "✓ "+env+": unchanged")

	again, err := os.ReadFile(col)
	require.NoError(t, err)
	assert.Equal(t, firstBytes, again)
	info, err = os.Stat(col)
	require.NoError(t, err)
	assert.Equal(t, firstMod, info.ModTime())
}

func TestHandleSanitize_DryRun(t *testing.T) {
	clearConfigEnv(t)
	out, _ := captureOutput(t)
	dir := t.TempDir()
	col := writeDoc(t, dir, "demo.postman_collection.json", testutil.NewCollection())
	before, err := os.ReadFile(col)
	require.NoError(t, err)

	require.NoError(t, HandleSanitize([]string{"--dry-run", dir}))

	after, err := os.ReadFile(col)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, out.String(), "(not written)")
	assert.Contains(t, out.String(), "[strip] info._postman_id: removed _postman_id")
}

func TestHandleSanitize_ContinuesPastFailures(t *testing.T) {
	clearConfigEnv(t)
	out, errOut := captureOutput(t)
	dir := t.TempDir()
	bad := writeDoc(t, dir, "bad.postman_collection.json", node.MustFromValue(map[string]any{
		"item": []any{map[string]any{"name": "x", "request": map[string]any{"url": "u"}}},
	}))
	badBefore, err := os.ReadFile(bad)
	require.NoError(t, err)
	good := writeDoc(t, dir, "good.postman_collection.json", testutil.NewCollection())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.postman_environment.json"), []byte("{"), 0o600))

	err = HandleSanitize([]string{dir})
	assert.ErrorIs(t, err, ErrDocumentsFailed)

	assert.Contains(t, errOut.String(), "✗ "+bad+": ")
	assert.Contains(t, errOut.String(), "info")
	assert.Contains(t, errOut.String(), "invalid JSON")
	assert.Contains(t, out.String(), "3 documents, 2 failed")

	badAfter, err := os.ReadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, badBefore, badAfter, "invalid documents are never rewritten")
	assert.False(t, readDoc(t, good).Lookup("info").Has("_postman_id"))
}

func TestHandleSanitize_Quiet(t *testing.T) {
	clearConfigEnv(t)
	out, _ := captureOutput(t)
	dir := t.TempDir()
	writeDoc(t, dir, "demo.postman_collection.json", testutil.NewCollection())

	require.NoError(t, HandleSanitize([]string{"-q", dir}))
	assert.Empty(t, out.String())
}
