package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apinorm/config"
	"github.com/erraggy/apinorm/internal/testutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/validator"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("json", FormatJSON, FormatYAML))
	err := ValidateOutputFormat("xml", FormatJSON, FormatYAML)
	require.Error(t, err)
	assert.Equal(t, "invalid format 'xml'. Valid formats: json, yaml", err.Error())
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yml", FormatSpecPath("api.yml"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestIsJSON(t *testing.T) {
	assert.True(t, isJSON([]byte("\n  {\"a\":1}")))
	assert.True(t, isJSON([]byte("[]")))
	assert.False(t, isJSON([]byte("openapi: 3.0.0")))
}

func TestMarshalDocument(t *testing.T) {
	doc := node.NewObject().Set("openapi", node.String("3.0.0"))

	data, err := MarshalDocument(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"openapi\": \"3.0.0\"\n}\n", string(data))

	data, err = MarshalDocument(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "openapi:")

	_, err = MarshalDocument(doc, "xml")
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	setStdin(t, "from stdin")
	data, err := readInput(StdinFilePath)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	_, err = readInput(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestCommonFlags_LoadConfig(t *testing.T) {
	clearConfigEnv(t)
	// godotenv never overrides a variable that is set, even to ""
	require.NoError(t, os.Unsetenv(config.EnvCollectionName))
	envFile := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APINORM_COLLECTION_NAME=From File\n"), 0o600))

	c := commonFlags{EnvFile: envFile}
	cfg, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "From File", cfg.CollectionName)

	c.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	_, err = c.loadConfig()
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.postman_environment.json", testutil.NewEnvironment())
	writeDoc(t, dir, "a.postman_collection.json", testutil.NewCollection())
	loose := writeDoc(t, t.TempDir(), "loose.json", testutil.NewCollection())

	files, err := collectFiles([]string{dir, loose})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, validator.KindCollection, files[0].Kind)
	assert.Equal(t, validator.KindEnvironment, files[1].Kind)
	assert.Equal(t, loose, files[2].Path)
	assert.Equal(t, validator.KindAuto, files[2].Kind)

	_, err = collectFiles([]string{filepath.Join(dir, "nope")})
	assert.ErrorIs(t, err, oaserrors.ErrAcquisition)
}

func TestBatch(t *testing.T) {
	out, _ := captureOutput(t)

	b := &batch{total: 3}
	assert.NoError(t, b.err())
	assert.Equal(t, "3 documents", b.summary())

	b.fail(stdout, "a.json", errors.New("boom"))
	b.fail(stdout, "b.json", &oaserrors.ValidationError{Violations: []validator.Violation{
		{Path: "info", Field: "name", Message: "required field is missing"},
	}})
	assert.ErrorIs(t, b.err(), ErrDocumentsFailed)
	assert.Equal(t, "3 documents, 2 failed", b.summary())
	assert.Contains(t, out.String(), "✗ a.json: boom")
	assert.Contains(t, out.String(), "✗ b.json: 1 violation")
	assert.Contains(t, out.String(), "✗ info.name: required field is missing")
}
