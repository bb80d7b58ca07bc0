package commands

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apinorm/config"
	"github.com/erraggy/apinorm/internal/testutil"
	"github.com/erraggy/apinorm/oaserrors"
)

// newTransformationServer serves the fixture OpenAPI document the way the
// Postman API does: JSON-encoded inside the "output" string field.
func newTransformationServer(t *testing.T) *httptest.Server {
	t.Helper()
	inner, err := testutil.NewOpenAPIDocument().MarshalJSON()
	require.NoError(t, err)
	envelope, err := json.Marshal(map[string]string{"output": string(inner)})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"name":"AuthenticationError","message":"Invalid API Key"}}`)
			return
		}
		if r.URL.Path != "/collections/col-1/transformations" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(envelope)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupOpenAPIFlags(t *testing.T) {
	fs, flags := SetupOpenAPIFlags()
	assert.Equal(t, FormatYAML, flags.Format)
	assert.Equal(t, "", flags.Output)

	require.NoError(t, fs.Parse([]string{"--collection", "col-9", "--format", "json", "-o", "out.json"}))
	assert.Equal(t, "col-9", flags.CollectionID)
	assert.Equal(t, FormatJSON, flags.Format)
	assert.Equal(t, "out.json", flags.Output)
}

func TestHandleOpenAPI(t *testing.T) {
	clearConfigEnv(t)
	srv := newTransformationServer(t)
	t.Setenv(config.EnvPostmanAPIBase, srv.URL)
	t.Setenv(config.EnvPostmanAPIKey, "test-key")
	t.Setenv(config.EnvPostmanCollectionID, "col-1")
	t.Setenv(config.EnvPreferredServer, "https://api.example.com")
	output := filepath.Join(t.TempDir(), "spec", "openapi.yml")
	t.Setenv(config.EnvOpenAPIOutput, output)
	_, errOut := captureOutput(t)

	require.NoError(t, HandleOpenAPI(nil))

	doc := readDoc(t, output)
	assert.Equal(t, 1, doc.Lookup("servers").Len())
	assert.True(t, doc.Lookup("paths", "/users", "post").Has("operationId"))
	assert.False(t, doc.Lookup("info").Has("_postman_id"))
	assert.Contains(t, errOut.String(), "Fetching OpenAPI transformation for collection col-1")
	assert.Contains(t, errOut.String(), "wrote "+output)
}

func TestHandleOpenAPI_FlagsOverrideConfig(t *testing.T) {
	clearConfigEnv(t)
	srv := newTransformationServer(t)
	t.Setenv(config.EnvPostmanAPIBase, srv.URL)
	t.Setenv(config.EnvPostmanAPIKey, "test-key")
	t.Setenv(config.EnvPostmanCollectionID, "col-other")
	captureOutput(t)
	output := filepath.Join(t.TempDir(), "openapi.json")

	require.NoError(t, HandleOpenAPI([]string{"-q", "--collection", "col-1", "--format", "json", "-o", output}))

	doc := readDoc(t, output)
	assert.Equal(t, 2, doc.Lookup("servers").Len())
	assert.True(t, doc.Lookup("paths", "/users/{id}", "get").Has("operationId"))
}

func TestHandleOpenAPI_Errors(t *testing.T) {
	t.Run("missing configuration", func(t *testing.T) {
		clearConfigEnv(t)
		captureOutput(t)
		err := HandleOpenAPI(nil)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.ErrorContains(t, err, config.EnvPostmanAPIKey)
	})

	t.Run("rejected key", func(t *testing.T) {
		clearConfigEnv(t)
		srv := newTransformationServer(t)
		t.Setenv(config.EnvPostmanAPIBase, srv.URL)
		t.Setenv(config.EnvPostmanAPIKey, "wrong")
		t.Setenv(config.EnvPostmanCollectionID, "col-1")
		captureOutput(t)

		err := HandleOpenAPI([]string{"-o", filepath.Join(t.TempDir(), "openapi.yml")})
		assert.ErrorIs(t, err, oaserrors.ErrAcquisition)
		assert.ErrorContains(t, err, "Invalid API Key")
	})

	t.Run("positional argument", func(t *testing.T) {
		captureOutput(t)
		assert.Error(t, HandleOpenAPI([]string{"extra"}))
	})

	t.Run("bad format", func(t *testing.T) {
		assert.ErrorContains(t, HandleOpenAPI([]string{"--format", "xml"}), "invalid format")
	})
}
