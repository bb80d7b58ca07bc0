package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/apinorm/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the package reads so the host
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvPostmanAPIKey, EnvPostmanCollectionID, EnvPostmanWorkspaceID, EnvPostmanAPIBase,
		EnvPreferredServer, EnvServerDescription, EnvOpenAPIOutput,
		EnvCollectionName, EnvEnvironmentName, EnvStrict,
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultPostmanAPIBase, cfg.Postman.BaseURL)
	assert.Equal(t, DefaultOpenAPIOutput, cfg.OpenAPIOutput)
	assert.False(t, cfg.StrictMode)
	assert.Empty(t, cfg.PreferredServer)
}

func TestFromEnv_Values(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPostmanAPIKey, "  key  ")
	t.Setenv(EnvPostmanCollectionID, "col")
	t.Setenv(EnvPostmanAPIBase, "http://localhost:9000/")
	t.Setenv(EnvPreferredServer, "https://api.example.com")
	t.Setenv(EnvOpenAPIOutput, "out/api.yml")
	t.Setenv(EnvStrict, "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.Postman.APIKey)
	assert.Equal(t, "http://localhost:9000", cfg.Postman.BaseURL)
	assert.Equal(t, "out/api.yml", cfg.OpenAPIOutput)
	assert.True(t, cfg.StrictMode)
	assert.NoError(t, cfg.RequireFetch())
	assert.Len(t, cfg.PipelineOptions(), 4)
}

func TestFromEnv_BadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStrict, "sometimes")
	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	assert.Contains(t, err.Error(), EnvStrict)
}

func TestRequire(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireFetch()
	require.Error(t, err)
	var cerr *oaserrors.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "POSTMAN_API_KEY, POSTMAN_COLLECTION_ID", cerr.Option)

	cfg.Postman.APIKey = "k"
	err = cfg.RequirePublish()
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "POSTMAN_WORKSPACE_ID", cerr.Option)

	cfg.Postman.WorkspaceID = "w"
	assert.NoError(t, cfg.RequirePublish())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to
	// the empty string, so unset the one the file provides.
	require.NoError(t, os.Unsetenv(EnvPostmanWorkspaceID))
	t.Cleanup(func() { _ = os.Unsetenv(EnvPostmanWorkspaceID) })
	t.Setenv(EnvPostmanAPIKey, "from-env")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POSTMAN_API_KEY=from-file\nPOSTMAN_WORKSPACE_ID=ws-1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Postman.APIKey, "process environment wins")
	assert.Equal(t, "ws-1", cfg.Postman.WorkspaceID)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}
