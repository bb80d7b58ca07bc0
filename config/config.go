// Package config loads process configuration for the apinorm command from
// the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/pipeline"
)

// Defaults used when the corresponding variable is unset.
const (
	DefaultPostmanAPIBase = "https://api.getpostman.com"
	DefaultOpenAPIOutput  = "spec/openapi.yml"
)

// Environment variable names.
const (
	EnvPostmanAPIKey       = "POSTMAN_API_KEY"
	EnvPostmanCollectionID = "POSTMAN_COLLECTION_ID"
	EnvPostmanWorkspaceID  = "POSTMAN_WORKSPACE_ID"
	EnvPostmanAPIBase      = "POSTMAN_API_BASE"
	EnvPreferredServer     = "APINORM_PREFERRED_SERVER"
	EnvServerDescription   = "APINORM_SERVER_DESCRIPTION"
	EnvOpenAPIOutput       = "APINORM_OPENAPI_OUTPUT"
	EnvCollectionName      = "APINORM_COLLECTION_NAME"
	EnvEnvironmentName     = "APINORM_ENVIRONMENT_NAME"
	EnvStrict              = "APINORM_STRICT"
)

// Config holds the settings shared by the apinorm subcommands.
type Config struct {
	Postman PostmanConfig

	// PreferredServer pins the servers array of generated OpenAPI documents
	PreferredServer string
	// ServerDescription describes the pinned server
	ServerDescription string
	// OpenAPIOutput is where the openapi command writes YAML
	OpenAPIOutput string
	// CollectionName overwrites info.name of sanitized collections
	CollectionName string
	// EnvironmentName overwrites name of sanitized environments
	EnvironmentName string
	// StrictMode enables the validator's strict checks
	StrictMode bool
}

// PostmanConfig holds Postman API credentials and identifiers.
type PostmanConfig struct {
	APIKey       string
	CollectionID string
	WorkspaceID  string
	BaseURL      string
}

// Load reads a .env file (the given files, or ./.env when none are given)
// into the process environment without overriding variables already set,
// then builds a Config from the environment. A missing ./.env is not an
// error; a missing explicitly named file is.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, &oaserrors.ConfigError{Option: "env file", Value: strings.Join(files, ","), Cause: err}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	strict, err := envBool(EnvStrict)
	if err != nil {
		return nil, err
	}
	return &Config{
		Postman: PostmanConfig{
			APIKey:       env(EnvPostmanAPIKey),
			CollectionID: env(EnvPostmanCollectionID),
			WorkspaceID:  env(EnvPostmanWorkspaceID),
			BaseURL:      strings.TrimRight(firstNonEmpty(env(EnvPostmanAPIBase), DefaultPostmanAPIBase), "/"),
		},
		PreferredServer:   env(EnvPreferredServer),
		ServerDescription: env(EnvServerDescription),
		OpenAPIOutput:     firstNonEmpty(env(EnvOpenAPIOutput), DefaultOpenAPIOutput),
		CollectionName:    env(EnvCollectionName),
		EnvironmentName:   env(EnvEnvironmentName),
		StrictMode:        strict,
	}, nil
}

// RequireFetch reports a ConfigError unless the API key and collection ID
// needed to fetch a generated OpenAPI document are set.
func (c *Config) RequireFetch() error {
	return requireSet(
		[2]string{EnvPostmanAPIKey, c.Postman.APIKey},
		[2]string{EnvPostmanCollectionID, c.Postman.CollectionID},
	)
}

// RequirePublish reports a ConfigError unless the API key and workspace ID
// needed to publish documents are set.
func (c *Config) RequirePublish() error {
	return requireSet(
		[2]string{EnvPostmanAPIKey, c.Postman.APIKey},
		[2]string{EnvPostmanWorkspaceID, c.Postman.WorkspaceID},
	)
}

// PipelineOptions returns the pipeline options implied by the config.
func (c *Config) PipelineOptions() []pipeline.Option {
	opts := []pipeline.Option{
		pipeline.WithPreferredServer(c.PreferredServer),
		pipeline.WithCollectionName(c.CollectionName),
		pipeline.WithEnvironmentName(c.EnvironmentName),
		pipeline.WithStrictMode(c.StrictMode),
	}
	if c.ServerDescription != "" {
		opts = append(opts, pipeline.WithServerDescription(c.ServerDescription))
	}
	return opts
}

func requireSet(pairs ...[2]string) error {
	var missing []string
	for _, p := range pairs {
		if p[1] == "" {
			missing = append(missing, p[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  strings.Join(missing, ", "),
		Message: "must be set in the environment or .env file",
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envBool(key string) (bool, error) {
	raw := env(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &oaserrors.ConfigError{Option: key, Value: raw, Message: "must be a boolean", Cause: err}
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
