package pipeline

import (
	"github.com/erraggy/apinorm/fixer"
	"github.com/erraggy/apinorm/logging"
)

// Option is a function that configures a Pipeline
type Option func(*pipelineConfig) error

type pipelineConfig struct {
	metadataKeys      []string
	preferredServer   string
	serverDescription string
	collectionName    string
	environmentName   string
	strictMode        bool
	preserveSchema    bool
	enabledFixes      []fixer.FixType
	logger            Logger
}

func applyOptions(opts ...Option) (*pipelineConfig, error) {
	cfg := &pipelineConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = logging.OrNop(cfg.logger)
	return cfg, nil
}

// WithMetadataKeys sets the keys stripped from every object. Without this
// option the preset for the document kind is used (see DefaultMetadataKeys).
func WithMetadataKeys(keys ...string) Option {
	return func(cfg *pipelineConfig) error {
		cfg.metadataKeys = append([]string{}, keys...)
		return nil
	}
}

// WithPreferredServer sets the URL OpenAPI servers are pinned to.
func WithPreferredServer(url string) Option {
	return func(cfg *pipelineConfig) error {
		cfg.preferredServer = url
		return nil
	}
}

// WithServerDescription sets the description of the pinned server.
func WithServerDescription(desc string) Option {
	return func(cfg *pipelineConfig) error {
		cfg.serverDescription = desc
		return nil
	}
}

// WithCollectionName overwrites info.name of every collection.
func WithCollectionName(name string) Option {
	return func(cfg *pipelineConfig) error {
		cfg.collectionName = name
		return nil
	}
}

// WithEnvironmentName overwrites name of every environment.
func WithEnvironmentName(name string) Option {
	return func(cfg *pipelineConfig) error {
		cfg.environmentName = name
		return nil
	}
}

// WithStrictMode enables the validator's strict checks.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *pipelineConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithPreserveSchema keeps info.schema (collections) and schema
// (environments) even when the metadata keys include "schema".
func WithPreserveSchema(enabled bool) Option {
	return func(cfg *pipelineConfig) error {
		cfg.preserveSchema = enabled
		return nil
	}
}

// WithEnabledFixes restricts the patch rules to the given types.
func WithEnabledFixes(fixes ...fixer.FixType) Option {
	return func(cfg *pipelineConfig) error {
		cfg.enabledFixes = append([]fixer.FixType(nil), fixes...)
		return nil
	}
}

// WithLogger sets the logger for stage and fix records.
func WithLogger(l Logger) Option {
	return func(cfg *pipelineConfig) error {
		cfg.logger = l
		return nil
	}
}
