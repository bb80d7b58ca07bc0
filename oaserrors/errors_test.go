package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/erraggy/apinorm/internal/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquisitionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &AcquisitionError{
		Source:     "https://api.getpostman.com/collections/abc/transformations",
		StatusCode: 502,
		Message:    "unexpected status",
		Cause:      cause,
	}

	assert.Equal(t, "acquisition error for https://api.getpostman.com/collections/abc/transformations (status 502): unexpected status: connection refused", err.Error())
	assert.ErrorIs(t, err, ErrAcquisition)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "acquisition error", (&AcquisitionError{}).Error())
}

func TestMalformedDocumentError(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		err := &MalformedDocumentError{Message: "document is neither a collection nor an environment"}
		assert.Equal(t, "malformed document: document is neither a collection nor an environment", err.Error())
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.NotErrorIs(t, err, ErrCycle)
	})

	t.Run("cycle", func(t *testing.T) {
		err := &MalformedDocumentError{Path: "item[0].item", IsCycle: true, Message: "container visited twice"}
		assert.Equal(t, "structural cycle at item[0].item: container visited twice", err.Error())
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.ErrorIs(t, err, ErrCycle)
	})
}

func TestValidationError(t *testing.T) {
	one := &ValidationError{
		Source: "demo.postman_collection.json",
		Kind:   "collection",
		Violations: []issues.Issue{
			{Field: "info", Message: "required field is missing"},
		},
	}
	assert.Equal(t, "validation error in demo.postman_collection.json (collection): info: required field is missing", one.Error())

	many := &ValidationError{Violations: []issues.Issue{
		{Path: "info", Field: "name", Message: "required field is missing"},
		{Path: "item[0].request", Field: "method", Message: "required field is missing"},
	}}
	assert.Equal(t, "validation error: 2 violations, first: info.name: required field is missing", many.Error())

	wrapped := fmt.Errorf("pipeline: %w", many)
	var target *ValidationError
	require.ErrorAs(t, wrapped, &target)
	assert.Len(t, target.Violations, 2)
	assert.ErrorIs(t, wrapped, ErrValidation)
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "walk_depth", Limit: 10, Actual: 11}
	assert.Equal(t, "resource limit exceeded: walk_depth (limit: 10, actual: 11)", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "POSTMAN_API_KEY", Message: "must be set"}
	assert.Equal(t, "configuration error for POSTMAN_API_KEY: must be set", err.Error())
	assert.ErrorIs(t, err, ErrConfig)

	withValue := &ConfigError{Option: "max depth", Value: -1, Message: "must be positive"}
	assert.Equal(t, "configuration error for max depth (value: -1): must be positive", withValue.Error())
}

func TestPublishError(t *testing.T) {
	cause := errors.New("EOF")
	err := &PublishError{
		Target:     "https://api.getpostman.com/collections",
		Name:       "Demo",
		StatusCode: 400,
		Message:    "instanceFoundError",
		Cause:      cause,
	}
	assert.Equal(t, "publish error for Demo to https://api.getpostman.com/collections (status 400): instanceFoundError: EOF", err.Error())
	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAcquisition)
	assert.Equal(t, "publish error", (&PublishError{}).Error())
}
