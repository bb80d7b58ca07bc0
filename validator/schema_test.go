package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniCollectionSchema = `{
	"type": "object",
	"required": ["info", "item"],
	"properties": {
		"info": {
			"type": "object",
			"required": ["name"],
			"properties": {"name": {"type": "string"}}
		},
		"item": {"type": "array"}
	}
}`

func TestCheckSchema(t *testing.T) {
	vs, err := CheckSchema(decode(t, validCollection), []byte(miniCollectionSchema))
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = CheckSchema(decode(t, `{"info":{"name":5},"item":[]}`), []byte(miniCollectionSchema))
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.False(t, vs[0].IsError())
	assert.Equal(t, "document", vs[0].Locator())
}

func TestCheckSchema_BadSchema(t *testing.T) {
	_, err := CheckSchema(decode(t, `{}`), []byte(`{not json`))
	assert.Error(t, err)
}
