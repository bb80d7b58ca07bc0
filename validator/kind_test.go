package validator

import (
	"errors"
	"testing"

	"github.com/erraggy/apinorm/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		src  string
		want DocumentKind
	}{
		{`{"info":{},"item":[]}`, KindCollection},
		{`{"name":"e","values":[]}`, KindEnvironment},
		{`{"openapi":"3.0.0","info":{},"paths":{}}`, KindOpenAPI},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := DetectKind(decode(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectKind_Errors(t *testing.T) {
	_, err := DetectKind(decode(t, `{"item":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument))

	var mde *oaserrors.MalformedDocumentError
	require.True(t, errors.As(err, &mde))
	require.Len(t, mde.Violations, 1)
	assert.Equal(t, "info", mde.Violations[0].Field)
	assert.Contains(t, err.Error(), "has item but no info")

	_, err = DetectKind(decode(t, `{"hello":"world"}`))
	require.True(t, errors.As(err, &mde))
	require.Len(t, mde.Violations, 1)
	assert.Equal(t, "document", mde.Violations[0].Field)

	_, err = DetectKind(decode(t, `{"info":{},"item":[],"paths":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous document kind: matches collection and openapi")

	_, err = DetectKind(nil)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]DocumentKind{
		"":            KindAuto,
		"auto":        KindAuto,
		"Collection":  KindCollection,
		"environment": KindEnvironment,
		"env":         KindEnvironment,
		"openapi":     KindOpenAPI,
		" oas ":       KindOpenAPI,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("swagger")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestKindFromFilename(t *testing.T) {
	assert.Equal(t, KindCollection, KindFromFilename("api/Users.postman_collection.json"))
	assert.Equal(t, KindEnvironment, KindFromFilename("dev.postman_environment.json"))
	assert.Equal(t, KindAuto, KindFromFilename("openapi.yaml"))
}

func TestDocumentKindString(t *testing.T) {
	assert.Equal(t, "auto", KindAuto.String())
	assert.Equal(t, "openapi", KindOpenAPI.String())
	assert.Equal(t, "DocumentKind(9)", DocumentKind(9).String())
}

func TestDetectKind_MissingDiscriminator(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantField string
	}{
		{"item without info", `{"item":[{"request":"https://example.com"}]}`, "info"},
		{"info without item", `{"info":{"name":"demo"}}`, "item"},
		{"values without name", `{"values":[]}`, "name"},
		{"name without values", `{"name":"Staging"}`, "values"},
		{"two partial kinds", `{"item":[],"name":"x"}`, "document"},
		{"nothing known", `{"foo":1}`, "document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := Validate(decode(t, tt.src), KindAuto)
			require.Len(t, vs, 1)
			assert.Equal(t, tt.wantField, vs[0].Locator())
			assert.True(t, vs[0].IsError())
		})
	}
}
