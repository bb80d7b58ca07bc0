package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_PreservesKeyOrder(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"zeta":1,"alpha":{"y":true,"x":null},"mid":[3,2,1]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Keys())
	assert.Equal(t, []string{"y", "x"}, doc.Lookup("alpha").Keys())
	assert.Equal(t, 3, doc.Lookup("mid").Len())
}

func TestDecodeJSON_NumbersKeepLiteral(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"big":12345678901234567890,"f":1.50}`))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"big":12345678901234567890,"f":1.50}`, string(out))
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"truncated object", `{"a":`},
		{"trailing data", `{"a":1} {"b":2}`},
		{"invalid", `{a:1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeJSON_DuplicateKeysLastWins(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	assert.Equal(t, Number("3"), doc.Lookup("a").Value())
}

func TestMarshalJSON_NoHTMLEscaping(t *testing.T) {
	doc := NewObject().Set("raw", String("{{baseUrl}}/users?a=1&b=<2>"))
	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"raw":"{{baseUrl}}/users?a=1&b=<2>"}`, string(out))
}

func TestMarshalJSONIndent_RoundTrip(t *testing.T) {
	src := `{
  "info": {
    "name": "demo",
    "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
  },
  "item": [
    {
      "name": "quote \" and unicode é",
      "request": {
        "method": "GET",
        "url": "https://example.com"
      }
    }
  ]
}`
	doc, err := DecodeJSON([]byte(src))
	require.NoError(t, err)

	out, err := MarshalJSONIndent(doc, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMarshalYAML_KeepsOrderAndQuotesStrings(t *testing.T) {
	doc := NewObject().
		Set("openapi", String("3.0.0")).
		Set("paths", NewObject().Set("/users", NewObject().Set("get", NewObject().
			Set("operationId", String("get_users")).
			Set("x-count", Int(3))))).
		Set("flag", Bool(true)).
		Set("code", String("200"))

	out, err := MarshalYAML(doc)
	require.NoError(t, err)
	text := string(out)

	assert.Less(t, strings.Index(text, "openapi"), strings.Index(text, "paths"))
	assert.Less(t, strings.Index(text, "paths"), strings.Index(text, "flag"))
	assert.Contains(t, text, "x-count: 3")
	assert.Contains(t, text, "flag: true")
	assert.Contains(t, text, `"200"`)

	back, err := DecodeYAML(out)
	require.NoError(t, err)
	assert.True(t, Equal(doc, back))
	assert.Equal(t, doc.Keys(), back.Keys())
}

func TestDecodeYAML(t *testing.T) {
	src := `
openapi: "3.0.3"
paths:
  /users/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: false
      responses:
        "200":
          description: ok
defaults: &d
  limit: 10
  ratio: 0.5
copy: *d
empty: ~
`
	doc, err := DecodeYAML([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"openapi", "paths", "defaults", "copy", "empty"}, doc.Keys())
	param := doc.Lookup("paths", "/users/{id}", "get", "parameters").Index(0)
	require.NotNil(t, param)
	required, ok := param.Lookup("required").BoolValue()
	require.True(t, ok)
	assert.False(t, required)
	assert.Equal(t, Number("10"), doc.Lookup("copy", "limit").Value())
	assert.Equal(t, Number("0.5"), doc.Lookup("copy", "ratio").Value())
	assert.True(t, doc.Lookup("empty").IsNull())
	assert.True(t, doc.Lookup("paths", "/users/{id}", "get", "responses").Has("200"))
}

func TestDecodeYAML_Empty(t *testing.T) {
	_, err := DecodeYAML([]byte(""))
	assert.Error(t, err)
}

func TestDecodeYAML_ExcessiveAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString(`a: &a ["x","x","x","x","x","x","x","x","x","x"]` + "\n")
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f", "g"} {
		refs := strings.TrimSuffix(strings.Repeat("*"+prev+",", 10), ",")
		b.WriteString(name + ": &" + name + " [" + refs + "]\n")
		prev = name
	}
	_, err := DecodeYAML([]byte(b.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excessive aliasing")
}

func TestDecodeYAML_ModestAliasingAllowed(t *testing.T) {
	src := "base: &base {kind: widget, size: 3}\nitems: [*base, *base, *base]\n"
	doc, err := DecodeYAML([]byte(src))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Lookup("items").Len())
	assert.Equal(t, "widget", doc.Lookup("items").Index(2).Lookup("kind").Value())
}

func TestDecodeYAML_LargeIntegerKeepsLiteral(t *testing.T) {
	doc, err := DecodeYAML([]byte("big: 12345678901234567890\nneg: -98765432109876543210\nhex: 0x1FFFFFFFFFFFFFFFFF\n"))
	require.NoError(t, err)
	assert.Equal(t, Number("12345678901234567890"), doc.Lookup("big").Value())
	assert.Equal(t, Number("-98765432109876543210"), doc.Lookup("neg").Value())
	assert.Equal(t, "0x1FFFFFFFFFFFFFFFFF", doc.Lookup("hex").Value())
}

func TestNodeString(t *testing.T) {
	n := NewObject().Set("a", NewArray(Int(1), Null()))
	assert.Equal(t, `{"a":[1,null]}`, n.String())
}

func TestDecode_PicksCodec(t *testing.T) {
	fromJSON, err := Decode([]byte("  \n{\"big\":12345678901234567890}"))
	require.NoError(t, err)
	assert.Equal(t, Number("12345678901234567890"), fromJSON.Lookup("big").Value())

	fromYAML, err := Decode([]byte("openapi: 3.0.0\npaths: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"openapi", "paths"}, fromYAML.Keys())

	_, err = Decode([]byte("{\"a\":"))
	assert.Error(t, err)
}
