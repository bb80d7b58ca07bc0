package mcpserver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/apinorm/internal/issues"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", items: items, want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", items: items, limit: 2, want: []int{0, 1}},
		{name: "offset only", items: items, offset: 2, want: []int{2, 3, 4}},
		{name: "offset and limit", items: items, offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset beyond end", items: items, offset: 5, limit: 2, want: nil},
		{name: "negative offset", items: items, offset: -1, limit: 2, want: nil},
		{name: "limit exceeds remaining", items: items, offset: 3, limit: 10, want: []int{3, 4}},
		{name: "huge limit does not overflow", items: items, offset: 1, limit: math.MaxInt, want: []int{1, 2, 3, 4}},
		{name: "nil slice", items: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	got := sanitizeError(errors.New("reading file: open /home/dev/secret/demo.json: no such file"))
	assert.Equal(t, "reading file: open <path>: no such file", got)
}

func TestToViolations(t *testing.T) {
	assert.Nil(t, toViolations(nil))
	got := toViolations([]issues.Issue{
		{Path: "item[0].request", Field: "method", Message: "missing required field"},
		{Message: "unrecognized document kind"},
	})
	assert.Equal(t, []violation{
		{Locator: "item[0].request.method", Message: "missing required field"},
		{Locator: "document", Message: "unrecognized document kind"},
	}, got)
}
