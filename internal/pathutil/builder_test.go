package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *PathBuilder)
		want  string
	}{
		{"empty", func(p *PathBuilder) {}, ""},
		{"keys", func(p *PathBuilder) { p.Push("info"); p.Push("name") }, "info.name"},
		{"nested items", func(p *PathBuilder) {
			p.Push("item")
			p.PushIndex(2)
			p.Push("item")
			p.PushIndex(0)
			p.Push("request")
		}, "item[2].item[0].request"},
		{"root index", func(p *PathBuilder) { p.PushIndex(1); p.Push("name") }, "[1].name"},
		{"pop key", func(p *PathBuilder) { p.Push("a"); p.Push("b"); p.Pop(); p.Push("c") }, "a.c"},
		{"pop index", func(p *PathBuilder) { p.Push("values"); p.PushIndex(3); p.Pop(); p.PushIndex(4) }, "values[4]"},
		{"pop empty", func(p *PathBuilder) { p.Pop(); p.Push("x") }, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PathBuilder{}
			tt.build(p)
			got := p.String()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(got), p.length, "pre-computed length drifted")
		})
	}
}

func TestPathBuilder_Depth(t *testing.T) {
	p := &PathBuilder{}
	p.Push("paths")
	p.Push("/users")
	p.PushIndex(0)
	assert.Equal(t, 3, p.Depth())
	p.Reset()
	assert.Equal(t, 0, p.Depth())
	assert.Equal(t, "", p.String())
}

func TestPool(t *testing.T) {
	p := Get()
	p.Push("stale")
	Put(p)

	q := Get()
	defer Put(q)
	assert.Equal(t, "", q.String())
	Put(nil)
}

func TestJoinAndIndex(t *testing.T) {
	assert.Equal(t, "info", Join("", "info"))
	assert.Equal(t, "info.name", Join("info", "name"))
	assert.Equal(t, "item[3]", Index("item", 3))
	assert.Equal(t, "[0]", Index("", 0))
}
