package walker

import (
	"errors"
	"testing"

	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection(t *testing.T) *node.Node {
	t.Helper()
	doc, err := node.DecodeJSON([]byte(`{
		"info": {"name": "demo"},
		"item": [
			{"name": "folder", "item": [{"name": "leaf", "request": {"method": "GET", "url": "https://x"}}]},
			{"name": "top", "request": "https://y"}
		]
	}`))
	require.NoError(t, err)
	return doc
}

func TestWalk_PreOrderPaths(t *testing.T) {
	var visits []string
	err := Walk(sampleCollection(t),
		WithObjectHandler(func(obj *node.Node, path string) Action {
			visits = append(visits, "obj:"+path)
			return Continue
		}),
		WithArrayHandler(func(arr *node.Node, path string) Action {
			visits = append(visits, "arr:"+path)
			return Continue
		}),
		WithScalarHandler(func(s *node.Node, path string) (*node.Node, Action) {
			visits = append(visits, "val:"+path)
			return nil, Continue
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"obj:",
		"obj:info",
		"val:info.name",
		"arr:item",
		"obj:item[0]",
		"val:item[0].name",
		"arr:item[0].item",
		"obj:item[0].item[0]",
		"val:item[0].item[0].name",
		"obj:item[0].item[0].request",
		"val:item[0].item[0].request.method",
		"val:item[0].item[0].request.url",
		"obj:item[1]",
		"val:item[1].name",
		"val:item[1].request",
	}, visits)
}

func TestWalk_SkipChildren(t *testing.T) {
	var objects []string
	err := Walk(sampleCollection(t),
		WithObjectHandler(func(obj *node.Node, path string) Action {
			objects = append(objects, path)
			if obj.Has("item") && path != "" {
				return SkipChildren
			}
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "info", "item[0]", "item[1]"}, objects)
}

func TestWalk_Stop(t *testing.T) {
	count := 0
	err := Walk(sampleCollection(t),
		WithScalarHandler(func(s *node.Node, path string) (*node.Node, Action) {
			count++
			if path == "item[0].name" {
				return nil, Stop
			}
			return nil, Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWalk_HandlerDeletesBeforeDescent(t *testing.T) {
	doc := sampleCollection(t)
	var seen []string
	err := Walk(doc,
		WithObjectHandler(func(obj *node.Node, path string) Action {
			obj.Delete("request")
			return Continue
		}),
		WithScalarHandler(func(s *node.Node, path string) (*node.Node, Action) {
			seen = append(seen, path)
			return nil, Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"info.name", "item[0].name", "item[0].item[0].name", "item[1].name"}, seen)
	assert.False(t, doc.Lookup("item").Index(1).Has("request"))
}

func TestWalk_ScalarReplacement(t *testing.T) {
	doc := node.NewObject().
		Set("method", node.String("GET")).
		Set("tags", node.NewArray(node.String("A"), node.Int(1)))

	err := Walk(doc, WithScalarHandler(func(s *node.Node, path string) (*node.Node, Action) {
		if v, ok := s.StringValue(); ok {
			return node.String(v + "!"), Continue
		}
		return nil, Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, `{"method":"GET!","tags":["A!",1]}`, doc.String())
}

func TestWalk_ScalarRoot(t *testing.T) {
	called := false
	err := Walk(node.String("x"), WithScalarHandler(func(s *node.Node, path string) (*node.Node, Action) {
		called = true
		assert.Equal(t, "", path)
		return node.String("ignored"), Continue
	}))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWalk_NilRoot(t *testing.T) {
	assert.Error(t, Walk(nil))
}

func TestWalk_Cycle(t *testing.T) {
	root := node.NewObject()
	child := node.NewObject()
	root.Set("child", child)
	child.Set("back", root)

	err := Walk(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrCycle))

	var mde *oaserrors.MalformedDocumentError
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "child.back", mde.Path)
}

func TestWalk_SharedSubtree(t *testing.T) {
	shared := node.NewObject().Set("type", node.String("string"))
	root := node.NewArray(shared, shared)

	err := Walk(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument))
}

func TestWalk_MaxDepth(t *testing.T) {
	root := node.NewObject()
	cur := root
	for i := 0; i < 5; i++ {
		next := node.NewObject()
		cur.Set("n", next)
		cur = next
	}

	require.NoError(t, Walk(root, WithMaxDepth(5)))

	err := Walk(root, WithMaxDepth(4))
	require.Error(t, err)
	var rle *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, int64(4), rle.Limit)
	assert.Equal(t, int64(5), rle.Actual)
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
}

func TestWithMaxDepth_IgnoresNonPositive(t *testing.T) {
	w := New(WithMaxDepth(0))
	assert.Equal(t, DefaultMaxDepth, w.maxDepth)
	w = New(WithMaxDepth(-3))
	assert.Equal(t, DefaultMaxDepth, w.maxDepth)
}

func TestWalker_Reusable(t *testing.T) {
	doc := sampleCollection(t)
	w := New()
	require.NoError(t, w.Walk(doc))
	require.NoError(t, w.Walk(doc), "visited set must reset between walks")
}

func TestAction(t *testing.T) {
	assert.True(t, Continue.IsValid())
	assert.True(t, Stop.IsValid())
	assert.False(t, Action(7).IsValid())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Action(7)", Action(7).String())
}
