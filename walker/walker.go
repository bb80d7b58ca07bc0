package walker

import (
	"fmt"

	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
)

// DefaultMaxDepth is the nesting limit used when WithMaxDepth is not given.
const DefaultMaxDepth = 1000

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// ObjectHandler is called for each object node before its members are visited.
type ObjectHandler func(obj *node.Node, path string) Action

// ArrayHandler is called for each array node before its elements are visited.
type ArrayHandler func(arr *node.Node, path string) Action

// ScalarHandler is called for each scalar node. A non-nil returned node
// replaces the scalar in its parent container. The root is never replaced.
type ScalarHandler func(s *node.Node, path string) (*node.Node, Action)

// Walker traverses a node tree and calls handlers for each node.
type Walker struct {
	onObject ObjectHandler
	onArray  ArrayHandler
	onScalar ScalarHandler

	maxDepth int

	visited map[*node.Node]struct{}
	path    *pathutil.PathBuilder
	stopped bool
}

// New creates a new Walker with default settings.
func New(opts ...Option) *Walker {
	w := &Walker{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Option configures the Walker.
type Option func(*Walker)

// WithObjectHandler sets the handler for object nodes.
func WithObjectHandler(fn ObjectHandler) Option {
	return func(w *Walker) { w.onObject = fn }
}

// WithArrayHandler sets the handler for array nodes.
func WithArrayHandler(fn ArrayHandler) Option {
	return func(w *Walker) { w.onArray = fn }
}

// WithScalarHandler sets the handler for scalar nodes.
func WithScalarHandler(fn ScalarHandler) Option {
	return func(w *Walker) { w.onScalar = fn }
}

// WithMaxDepth sets the maximum nesting depth. The root is at depth 0.
// If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses root in pre-order and calls the registered handlers.
func Walk(root *node.Node, opts ...Option) error {
	return New(opts...).Walk(root)
}

// Walk traverses root in pre-order. A Walker may be reused but not shared
// between goroutines while a walk is in progress.
func (w *Walker) Walk(root *node.Node) error {
	if root == nil {
		return fmt.Errorf("walker: nil root")
	}
	w.visited = make(map[*node.Node]struct{})
	w.stopped = false
	w.path = pathutil.Get()
	defer func() {
		pathutil.Put(w.path)
		w.path = nil
		w.visited = nil
	}()

	_, err := w.visit(root, 0)
	return err
}

// visit dispatches on the node shape. The returned node, when non-nil,
// replaces n in its parent.
func (w *Walker) visit(n *node.Node, depth int) (*node.Node, error) {
	if w.stopped {
		return nil, nil
	}
	if depth > w.maxDepth {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "walk_depth",
			Limit:        int64(w.maxDepth),
			Actual:       int64(depth),
			Message:      "document nesting too deep at " + locator(w.path.String()),
		}
	}

	switch n.Kind() {
	case node.Object:
		return nil, w.visitObject(n, depth)
	case node.Array:
		return nil, w.visitArray(n, depth)
	default:
		if w.onScalar == nil {
			return nil, nil
		}
		repl, action := w.onScalar(n, w.path.String())
		w.handleAction(action)
		return repl, nil
	}
}

func (w *Walker) visitObject(obj *node.Node, depth int) error {
	if err := w.enter(obj); err != nil {
		return err
	}
	if w.onObject != nil {
		if !w.handleAction(w.onObject(obj, w.path.String())) {
			return nil
		}
	}

	for _, key := range obj.Keys() {
		child, ok := obj.Get(key)
		if !ok {
			continue
		}
		w.path.Push(key)
		repl, err := w.visit(child, depth+1)
		w.path.Pop()
		if err != nil {
			return err
		}
		if repl != nil {
			obj.Set(key, repl)
		}
		if w.stopped {
			return nil
		}
	}
	return nil
}

func (w *Walker) visitArray(arr *node.Node, depth int) error {
	if err := w.enter(arr); err != nil {
		return err
	}
	if w.onArray != nil {
		if !w.handleAction(w.onArray(arr, w.path.String())) {
			return nil
		}
	}

	for i := 0; i < arr.Len(); i++ {
		w.path.PushIndex(i)
		repl, err := w.visit(arr.Index(i), depth+1)
		w.path.Pop()
		if err != nil {
			return err
		}
		if repl != nil {
			arr.SetIndex(i, repl)
		}
		if w.stopped {
			return nil
		}
	}
	return nil
}

// enter marks a container as visited, failing if it was reached before.
func (w *Walker) enter(n *node.Node) error {
	if _, seen := w.visited[n]; seen {
		return &oaserrors.MalformedDocumentError{
			Path:    w.path.String(),
			IsCycle: true,
			Message: "container reached more than once",
		}
	}
	w.visited[n] = struct{}{}
	return nil
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

func locator(path string) string {
	if path == "" {
		return "document root"
	}
	return path
}
