// Package node provides the ordered document tree that every apinorm rule
// reads and rewrites.
//
// A [Node] is a tagged union over three shapes: an object (ordered, unique
// string keys), an array (ordered elements), or a scalar (null, bool, string
// or [Number]). Containers are mutated in place through their methods, so a
// rule holding a *Node sees every change made by another rule.
//
// # Building trees
//
//	doc, err := node.DecodeJSON(data)
//	op := doc.Lookup("paths", "/users", "get")
//	op.Set("operationId", node.String("get_users"))
//
// # Serializing
//
//	out, err := node.MarshalJSONIndent(doc, "", "  ")
//	yml, err := node.MarshalYAML(doc)
package node

import (
	"fmt"
	"strconv"
)

// Kind identifies which shape a Node holds.
type Kind uint8

const (
	// Scalar is a null, bool, string or number leaf.
	Scalar Kind = iota
	// Object is an ordered mapping of string keys to nodes.
	Object
	// Array is an ordered sequence of nodes.
	Array
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Number is the literal text of a JSON number. Keeping the literal avoids
// float rounding when a document is decoded and written back.
type Number string

// Node is a single value in a document tree.
type Node struct {
	kind Kind

	// scalar payload: nil, bool, string or Number
	value any

	// object payload
	keys   []string
	fields map[string]*Node

	// array payload
	items []*Node
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: Object, fields: make(map[string]*Node)}
}

// NewArray returns an array node holding items in order.
func NewArray(items ...*Node) *Node {
	n := &Node{kind: Array, items: make([]*Node, 0, len(items))}
	n.items = append(n.items, items...)
	return n
}

// String returns a string scalar.
func String(s string) *Node {
	return &Node{kind: Scalar, value: s}
}

// Bool returns a boolean scalar.
func Bool(b bool) *Node {
	return &Node{kind: Scalar, value: b}
}

// Null returns a null scalar.
func Null() *Node {
	return &Node{kind: Scalar}
}

// Num returns a number scalar holding the given literal.
func Num(literal Number) *Node {
	return &Node{kind: Scalar, value: literal}
}

// Int returns a number scalar for an integer.
func Int(i int64) *Node {
	return Num(Number(strconv.FormatInt(i, 10)))
}

// Kind returns the shape of the node. A nil node reports Scalar.
func (n *Node) Kind() Kind {
	if n == nil {
		return Scalar
	}
	return n.kind
}

// IsObject reports whether n is an object.
func (n *Node) IsObject() bool { return n != nil && n.kind == Object }

// IsArray reports whether n is an array.
func (n *Node) IsArray() bool { return n != nil && n.kind == Array }

// IsScalar reports whether n is a scalar (a nil *Node counts as a null scalar).
func (n *Node) IsScalar() bool { return n == nil || n.kind == Scalar }

// IsNull reports whether n is nil or a null scalar.
func (n *Node) IsNull() bool { return n == nil || (n.kind == Scalar && n.value == nil) }

// Len returns the number of keys of an object or elements of an array.
// Scalars have length zero.
func (n *Node) Len() int {
	switch n.Kind() {
	case Object:
		return len(n.keys)
	case Array:
		return len(n.items)
	default:
		return 0
	}
}

// Keys returns a copy of the object's keys in order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether the object carries key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Lookup follows a chain of object keys and returns the node at the end,
// or nil when any step is missing or not an object.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Set stores v under key. An existing key keeps its position; a new key is
// appended. Set is a no-op on non-object nodes. It returns n for chaining.
func (n *Node) Set(key string, v *Node) *Node {
	if !n.IsObject() {
		return n
	}
	if v == nil {
		v = Null()
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
	return n
}

// Delete removes key from the object and returns the removed value.
func (n *Node) Delete(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	v, ok := n.fields[key]
	if !ok {
		return nil, false
	}
	delete(n.fields, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Index returns the i-th element of an array, or nil when out of range.
func (n *Node) Index(i int) *Node {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// SetIndex replaces the i-th element of an array. Out-of-range indexes are ignored.
func (n *Node) SetIndex(i int, v *Node) {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return
	}
	if v == nil {
		v = Null()
	}
	n.items[i] = v
}

// Append adds elements to the end of an array.
func (n *Node) Append(items ...*Node) {
	if !n.IsArray() {
		return
	}
	for _, it := range items {
		if it == nil {
			it = Null()
		}
		n.items = append(n.items, it)
	}
}

// Items returns a copy of the array's elements.
func (n *Node) Items() []*Node {
	if !n.IsArray() {
		return nil
	}
	return append([]*Node(nil), n.items...)
}

// Value returns the scalar payload: nil, bool, string or Number.
// Containers return nil.
func (n *Node) Value() any {
	if n == nil || n.kind != Scalar {
		return nil
	}
	return n.value
}

// StringValue returns the payload of a string scalar.
func (n *Node) StringValue() (string, bool) {
	s, ok := n.Value().(string)
	return s, ok
}

// BoolValue returns the payload of a boolean scalar.
func (n *Node) BoolValue() (bool, bool) {
	b, ok := n.Value().(bool)
	return b, ok
}

// NumberValue returns the payload of a number scalar.
func (n *Node) NumberValue() (Number, bool) {
	num, ok := n.Value().(Number)
	return num, ok
}

// Truthy reports whether n counts as present for repair rules.
// Null, false, "", numeric zero, empty objects and empty arrays are falsy.
func Truthy(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.kind {
	case Object:
		return len(n.keys) > 0
	case Array:
		return len(n.items) > 0
	}
	switch v := n.value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return err != nil || f != 0
	default:
		return true
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case Object:
		c := &Node{kind: Object, keys: append([]string(nil), n.keys...), fields: make(map[string]*Node, len(n.fields))}
		for k, v := range n.fields {
			c.fields[k] = v.Clone()
		}
		return c
	case Array:
		c := &Node{kind: Array, items: make([]*Node, len(n.items))}
		for i, v := range n.items {
			c.items[i] = v.Clone()
		}
		return c
	default:
		return &Node{kind: Scalar, value: n.value}
	}
}

// String renders n as compact JSON. It is meant for logs and test failure
// messages; encoding errors are rendered inline.
func (n *Node) String() string {
	data, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid node: %v>", err)
	}
	return string(data)
}
