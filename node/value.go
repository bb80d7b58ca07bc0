package node

import (
	"fmt"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// FromValue converts a plain Go value (as produced by a generic JSON or YAML
// unmarshal) into a Node tree. Map keys have no inherent order, so object
// keys are sorted for determinism.
func FromValue(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case Number:
		return Num(val), nil
	case json.Number:
		return Num(Number(val.String())), nil
	case int:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint64:
		return Num(Number(strconv.FormatUint(val, 10))), nil
	case float32:
		return Num(Number(strconv.FormatFloat(float64(val), 'g', -1, 32))), nil
	case float64:
		return Num(Number(strconv.FormatFloat(val, 'g', -1, 64))), nil
	case []any:
		arr := NewArray()
		for i, item := range val {
			child, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.Append(child)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := FromValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.Set(k, child)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("node: unsupported value type %T", v)
	}
}

// MustFromValue is like FromValue but panics on unsupported types.
// Intended for fixtures and tests.
func MustFromValue(v any) *Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// ToValue converts the tree back into plain Go values: map[string]any,
// []any, string, bool, nil, int64 or float64. Integral numbers that fit in
// int64 become int64; every other number becomes float64.
func (n *Node) ToValue() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case Object:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.fields[k].ToValue()
		}
		return m
	case Array:
		s := make([]any, len(n.items))
		for i, it := range n.items {
			s[i] = it.ToValue()
		}
		return s
	}
	if num, ok := n.value.(Number); ok {
		if i, err := strconv.ParseInt(string(num), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(num), 64); err == nil {
			return f
		}
		return string(num)
	}
	return n.value
}
