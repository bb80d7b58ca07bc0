package node

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ToYAMLNode builds a yaml.Node tree with the same key order as n.
func (n *Node) ToYAMLNode() *yaml.Node {
	if n == nil {
		return scalarNode("!!null", "null")
	}
	switch n.kind {
	case Object:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.keys))}
		for _, k := range n.keys {
			out.Content = append(out.Content, scalarNode("!!str", k), n.fields[k].ToYAMLNode())
		}
		return out
	case Array:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.items))}
		for _, it := range n.items {
			out.Content = append(out.Content, it.ToYAMLNode())
		}
		return out
	}

	switch v := n.value.(type) {
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v))
	case Number:
		if strings.ContainsAny(string(v), ".eE") {
			return scalarNode("!!float", string(v))
		}
		return scalarNode("!!int", string(v))
	case string:
		return scalarNode("!!str", v)
	default:
		return scalarNode("!!null", "null")
	}
}

// MarshalYAML renders n as a YAML document with keys in order.
func MarshalYAML(n *Node) ([]byte, error) {
	data, err := yaml.Marshal(n.ToYAMLNode())
	if err != nil {
		return nil, fmt.Errorf("node: marshaling YAML: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML (or JSON) document into a Node tree, keeping
// mapping keys in source order. Aliases are expanded.
func DecodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("node: parsing YAML: %w", err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("node: empty YAML document")
	}
	d := &yamlDecoder{}
	return d.fromYAML(&doc, 0)
}

// maxAliasNodes bounds how many nodes alias expansion may build in one
// document.
const maxAliasNodes = 100000

type yamlDecoder struct {
	aliasDepth int
	aliasNodes int
}

func (d *yamlDecoder) fromYAML(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("node: nesting exceeds %d levels", maxDecodeDepth)
	}
	if d.aliasDepth > 0 {
		d.aliasNodes++
		if d.aliasNodes > maxAliasNodes {
			return nil, fmt.Errorf("node: document contains excessive aliasing (more than %d nodes expanded)", maxAliasNodes)
		}
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return d.fromYAML(y.Content[0], depth)
	case yaml.AliasNode:
		if y.Alias == nil {
			return Null(), nil
		}
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()
		return d.fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode := y.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("node: line %d: mapping key must be a scalar", keyNode.Line)
			}
			val, err := d.fromYAML(y.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range y.Content {
			val, err := d.fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Append(val)
		}
		return arr, nil
	default:
		return yamlScalar(y), nil
	}
}

// yamlScalar maps a resolved YAML scalar onto the JSON scalar set. Values
// JSON cannot express (.inf, .nan, timestamps) are kept as strings.
func yamlScalar(y *yaml.Node) *Node {
	switch y.Tag {
	case "!!null":
		return Null()
	case "!!bool":
		if b, err := strconv.ParseBool(strings.ToLower(y.Value)); err == nil {
			return Bool(b)
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(y.Value, "_", ""), 0, 64); err == nil {
			return Int(i)
		}
		if isJSONNumber(y.Value) {
			return Num(Number(y.Value))
		}
	case "!!float":
		if f, err := strconv.ParseFloat(strings.ReplaceAll(y.Value, "_", ""), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			if isJSONNumber(y.Value) {
				return Num(Number(y.Value))
			}
			return Num(Number(strconv.FormatFloat(f, 'g', -1, 64)))
		}
	}
	return String(y.Value)
}

func isJSONNumber(s string) bool {
	n, err := DecodeJSON([]byte(s))
	if err != nil {
		return false
	}
	_, ok := n.NumberValue()
	return ok
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Decode parses data as JSON when it starts with an object or array
// delimiter and as YAML otherwise.
func Decode(data []byte) (*Node, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}
