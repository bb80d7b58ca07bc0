package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// maxDecodeDepth bounds container nesting while decoding.
const maxDecodeDepth = 10000

// DecodeJSON parses a JSON document into a Node tree, keeping object keys in
// source order and numbers as their literal text. Duplicate keys keep the
// position of the first occurrence and the value of the last.
func DecodeJSON(data []byte) (*Node, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader is like DecodeJSON but reads from r.
func DecodeJSONReader(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("node: unexpected data after top-level value")
		}
		return nil, fmt.Errorf("node: reading trailing data: %w", err)
	}
	return root, nil
}

func decodeValue(dec *json.Decoder, depth int) (*Node, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("node: nesting exceeds %d levels", maxDecodeDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("node: unexpected end of JSON input")
		}
		return nil, fmt.Errorf("node: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("node: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("node: object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("node: %w", err)
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("node: %w", err)
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("node: unexpected delimiter %q", rune(t))
		}
	case json.Number:
		return Num(Number(t.String())), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("node: unexpected token %T", tok)
	}
}

// MarshalJSON implements json.Marshaler, writing keys in order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent renders n as indented JSON with keys in order.
func MarshalJSONIndent(n *Node, prefix, indent string) ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, prefix, indent); err != nil {
		return nil, fmt.Errorf("node: indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.kind {
	case Object:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.fields[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case Array:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	switch v := n.value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if v == "" {
			buf.WriteByte('0')
		} else {
			buf.WriteString(string(v))
		}
	case string:
		return writeJSONString(buf, v)
	default:
		return fmt.Errorf("node: cannot encode scalar of type %T", v)
	}
	return nil
}

// writeJSONString quotes s without HTML escaping so URLs with '&' stay readable.
func writeJSONString(buf *bytes.Buffer, s string) error {
	start := buf.Len()
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.Truncate(start)
		return fmt.Errorf("node: encoding string: %w", err)
	}
	if b := buf.Bytes(); len(b) > start && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 1)
	}
	return nil
}
