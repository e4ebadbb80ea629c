package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var _ json.Marshaler = (*Node)(nil)
var _ json.Unmarshaler = (*Node)(nil)

// Parse decodes a single JSON value, keeping map key order and number
// literals.
func Parse(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads exactly one JSON value from r.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}

	return n, nil
}

// ReadFile decodes the JSON file at path.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()

			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}

				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				// duplicate keys: last one wins
				m.Set(kt.(string), v)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return m, nil
		case '[':
			l := NewList()

			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				l.Append(v)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return l, nil
		}
	}

	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// UnmarshalJSON replaces n with the decoded value.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}

	*n = *v

	return nil
}

// MarshalJSON encodes n compactly, keys in order. HTML characters are not
// escaped.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode returns the indented encoding (two spaces) with a trailing newline.
func (n *Node) Encode() ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	switch n.Kind() {
	case KindInvalid:
		return errors.New("cannot encode invalid node")
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if n.flag {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(n.text)
	case KindString:
		writeString(buf, n.text)
	case KindMap:
		buf.WriteByte('{')

		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			writeString(buf, k)
			buf.WriteByte(':')

			if err := n.props[k].encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')

		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := it.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	default:
		return fmt.Errorf("unexpected kind %v", n.Kind())
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode

	// Encoder terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
}
