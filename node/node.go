// Package node is an ordered JSON tree.
//
// A Node is a tagged variant: its Kind selects which of the fields is meaningful.
// Map keys keep their insertion order so that a decoded dashboard re-encodes
// with the same key layout it was read with.
package node

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
)

// Node is a single value of a JSON document.
type Node struct {
	kind  Kind
	text  string // string value or number literal
	flag  bool
	keys  []string
	props map[string]*Node
	items []*Node
}

func Null() *Node { return &Node{kind: KindNull} }

func Bool(b bool) *Node { return &Node{kind: KindBool, flag: b} }

func String(s string) *Node { return &Node{kind: KindString, text: s} }

// Number creates a number node from its JSON literal. The literal is kept
// verbatim and re-emitted as is.
func Number(literal string) *Node { return &Node{kind: KindNumber, text: literal} }

func Int(i int) *Node { return Number(strconv.Itoa(i)) }

func NewMap() *Node { return &Node{kind: KindMap, props: map[string]*Node{}} }

func NewList(items ...*Node) *Node {
	return &Node{kind: KindList, items: slices.Clone(items)}
}

// From converts plain Go values into a tree. Maps with string keys are
// inserted in sorted key order; use Pairs to control the order.
func From(v any) *Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case *Node:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Int(x)
	case int64:
		return Number(strconv.FormatInt(x, 10))
	case float64:
		return Number(strconv.FormatFloat(x, 'f', -1, 64))
	case []string:
		n := NewList()
		for _, s := range x {
			n.Append(String(s))
		}

		return n
	case []any:
		n := NewList()
		for _, it := range x {
			n.Append(From(it))
		}

		return n
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		n := NewMap()
		for _, k := range keys {
			n.Set(k, From(x[k]))
		}

		return n
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		n := NewMap()
		for _, k := range keys {
			n.Set(k, String(x[k]))
		}

		return n
	default:
		panic(fmt.Sprintf("node.From: unsupported type %T", v))
	}
}

// Pairs builds a map from alternating key, value arguments, keeping their order.
func Pairs(kv ...any) *Node {
	if len(kv)%2 != 0 {
		panic("node.Pairs: odd number of arguments")
	}

	n := NewMap()
	for i := 0; i < len(kv); i += 2 {
		n.Set(kv[i].(string), From(kv[i+1]))
	}

	return n
}

// Kind returns the variant held by the node. A nil node reports KindInvalid.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}

	return n.kind
}

func (n *Node) IsMap() bool    { return n.Kind() == KindMap }
func (n *Node) IsList() bool   { return n.Kind() == KindList }
func (n *Node) IsString() bool { return n.Kind() == KindString }
func (n *Node) IsNull() bool   { return n.Kind() == KindNull }

// Clone returns a deep copy sharing nothing with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{kind: n.kind, text: n.text, flag: n.flag}

	switch n.kind {
	case KindMap:
		c.keys = slices.Clone(n.keys)

		c.props = make(map[string]*Node, len(n.props))
		for k, v := range n.props {
			c.props[k] = v.Clone()
		}
	case KindList:
		c.items = make([]*Node, len(n.items))
		for i, it := range n.items {
			c.items[i] = it.Clone()
		}
	}

	return c
}

// Equal reports deep equality. Map key order is ignored, list order is not.
// Numbers compare by literal.
func (n *Node) Equal(o *Node) bool {
	if n.Kind() != o.Kind() {
		return false
	}

	switch n.Kind() {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return n.flag == o.flag
	case KindNumber, KindString:
		return n.text == o.text
	case KindMap:
		if len(n.keys) != len(o.keys) {
			return false
		}

		for _, k := range n.keys {
			ov, ok := o.props[k]
			if !ok || !n.props[k].Equal(ov) {
				return false
			}
		}

		return true
	case KindList:
		return slices.EqualFunc(n.items, o.items, (*Node).Equal)
	default:
		panic(fmt.Sprintf("node.Equal: unexpected kind %v", n.Kind()))
	}
}

// String implements fmt.Stringer with the compact JSON encoding.
func (n *Node) String() string {
	b, err := n.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(b)
}
