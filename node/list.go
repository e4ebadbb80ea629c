package node

import (
	"slices"
)

// Items returns the list items. The returned slice must not be modified;
// use SetItems, Append, Insert or RemoveIf.
func (n *Node) Items() []*Node {
	if n.Kind() != KindList {
		return nil
	}

	return n.items
}

// Index returns item i, or nil when out of range.
func (n *Node) Index(i int) *Node {
	if n.Kind() != KindList || i < 0 || i >= len(n.items) {
		return nil
	}

	return n.items[i]
}

func (n *Node) Append(items ...*Node) {
	if n.Kind() != KindList {
		return
	}

	n.items = append(n.items, items...)
}

// Insert places v at index i, shifting later items.
func (n *Node) Insert(i int, v *Node) {
	if n.Kind() != KindList {
		return
	}

	i = max(0, min(i, len(n.items)))
	n.items = slices.Insert(n.items, i, v)
}

func (n *Node) SetItems(items []*Node) {
	if n.Kind() != KindList {
		return
	}

	n.items = slices.Clone(items)
}

// RemoveIf drops every item matching pred and returns how many were removed.
func (n *Node) RemoveIf(pred func(*Node) bool) int {
	if n.Kind() != KindList {
		return 0
	}

	before := len(n.items)
	n.items = slices.DeleteFunc(n.items, pred)

	return before - len(n.items)
}

// Strings returns the string items of a list, skipping other kinds.
func (n *Node) Strings() []string {
	var out []string

	for _, it := range n.Items() {
		if s, ok := it.Str(); ok {
			out = append(out, s)
		}
	}

	return out
}
