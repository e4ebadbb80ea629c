package node

import (
	"slices"
)

// Get returns the child stored under key, or nil when n is not a map or the
// key is absent.
func (n *Node) Get(key string) *Node {
	if n.Kind() != KindMap {
		return nil
	}

	return n.props[key]
}

// Lookup is Get with an explicit presence flag.
func (n *Node) Lookup(key string) (*Node, bool) {
	v := n.Get(key)
	return v, v != nil
}

// Has reports whether the map holds key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Path follows a chain of map keys.
func (n *Node) Path(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}

	return cur
}

// Set stores v under key. A new key is appended after the existing ones,
// an existing key keeps its position. It is a no-op when n is not a map.
func (n *Node) Set(key string, v *Node) {
	if n.Kind() != KindMap {
		return
	}

	if v == nil {
		v = Null()
	}

	if _, ok := n.props[key]; !ok {
		n.keys = append(n.keys, key)
	}

	n.props[key] = v
}

// SetFirst stores v under key and moves key to the front.
func (n *Node) SetFirst(key string, v *Node) {
	if n.Kind() != KindMap {
		return
	}

	n.Delete(key)
	n.Set(key, v)
	n.keys = append([]string{key}, n.keys[:len(n.keys)-1]...)
}

// Delete removes key and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if n.Kind() != KindMap {
		return false
	}

	if _, ok := n.props[key]; !ok {
		return false
	}

	delete(n.props, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })

	return true
}

// Rename moves the value stored under from to the key to, keeping the
// position of from. An existing entry under to is replaced.
func (n *Node) Rename(from, to string) bool {
	if n.Kind() != KindMap || from == to {
		return false
	}

	v, ok := n.props[from]
	if !ok {
		return false
	}

	n.Delete(to)

	i := slices.Index(n.keys, from)
	n.keys[i] = to

	delete(n.props, from)
	n.props[to] = v

	return true
}

// Keys returns a copy of the map keys in order.
func (n *Node) Keys() []string {
	if n.Kind() != KindMap {
		return nil
	}

	return slices.Clone(n.keys)
}

// Entries calls fn for each entry in key order. Mutating n from fn is not
// allowed; collect keys first with Keys for that.
func (n *Node) Entries(fn func(key string, v *Node)) {
	if n.Kind() != KindMap {
		return
	}

	for _, k := range n.keys {
		fn(k, n.props[k])
	}
}

// Len returns the number of entries of a map or items of a list.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindMap:
		return len(n.keys)
	case KindList:
		return len(n.items)
	default:
		return 0
	}
}
