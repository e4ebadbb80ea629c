package node

import "fmt"

// Visitor receives containers during Walk. Returning false from VisitMap or
// VisitList skips the children of that node.
type Visitor interface {
	VisitMap(n *Node) bool
	VisitList(n *Node) bool
	VisitScalar(n *Node)
}

// Walk visits n and its descendants in pre-order, map children in key order.
func Walk(n *Node, v Visitor) {
	switch n.Kind() {
	case KindInvalid:
		return
	case KindNull, KindBool, KindNumber, KindString:
		v.VisitScalar(n)
	case KindMap:
		if !v.VisitMap(n) {
			return
		}

		for _, k := range n.Keys() {
			Walk(n.Get(k), v)
		}
	case KindList:
		if !v.VisitList(n) {
			return
		}

		for _, it := range n.Items() {
			Walk(it, v)
		}
	default:
		panic(fmt.Sprintf("node.Walk: unexpected kind %v", n.Kind()))
	}
}

// MapFunc adapts a function to a Visitor that only sees maps.
type MapFunc func(m *Node)

func (f MapFunc) VisitMap(n *Node) bool { f(n); return true }
func (MapFunc) VisitList(*Node) bool    { return true }
func (MapFunc) VisitScalar(*Node)       {}

// WalkMaps calls fn for every map in the tree, parents before children.
func WalkMaps(n *Node, fn func(m *Node)) {
	Walk(n, MapFunc(fn))
}
