package node

import (
	"strconv"
)

// Str returns the value of a string node.
func (n *Node) Str() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}

	return n.text, true
}

// Text returns the string value, or "" for any other kind.
func (n *Node) Text() string {
	s, _ := n.Str()
	return s
}

// Literal returns the number literal of a number node.
func (n *Node) Literal() (string, bool) {
	if n.Kind() != KindNumber {
		return "", false
	}

	return n.text, true
}

// IntValue returns the integral value of a number node. Fractional literals
// are truncated toward zero.
func (n *Node) IntValue() (int, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}

	if i, err := strconv.Atoi(n.text); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		return 0, false
	}

	return int(f), true
}

// BoolValue returns the value of a bool node.
func (n *Node) BoolValue() (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}

	return n.flag, true
}

// SetText overwrites the value of a string node in place. It is a no-op on
// any other kind.
func (n *Node) SetText(s string) {
	if n.Kind() == KindString {
		n.text = s
	}
}
