package node

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind discriminates the variants a Node can hold.
type Kind int

const (
	KindInvalid Kind = iota // zero value, never produced by the decoder
	KindNull
	KindBool
	KindNumber
	KindString
	KindMap
	KindList

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether the kind is a leaf value.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
}

// IsContainer reports whether the kind holds child nodes.
func (k Kind) IsContainer() bool {
	return k == KindMap || k == KindList
}
