package primitive

import "strings"

//go:generate go tool stringer -type=OpEnum,LogicEnum -output=operator_string.go

// OpEnum is the comparison applied by an Expression.
type OpEnum int

const (
	_ OpEnum = iota // skip zero value, use it as a default (invalid) value for OpEnum

	OpEqual    // textual equality
	OpContains // substring of a string, member of a list, key of a map
	OpMatch    // regular expression match

	// OpTotal is a constant that represents the total number of operators defined
	OpTotal = int(iota)
)

func (o OpEnum) IsValid() bool {
	return o > 0 && int(o) < OpTotal
}

// LogicEnum combines an Expression with the accumulated result of the
// expressions before it.
type LogicEnum int

const (
	LogicOr LogicEnum = iota
	LogicAnd
)

// ParseOp parses the textual operator names used by rule files.
func ParseOp(s string) (OpEnum, bool) {
	switch s {
	case "eq", "equal", "==":
		return OpEqual, true
	case "contains":
		return OpContains, true
	case "match", "matches", "=~":
		return OpMatch, true
	default:
		return 0, false
	}
}

// ParseLogic parses "or"/"and" case-insensitively. An empty string is OR.
func ParseLogic(s string) (LogicEnum, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "or":
		return LogicOr, true
	case "and":
		return LogicAnd, true
	default:
		return 0, false
	}
}
