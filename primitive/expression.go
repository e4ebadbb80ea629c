package primitive

import (
	"fmt"
	"regexp"
	"strings"

	"dashboard-converter/node"
)

// Expression is one term of a list deletion predicate. Field selects the
// compared value inside a map item; an empty Field compares the whole item.
type Expression struct {
	Logic   LogicEnum
	Field   string
	Op      OpEnum
	Operand string

	re *regexp.Regexp
}

func Equal(field, operand string) Expression {
	return Expression{Field: field, Op: OpEqual, Operand: operand}
}

func Contains(field, operand string) Expression {
	return Expression{Field: field, Op: OpContains, Operand: operand}
}

// Matches panics when pattern does not compile; use NewExpression for
// patterns read at run time.
func Matches(field, pattern string) Expression {
	return Expression{Field: field, Op: OpMatch, Operand: pattern, re: regexp.MustCompile(pattern)}
}

// NewExpression validates and builds an expression.
func NewExpression(logic LogicEnum, field string, op OpEnum, operand string) (Expression, error) {
	if !op.IsValid() {
		return Expression{}, fmt.Errorf("invalid operator %v", op)
	}

	e := Expression{Logic: logic, Field: field, Op: op, Operand: operand}

	if op == OpMatch {
		re, err := regexp.Compile(operand)
		if err != nil {
			return Expression{}, fmt.Errorf("compiling pattern %q: %w", operand, err)
		}

		e.re = re
	}

	return e, nil
}

// And returns a copy combined with AND.
func (e Expression) And() Expression {
	e.Logic = LogicAnd
	return e
}

// Or returns a copy combined with OR.
func (e Expression) Or() Expression {
	e.Logic = LogicOr
	return e
}

func (e Expression) String() string {
	field := e.Field
	if field == "" {
		field = "<item>"
	}

	return fmt.Sprintf("%v %s %v %q", e.Logic, field, e.Op, e.Operand)
}

// Eval evaluates the expression against a single item. A missing field
// never matches.
func (e Expression) Eval(item *node.Node) bool {
	v := item
	if e.Field != "" {
		v = item.Get(e.Field)
		if v == nil {
			return false
		}
	}

	switch e.Op {
	case OpEqual:
		return scalarText(v) == e.Operand
	case OpContains:
		switch v.Kind() {
		case node.KindString:
			return strings.Contains(v.Text(), e.Operand)
		case node.KindList:
			for _, it := range v.Items() {
				if scalarText(it) == e.Operand {
					return true
				}
			}

			return false
		case node.KindMap:
			return v.Has(e.Operand)
		default:
			return false
		}
	case OpMatch:
		re := e.re
		if re == nil {
			re = regexp.MustCompile(e.Operand)
		}

		if v.IsList() {
			for _, it := range v.Items() {
				if re.MatchString(scalarText(it)) {
					return true
				}
			}

			return false
		}

		return re.MatchString(scalarText(v))
	default:
		return false
	}
}

// Fold evaluates exprs as a left fold: the first expression seeds the
// result, each following one is OR'ed or AND'ed onto it by its Logic.
// An empty set never matches.
func Fold(item *node.Node, exprs []Expression) bool {
	if len(exprs) == 0 {
		return false
	}

	acc := exprs[0].Eval(item)

	for _, e := range exprs[1:] {
		switch e.Logic {
		case LogicAnd:
			acc = acc && e.Eval(item)
		default:
			acc = acc || e.Eval(item)
		}
	}

	return acc
}

// matchItem applies the fold to a map item, to any map nested in a list
// item, and to scalar items when every expression compares the whole item.
func matchItem(item *node.Node, exprs []Expression) bool {
	switch item.Kind() {
	case node.KindMap:
		return Fold(item, exprs)
	case node.KindList:
		for _, it := range item.Items() {
			if matchItem(it, exprs) {
				return true
			}
		}

		return false
	default:
		for _, e := range exprs {
			if e.Field != "" {
				return false
			}
		}

		return Fold(item, exprs)
	}
}

// DeleteMatching removes every item of the list owner[key] matching exprs
// and returns how many were removed. An empty expression set removes nothing.
func DeleteMatching(owner *node.Node, key string, exprs ...Expression) int {
	if len(exprs) == 0 {
		return 0
	}

	return owner.Get(key).RemoveIf(func(it *node.Node) bool { return matchItem(it, exprs) })
}

// DeleteMatchingScalars removes the scalar items of owner[key] matching
// exprs. Field is ignored; the item text is compared.
func DeleteMatchingScalars(owner *node.Node, key string, exprs ...Expression) int {
	if len(exprs) == 0 {
		return 0
	}

	whole := make([]Expression, len(exprs))
	for i, e := range exprs {
		e.Field = ""
		whole[i] = e
	}

	return owner.Get(key).RemoveIf(func(it *node.Node) bool {
		return it.Kind().IsScalar() && Fold(it, whole)
	})
}

// scalarText is the text compared by operators: the value of a string, the
// literal of a number, or the compact JSON of anything else.
func scalarText(n *node.Node) string {
	switch n.Kind() {
	case node.KindString:
		return n.Text()
	case node.KindInvalid:
		return ""
	default:
		return n.String()
	}
}
