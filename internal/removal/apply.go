package removal

import (
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

type leafRule struct {
	field string
	rules []primitive.Replacement
}

type structuralRule struct {
	field   string
	items   []primitive.Expression
	scalars []primitive.Expression
	keys    []string
	drop    bool
}

// RuleSet is an immutable compiled rule set.
type RuleSet struct {
	leaf       []leafRule
	structural []structuralRule
}

// Fields lists the leaf and structural fields the rule set acts on.
func (rs *RuleSet) Fields() (leaf, structural []string) {
	for _, r := range rs.leaf {
		leaf = append(leaf, r.field)
	}

	for _, r := range rs.structural {
		structural = append(structural, r.field)
	}

	return leaf, structural
}

// Apply rewrites root in place.
func (rs *RuleSet) Apply(root *node.Node) {
	switch root.Kind() {
	case node.KindMap:
		rs.applyStructural(root)

		for _, k := range root.Keys() {
			if child := root.Get(k); child.Kind().IsContainer() {
				rs.Apply(child)
			}
		}

		rs.applyLeaf(root)
	case node.KindList:
		for _, it := range root.Items() {
			rs.Apply(it)
		}
	}
}

// Run is Apply shaped as a pipeline step.
func (rs *RuleSet) Run(root *node.Node) error {
	rs.Apply(root)
	return nil
}

func (rs *RuleSet) applyStructural(m *node.Node) {
	for _, r := range rs.structural {
		if !m.Has(r.field) {
			continue
		}

		if r.drop {
			primitive.DeleteKey(m, r.field)
			continue
		}

		primitive.DeleteMatching(m, r.field, r.items...)
		primitive.DeleteMatchingScalars(m, r.field, r.scalars...)

		for _, k := range r.keys {
			primitive.DeleteChildKey(m, r.field, k)
		}
	}
}

func (rs *RuleSet) applyLeaf(m *node.Node) {
	for _, r := range rs.leaf {
		primitive.ReplaceString(m, r.field, r.rules...)
	}
}
