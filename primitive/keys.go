package primitive

import (
	"dashboard-converter/node"
)

// Rename is a key move inside a child map.
type Rename struct {
	From, To string
}

// RenameKey moves owner[key][from] to owner[key][to], keeping its position.
func RenameKey(owner *node.Node, key string, r Rename) bool {
	return owner.Get(key).Rename(r.From, r.To)
}

// RenameKeys applies each rename in order.
func RenameKeys(owner *node.Node, key string, renames []Rename) bool {
	changed := false

	for _, r := range renames {
		if RenameKey(owner, key, r) {
			changed = true
		}
	}

	return changed
}

func DeleteKey(owner *node.Node, key string) bool {
	return owner.Delete(key)
}

// DeleteChildKey removes owner[parent][child].
func DeleteChildKey(owner *node.Node, parent, child string) bool {
	return owner.Get(parent).Delete(child)
}

// Assignment sets Key to Value.
type Assignment struct {
	Key   string
	Value *node.Node
}

// EditByMatch applies assignments to owner when owner[matchKey] equals
// matchValue. Each assigned value is cloned.
func EditByMatch(owner *node.Node, matchKey string, matchValue *node.Node, assignments []Assignment) bool {
	if len(assignments) == 0 || !owner.Get(matchKey).Equal(matchValue) {
		return false
	}

	for _, a := range assignments {
		owner.Set(a.Key, a.Value.Clone())
	}

	return true
}
