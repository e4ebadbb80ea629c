package primitive

import (
	"dashboard-converter/node"
)

// UpdateOverrideLinks rewrites the url of every data link held by field
// overrides:
//
//	fieldConfig.overrides[].properties[id=links].value[].url
func UpdateOverrideLinks(overrides *node.Node, rules []Replacement) bool {
	changed := false

	for _, override := range overrides.Items() {
		for _, prop := range override.Get("properties").Items() {
			if prop.Get("id").Text() != "links" {
				continue
			}

			for _, link := range prop.Get("value").Items() {
				if ReplaceString(link, "url", rules...) {
					changed = true
				}
			}
		}
	}

	return changed
}

// ReplaceEverywhere applies rules to the key field of every map in the tree.
func ReplaceEverywhere(root *node.Node, key string, rules []Replacement) {
	node.WalkMaps(root, func(m *node.Node) {
		ReplaceString(m, key, rules...)
	})
}
