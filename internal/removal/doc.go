// Package removal strips a retired dimension from dashboards.
//
// The rules are a YAML template rendered for a Dimension (a tag, the
// dashboard variable filtering on it and its display label) and compiled
// once into a RuleSet:
//   - leaf rules rewrite string fields (query, url, title, alias, repeat);
//   - structural rules delete list items and map keys naming the dimension
//     (tags, list, groupBy, select, fields, indexByName, renameByName) or
//     drop a field (excludeByName).
//
// Apply visits every map depth first: structural rules, then children, then
// leaf rules. Applying a RuleSet twice gives the same tree as applying it once.
package removal
