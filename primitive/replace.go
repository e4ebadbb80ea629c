// Package primitive holds the atomic edits applied to dashboard trees.
//
// Every edit takes the owning map and a field key and touches only that
// field. A missing field, or a field of the wrong kind, makes the edit a
// no-op rather than an error.
package primitive

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"dashboard-converter/node"
)

// Replacement rewrites a string. Literal replacements substitute the
// replacement text verbatim, regex ones expand $1 style references.
type Replacement struct {
	Pattern *regexp.Regexp
	Replace string
	Literal bool

	// Mapping, when set, replaces each match by its entry.
	Mapping map[string]string
}

// Regex compiles a regular expression replacement. It panics on an invalid
// pattern, rule tables are compiled once at start up.
func Regex(pattern, replace string) Replacement {
	return Replacement{Pattern: regexp.MustCompile(pattern), Replace: replace}
}

// Literal replaces every occurrence of old with replacement.
func Literal(old, replacement string) Replacement {
	return Replacement{Pattern: regexp.MustCompile(regexp.QuoteMeta(old)), Replace: replacement, Literal: true}
}

// Lookup replaces every key of m by its value in a single pass, longest key
// first, so that a replacement is never rewritten again by a shorter key.
func Lookup(m map[string]string) Replacement {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			keys = append(keys, k)
		}
	}

	if len(keys) == 0 {
		return Replacement{}
	}

	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}

	return Replacement{Pattern: regexp.MustCompile(strings.Join(quoted, "|")), Mapping: m}
}

// LiteralPairs builds literal replacements for each old -> new pair, in order.
func LiteralPairs(pairs [][2]string) []Replacement {
	out := make([]Replacement, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == "" {
			continue
		}

		out = append(out, Literal(p[0], p[1]))
	}

	return out
}

func (r Replacement) Apply(s string) string {
	if r.Pattern == nil {
		return s
	}

	if r.Mapping != nil {
		return r.Pattern.ReplaceAllStringFunc(s, func(m string) string { return r.Mapping[m] })
	}

	if r.Literal {
		return r.Pattern.ReplaceAllLiteralString(s, r.Replace)
	}

	return r.Pattern.ReplaceAllString(s, r.Replace)
}

// ApplyAll runs the rules in order.
func ApplyAll(s string, rules []Replacement) string {
	for _, r := range rules {
		s = r.Apply(s)
	}

	return s
}

// ReplaceString rewrites owner[key] when it is a string. It reports whether
// the value changed.
func ReplaceString(owner *node.Node, key string, rules ...Replacement) bool {
	v := owner.Get(key)

	s, ok := v.Str()
	if !ok {
		return false
	}

	out := ApplyAll(s, rules)
	if out == s {
		return false
	}

	v.SetText(out)

	return true
}

// ReplaceStrings applies rules to each of keys.
func ReplaceStrings(owner *node.Node, keys []string, rules []Replacement) bool {
	changed := false

	for _, k := range keys {
		if ReplaceString(owner, k, rules...) {
			changed = true
		}
	}

	return changed
}

// ReplaceInList rewrites the string items of the list owner[key].
func ReplaceInList(owner *node.Node, key string, rules []Replacement) bool {
	changed := false

	for _, it := range owner.Get(key).Items() {
		s, ok := it.Str()
		if !ok {
			continue
		}

		if out := ApplyAll(s, rules); out != s {
			it.SetText(out)

			changed = true
		}
	}

	return changed
}

// ContainsAny reports whether s contains one of needles.
func ContainsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}

	return false
}
