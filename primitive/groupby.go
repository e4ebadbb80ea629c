package primitive

import (
	"regexp"
	"strings"

	"dashboard-converter/node"
)

var (
	groupByPattern = regexp.MustCompile(`(?i)\bgroup\s+by\b`)
	tailPattern    = regexp.MustCompile(`(?i)\b(?:fill\s*\(|order\s+by\b|s?limit\b|s?offset\b|tz\s*\()`)
)

// AddTagToGroupBy makes target group its series by tag:
//   - a raw query gets `"tag"` appended to its GROUP BY clause (before any
//     fill() or ordering tail) unless probe already matches the query;
//   - a groupBy list gets a tag clause at index 0 unless one names tag;
//   - the alias gets a "label $tag_<tag>" prefix unless it already
//     references the tag.
func AddTagToGroupBy(target *node.Node, tag string, probe *regexp.Regexp, label string) {
	if !target.IsMap() {
		return
	}

	if raw, _ := target.Get("rawQuery").BoolValue(); raw {
		if q, ok := target.Get("query").Str(); ok && !queryGroupsBy(q, tag, probe) {
			target.Get("query").SetText(injectGroupBy(q, tag))
		}
	}

	if gb := target.Get("groupBy"); gb.IsList() && !hasGroupByTag(gb, tag) {
		gb.Insert(0, node.Pairs("params", []string{tag}, "type", "tag"))
	}

	alias := target.Get("alias").Text()
	target.Set("alias", node.String(aliasWithTag(alias, tag, label)))
}

func queryGroupsBy(q, tag string, probe *regexp.Regexp) bool {
	if probe != nil && probe.MatchString(q) {
		return true
	}

	loc := groupByPattern.FindStringIndex(q)
	if loc == nil {
		return false
	}

	clause := regexp.MustCompile(`(?:^|[\s,])"?` + regexp.QuoteMeta(tag) + `"?(?:[\s,)]|$)`)

	return clause.MatchString(q[loc[1]:])
}

// injectGroupBy adds tag to the last GROUP BY clause of q, or adds the
// clause, ahead of any fill, ORDER BY, LIMIT, OFFSET or tz tail.
func injectGroupBy(q, tag string) string {
	ins := `, "` + tag + `"`
	from := 0

	if all := groupByPattern.FindAllStringIndex(q, -1); len(all) > 0 {
		from = all[len(all)-1][1]
	} else {
		ins = ` GROUP BY "` + tag + `"`
	}

	loc := tailPattern.FindStringIndex(q[from:])
	if loc == nil {
		return strings.TrimRight(q, " ") + ins
	}

	i := from + loc[0]

	return strings.TrimRight(q[:i], " ") + ins + " " + q[i:]
}

func hasGroupByTag(groupBy *node.Node, tag string) bool {
	for _, clause := range groupBy.Items() {
		if Contains("params", tag).Eval(clause) {
			return true
		}
	}

	return false
}

func aliasWithTag(alias, tag, label string) string {
	ref := "$tag_" + tag

	switch {
	case strings.Contains(alias, ref):
		return alias
	case strings.Contains(alias, "$tag_"):
		i := strings.Index(alias, "$tag_")
		return alias[:i] + label + " " + ref + ", " + alias[i:]
	case strings.TrimSpace(alias) == "":
		return label + " " + ref
	default:
		return strings.TrimRight(alias, " ") + " " + label + " " + ref
	}
}
