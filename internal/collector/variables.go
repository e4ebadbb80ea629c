package collector

import (
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

const (
	// Tag is the series tag naming the collector node a point comes from.
	Tag = "cstor_name"
	// TagDisplay is the column title of Tag in tables.
	TagDisplay = "cStor Name"
)

// variableQueries are the queries of the template variables selecting
// collector nodes on a merged dashboard.
var variableQueries = []struct {
	name  string
	query string
}{
	{"cstor_name", `show tag values from cstor_ports with key="cstor_name"`},
	{"cstor_ip", `show tag values from cstor_ports with key="cstor_ip" where cstor_name =~ /^$cstor_name$/`},
}

// allSelected is the "current" value of a variable defaulting to All.
func allSelected() *node.Node {
	return node.Pairs(
		"selected", true,
		"text", []string{"All"},
		"value", []string{"$__all"},
	)
}

// convertVariables turns the collector variables into multi-value
// variables defaulting to All, queried from datasource.
func convertVariables(list *node.Node, datasource *node.Node) {
	for _, v := range list.Items() {
		for _, vq := range variableQueries {
			primitive.EditByMatch(v, "name", node.String(vq.name), []primitive.Assignment{
				{Key: "query", Value: node.String(vq.query)},
				{Key: "current", Value: allSelected()},
				{Key: "includeAll", Value: node.Bool(true)},
				{Key: "multi", Value: node.Bool(true)},
				{Key: "datasource", Value: datasource},
			})
		}
	}
}
