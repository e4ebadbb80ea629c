package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-converter/node"
)

func parse(t *testing.T, s string) *node.Node {
	t.Helper()

	n, err := node.Parse([]byte(s))
	require.NoError(t, err)

	return n
}

func TestReplaceStringSkipsNonStrings(t *testing.T) {
	owner := parse(t, `{"query":"a AND b","h":8,"list":["a","b",1]}`)

	assert.True(t, ReplaceString(owner, "query", Regex(`(?i:and)`, "OR")))
	assert.False(t, ReplaceString(owner, "h", Regex(`8`, "9")))
	assert.False(t, ReplaceString(owner, "nope", Regex(`a`, "b")))
	assert.True(t, ReplaceInList(owner, "list", []Replacement{Literal("a", "z")}))

	assert.Equal(t, `{"query":"a OR b","h":8,"list":["z","b",1]}`, owner.String())
}

func TestLiteralIgnoresMetacharacters(t *testing.T) {
	r := Literal("SNI Name (x)", "$1 Hosts")
	assert.Equal(t, "top $1 Hosts", r.Apply("top SNI Name (x)"))
}

func TestLookupSinglePass(t *testing.T) {
	r := Lookup(map[string]string{"abc": "abc_global", "abcd": "zz", "": "never"})

	assert.Equal(t, "/d/abc_global/x /d/zz/y", r.Apply("/d/abc/x /d/abcd/y"))
	assert.Equal(t, "same", Lookup(nil).Apply("same"))
}

func TestRenameKey(t *testing.T) {
	owner := parse(t, `{"indexByName":{"Time":0,"Hosts Group":1,"bps":2}}`)

	assert.True(t, RenameKey(owner, "indexByName", Rename{From: "Hosts Group", To: "SNI Name"}))
	assert.False(t, RenameKey(owner, "indexByName", Rename{From: "absent", To: "x"}))
	assert.False(t, RenameKey(owner, "absent", Rename{From: "Time", To: "x"}))

	assert.Equal(t, `{"indexByName":{"Time":0,"SNI Name":1,"bps":2}}`, owner.String())
}

func TestDeleteKeys(t *testing.T) {
	owner := parse(t, `{"options":{"a":1,"b":2},"excludeByName":{"x":true}}`)

	assert.True(t, DeleteChildKey(owner, "options", "a"))
	assert.False(t, DeleteChildKey(owner, "options", "a"))
	assert.True(t, DeleteKey(owner, "excludeByName"))
	assert.Equal(t, `{"options":{"b":2}}`, owner.String())
}

func TestDeleteMatchingFold(t *testing.T) {
	tests := []struct {
		name  string
		exprs []Expression
		want  string
	}{
		{
			name:  "no expressions is a no-op",
			exprs: nil,
			want:  `[{"key":"nm","value":"$nm"},{"key":"nm","value":"fixed"},{"key":"app","value":"$nm"}]`,
		},
		{
			name:  "or",
			exprs: []Expression{Equal("key", "app"), Equal("value", "fixed")},
			want:  `[{"key":"nm","value":"$nm"}]`,
		},
		{
			name:  "and",
			exprs: []Expression{Equal("key", "nm"), Contains("value", "$nm").And()},
			want:  `[{"key":"nm","value":"fixed"},{"key":"app","value":"$nm"}]`,
		},
		{
			name:  "left fold",
			exprs: []Expression{Equal("key", "app"), Equal("key", "nm"), Contains("value", "fix").And()},
			want:  `[{"key":"nm","value":"$nm"},{"key":"app","value":"$nm"}]`,
		},
		{
			name:  "missing field never matches",
			exprs: []Expression{Equal("operator", "=")},
			want:  `[{"key":"nm","value":"$nm"},{"key":"nm","value":"fixed"},{"key":"app","value":"$nm"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := parse(t, `{"tags":[{"key":"nm","value":"$nm"},{"key":"nm","value":"fixed"},{"key":"app","value":"$nm"}]}`)
			DeleteMatching(owner, "tags", tt.exprs...)
			assert.Equal(t, tt.want, owner.Get("tags").String())
		})
	}
}

func TestDeleteMatchingNestedLists(t *testing.T) {
	owner := parse(t, `{"select":[[{"params":["bps"],"type":"field"}],[{"params":["network_monitor_name"],"type":"field"},{"params":[],"type":"last"}]]}`)

	n := DeleteMatching(owner, "select", Contains("params", "network_monitor_name"))
	assert.Equal(t, 1, n)
	assert.Equal(t, `{"select":[[{"params":["bps"],"type":"field"}]]}`, owner.String())
}

func TestDeleteMatchingScalars(t *testing.T) {
	owner := parse(t, `{"fields":["Time","Network Monitor","network monitor name",{"a":1}]}`)

	e, err := NewExpression(LogicOr, "", OpMatch, `(?i)network\s+monitor`)
	require.NoError(t, err)

	assert.Equal(t, 2, DeleteMatchingScalars(owner, "fields", e))
	assert.Equal(t, `{"fields":["Time",{"a":1}]}`, owner.String())
}

func TestNewExpressionErrors(t *testing.T) {
	_, err := NewExpression(LogicOr, "x", OpEnum(0), "a")
	assert.Error(t, err)

	_, err = NewExpression(LogicOr, "x", OpMatch, "(")
	assert.Error(t, err)
}

func TestEditByMatch(t *testing.T) {
	variable := parse(t, `{"name":"cstor_name","query":"old","multi":false}`)
	all := node.Pairs("text", []string{"All"})

	ok := EditByMatch(variable, "name", node.String("cstor_name"), []Assignment{
		{Key: "query", Value: node.String("new")},
		{Key: "multi", Value: node.Bool(true)},
		{Key: "current", Value: all},
	})
	require.True(t, ok)
	assert.Equal(t, `{"name":"cstor_name","query":"new","multi":true,"current":{"text":["All"]}}`, variable.String())

	// assigned values are copies
	all.Set("text", node.String("changed"))
	assert.Equal(t, `{"text":["All"]}`, variable.Get("current").String())

	assert.False(t, EditByMatch(variable, "name", node.String("cstor_ip"), []Assignment{{Key: "query", Value: node.String("x")}}))
}

func TestUpdateOverrideLinks(t *testing.T) {
	overrides := parse(t, `[{"matcher":{"id":"byName"},"properties":[
		{"id":"links","value":[{"title":"x","url":"/d/abc?var-cstor_name=${cstor_name:text}&var-cstor_ip=$cstor_ip"}]},
		{"id":"unit","value":"bps"}]}]`)

	changed := UpdateOverrideLinks(overrides, []Replacement{
		Regex(`var-cstor_name=\$\{cstor_name:text\}`, "var-cstor_name=.*"),
		Regex(`var-cstor_ip=\$cstor_ip`, "var-cstor_ip=.*"),
	})

	require.True(t, changed)
	assert.Equal(t, "/d/abc?var-cstor_name=.*&var-cstor_ip=.*",
		overrides.Index(0).Get("properties").Index(0).Get("value").Index(0).Get("url").Text())
}

func TestDatasourceHelpers(t *testing.T) {
	assert.Equal(t, "indicators", DatasourceName(InfluxDatasource("indicators")))
	assert.Equal(t, "indicators", DatasourceName(node.String(" indicators ")))
	assert.Equal(t, "", DatasourceName(nil))

	assert.True(t, IsIgnoredDatasource(""))
	assert.True(t, IsIgnoredDatasource("-- Grafana --"))
	assert.True(t, IsIgnoredDatasource(MixedUID))
	assert.False(t, IsIgnoredDatasource("indicators"))

	ds := node.Pairs("type", "influxdb", "uid", "a", "extra", 1)
	assert.Equal(t, `{"type":"influxdb","uid":"b","extra":1}`, RetargetDatasource(ds, "b").String())
	assert.Equal(t, `"b"`, RetargetDatasource(node.String("a"), "b").String())
}

func TestAddTagToGroupBy(t *testing.T) {
	tests := []struct {
		name, query, alias string
		wantQuery          string
		wantAlias          string
	}{
		{
			name:      "no fill",
			query:     `SELECT x FROM y WHERE $timeFilter GROUP BY time($interval)`,
			alias:     "",
			wantQuery: `SELECT x FROM y WHERE $timeFilter GROUP BY time($interval), "cstor_name"`,
			wantAlias: "cClear $tag_cstor_name",
		},
		{
			name:      "no group by",
			query:     `SELECT x FROM y WHERE $timeFilter`,
			alias:     "Throughput",
			wantQuery: `SELECT x FROM y WHERE $timeFilter GROUP BY "cstor_name"`,
			wantAlias: "Throughput cClear $tag_cstor_name",
		},
		{
			name:      "order and limit tail",
			query:     `SELECT x FROM y WHERE $timeFilter GROUP BY "app" ORDER BY time DESC LIMIT 10`,
			alias:     "$tag_app",
			wantQuery: `SELECT x FROM y WHERE $timeFilter GROUP BY "app", "cstor_name" ORDER BY time DESC LIMIT 10`,
			wantAlias: "cClear $tag_cstor_name, $tag_app",
		},
		{
			name:      "timezone tail",
			query:     `SELECT x FROM y WHERE $timeFilter GROUP BY time($__interval) tz('UTC')`,
			alias:     "",
			wantQuery: `SELECT x FROM y WHERE $timeFilter GROUP BY time($__interval), "cstor_name" tz('UTC')`,
			wantAlias: "cClear $tag_cstor_name",
		},
		{
			name:      "no group by with limit",
			query:     `SELECT x FROM y WHERE $timeFilter LIMIT 5`,
			alias:     "",
			wantQuery: `SELECT x FROM y WHERE $timeFilter GROUP BY "cstor_name" LIMIT 5`,
			wantAlias: "cClear $tag_cstor_name",
		},
		{
			name:      "already grouped",
			query:     `SELECT x FROM y GROUP BY "cstor_name", time(1m)`,
			alias:     "$tag_cstor_name",
			wantQuery: `SELECT x FROM y GROUP BY "cstor_name", time(1m)`,
			wantAlias: "$tag_cstor_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := node.Pairs("query", tt.query, "rawQuery", true, "alias", tt.alias)

			AddTagToGroupBy(target, "cstor_name", nil, "cClear")
			assert.Equal(t, tt.wantQuery, target.Get("query").Text())
			assert.Equal(t, tt.wantAlias, target.Get("alias").Text())

			once := target.Clone()
			AddTagToGroupBy(target, "cstor_name", nil, "cClear")
			assert.True(t, once.Equal(target))
		})
	}
}
