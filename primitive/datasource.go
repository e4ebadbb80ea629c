package primitive

import (
	"strings"

	"dashboard-converter/node"
)

const (
	InfluxType = "influxdb"
	MixedType  = "mixed"
	MixedUID   = "-- Mixed --"
)

// IgnoredDatasources are never mapped; a datasource name containing one of
// them (case-insensitively) is left untouched.
var IgnoredDatasources = []string{"grafana", "mixed", "dashboard"}

// DatasourceName returns the name of a datasource reference: the uid of a
// {type, uid} map, or the bare string.
func DatasourceName(ds *node.Node) string {
	if ds.IsMap() {
		return strings.TrimSpace(ds.Get("uid").Text())
	}

	return strings.TrimSpace(ds.Text())
}

// IsIgnoredDatasource reports whether name is empty or one of the built-in
// datasources.
func IsIgnoredDatasource(name string) bool {
	if name == "" {
		return true
	}

	return ContainsAny(strings.ToLower(name), IgnoredDatasources)
}

func InfluxDatasource(name string) *node.Node {
	return node.Pairs("type", InfluxType, "uid", name)
}

func MixedDatasource() *node.Node {
	return node.Pairs("type", MixedType, "uid", MixedUID)
}

// RetargetDatasource returns a reference to name shaped like ds: a map keeps
// its other keys, a string stays a string.
func RetargetDatasource(ds *node.Node, name string) *node.Node {
	if ds.IsMap() {
		c := ds.Clone()
		c.Set("uid", node.String(name))

		return c
	}

	return node.String(name)
}
