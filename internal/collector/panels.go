package collector

import (
	"fmt"
	"regexp"
	"strings"

	"dashboard-converter/internal/layout"
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

// Panel types handled by the merged conversion.
const (
	PanelRow        = "row"
	PanelTimeseries = "timeseries"
	PanelTable      = "table"
	PanelOnDemand   = "cclear-ondemand-panel"
)

// OnDemandMeasurements are queried interactively and exist once for all
// collectors, so panels reading them are never duplicated.
var OnDemandMeasurements = []string{"flow_data_4_Tuple", "flow_data_5_Tuple", "tcp_4_tupe", "tcp_5_Tuple"}

var (
	// tagProbe matches a query already listing Tag in a comma separated clause.
	tagProbe = regexp.MustCompile(`,\s*"?` + Tag + `"?|"?` + Tag + `"?\s*,`)

	// wildcardLinks makes drill-down links of a merged table select every
	// collector node.
	wildcardLinks = []primitive.Replacement{
		primitive.Regex(`var-cstor_name=(?:\$\{cstor_name(?::text)?\}|\$cstor_name)`, "var-cstor_name=.*"),
		primitive.Regex(`var-cstor_ip=(?:\$\{cstor_ip(?::text)?\}|\$cstor_ip)`, "var-cstor_ip=.*"),
	}
)

func isOnDemand(targets []*node.Node) bool {
	for _, t := range targets {
		if primitive.ContainsAny(t.Get("query").Text(), OnDemandMeasurements) {
			return true
		}
	}

	return false
}

// ensureMap returns owner[key], replacing it by an empty map when it is
// missing or not a map.
func ensureMap(owner *node.Node, key string) *node.Node {
	if m := owner.Get(key); m.IsMap() {
		return m
	}

	owner.Set(key, node.NewMap())

	return owner.Get(key)
}

// panels converts the children of owner and returns the offset below the
// last one. Row children are converted recursively but do not advance the
// offset of the row's siblings.
func (m *Merged) panels(owner *node.Node, offset int) (int, error) {
	list := owner.Get("panels")
	if list.Len() == 0 {
		return offset, nil
	}

	out := make([]*node.Node, 0, list.Len())

	for _, p := range list.Items() {
		switch p.Get("type").Text() {
		case PanelRow:
			offset = layout.Place(p, offset)
			out = append(out, p)

			if _, err := m.panels(p, offset); err != nil {
				return 0, err
			}
		case PanelTimeseries:
			if err := m.timeseries(p); err != nil {
				return 0, fmt.Errorf("panel %q: %w", p.Get("title").Text(), err)
			}

			offset = layout.Place(p, offset)
			out = append(out, p)
		case PanelTable:
			tables, next, err := m.table(p, offset)
			if err != nil {
				return 0, fmt.Errorf("panel %q: %w", p.Get("title").Text(), err)
			}

			offset = next
			out = append(out, tables...)
		case PanelOnDemand:
			onDemandOptions(p, owner.Get("title").Text())

			offset = layout.Place(p, offset)
			out = append(out, p)
		default:
			offset = layout.Place(p, offset)
			out = append(out, p)
		}
	}

	list.SetItems(out)

	return offset, nil
}

// timeseries groups the queries of a mapped panel by collector node and,
// unless they read on-demand measurements, appends one copy of every query
// per collector under a mixed datasource.
func (m *Merged) timeseries(panel *node.Node) error {
	ds := panel.Get("datasource")

	targets, err := m.config.Table.Targets(primitive.DatasourceName(ds))
	if err != nil || len(targets) == 0 {
		return err
	}

	queries := panel.Get("targets").Items()
	for _, q := range queries {
		primitive.AddTagToGroupBy(q, Tag, tagProbe, m.config.Table.SourceName())
	}

	if isOnDemand(queries) {
		return nil
	}

	ids := newRefIDs(queries)
	copies := make([]*node.Node, 0, len(queries)*len(targets))

	for _, q := range queries {
		if !q.Has("datasource") {
			q.Set("datasource", ds.Clone())
		}

		for _, t := range targets {
			id, err := ids.take()
			if err != nil {
				return err
			}

			c := q.Clone()
			c.Set("datasource", primitive.InfluxDatasource(t.Datasource))
			c.Set("refId", node.String(id))
			primitive.ReplaceString(c, "alias", m.labels[t.Collector]...)
			primitive.ReplaceEverywhere(c, "url", m.links[t.Collector])

			copies = append(copies, c)
		}
	}

	if len(copies) == 0 {
		return nil
	}

	panel.Set("datasource", primitive.MixedDatasource())
	panel.Get("targets").Append(copies...)

	return nil
}

// table places a mapped table panel, adds the collector column to its
// organize transform and, unless it reads on-demand measurements, follows it
// with one clone per collector.
func (m *Merged) table(panel *node.Node, offset int) ([]*node.Node, int, error) {
	targets, err := m.config.Table.Targets(primitive.DatasourceName(panel.Get("datasource")))
	if err != nil {
		return nil, offset, err
	}

	offset = layout.Place(panel, offset)
	out := []*node.Node{panel}

	if len(targets) == 0 {
		return out, offset, nil
	}

	updateOrganize(panel)

	if isOnDemand(panel.Get("targets").Items()) {
		return out, offset, nil
	}

	title := fmt.Sprintf("(%s) %s", m.config.Table.SourceName(), panel.Get("title").Text())
	panel.Set("title", node.String(title))
	primitive.UpdateOverrideLinks(panel.Path("fieldConfig", "overrides"), wildcardLinks)

	for _, t := range targets {
		c := panel.Clone()
		primitive.ReplaceString(c, "title", m.labels[t.Collector]...)
		offset = layout.Place(c, offset)

		ds := primitive.InfluxDatasource(t.Datasource)
		c.Set("datasource", ds)

		for _, q := range c.Get("targets").Items() {
			q.Set("datasource", ds.Clone())
		}

		primitive.ReplaceEverywhere(c, "url", m.links[t.Collector])
		out = append(out, c)
	}

	return out, offset, nil
}

// updateOrganize shows Tag as the first column of the first organize
// transform and hides the time column.
func updateOrganize(panel *node.Node) {
	for _, tr := range panel.Get("transformations").Items() {
		if tr.Get("id").Text() != "organize" || !tr.Get("options").IsMap() {
			continue
		}

		opts := tr.Get("options")
		ensureMap(opts, "renameByName").Set(Tag, node.String(TagDisplay))

		index := ensureMap(opts, "indexByName")
		if !index.Has(Tag) {
			for _, k := range index.Keys() {
				if i, ok := index.Get(k).IntValue(); ok {
					index.Set(k, node.Int(i+1))
				}
			}
		}

		index.SetFirst(Tag, node.Int(0))
		ensureMap(opts, "excludeByName").Set("Time", node.Bool(true))

		return
	}
}

// onDemandOptions points an on-demand panel at the tuple dataset named by
// the title of the row holding it.
func onDemandOptions(panel *node.Node, rowTitle string) {
	analytics := "flow_data_4_Tuple"
	if strings.Contains(rowTitle, "TCP") {
		analytics = "tcp_4_Tuple"
	}

	if strings.Contains(rowTitle, "5 Tuple") {
		analytics = strings.ReplaceAll(analytics, "4", "5")
	}

	opts := ensureMap(panel, "options")
	opts.Set("ltType", node.String("Analytics, cStor and IP/CIDR "))
	opts.Set("analyticsType", node.String(analytics))
	opts.Set("nmName", node.String(""))
	opts.Set("cStorName", node.String("${cstor_name:raw}"))
}
