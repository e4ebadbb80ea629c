package gen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"dashboard-converter/internal/layout"
	"dashboard-converter/internal/schema"
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

var (
	//go:embed templates/dashboard.json
	dashboardTemplate []byte

	//go:embed templates/elements.json
	elementsTemplate []byte
)

// ErrNoMeasurements is returned when no selected measurement carries the grouping.
var ErrNoMeasurements = errors.New("no measurement carries the requested grouping")

// GeneratorConfig holds configuration for dashboard generation.
type GeneratorConfig struct {
	// Datasource is the datasource every generated panel queries.
	Datasource string
	// NewUID returns the UID of a generated dashboard.
	NewUID func() string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Datasource: "indicators",
		NewUID:     func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Generator builds dashboards from measurement selections.
type Generator struct {
	config    GeneratorConfig
	dashboard *node.Node
	elements  *node.Node
}

// NewGenerator creates a Generator. Empty config fields take their defaults.
func NewGenerator(config GeneratorConfig) (*Generator, error) {
	def := DefaultGeneratorConfig()
	if config.Datasource == "" {
		config.Datasource = def.Datasource
	}

	if config.NewUID == nil {
		config.NewUID = def.NewUID
	}

	dashboard, err := node.Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}

	elements, err := node.Parse(elementsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing element templates: %w", err)
	}

	return &Generator{config: config, dashboard: dashboard, elements: elements}, nil
}

// Request describes the dashboard to generate.
type Request struct {
	// Label is the grouping shown by the dashboard. It is also the title.
	Label string
	// Filter restricts the series to matching group values. Without a
	// filter the dashboard gets a template variable selecting them.
	Filter string
	// Selections are the metrics and their measurements, in panel order.
	Selections []schema.Selection
}

type queryData struct {
	Metric      string
	Measurement string
	Where       string
	GroupBy     string
	Time        bool
}

var queryTemplate = template.Must(template.New("query").Parse(
	`SELECT sum("{{.Metric}}") FROM "{{.Measurement}}" WHERE $timeFilter` +
		`{{with .Where}} AND ({{.}}){{end}}` +
		` GROUP BY {{if .Time}}time($interval), {{end}}{{.GroupBy}} fill(none)`))

func renderQuery(d queryData) (string, error) {
	var buf bytes.Buffer
	if err := queryTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// ipSides strips the direction from client/server tags.
var ipSides = regexp.MustCompile(`\b(?:client|server)_`)

// Generate builds a new dashboard for req.
func (g *Generator) Generate(req Request) (*node.Node, error) {
	if !hasMeasurements(req.Selections) {
		return nil, fmt.Errorf("%w %q", ErrNoMeasurements, req.Label)
	}

	doc := g.dashboard.Clone()
	doc.Set("uid", node.String(g.config.NewUID()))
	doc.Set("title", node.String(req.Label))

	b := &build{g: g, req: req, doc: doc, panels: doc.Get("panels")}
	b.header()

	for _, sel := range req.Selections {
		if err := b.selection(sel); err != nil {
			return nil, fmt.Errorf("metric %q: %w", sel.Metric, err)
		}
	}

	return doc, nil
}

func hasMeasurements(selections []schema.Selection) bool {
	for _, s := range selections {
		if len(s.Measurements) > 0 {
			return true
		}
	}

	return false
}

// build is the state of one generation.
type build struct {
	g      *Generator
	req    Request
	doc    *node.Node
	panels *node.Node
	nextID int
	offset int
}

// header titles the template panels and moves the generation below them.
func (b *build) header() {
	for _, p := range b.panels.Items() {
		if id, ok := p.Get("id").IntValue(); ok && id >= b.nextID {
			b.nextID = id + 1
		}

		title := b.req.Label
		if layout.IsRow(p) && b.req.Filter != "" {
			title += ": " + b.req.Filter
		}

		p.Set("title", node.String(title))
		b.offset = layout.Place(p, b.offset)
	}
}

func (b *build) selection(sel schema.Selection) error {
	var last queryData

	for _, m := range sel.Measurements {
		d := queryData{
			Metric:      sel.Metric,
			Measurement: m.Name,
			Where:       b.where(m.Tags),
			GroupBy:     quoteJoin(m.Tags),
			Time:        true,
		}

		title := fmt.Sprintf("%s - %q by %s", m.Name, sel.Metric, d.GroupBy)
		if b.req.Filter != "" {
			title = fmt.Sprintf("%s - %q with %s", m.Name, sel.Metric, d.Where)
		}

		if err := b.graph(title, aliasOf(m.Tags), d); err != nil {
			return err
		}

		last = d
	}

	switch {
	case last.Measurement == "":
		return nil
	case b.req.Filter == "":
		if !sel.IsIP() {
			b.variable(last)
		}

		return nil
	case sel.IsIP():
		return b.onDemand(last)
	case len(sel.IPMeasurements) > 0:
		return b.ipBreakdown(sel, last)
	default:
		return nil
	}
}

// where filters every tag by the request filter, or by the dashboard
// variable without one.
func (b *build) where(tags []string) string {
	value := "$" + b.variableName()
	if b.req.Filter != "" {
		value = b.req.Filter
	}

	conds := make([]string, len(tags))
	for i, t := range tags {
		conds[i] = fmt.Sprintf(`"%s" =~ /^%s$/`, t, value)
	}

	return strings.Join(conds, " OR ")
}

func (b *build) variableName() string {
	return strings.Join(strings.Fields(b.req.Label), "_")
}

// add numbers, places and appends a panel.
func (b *build) add(p *node.Node) {
	p.Set("id", node.Int(b.nextID))
	b.nextID++

	b.offset = layout.Place(p, b.offset)

	if p.Get("datasource").IsMap() {
		p.Set("datasource", primitive.InfluxDatasource(b.g.config.Datasource))
	}

	b.panels.Append(p)
}

func (b *build) graph(title, alias string, d queryData) error {
	q, err := renderQuery(d)
	if err != nil {
		return err
	}

	p := b.g.elements.Get("graph").Clone()
	p.Set("title", node.String(title))

	target := p.Get("targets").Index(0)
	target.Set("alias", node.String(alias))
	target.Set("query", node.String(q))

	b.add(p)

	return nil
}

// variable adds the template variable selecting the group values, once.
func (b *build) variable(d queryData) {
	list := b.doc.Path("templating", "list")
	name := b.variableName()

	for _, v := range list.Items() {
		if v.Get("name").Text() == name {
			return
		}
	}

	v := b.g.elements.Get("variable").Clone()
	v.Set("name", node.String(name))
	v.Set("label", node.String(b.req.Label))
	v.Set("query", node.String(fmt.Sprintf(`SHOW TAG VALUES FROM "%s" WITH KEY IN (%s)`, d.Measurement, d.GroupBy)))
	v.Set("datasource", primitive.InfluxDatasource(b.g.config.Datasource))

	list.Append(v)
}

// onDemand adds the client/server panels of an IP filtered dashboard.
func (b *build) onDemand(d queryData) error {
	f := b.req.Filter
	where := fmt.Sprintf(`"client_ip" =~ /^%s$/ OR "server_ip" =~ /^%s$/`, f, f)

	query := func(measurement string, time bool) (*node.Node, error) {
		q, err := renderQuery(queryData{Metric: d.Metric, Measurement: measurement, Where: where, GroupBy: d.GroupBy, Time: time})
		if err != nil {
			return nil, err
		}

		return node.String(q), nil
	}

	queries := []struct {
		panel, target int
		measurement   string
		time          bool
	}{
		{1, 0, "tcp_timeslice_4_tuple", true},
		{1, 1, "tcp_open_4_tuple", true},
		{2, 0, "tcp_timeslice_4_tuple", false},
		{3, 0, "tcp_open_4_tuple", false},
	}

	panels := b.g.elements.Get("ondemand").Clone().Items()
	panels[0].Get("options").Set("cidr", node.String(f))
	panels[1].Set("title", node.String("Client <-> Server - "+d.Metric))
	panels[2].Set("title", node.String("Timeslice: Client <-> Server - "+d.Metric))
	panels[3].Set("title", node.String("Open: Client <-> Server - "+d.Metric))

	for _, q := range queries {
		n, err := query(q.measurement, q.time)
		if err != nil {
			return err
		}

		panels[q.panel].Get("targets").Index(q.target).Set("query", n)
	}

	for _, p := range panels {
		b.add(p)
	}

	return nil
}

// ipBreakdown adds a row of per IP graphs below the grouped ones.
func (b *build) ipBreakdown(sel schema.Selection, d queryData) error {
	where := ipSides.ReplaceAllString(d.Where, "")

	row := b.g.elements.Get("row").Clone()
	row.Set("title", node.String("IP "+where))
	b.add(row)

	for _, m := range sel.IPMeasurements {
		title := fmt.Sprintf("%s - %q with %s", m, sel.Metric, where)
		if err := b.graph(title, "$tag_ip", queryData{
			Metric:      sel.Metric,
			Measurement: m,
			Where:       where,
			GroupBy:     `"ip"`,
			Time:        true,
		}); err != nil {
			return err
		}
	}

	return nil
}

func quoteJoin(tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = `"` + t + `"`
	}

	return strings.Join(quoted, ", ")
}

func aliasOf(tags []string) string {
	refs := make([]string, len(tags))
	for i, t := range tags {
		refs[i] = "$tag_" + t
	}

	return strings.Join(refs, ",")
}
