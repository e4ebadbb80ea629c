package collector

import (
	"fmt"

	"go.uber.org/zap"

	"dashboard-converter/internal/processor"
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

// PerCollector copies a dashboard once per collector of the mapping table.
type PerCollector struct {
	config Config
	links  map[string][]primitive.Replacement
}

// NewPerCollector creates a per-collector processor.
func NewPerCollector(config Config) (*PerCollector, error) {
	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	p := &PerCollector{
		config: config,
		links:  make(map[string][]primitive.Replacement),
	}

	for _, key := range config.Table.CollectorKeys() {
		p.links[key] = []primitive.Replacement{primitive.Lookup(config.Identifiers.Links(key))}
	}

	return p, nil
}

// Process returns one copy of doc per collector it has a UID planned for,
// keyed "<collector key>_<collector label>". doc is not modified.
func (p *PerCollector) Process(doc *node.Node, _ string) ([]processor.Output, error) {
	if err := processor.CheckDocument(doc); err != nil {
		return nil, err
	}

	uid := doc.Get("uid").Text()

	var outs []processor.Output

	for _, c := range p.config.Table.Collectors() {
		newUID, ok := p.config.Identifiers.CollectorUID(c.Key, uid)
		if !ok {
			continue
		}

		out := doc.Clone()
		out.Set("title", node.String(out.Get("title").Text()+" - "+c.Label))
		out.Set("uid", node.String(newUID))

		if err := p.retarget(out, c.Key); err != nil {
			return nil, fmt.Errorf("copying dashboard %q to collector %q: %w", uid, c.Key, err)
		}

		primitive.ReplaceEverywhere(out, "url", p.links[c.Key])

		p.config.Logger.Debug("Copied dashboard",
			zap.String("uid", uid),
			zap.String("collector", c.Key),
			zap.String("new_uid", newUID))

		outs = append(outs, processor.Output{Doc: out, Key: c.Key + "_" + c.Label})
	}

	return outs, nil
}

// retarget swaps every datasource reference in doc for the collector's.
// Built-in datasources are kept.
func (p *PerCollector) retarget(doc *node.Node, collector string) error {
	var first error

	node.WalkMaps(doc, func(m *node.Node) {
		if first != nil || !m.Has("datasource") {
			return
		}

		ref := m.Get("datasource")

		ds, ok, err := p.config.Table.Datasource(collector, primitive.DatasourceName(ref))
		if err != nil {
			first = err
			return
		}

		if ok {
			m.Set("datasource", primitive.RetargetDatasource(ref, ds))
		}
	})

	return first
}
