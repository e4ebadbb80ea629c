package collector

import (
	"fmt"

	"go.uber.org/zap"

	"dashboard-converter/internal/processor"
	"dashboard-converter/node"
	"dashboard-converter/primitive"
)

// Merged folds every collector of the mapping table into one global
// dashboard.
type Merged struct {
	config Config
	global []primitive.Replacement
	// labels and links are the per collector label and dashboard UID
	// substitutions, by collector key.
	labels map[string][]primitive.Replacement
	links  map[string][]primitive.Replacement
}

// NewMerged creates a merged processor.
func NewMerged(config Config) (*Merged, error) {
	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	m := &Merged{
		config: config,
		global: []primitive.Replacement{primitive.Lookup(config.Identifiers.Global())},
		labels: make(map[string][]primitive.Replacement),
		links:  make(map[string][]primitive.Replacement),
	}

	for _, c := range config.Table.Collectors() {
		m.labels[c.Key] = primitive.LiteralPairs(c.Labels)
		m.links[c.Key] = []primitive.Replacement{primitive.Lookup(config.Identifiers.Collector(c.Key))}
	}

	return m, nil
}

// Process returns the global version of doc keyed by the table's global key,
// or nothing when doc has no merged UID planned. doc is not modified.
func (m *Merged) Process(doc *node.Node, _ string) ([]processor.Output, error) {
	if err := processor.CheckDocument(doc); err != nil {
		return nil, err
	}

	uid := doc.Get("uid").Text()

	newUID, ok := m.config.Identifiers.GlobalUID(uid)
	if !ok {
		return nil, nil
	}

	out := doc.Clone()

	primitive.ReplaceEverywhere(out, "url", m.global)
	m.config.Rules.Apply(out)
	convertVariables(out.Path("templating", "list"),
		primitive.InfluxDatasource(m.config.Table.VariablesDatasource()))

	if _, err := m.panels(out, 0); err != nil {
		return nil, fmt.Errorf("merging dashboard %q: %w", uid, err)
	}

	opts := m.config.Table.Options()
	out.Set("uid", node.String(newUID))
	out.Set("title", node.String(out.Get("title").Text()+" - "+opts.GlobalLabel))

	m.config.Logger.Debug("Merged dashboard",
		zap.String("uid", uid),
		zap.String("new_uid", newUID))

	return []processor.Output{{Doc: out, Key: opts.GlobalKey}}, nil
}
