package mapping

import (
	"errors"
	"fmt"
	"slices"

	"dashboard-converter/internal/common"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/match"
	"dashboard-converter/internal/removal"
	"dashboard-converter/primitive"
)

// ErrUnmappedDatasource is wrapped by lookups that find no collector datasource.
var ErrUnmappedDatasource = errors.New("datasource has no collector mapping")

// maxSuggestions bounds the "did you mean" hints attached to lookup errors.
const maxSuggestions = 3

// Table is the validated, indexed mapping configuration. It is safe for
// concurrent reads and never modified after New returns.
type Table struct {
	sourceName  string
	sourceDS    map[string]string
	dsKeyByName map[string]string
	collectors  []CollectorMapping
	byKey       map[string]int
	options     Options
}

// CollectorMapping holds everything needed to retarget a document to one collector.
type CollectorMapping struct {
	Key string
	// Label is the collector's display label.
	Label string
	// Labels pairs each source label with the collector label, ordered by text key.
	Labels [][2]string
	// Datasources maps a source datasource name to the collector datasource name.
	Datasources map[string]string
}

// Target is one collector datasource a source datasource fans out to.
type Target struct {
	Collector  string
	Datasource string
}

// New validates f and builds a Table. Validation failures are reported as a
// single ConfigError.
func New(f *File) (*Table, error) {
	if diags := Validate(f); diags.HasErrors() {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid, "invalid mapping file", diags.Error())
	}

	t := &Table{
		sourceName:  f.Cclear.Text[f.Options.NameKey],
		sourceDS:    common.Merge(f.Cclear.Datasources),
		dsKeyByName: make(map[string]string, len(f.Cclear.Datasources)),
		byKey:       make(map[string]int, len(f.Collectors)),
		options:     f.Options,
	}

	t.options.MergedFolders = slices.Clone(f.Options.MergedFolders)
	t.options.SeparateFolders = slices.Clone(f.Options.SeparateFolders)

	for _, k := range common.SortedKeys(f.Cclear.Datasources) {
		t.dsKeyByName[f.Cclear.Datasources[k]] = k
	}

	textKeys := common.SortedKeys(f.Cclear.Text)
	dsKeys := common.SortedKeys(f.Cclear.Datasources)

	for _, c := range f.Collectors {
		cm := CollectorMapping{
			Key:         c.Key,
			Label:       c.Text[f.Options.NameKey],
			Datasources: make(map[string]string, len(dsKeys)),
		}

		for _, k := range textKeys {
			cm.Labels = append(cm.Labels, [2]string{f.Cclear.Text[k], c.Text[k]})
		}

		for _, k := range dsKeys {
			if ds := c.Datasources[k]; ds != "" {
				cm.Datasources[f.Cclear.Datasources[k]] = ds
			}
		}

		t.byKey[c.Key] = len(t.collectors)
		t.collectors = append(t.collectors, cm)
	}

	return t, nil
}

// SourceName is the display label of the source context.
func (t *Table) SourceName() string { return t.sourceName }

// Options returns the effective options.
func (t *Table) Options() Options { return t.options }

// Dimension is the dimension stripped from merged dashboards.
func (t *Table) Dimension() removal.Dimension { return t.options.Removal }

// VariablesDatasource is the source datasource the collector variables query.
func (t *Table) VariablesDatasource() string {
	return t.sourceDS[t.options.VariablesDatasource]
}

// CollectorKeys returns the collector keys in configuration order.
func (t *Table) CollectorKeys() []string {
	keys := make([]string, 0, len(t.collectors))
	for _, c := range t.collectors {
		keys = append(keys, c.Key)
	}

	return keys
}

// Collectors returns the collector mappings in configuration order.
func (t *Table) Collectors() []CollectorMapping {
	return slices.Clone(t.collectors)
}

// Collector returns the mapping for key.
func (t *Table) Collector(key string) (CollectorMapping, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return CollectorMapping{}, false
	}

	return t.collectors[i], true
}

// IsMergedFolder reports whether dashboards in the named folder are merged.
func (t *Table) IsMergedFolder(name string) bool {
	return slices.Contains(t.options.MergedFolders, name)
}

// IsSeparateFolder reports whether dashboards in the named folder are copied per collector.
func (t *Table) IsSeparateFolder(name string) bool {
	return slices.Contains(t.options.SeparateFolders, name)
}

// FolderPerCollector reports whether per-collector outputs get their own subfolder.
func (t *Table) FolderPerCollector() bool {
	return t.options.FolderPerCollector == nil || *t.options.FolderPerCollector
}

// Targets returns the collector datasources the named source datasource fans
// out to, in collector order. Ignored or empty names map to nothing.
func (t *Table) Targets(name string) ([]Target, error) {
	if primitive.IsIgnoredDatasource(name) {
		return nil, nil
	}

	source := t.resolve(name)
	targets := make([]Target, 0, len(t.collectors))

	for _, c := range t.collectors {
		ds, ok := c.Datasources[source]
		if !ok {
			return nil, t.unmapped(name, c.Key)
		}

		targets = append(targets, Target{Collector: c.Key, Datasource: ds})
	}

	return targets, nil
}

// Datasource returns the collector datasource replacing the named source
// datasource. ok is false for ignored names.
func (t *Table) Datasource(collector, name string) (ds string, ok bool, err error) {
	if primitive.IsIgnoredDatasource(name) {
		return "", false, nil
	}

	c, found := t.Collector(collector)
	if !found {
		return "", false, diagnostic.NewTransformError(diagnostic.CodeUnknownContext,
			fmt.Sprintf("unknown collector %q", collector), nil)
	}

	ds, found = c.Datasources[t.resolve(name)]
	if !found {
		return "", false, t.unmapped(name, collector)
	}

	return ds, true, nil
}

// resolve accepts a source datasource by name or by key.
func (t *Table) resolve(name string) string {
	if _, known := t.dsKeyByName[name]; known {
		return name
	}

	if byKey, ok := t.sourceDS[name]; ok {
		return byKey
	}

	return name
}

func (t *Table) unmapped(name, collector string) error {
	te := diagnostic.NewTransformError(diagnostic.CodeUnmappedDatasource,
		fmt.Sprintf("no mapping for datasource %q at collector %q", name, collector), ErrUnmappedDatasource)
	te.Path = "datasource"
	te.Suggestions = match.Suggest(name, common.SortedKeys(t.dsKeyByName), maxSuggestions)

	return te
}
