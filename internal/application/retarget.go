package application

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/match"
	"dashboard-converter/internal/processor"
	"dashboard-converter/node"
	"dashboard-converter/primitive"
	"dashboard-converter/utils"
)

// KeySeparator joins the source and target names of an output key.
const KeySeparator = ":"

var (
	// labelFields get the label substitutions.
	labelFields = []string{"title", "query", "byField", "options", "url", "label", "text"}
	// tagFields get the tag substitution.
	tagFields = []string{"query", "url", "options", "title"}

	blanks = regexp.MustCompile(`\s+`)
)

// Retargeter converts dashboards between the contexts of a registry.
type Retargeter struct {
	registry *Registry
}

// New creates a Retargeter. A nil registry selects DefaultRegistry.
func New(registry *Registry) *Retargeter {
	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Retargeter{registry: registry}
}

// Registry returns the contexts the Retargeter converts between.
func (r *Retargeter) Registry() *Registry { return r.registry }

// Process returns one copy of doc per context other than the one named by
// key, keyed "<source name>:<target name>". doc is not modified.
func (r *Retargeter) Process(doc *node.Node, key string) ([]processor.Output, error) {
	if err := processor.CheckDocument(doc); err != nil {
		return nil, err
	}

	source, err := r.source(key)
	if err != nil {
		return nil, err
	}

	var outs []processor.Output

	for _, target := range r.registry.Others(source.Key) {
		out := doc.Clone()
		newRewrite(source, target).apply(out)

		outs = append(outs, processor.Output{Doc: out, Key: source.Name + KeySeparator + target.Name})
	}

	return outs, nil
}

func (r *Retargeter) source(key string) (Context, error) {
	if key == "" {
		return Context{}, diagnostic.NewTransformError(diagnostic.CodeMalformedContext,
			"the application context of the dashboard is not set", nil)
	}

	c, ok := r.registry.Context(key)
	if !ok {
		te := diagnostic.NewTransformError(diagnostic.CodeUnknownContext,
			fmt.Sprintf("unknown application context %q", key), nil)
		te.Suggestions = match.Suggest(key, r.registry.Keys(), 3)

		return Context{}, te
	}

	return c, nil
}

// rewrite is the substitution set from one context to another.
type rewrite struct {
	labels  []primitive.Replacement
	renames []primitive.Rename
	tag     []primitive.Replacement
	// sourceField holds a label of the target context; it gets the last
	// label substitution only.
	sourceField string
	last        []primitive.Replacement
}

func newRewrite(source, target Context) *rewrite {
	rw := &rewrite{
		tag:         []primitive.Replacement{primitive.Literal(source.Tag, target.Tag)},
		sourceField: "source_" + target.Tag,
	}

	pairs := make([][2]string, 0, len(source.Labels))
	for _, l := range source.Labels {
		pairs = append(pairs, [2]string{l, target.Primary()})
		rw.renames = append(rw.renames, primitive.Rename{From: l, To: target.Primary()})
	}

	rw.labels = primitive.LiteralPairs(pairs)
	rw.last = rw.labels[len(rw.labels)-1:]

	return rw
}

func (rw *rewrite) apply(doc *node.Node) {
	node.WalkMaps(doc, func(m *node.Node) {
		primitive.ReplaceStrings(m, labelFields, rw.labels)
		primitive.ReplaceStrings(m, tagFields, rw.tag)
		primitive.RenameKeys(m, "indexByName", rw.renames)
		primitive.ReplaceString(m, rw.sourceField, rw.last...)
	})
}

// OutputFilename derives the file name of a retargeted dashboard from the
// name of its source and the output key. Names written in snake case are
// matched in lower case with blanks turned into underscores. A name without
// the source token gets the target token appended before its extension.
func OutputFilename(filename, key string) (string, error) {
	from, to := utils.SplitPair(key, KeySeparator)
	if from == "" || to == "" {
		return "", diagnostic.NewTransformError(diagnostic.CodeMalformedContext,
			fmt.Sprintf("output key %q is not <source>%s<target>", key, KeySeparator), nil)
	}

	if strings.Contains(filename, "_") {
		filename = strings.ToLower(filename)
		from = blanks.ReplaceAllString(strings.ToLower(from), "_")
		to = blanks.ReplaceAllString(strings.ToLower(to), "_")
	}

	if !strings.Contains(filename, from) {
		ext := filepath.Ext(filename)
		return strings.TrimSuffix(filename, ext) + "_" + blanks.ReplaceAllString(to, "_") + ext, nil
	}

	return strings.ReplaceAll(filename, from, to), nil
}
