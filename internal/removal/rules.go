package removal

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dashboard-converter/primitive"
)

//go:embed rules.yaml.tmpl
var defaultTemplate string

// Dimension names the retired grouping dimension.
type Dimension struct {
	Tag      string `json:"tag" toml:"tag" validate:"required,excludesall=$ " yaml:"tag"`
	Variable string `json:"variable" toml:"variable" validate:"required,excludesall=$ " yaml:"variable"`
	Display  string `json:"display" toml:"display" validate:"required" yaml:"display"`
}

// NetworkMonitor is the dimension retired from collector dashboards.
var NetworkMonitor = Dimension{
	Tag:      "network_monitor_name",
	Variable: "network_monitor",
	Display:  "Network Monitor",
}

type ruleFile struct {
	Leaf       []leafSpec       `yaml:"leaf"`
	Structural []structuralSpec `yaml:"structural"`
}

type leafSpec struct {
	Field string            `yaml:"field"`
	Rules []replacementSpec `yaml:"rules"`
}

type replacementSpec struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

type structuralSpec struct {
	Field   string           `yaml:"field"`
	Items   []expressionSpec `yaml:"items"`
	Scalars []expressionSpec `yaml:"scalars"`
	Keys    []string         `yaml:"keys"`
	Drop    bool             `yaml:"drop"`
}

type expressionSpec struct {
	Logic   string `yaml:"logic"`
	Field   string `yaml:"field"`
	Op      string `yaml:"op"`
	Operand string `yaml:"operand"`
}

var templateFuncs = template.FuncMap{
	"re": regexp.QuoteMeta,
	"ref": func(variable string) string {
		v := regexp.QuoteMeta(variable)
		return `\$(?:` + v + `\b|\{` + v + `(?::\w+)?\})`
	},
	"words": func(label string) string {
		parts := strings.Fields(label)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}

		return `(?i:` + strings.Join(parts, `\s+`) + `)`
	},
}

// Render expands a rule template for dim.
func Render(tmpl string, dim Dimension) ([]byte, error) {
	t, err := template.New("rules").Funcs(templateFuncs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing rule template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, dim); err != nil {
		return nil, fmt.Errorf("rendering rule template: %w", err)
	}

	return buf.Bytes(), nil
}

// Compile renders tmpl for dim and compiles the rules. An empty tmpl uses
// the embedded default rules.
func Compile(tmpl string, dim Dimension) (*RuleSet, error) {
	if err := validator.New().Struct(dim); err != nil {
		return nil, fmt.Errorf("invalid dimension: %w", err)
	}

	if tmpl == "" {
		tmpl = defaultTemplate
	}

	data, err := Render(tmpl, dim)
	if err != nil {
		return nil, err
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}

	return build(rf)
}

// ForDimension compiles the default rules for dim.
func ForDimension(dim Dimension) (*RuleSet, error) {
	return Compile("", dim)
}

// Default returns the default rules for NetworkMonitor.
func Default() *RuleSet {
	rs, err := ForDimension(NetworkMonitor)
	if err != nil {
		panic(err)
	}

	return rs
}

func build(rf ruleFile) (*RuleSet, error) {
	rs := &RuleSet{}

	for _, ls := range rf.Leaf {
		if ls.Field == "" {
			return nil, errors.New("leaf rule without field")
		}

		lr := leafRule{field: ls.Field}

		for _, r := range ls.Rules {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("leaf rule %s: %w", ls.Field, err)
			}

			lr.rules = append(lr.rules, primitive.Replacement{Pattern: re, Replace: r.Replace})
		}

		rs.leaf = append(rs.leaf, lr)
	}

	for _, ss := range rf.Structural {
		if ss.Field == "" {
			return nil, errors.New("structural rule without field")
		}

		sr := structuralRule{field: ss.Field, keys: ss.Keys, drop: ss.Drop}

		var err error
		if sr.items, err = expressions(ss.Items); err != nil {
			return nil, fmt.Errorf("structural rule %s: %w", ss.Field, err)
		}

		if sr.scalars, err = expressions(ss.Scalars); err != nil {
			return nil, fmt.Errorf("structural rule %s: %w", ss.Field, err)
		}

		rs.structural = append(rs.structural, sr)
	}

	return rs, nil
}

func expressions(specs []expressionSpec) ([]primitive.Expression, error) {
	out := make([]primitive.Expression, 0, len(specs))

	for _, s := range specs {
		logic, ok := primitive.ParseLogic(s.Logic)
		if !ok {
			return nil, fmt.Errorf("unknown logic %q", s.Logic)
		}

		op, ok := primitive.ParseOp(s.Op)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", s.Op)
		}

		e, err := primitive.NewExpression(logic, s.Field, op, s.Operand)
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, nil
}
