package diagnostic

import (
	"errors"
	"slices"
	"strings"

	"dashboard-converter/internal/common"
)

// Diagnostics collects what happened to every document of a batch run,
// grouped by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding about one document.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is one of the Code* constants, empty for foreign errors.
	Code    string
	Message string
	// Document is the input path relative to the batch root.
	Document string
	// Path points into the document, e.g. "panels[3].datasource".
	Path        string
	Suggestions []string
}

type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

var severityNames = [...]string{
	DiagnosticInfo:    "info",
	DiagnosticWarning: "warning",
	DiagnosticError:   "error",
}

func (s DiagnosticSeverity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return common.UnknownStr
	}

	return severityNames[s]
}

func (d *Diagnostics) AddError(code, message, document, path string) {
	d.add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Document: document, Path: path})
}

func (d *Diagnostics) AddWarning(code, message, document, path string) {
	d.add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Document: document, Path: path})
}

func (d *Diagnostics) AddInfo(code, message, document, path string) {
	d.add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Document: document, Path: path})
}

// AddFailure records err as an error against document. The code, path and
// suggestions of a wrapped TransformError survive.
func (d *Diagnostics) AddFailure(document string, err error) {
	if err == nil {
		return
	}

	found := Diagnostic{Severity: DiagnosticError, Code: CodeOf(err), Message: err.Error(), Document: document}

	var te *TransformError
	if errors.As(err, &te) {
		found.Message, found.Path, found.Suggestions = te.Message, te.Path, te.Suggestions
	}

	d.add(found)
}

func (d *Diagnostics) add(found Diagnostic) {
	switch found.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, found)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, found)
	default:
		d.Infos = append(d.Infos, found)
	}
}

func (d *Diagnostics) Merge(other Diagnostics) {
	for _, list := range [][]Diagnostic{other.Errors, other.Warnings, other.Infos} {
		for _, found := range list {
			d.add(found)
		}
	}
}

func (d *Diagnostics) HasErrors() bool { return len(d.Errors) != 0 }

func (d *Diagnostics) IsValid() bool { return !d.HasErrors() }

// Failed lists the documents with at least one error, sorted.
func (d *Diagnostics) Failed() []string {
	var docs []string
	for _, e := range d.Errors {
		if e.Document != "" && !slices.Contains(docs, e.Document) {
			docs = append(docs, e.Document)
		}
	}

	slices.Sort(docs)

	return docs
}

// Codes counts findings of every severity by code. Foreign errors count
// under "".
func (d *Diagnostics) Codes() map[string]int {
	counts := make(map[string]int)
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, found := range list {
			counts[found.Code]++
		}
	}

	return counts
}

// Error joins the error findings with "; ", nil when there are none.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var b strings.Builder
	for i, e := range d.Errors {
		if i > 0 {
			b.WriteString("; ")
		}

		b.WriteString(e.String())
	}

	return errors.New(b.String())
}

// String renders "[document] path: [code] message (did you mean a, b?)",
// omitting the parts that are empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Document != "" {
		b.WriteString("[" + d.Document + "]")
	}

	if d.Path != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.Path)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		b.WriteString("[" + d.Code + "] ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}
