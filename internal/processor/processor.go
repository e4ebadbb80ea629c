// Package processor defines the contract between the batch driver and the
// dashboard transforms.
//
// A Processor turns one decoded dashboard into zero or more outputs, each
// tagged with a key the driver uses to name the written file. Processors
// never write files and never share state between documents.
package processor

import (
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/node"
)

// Output is one converted document and the key naming it.
type Output struct {
	Doc *node.Node
	Key string
}

// Processor converts a dashboard. key selects a variant when the processor
// supports several, it is ignored otherwise. A nil result with a nil error
// means the document does not concern the processor.
type Processor interface {
	Process(doc *node.Node, key string) ([]Output, error)
}

// Func adapts a function to the Processor interface.
type Func func(doc *node.Node, key string) ([]Output, error)

func (f Func) Process(doc *node.Node, key string) ([]Output, error) { return f(doc, key) }

// PassThrough returns the document unchanged under its own UID.
var PassThrough Processor = Func(func(doc *node.Node, _ string) ([]Output, error) {
	if err := CheckDocument(doc); err != nil {
		return nil, err
	}

	return []Output{{Doc: doc, Key: doc.Get("uid").Text()}}, nil
})

// CheckDocument rejects documents no transform can work on: nil, non-map or
// empty maps.
func CheckDocument(doc *node.Node) error {
	if !doc.IsMap() || doc.Len() == 0 {
		return diagnostic.NewTransformError(diagnostic.CodeEmptyDocument,
			"the dashboard to convert is empty", nil)
	}

	return nil
}

// Chain runs every processor on the same document and concatenates their
// outputs in order. The first error stops the chain.
type Chain []Processor

func (c Chain) Process(doc *node.Node, key string) ([]Output, error) {
	var out []Output

	for _, p := range c {
		res, err := p.Process(doc, key)
		if err != nil {
			return nil, err
		}

		out = append(out, res...)
	}

	return out, nil
}
