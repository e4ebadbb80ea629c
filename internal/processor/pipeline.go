package processor

import (
	"dashboard-converter/node"
)

// Step edits a document in place.
type Step func(doc *node.Node) error

// Pipeline is an ordered fold of steps over one document.
type Pipeline []Step

// Run applies the steps to doc in order and stops at the first error.
func (p Pipeline) Run(doc *node.Node) error {
	for _, step := range p {
		if err := step(doc); err != nil {
			return err
		}
	}

	return nil
}

// Process runs the pipeline on a clone of doc and returns the clone under
// the document's UID, so a Pipeline is also a Processor.
func (p Pipeline) Process(doc *node.Node, _ string) ([]Output, error) {
	if err := CheckDocument(doc); err != nil {
		return nil, err
	}

	out := doc.Clone()
	if err := p.Run(out); err != nil {
		return nil, err
	}

	return []Output{{Doc: out, Key: out.Get("uid").Text()}}, nil
}
