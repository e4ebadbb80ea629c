// Package gen produces dashboard files.
//
// Writer stores documents as indented JSON and leaves files whose content
// would not change untouched, so re-running a conversion only rewrites what
// changed.
//
// Generator builds a new dashboard from the measurement schema: one graph
// per measurement carrying the requested grouping, plus either a template
// variable selecting the group or, when a filter is given, IP breakdown
// panels. Panel and dashboard skeletons are embedded JSON templates, queries
// are rendered with text/template.
package gen
