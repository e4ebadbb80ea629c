// Package application rewrites a dashboard written for one application
// grouping (hosts group, custom application, SNI name, canonical name) into
// the equivalent dashboard of every other grouping.
//
// A grouping is a Context: display labels used in titles and texts, and the
// measurement tag its series are stored under. Retargeting substitutes the
// labels and the tag literally, field by field, so the result of a round
// trip through another context is the original dashboard.
package application
