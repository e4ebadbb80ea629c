// Package match suggests known names for unknown ones.
//
// Datasource names and context keys are compared on their word tokens
// (separators and case changes split words, a trailing "datasource" or
// "influxdb" token is ignored) by edit distance and shared words.
package match
