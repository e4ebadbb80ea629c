// Package diagnostic provides the error kinds of the converter and a
// collection of warnings and errors reported by a batch run.
//
// Key capabilities:
//   - ConfigError: fatal problems found before any document is processed
//   - TransformError: problems aborting a single document
//   - Diagnostics: per-document report with codes and suggestions
package diagnostic
