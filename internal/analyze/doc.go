// Package analyze scans an input folder and builds the dashboard inventory
// a batch run works from.
//
// The scan records, for every dashboard file, its UID, title and owning
// folder, and classifies it by folder as merged, separate or neither.
// Dashboard UIDs must be unique across the batch; a repeat is a
// configuration error reported before any document is converted.
//
// Key types:
//   - Dashboard: one scanned file
//   - Inventory: the ordered, UID-indexed scan result
//   - Scanner: walks a folder with doublestar include/exclude globs
package analyze
