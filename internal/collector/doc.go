// Package collector retargets dashboards authored for the central
// (cclear) context to the collectors listed in a mapping table.
//
// Two conversions exist:
//
//   - Merged folds every collector into one global dashboard. Queries of a
//     mapped timeseries are duplicated per collector under a mixed
//     datasource, table panels are cloned per collector, and the retired
//     dimension (network_monitor by default) is stripped.
//   - PerCollector emits one copy of the dashboard per collector with every
//     datasource swapped for the collector's.
//
// New combines them according to an options.ModeEnum. Only documents whose
// UID is planned in the plan.Identifiers given at construction are
// converted, the others produce no output.
package collector
