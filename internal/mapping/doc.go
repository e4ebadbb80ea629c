// Package mapping loads the collector mapping configuration and exposes it as
// an immutable Table.
//
// The mapping file names the source context ("cclear") and every collector
// that dashboards are duplicated for. Text entries pair labels by key, and
// datasource entries pair datasource names by key:
//
//	{
//	  // source context
//	  "cclear": {
//	    "text": {"name": "HKEx"},
//	    "datasources": {"indicators": "indicators", "flows": "flows"}
//	  },
//	  "collectors": [
//	    {
//	      "key": "hk3",
//	      "text": {"name": "HK3"},
//	      "datasources": {"indicators": "hk3_indicators", "flows": "hk3_flows"}
//	    }
//	  ],
//	  "options": {"variables_datasource": "indicators"}
//	}
//
// The same structure may be written as JSON with comments (.json, .jsonc),
// YAML (.yaml, .yml) or TOML (.toml). The format is chosen by extension.
//
// # Validation
//
// Struct-level constraints are checked with validator tags. Cross-key checks
// follow: every collector must carry each source text and datasource key,
// collector keys are unique, the name key and the variables datasource key
// must exist in the source context, and a folder may not be both merged and
// separate.
//
// # Lookups
//
// A Table answers the questions the converters ask: the label pairs for a
// collector, the per-collector datasource for a source datasource, and which
// collectors a datasource fans out to. Datasources containing one of the
// ignored names (grafana, mixed, dashboard) are never mapped. Any other name
// without a mapping yields a TransformError carrying "did you mean" hints.
package mapping
