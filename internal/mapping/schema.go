package mapping

import (
	"dashboard-converter/internal/removal"
)

// File is the mapping configuration as written on disk.
type File struct {
	Cclear     Context     `json:"cclear" toml:"cclear" validate:"required" yaml:"cclear"`
	Collectors []Collector `json:"collectors" toml:"collectors" validate:"required,min=1,dive" yaml:"collectors"`
	Options    Options     `json:"options" toml:"options" yaml:"options"`
}

// Context is the source context every collector is mapped from.
type Context struct {
	// Text maps a text key to the label used in source dashboards.
	Text map[string]string `json:"text" toml:"text" validate:"required,min=1,dive,required" yaml:"text"`
	// Datasources maps a datasource key to the datasource name in source dashboards.
	Datasources map[string]string `json:"datasources" toml:"datasources" validate:"required,min=1,dive,required" yaml:"datasources"`
}

// Collector is one remote collector a dashboard is duplicated for.
type Collector struct {
	Key         string            `json:"key" toml:"key" validate:"required,excludesall=/\\:. " yaml:"key"`
	Text        map[string]string `json:"text" toml:"text" validate:"required,min=1" yaml:"text"`
	Datasources map[string]string `json:"datasources" toml:"datasources" validate:"required" yaml:"datasources"`
}

// Options tune the conversion. Zero values are replaced by defaults on load.
type Options struct {
	// NameKey selects the text entry holding a context's display label.
	NameKey string `json:"name_key" toml:"name_key" yaml:"name_key"`
	// VariablesDatasource is the source datasource key the collector
	// template variables query.
	VariablesDatasource string `json:"variables_datasource" toml:"variables_datasource" yaml:"variables_datasource"`
	// GlobalKey is the output key and UID suffix of merged dashboards.
	GlobalKey string `json:"global_key" toml:"global_key" validate:"omitempty,excludesall=/\\:. " yaml:"global_key"`
	// GlobalLabel is appended to merged dashboard titles.
	GlobalLabel string `json:"global_label" toml:"global_label" yaml:"global_label"`
	// MergedFolders hold dashboards converted into one merged document.
	MergedFolders []string `json:"merged_folders" toml:"merged_folders" validate:"dive,required" yaml:"merged_folders"`
	// SeparateFolders hold dashboards converted into one document per collector.
	SeparateFolders []string `json:"separate_folders" toml:"separate_folders" validate:"dive,required" yaml:"separate_folders"`
	// FolderPerCollector writes per-collector outputs into a subfolder named by the output key.
	FolderPerCollector *bool `json:"folder_per_collector" toml:"folder_per_collector" yaml:"folder_per_collector"`
	// Removal is the dimension stripped from merged dashboards.
	Removal removal.Dimension `json:"removal" toml:"removal" yaml:"removal"`
}

// Defaults.
const (
	DefaultNameKey             = "name"
	DefaultVariablesDatasource = "indicators"
	DefaultGlobalKey           = "global"
	DefaultGlobalLabel         = "Global"
)

// DefaultMergedFolders are the folders whose dashboards are merged.
func DefaultMergedFolders() []string {
	return []string{"flow_analytics", "tcp_analytics", "ip_troubleshooting", "custom"}
}

// DefaultSeparateFolders are the folders whose dashboards are copied per collector.
func DefaultSeparateFolders() []string {
	return []string{"application_analytics", "debug", "devices", "system"}
}
