package batch

import (
	"path"
	"strings"

	"go.uber.org/zap"

	"dashboard-converter/internal/analyze"
	"dashboard-converter/internal/application"
	"dashboard-converter/internal/collector"
	"dashboard-converter/internal/mapping"
	"dashboard-converter/internal/plan"
	"dashboard-converter/internal/processor"
	"dashboard-converter/options"
)

// Collectors converts merged and separate dashboards for the collectors of
// table. The UID plan is resolved from each run's inventory.
func Collectors(table *mapping.Table, modes options.ModeEnum, logger *zap.Logger) Job {
	return Job{
		Classifier: table,
		Prepare: func(inv *analyze.Inventory) (processor.Processor, error) {
			ids, err := plan.NewResolver(nil).Resolve(
				plan.FromInventory(inv, table.Options().GlobalKey, table.CollectorKeys()))
			if err != nil {
				return nil, err
			}

			return collector.New(collector.Config{Table: table, Identifiers: ids, Logger: logger}, modes)
		},
		Name: CollectorNamer(table.FolderPerCollector()),
	}
}

// Application retargets dashboards of the context key to every other
// context of the retargeter.
func Application(r *application.Retargeter, key string) Job {
	return Job{
		Prepare: func(*analyze.Inventory) (processor.Processor, error) { return r, nil },
		Key:     key,
		Name:    ApplicationNamer,
	}
}

// Pipeline runs p over every dashboard and keeps the file names.
func Pipeline(p processor.Pipeline) Job {
	return Job{
		Prepare: func(*analyze.Inventory) (processor.Processor, error) { return p, nil },
		Name:    SameName,
	}
}

// SameName keeps the input path.
func SameName(d analyze.Dashboard, _ string) (string, error) {
	return d.Rel, nil
}

// CollectorNamer inserts "_<key>" before the extension. With
// folderPerCollector, outputs of separate dashboards go into a "<key>"
// subfolder.
func CollectorNamer(folderPerCollector bool) Namer {
	return func(d analyze.Dashboard, key string) (string, error) {
		dir, base := path.Split(d.Rel)
		name := WithSuffix(base, key)

		if folderPerCollector && d.Class == analyze.ClassSeparate {
			return path.Join(dir, key, name), nil
		}

		return path.Join(dir, name), nil
	}
}

// ApplicationNamer names outputs with application.OutputFilename.
func ApplicationNamer(d analyze.Dashboard, key string) (string, error) {
	dir, base := path.Split(d.Rel)

	name, err := application.OutputFilename(base, key)
	if err != nil {
		return "", err
	}

	return path.Join(dir, name), nil
}

// WithSuffix returns name with "_<suffix>" inserted before the extension.
func WithSuffix(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
