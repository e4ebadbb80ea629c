// Package batch converts every dashboard below an input folder and writes
// the results below an output folder.
//
// A run scans the input into an analyze.Inventory, lets the Job build its
// processor from it, then converts the documents one by one. A document
// that fails is recorded in the Summary and the run continues; only
// configuration errors abort it.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dashboard-converter/internal/analyze"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/gen"
	"dashboard-converter/internal/layout"
	"dashboard-converter/internal/processor"
	"dashboard-converter/node"
)

// ConvertedDir is the output folder created inside the input folder when
// no output is given.
const ConvertedDir = "converted"

// InPlace as output writes the results next to their inputs.
const InPlace = "."

// Config holds the driver settings.
type Config struct {
	// Input is a dashboard file or a folder of dashboards.
	Input string
	// Output is the folder results are written to. Empty means
	// <input folder>/converted, cleared before the first run.
	Output string
	// Include and Exclude are doublestar patterns relative to the input
	// folder. Include defaults to every .json file.
	Include []string
	Exclude []string
	// CopyOriginal also writes every converted input unchanged to the output.
	CopyOriginal bool
	Logger       *zap.Logger
}

// Namer returns the slash separated output path of one output of d.
type Namer func(d analyze.Dashboard, key string) (string, error)

// Job is one kind of conversion.
type Job struct {
	// Classifier sorts the inventory into merged and separate dashboards.
	// Nil leaves every dashboard unclassified.
	Classifier analyze.Classifier
	// Prepare builds the processor once the inventory is known.
	Prepare func(inv *analyze.Inventory) (processor.Processor, error)
	// Key is passed to every Process call.
	Key  string
	Name Namer
}

// Summary counts what a run did.
type Summary struct {
	Documents int // dashboards read
	Converted int // dashboards with at least one output
	Outputs   int // outputs named and stored
	Written   int // outputs whose file changed on disk

	Diagnostics diagnostic.Diagnostics
}

// Driver runs jobs over one input.
type Driver struct {
	config  Config
	file    bool   // the input is a single file
	inDir   string // folder holding the inputs
	outDir  string
	clear   bool
	inPlace bool
	writer  *gen.Writer
	logger  *zap.Logger
}

// New validates config and creates a Driver.
func New(config Config) (*Driver, error) {
	info, err := os.Stat(config.Input)
	if err != nil {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigMissing,
			"dashboard file or folder "+config.Input, err)
	}

	d := &Driver{config: config, inDir: config.Input, logger: config.Logger}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}

	if !info.IsDir() {
		ext := filepath.Ext(config.Input)
		if ext != ".json" && ext != ".jsonc" {
			return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid,
				"not a dashboard .json file: "+config.Input, nil)
		}

		d.file = true
		d.inDir = filepath.Dir(config.Input)
	}

	switch config.Output {
	case "":
		d.outDir = filepath.Join(d.inDir, ConvertedDir)
		d.clear = true
	case InPlace:
		d.outDir = d.inDir
		d.inPlace = true
	default:
		d.outDir = config.Output
	}

	d.writer = gen.NewWriter(d.outDir)

	return d, nil
}

// Output returns the folder results are written to.
func (d *Driver) Output() string { return d.outDir }

// Run converts the input once. The returned error is a configuration
// error or the context's; per document failures are in the Summary.
func (d *Driver) Run(ctx context.Context, job Job) (*Summary, error) {
	if d.clear {
		if err := d.writer.Clear(); err != nil {
			return nil, err
		}

		d.clear = false
	}

	inv, err := d.scan(job.Classifier)
	if err != nil {
		return nil, err
	}

	proc, err := job.Prepare(inv)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	for _, s := range inv.Skipped {
		d.fail(summary, s.Path, diagnostic.NewTransformError(diagnostic.CodeDecode, "decoding dashboard", s.Err))
	}

	for _, dash := range inv.Dashboards {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		d.convert(summary, job, proc, dash)
	}

	d.logger.Info("Batch done",
		zap.String("input", d.config.Input),
		zap.String("output", d.outDir),
		zap.Int("documents", summary.Documents),
		zap.Int("converted", summary.Converted),
		zap.Int("written", summary.Written),
		zap.Int("errors", len(summary.Diagnostics.Errors)))
	d.logger.Debug("Findings by code", zap.Any("codes", summary.Diagnostics.Codes()))

	return summary, nil
}

func (d *Driver) scan(classifier analyze.Classifier) (*analyze.Inventory, error) {
	opts := []analyze.Option{analyze.WithExclude(d.config.Exclude...)}
	if len(d.config.Include) > 0 {
		opts = append(opts, analyze.WithInclude(d.config.Include...))
	}

	if classifier != nil {
		opts = append(opts, analyze.WithClassifier(classifier))
	}

	if rel, ok := d.outputBelowInput(); ok {
		opts = append(opts, analyze.WithExclude(rel, rel+"/**"))
	}

	root := d.inDir
	if d.file {
		root = d.config.Input
	}

	inv, err := analyze.NewScanner(opts...).Scan(root)
	if err != nil {
		if diagnostic.IsConfig(err) {
			return nil, err
		}

		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid, "scanning "+root, err)
	}

	return inv, nil
}

// outputBelowInput returns the output folder relative to the input folder
// when the first lies inside the second.
func (d *Driver) outputBelowInput() (string, bool) {
	if d.inPlace {
		return "", false
	}

	rel, err := filepath.Rel(d.inDir, d.outDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return filepath.ToSlash(rel), true
}

func (d *Driver) convert(s *Summary, job Job, proc processor.Processor, dash analyze.Dashboard) {
	s.Documents++

	doc, err := node.ReadFile(dash.Path)
	if err != nil {
		d.fail(s, dash.Rel, diagnostic.NewTransformError(diagnostic.CodeDecode, "decoding dashboard", err))
		return
	}

	outs, err := proc.Process(doc, job.Key)
	if err != nil {
		d.fail(s, dash.Rel, err)
		return
	}

	if len(outs) == 0 {
		d.logger.Debug("Nothing to convert", zap.String("file", dash.Rel))
		return
	}

	s.Converted++

	if dash.Class == analyze.ClassMerged {
		for _, n := range layout.CheckSingleColumn(doc.Get("panels").Items()) {
			s.Diagnostics.AddWarning(diagnostic.CodeMultiColumn,
				fmt.Sprintf("panel %q is %d of %d wide, its position may be wrong", n.Title, n.Width, layout.FullWidth),
				dash.Rel, "")
		}
	}

	if d.config.CopyOriginal && !d.inPlace {
		d.store(s, dash.Rel, dash.Rel, doc)
	}

	for _, out := range outs {
		rel, err := job.Name(dash, out.Key)
		if err != nil {
			d.fail(s, dash.Rel, err)
			continue
		}

		if d.store(s, dash.Rel, rel, out.Doc) {
			s.Outputs++
		}
	}

	d.logger.Info("Converted dashboard",
		zap.String("file", dash.Rel),
		zap.Int("outputs", len(outs)))
}

// store writes doc to rel and reports whether it is on disk.
func (d *Driver) store(s *Summary, document, rel string, doc *node.Node) bool {
	changed, err := d.writer.Write(rel, doc)
	if err != nil {
		d.fail(s, document, diagnostic.NewTransformError(diagnostic.CodeWrite, "writing "+rel, err))
		return false
	}

	if changed {
		s.Written++
	}

	d.logger.Debug("Stored dashboard",
		zap.String("file", document),
		zap.String("output", rel),
		zap.Bool("changed", changed))

	return true
}

func (d *Driver) fail(s *Summary, document string, err error) {
	s.Diagnostics.AddFailure(document, err)

	d.logger.Error("Conversion failed",
		zap.String("file", document),
		zap.String("code", diagnostic.CodeOf(err)),
		zap.Error(err))
}
