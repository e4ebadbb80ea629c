package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"dashboard-converter/internal/analyze"
	"dashboard-converter/internal/application"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/mapping"
	"dashboard-converter/internal/processor"
	"dashboard-converter/internal/removal"
	"dashboard-converter/node"
	"dashboard-converter/options"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const mappingConfig = `{
  // source context
  "cclear": {
    "text": {"name": "HKEx"},
    "datasources": {"indicators": "indicators", "tcp": "tcp"}
  },
  "collectors": [
    {"key": "hk3", "text": {"name": "HK3"}, "datasources": {"indicators": "hk3_indicators", "tcp": "hk3_tcp"}},
    {"key": "fdc2", "text": {"name": "FDC2"}, "datasources": {"indicators": "fdc2_indicators", "tcp": "fdc2_tcp"}}
  ]
}`

const overview = `{
  "uid": "overview",
  "title": "Overview",
  "panels": [
    {"type": "text", "title": "Intro", "gridPos": {"h": 2, "w": 24, "x": 0, "y": 5}},
    {"type": "text", "title": "Side", "gridPos": {"h": 2, "w": 12, "x": 12, "y": 5}}
  ]
}`

const health = `{
  "uid": "health",
  "title": "Health",
  "panels": [
    {"type": "timeseries", "title": "CPU", "datasource": {"type": "influxdb", "uid": "tcp"}, "gridPos": {"h": 8, "w": 24, "x": 0, "y": 0}}
  ]
}`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func read(t *testing.T, path string) *node.Node {
	t.Helper()

	doc, err := node.ReadFile(path)
	require.NoError(t, err)

	return doc
}

func loadTable(t *testing.T) *mapping.Table {
	t.Helper()

	f, err := mapping.Parse([]byte(mappingConfig), mapping.FormatJSON)
	require.NoError(t, err)

	tbl, err := mapping.New(f)
	require.NoError(t, err)

	return tbl
}

func TestNew(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.json": `{"uid": "a"}`, "notes.txt": "x"})

	t.Run("default output", func(t *testing.T) {
		d, err := New(Config{Input: root})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ConvertedDir), d.Output())
	})

	t.Run("file input", func(t *testing.T) {
		d, err := New(Config{Input: filepath.Join(root, "a.json")})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ConvertedDir), d.Output())
	})

	t.Run("in place", func(t *testing.T) {
		d, err := New(Config{Input: root, Output: InPlace})
		require.NoError(t, err)
		assert.Equal(t, root, d.Output())
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := New(Config{Input: filepath.Join(root, "missing")})
		assert.True(t, diagnostic.IsConfig(err))
		assert.Equal(t, diagnostic.CodeConfigMissing, diagnostic.CodeOf(err))
	})

	t.Run("not a dashboard", func(t *testing.T) {
		_, err := New(Config{Input: filepath.Join(root, "notes.txt")})
		assert.Equal(t, diagnostic.CodeConfigInvalid, diagnostic.CodeOf(err))
	})
}

func TestRun_Collectors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"flow_analytics/overview.json": overview,
		"devices/health.json":          health,
		"misc/notes.json":              `{"uid": "notes", "title": "Notes"}`,
		"misc/broken.json":             `{"uid": `,
	})

	d, err := New(Config{Input: root, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	// a stale file from an earlier run is cleared
	writeTree(t, d.Output(), map[string]string{"stale.json": "{}"})

	job := Collectors(loadTable(t), options.ModeCollectors, zaptest.NewLogger(t))

	s, err := d.Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Documents, spew.Sdump(s))
	assert.Equal(t, 2, s.Converted)
	assert.Equal(t, 3, s.Outputs)
	assert.Equal(t, 3, s.Written)

	require.Len(t, s.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeDecode, s.Diagnostics.Errors[0].Code)

	require.Len(t, s.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeMultiColumn, s.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "flow_analytics/overview.json", s.Diagnostics.Warnings[0].Document)

	out := d.Output()
	assert.NoFileExists(t, filepath.Join(out, "stale.json"))
	assert.NoDirExists(t, filepath.Join(out, ConvertedDir))

	global := read(t, filepath.Join(out, "flow_analytics", "overview_global.json"))
	assert.Equal(t, "overview_global", global.Get("uid").Text())
	assert.Equal(t, "Overview - Global", global.Get("title").Text())

	hk3 := read(t, filepath.Join(out, "devices", "hk3_HK3", "health_hk3_HK3.json"))
	assert.Equal(t, "health_hk3", hk3.Get("uid").Text())
	assert.Equal(t, "Health - HK3", hk3.Get("title").Text())
	assert.Equal(t, "hk3_tcp", hk3.Get("panels").Index(0).Path("datasource", "uid").Text())

	assert.FileExists(t, filepath.Join(out, "devices", "fdc2_FDC2", "health_fdc2_FDC2.json"))

	// unchanged outputs are not rewritten
	s, err = d.Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Outputs)
	assert.Zero(t, s.Written)
}

func TestRun_DuplicateUIDIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"flow_analytics/a.json": `{"uid": "same"}`,
		"devices/b.json":        `{"uid": "same"}`,
	})

	d, err := New(Config{Input: root})
	require.NoError(t, err)

	_, err = d.Run(context.Background(), Collectors(loadTable(t), options.ModeCollectors, nil))
	assert.Equal(t, diagnostic.CodeDuplicateUID, diagnostic.CodeOf(err))
	assert.NoFileExists(t, filepath.Join(d.Output(), "flow_analytics", "a_global.json"))
}

func TestRun_Application(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	writeTree(t, root, map[string]string{
		"in/hosts_group_overview.json": `{"uid": "hg", "title": "Hosts Group Overview"}`,
	})

	d, err := New(Config{Input: filepath.Join(root, "in", "hosts_group_overview.json"), Output: out})
	require.NoError(t, err)

	s, err := d.Run(context.Background(), Application(application.New(nil), application.KeyHostsGroup))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Outputs)
	assert.True(t, s.Diagnostics.IsValid())

	doc := read(t, filepath.Join(out, "application_overview.json"))
	assert.Equal(t, "Custom Application Overview", doc.Get("title").Text())
	assert.FileExists(t, filepath.Join(out, "sni_name_overview.json"))
	assert.FileExists(t, filepath.Join(out, "canonical_name_overview.json"))
}

func TestRun_PipelineCopyOriginal(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	writeTree(t, root, map[string]string{
		"in/a.json": `{"uid": "a", "title": "A on $network_monitor"}`,
		"in/b.json": `[]`,
	})

	d, err := New(Config{Input: filepath.Join(root, "in"), Output: out, CopyOriginal: true})
	require.NoError(t, err)

	strip := processor.Pipeline{removal.Default().Run}
	job := Pipeline(strip)
	job.Name = func(dash analyze.Dashboard, _ string) (string, error) {
		return WithSuffix(dash.Rel, "stripped"), nil
	}

	s, err := d.Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, 1, s.Converted)

	require.Len(t, s.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeEmptyDocument, s.Diagnostics.Errors[0].Code)
	assert.Equal(t, "b.json", s.Diagnostics.Errors[0].Document)

	assert.FileExists(t, filepath.Join(out, "a.json"))
	assert.FileExists(t, filepath.Join(out, "a_stripped.json"))
	assert.NoFileExists(t, filepath.Join(out, "b.json"))
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.json": `{"uid": "a"}`})

	d, err := New(Config{Input: root})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx, Pipeline(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNamers(t *testing.T) {
	merged := analyze.Dashboard{Rel: "flow_analytics/flows.json", Class: analyze.ClassMerged}
	separate := analyze.Dashboard{Rel: "devices/health.json", Class: analyze.ClassSeparate}
	top := analyze.Dashboard{Rel: "flows.v2.json", Class: analyze.ClassSeparate}

	tests := []struct {
		name  string
		namer Namer
		dash  analyze.Dashboard
		key   string
		want  string
	}{
		{"merged", CollectorNamer(true), merged, "global", "flow_analytics/flows_global.json"},
		{"separate in subfolder", CollectorNamer(true), separate, "hk3_HK3", "devices/hk3_HK3/health_hk3_HK3.json"},
		{"separate flat", CollectorNamer(false), separate, "hk3_HK3", "devices/health_hk3_HK3.json"},
		{"dots before extension", CollectorNamer(false), top, "hk3_HK3", "flows.v2_hk3_HK3.json"},
		{"same name", SameName, separate, "x", "devices/health.json"},
		{"application", ApplicationNamer, analyze.Dashboard{Rel: "app/hosts_group_top.json"}, "Hosts Group:SNI Name", "app/sni_name_top.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.namer(tt.dash, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ApplicationNamer(top, "no-separator")
	assert.Equal(t, diagnostic.CodeMalformedContext, diagnostic.CodeOf(err))
}
