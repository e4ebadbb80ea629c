package application

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/node"
)

const hostsGroupDashboard = `{
  "uid": "hosts-group-overview",
  "title": "Hosts Group Overview",
  "links": [{"title": "Top Hosts Group", "url": "/d/x?var-hosts_group=$hosts_group"}],
  "panels": [
    {
      "type": "table",
      "title": "Bytes by Hosts Group",
      "targets": [
        {"refId": "A", "query": "SELECT sum(\"bytes\") FROM \"hosts_group_stats\" GROUP BY \"hosts_group\""}
      ],
      "transformations": [
        {"id": "organize", "options": {"indexByName": {"Hosts Group": 0, "bytes": 1}}}
      ],
      "fieldConfig": {
        "overrides": [{"matcher": {"id": "byName", "options": "Hosts Group"}, "properties": []}]
      }
    },
    {"type": "text", "options": {"content": "unchanged"}, "text": "Pick a Hosts Group"}
  ]
}`

func parse(t *testing.T, s string) *node.Node {
	t.Helper()

	doc, err := node.Parse([]byte(s))
	require.NoError(t, err)

	return doc
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{KeyHostsGroup, KeyCustomApplication, KeyTLSDomain, KeyCNAMEDomain}, r.Keys())
	assert.True(t, r.Has(KeyTLSDomain))
	assert.False(t, r.Has("key_unknown"))

	c, ok := r.Context(KeyCustomApplication)
	require.True(t, ok)
	assert.Equal(t, "Custom Application", c.Primary())
	assert.Equal(t, "custom_application", c.Tag)
	assert.Len(t, r.Others(KeyCustomApplication), 3)
}

func TestNewRegistryErrors(t *testing.T) {
	valid := Context{Key: "k", Name: "K", Labels: []string{"K"}, Tag: "k"}

	_, err := NewRegistry(valid, valid)
	assert.ErrorIs(t, err, errInvalidContext)

	_, err = NewRegistry(Context{Key: "k", Name: "K", Tag: "k"})
	assert.ErrorIs(t, err, errInvalidContext)
}

func TestProcess(t *testing.T) {
	doc := parse(t, hostsGroupDashboard)
	before := doc.Clone()

	out, err := New(nil).Process(doc, KeyHostsGroup)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, before.Equal(doc))

	var keys []string
	for _, o := range out {
		keys = append(keys, o.Key)
	}

	assert.Equal(t, []string{"Hosts Group:Application", "Hosts Group:SNI Name", "Hosts Group:Canonical Name"}, keys)

	app := out[0].Doc
	assert.Equal(t, "Custom Application Overview", app.Get("title").Text())
	assert.Equal(t, "/d/x?var-custom_application=$custom_application", app.Get("links").Index(0).Get("url").Text())
	assert.Equal(t, "Top Custom Application", app.Get("links").Index(0).Get("title").Text())

	table := app.Get("panels").Index(0)
	assert.Equal(t, "Bytes by Custom Application", table.Get("title").Text())
	assert.Equal(t,
		`SELECT sum("bytes") FROM "custom_application_stats" GROUP BY "custom_application"`,
		table.Get("targets").Index(0).Get("query").Text())
	assert.Equal(t, []string{"Custom Application", "bytes"},
		table.Get("transformations").Index(0).Path("options", "indexByName").Keys())
	assert.Equal(t, "Custom Application",
		table.Path("fieldConfig", "overrides").Index(0).Path("matcher", "options").Text())

	text := app.Get("panels").Index(1)
	assert.Equal(t, "Pick a Custom Application", text.Get("text").Text())
	assert.Equal(t, "unchanged", text.Path("options", "content").Text())

	sni := out[1].Doc
	assert.Equal(t, "SNI Name Overview", sni.Get("title").Text())
	assert.Contains(t, sni.Get("panels").Index(0).Get("targets").Index(0).Get("query").Text(), `GROUP BY "tls_domain"`)
}

func TestProcessSourceField(t *testing.T) {
	doc := parse(t, `{"uid": "a", "options": {"source_hosts_group": "Application"}}`)

	out, err := New(nil).Process(doc, KeyCustomApplication)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "Application:Hosts Group", out[0].Key)
	assert.Equal(t, "Hosts Group", out[0].Doc.Path("options", "source_hosts_group").Text())
}

func TestRoundTrip(t *testing.T) {
	r := New(nil)
	doc := parse(t, hostsGroupDashboard)

	for _, target := range r.Registry().Others(KeyHostsGroup) {
		t.Run(target.Key, func(t *testing.T) {
			there, err := r.Process(doc, KeyHostsGroup)
			require.NoError(t, err)

			var converted *node.Node
			for _, o := range there {
				if o.Key == "Hosts Group"+KeySeparator+target.Name {
					converted = o.Doc
				}
			}
			require.NotNil(t, converted)

			back, err := r.Process(converted, target.Key)
			require.NoError(t, err)

			for _, o := range back {
				if o.Key == target.Name+KeySeparator+"Hosts Group" {
					if diff := cmp.Diff(doc.String(), o.Doc.String()); diff != "" {
						t.Errorf("round trip changed the dashboard (-want +got):\n%s", diff)
					}

					return
				}
			}

			t.Fatal("no conversion back to hosts group")
		})
	}
}

func TestProcessErrors(t *testing.T) {
	r := New(nil)
	doc := parse(t, hostsGroupDashboard)

	_, err := r.Process(doc, "")
	assert.Equal(t, diagnostic.CodeMalformedContext, diagnostic.CodeOf(err))

	_, err = r.Process(doc, "key_host_group")
	require.Error(t, err)

	var te *diagnostic.TransformError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, diagnostic.CodeUnknownContext, te.Code)
	assert.Contains(t, te.Suggestions, KeyHostsGroup)

	_, err = r.Process(nil, KeyHostsGroup)
	assert.Equal(t, diagnostic.CodeEmptyDocument, diagnostic.CodeOf(err))
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		key      string
		want     string
	}{
		{"snake case", "application_monitored_metrics.json", "Application:Hosts Group", "hosts_group_monitored_metrics.json"},
		{"snake case folds", "Hosts_Group_Top.json", "Hosts Group:SNI Name", "sni_name_top.json"},
		{"verbatim", "Hosts Group Top.json", "Hosts Group:Canonical Name", "Canonical Name Top.json"},
		{"token missing", "overview.json", "Hosts Group:SNI Name", "overview_SNI_Name.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputFilename(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := OutputFilename("x.json", "no-separator")
	assert.Equal(t, diagnostic.CodeMalformedContext, diagnostic.CodeOf(err))
}
