package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/removal"
)

func TestLoadFile_Formats(t *testing.T) {
	for _, name := range []string{"collectors.jsonc", "collectors.yaml", "collectors.toml"} {
		t.Run(name, func(t *testing.T) {
			f, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "HKEx", f.Cclear.Text["name"])
			assert.Len(t, f.Cclear.Datasources, 3)
			require.Len(t, f.Collectors, 2)
			assert.Equal(t, "hk3", f.Collectors[0].Key)
			assert.Equal(t, "fdc2_tcp", f.Collectors[1].Datasources["tcp"])

			// defaults
			assert.Equal(t, DefaultNameKey, f.Options.NameKey)
			assert.Equal(t, DefaultVariablesDatasource, f.Options.VariablesDatasource)
			assert.Equal(t, DefaultGlobalKey, f.Options.GlobalKey)
			assert.Equal(t, DefaultGlobalLabel, f.Options.GlobalLabel)
			assert.Equal(t, removal.NetworkMonitor, f.Options.Removal)
			require.NotNil(t, f.Options.FolderPerCollector)
		})
	}
}

func TestLoadFile_TOMLOptions(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "collectors.toml"))
	require.NoError(t, err)

	assert.False(t, *f.Options.FolderPerCollector)
	assert.Equal(t, []string{"flow_analytics"}, f.Options.MergedFolders)
	assert.Equal(t, DefaultSeparateFolders(), f.Options.SeparateFolders)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile("")
	assert.Equal(t, diagnostic.CodeConfigMissing, diagnostic.CodeOf(err))

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Equal(t, diagnostic.CodeConfigMissing, diagnostic.CodeOf(err))
	assert.True(t, diagnostic.IsConfig(err))

	_, err = LoadFile(filepath.Join(dir, "mapping.ini"))
	assert.Equal(t, diagnostic.CodeConfigInvalid, diagnostic.CodeOf(err))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cclear: [\n"), 0o600))

	_, err = LoadFile(bad)
	assert.Equal(t, diagnostic.CodeConfigInvalid, diagnostic.CodeOf(err))
}

func TestParse_UnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", FormatJSON, `{"cclear": {}, "colectors": []}`},
		{"yaml", FormatYAML, "cclear: {}\ncolectors: []\n"},
		{"toml", FormatTOML, "colectors = []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"a.JSONC", FormatJSON},
		{"dir/a.yml", FormatYAML},
		{"a.yaml", FormatYAML},
		{"a.toml", FormatTOML},
	}

	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatOf("a.txt")
	require.Error(t, err)

	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "unknown", Format(42).String())
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line", "{\"a\": 1} // tail\n", "{\"a\": 1} \n"},
		{"block", "{/* x */\"a\": 1}", "{\"a\": 1}"},
		{"multiline block keeps lines", "{/* x\ny */\"a\": 1}", "{\n\"a\": 1}"},
		{"url in string", `{"u": "http://host/d/x"}`, `{"u": "http://host/d/x"}`},
		{"escaped quote", `{"u": "a\"//b"} // c`, `{"u": "a\"//b"} `},
		{"unterminated block", `{"a": 1} /* open`, `{"a": 1} `},
		{"no newline at end", `1 // c`, `1 `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripComments([]byte(tt.in))))
		})
	}
}
