package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-converter/internal/analyze"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/identifier"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(identifier.New(identifier.WithSeed(7)))

	ids, err := r.Resolve(Request{
		Existing:   []string{"flows-1", "sys-1"},
		Merged:     []string{"flows-1"},
		Separate:   []string{"sys-1"},
		GlobalKey:  "global",
		Collectors: []string{"hk3", "fdc2"},
	})
	require.NoError(t, err)

	uid, ok := ids.GlobalUID("flows-1")
	require.True(t, ok)
	assert.Equal(t, "flows-1_global", uid)

	uid, ok = ids.CollectorUID("hk3", "sys-1")
	require.True(t, ok)
	assert.Equal(t, "sys-1_hk3", uid)

	uid, ok = ids.CollectorUID("fdc2", "sys-1")
	require.True(t, ok)
	assert.Equal(t, "sys-1_fdc2", uid)

	_, ok = ids.GlobalUID("sys-1")
	assert.False(t, ok)

	_, ok = ids.CollectorUID("hk3", "flows-1")
	assert.False(t, ok)

	assert.Equal(t, 3, ids.Len())
}

func TestResolver_AvoidsExistingAndIssued(t *testing.T) {
	r := NewResolver(identifier.New(identifier.WithSeed(1)))

	ids, err := r.Resolve(Request{
		// another dashboard already holds the natural candidate
		Existing:  []string{"flows-1", "flows-1_global"},
		Merged:    []string{"flows-1"},
		GlobalKey: "global",
	})
	require.NoError(t, err)

	uid, ok := ids.GlobalUID("flows-1")
	require.True(t, ok)
	assert.NotEqual(t, "flows-1_global", uid)
	assert.NotEqual(t, "flows-1", uid)
	assert.Len(t, uid, len("flows-1_global"))

	// every planned UID is distinct
	long := strings.Repeat("x", 50)

	ids, err = r.Resolve(Request{
		Existing:   []string{long + "1", long + "2"},
		Separate:   []string{long + "1", long + "2"},
		Collectors: []string{"hk3"},
	})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, uid := range ids.Collector("hk3") {
		assert.LessOrEqual(t, len(uid), identifier.MaxLength)
		assert.False(t, seen[uid], uid)
		seen[uid] = true
	}
	assert.Len(t, seen, 2)
}

func TestResolver_Errors(t *testing.T) {
	r := NewResolver(identifier.New(identifier.WithSeed(3), identifier.WithAttempts(50)))

	_, err := r.Resolve(Request{
		Existing:  []string{"a_a", "aa_", "_aa"},
		Merged:    []string{"a"},
		GlobalKey: "a",
	})
	require.Error(t, err)
	assert.True(t, diagnostic.IsConfig(err))
	assert.Equal(t, diagnostic.CodeUIDExhausted, diagnostic.CodeOf(err))
	assert.ErrorIs(t, err, identifier.ErrExhausted)

	_, err = r.Resolve(Request{
		Merged:    []string{"flows-1"},
		GlobalKey: strings.Repeat("g", identifier.MaxLength),
	})
	require.Error(t, err)
	assert.Equal(t, diagnostic.CodeConfigInvalid, diagnostic.CodeOf(err))
	assert.ErrorIs(t, err, identifier.ErrSuffixTooLong)
}

func TestIdentifiers_Links(t *testing.T) {
	ids := NewIdentifiers(
		map[string]string{"a": "a_global", "b": "b_global"},
		map[string]map[string]string{"hk3": {"b": "b_hk3", "c": "c_hk3"}},
	)

	assert.Equal(t, map[string]string{"a": "a_global", "b": "b_hk3", "c": "c_hk3"}, ids.Links("hk3"))
	assert.Equal(t, map[string]string{"a": "a_global", "b": "b_global"}, ids.Links("fdc2"))

	// copies do not leak into the plan
	g := ids.Global()
	g["a"] = "changed"
	uid, _ := ids.GlobalUID("a")
	assert.Equal(t, "a_global", uid)

	var empty *Identifiers
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Links("hk3"))
}

func TestFromInventory(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"custom/a.json": `{"uid": "a"}`,
		"system/b.json": `{"uid": "b"}`,
		"other/c.json":  `{"uid": "c"}`,
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	inv, err := analyze.NewScanner(analyze.WithClassifier(classes{})).Scan(root)
	require.NoError(t, err)

	req := FromInventory(inv, "global", []string{"hk3"})
	assert.Equal(t, []string{"a", "c", "b"}, req.Existing)
	assert.Equal(t, []string{"a"}, req.Merged)
	assert.Equal(t, []string{"b"}, req.Separate)
	assert.Equal(t, "global", req.GlobalKey)
	assert.Equal(t, []string{"hk3"}, req.Collectors)
}

type classes struct{}

func (classes) IsMergedFolder(name string) bool   { return name == "custom" }
func (classes) IsSeparateFolder(name string) bool { return name == "system" }
