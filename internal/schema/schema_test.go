package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-converter/internal/diagnostic"
)

func load(t *testing.T) *Database {
	t.Helper()

	db, err := Load(filepath.Join("testdata", "database.jsonc"))
	require.NoError(t, err)

	return db
}

func TestSelect(t *testing.T) {
	db := load(t)

	selected, missing := db.Select([]string{"bytes_server", "connections", "latency"}, "hosts group")
	assert.Equal(t, []string{"latency"}, missing)
	require.Len(t, selected, 2)

	assert.Equal(t, "bytes_server", selected[0].Metric)
	assert.Equal(t, []Match{{Name: "hosts_timeslice", Tags: []string{"client_hosts_group", "server_hosts_group"}}},
		selected[0].Measurements)
	assert.Equal(t, []string{"ip_timeslice"}, selected[0].IPMeasurements)

	assert.Equal(t, []Match{{Name: "hosts_open", Tags: []string{"hosts_group"}}}, selected[1].Measurements)
}

func TestSelectionIsIP(t *testing.T) {
	db := load(t)

	selected, _ := db.Select([]string{"bytes_client"}, "IP")
	require.Len(t, selected, 1)
	assert.True(t, selected[0].IsIP())

	selected, _ = db.Select([]string{"bytes_client"}, "Application")
	require.Len(t, selected, 1)
	assert.False(t, selected[0].IsIP())
	assert.Equal(t, "app_timeslice(custom_application)", selected[0].Measurements[0].String())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.jsonc"))
	assert.Equal(t, diagnostic.CodeConfigMissing, diagnostic.CodeOf(err))
}
