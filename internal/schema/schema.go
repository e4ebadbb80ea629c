// Package schema reads the measurement schema of the time series database
// and finds the measurements carrying a grouping.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"dashboard-converter/internal/common"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/mapping"
)

// Database lists the measurement families in lookup order.
type Database struct {
	Timeslice Family `json:"timeslice"`
	Open      Family `json:"open"`
}

// Family is a set of measurements sharing their fields.
type Family struct {
	Fields       []string               `json:"fields"`
	Measurements map[string]Measurement `json:"measurements"`
	// IPMeasurements are keyed by IP address rather than by a grouping tag.
	IPMeasurements []string `json:"ip_measurements"`
}

// Measurement maps each tag to the grouping labels it stores.
type Measurement struct {
	Keys map[string][]string `json:"keys"`
}

// Match is a measurement and its tags carrying the requested grouping.
type Match struct {
	Name string
	Tags []string
}

// Selection is what a dashboard shows for one metric.
type Selection struct {
	Metric         string
	Measurements   []Match
	IPMeasurements []string
}

// IsIP reports whether every selected measurement is keyed by IP address.
func (s Selection) IsIP() bool {
	if len(s.Measurements) == 0 || len(s.IPMeasurements) == 0 {
		return false
	}

	for _, m := range s.Measurements {
		if !slices.Contains(s.IPMeasurements, m.Name) {
			return false
		}
	}

	return true
}

// Load reads a schema file. Comments are allowed.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigMissing, "reading measurement schema "+path, err)
	}

	var db Database
	if err := json.Unmarshal(mapping.StripComments(data), &db); err != nil {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid, "decoding measurement schema "+path, err)
	}

	return &db, nil
}

func (db *Database) families() []Family {
	return []Family{db.Timeslice, db.Open}
}

// Select finds, for each metric, the first family holding it and the
// measurements of that family tagged with the grouping label. Metrics found
// nowhere are returned in missing.
func (db *Database) Select(metrics []string, label string) (selected []Selection, missing []string) {
	for _, metric := range metrics {
		s, ok := db.selectOne(metric, label)
		if !ok {
			missing = append(missing, metric)
			continue
		}

		selected = append(selected, s)
	}

	return selected, missing
}

func (db *Database) selectOne(metric, label string) (Selection, bool) {
	for _, f := range db.families() {
		if !slices.Contains(f.Fields, metric) {
			continue
		}

		return Selection{
			Metric:         metric,
			Measurements:   f.find(label),
			IPMeasurements: slices.Clone(f.IPMeasurements),
		}, true
	}

	return Selection{}, false
}

// find returns the measurements with a tag storing label, in name order.
func (f Family) find(label string) []Match {
	var out []Match

	for _, name := range common.SortedKeys(f.Measurements) {
		var tags []string

		keys := f.Measurements[name].Keys
		for _, tag := range common.SortedKeys(keys) {
			if slices.ContainsFunc(keys[tag], func(v string) bool {
				return strings.EqualFold(strings.TrimSpace(v), label)
			}) {
				tags = append(tags, tag)
			}
		}

		if len(tags) > 0 {
			out = append(out, Match{Name: name, Tags: tags})
		}
	}

	return out
}

func (m Match) String() string {
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(m.Tags, ", "))
}
