package plan

import (
	"maps"

	"dashboard-converter/internal/common"
)

// Identifiers maps original dashboard UIDs to the UIDs of their conversions.
// It is read-only once resolved.
type Identifiers struct {
	global     map[string]string
	collectors map[string]map[string]string
}

// NewIdentifiers builds a plan from explicit maps. Missing maps are treated as empty.
func NewIdentifiers(global map[string]string, collectors map[string]map[string]string) *Identifiers {
	p := &Identifiers{
		global:     maps.Clone(global),
		collectors: make(map[string]map[string]string, len(collectors)),
	}

	if p.global == nil {
		p.global = map[string]string{}
	}

	for k, m := range collectors {
		p.collectors[k] = maps.Clone(m)
	}

	return p
}

// GlobalUID returns the merged UID planned for uid.
func (p *Identifiers) GlobalUID(uid string) (string, bool) {
	if p == nil {
		return "", false
	}

	v, ok := p.global[uid]

	return v, ok
}

// CollectorUID returns the UID planned for uid at the given collector.
func (p *Identifiers) CollectorUID(collector, uid string) (string, bool) {
	if p == nil {
		return "", false
	}

	v, ok := p.collectors[collector][uid]

	return v, ok
}

// Global returns a copy of the merged UID map.
func (p *Identifiers) Global() map[string]string {
	if p == nil {
		return map[string]string{}
	}

	return maps.Clone(p.global)
}

// Collector returns a copy of the UID map of one collector.
func (p *Identifiers) Collector(key string) map[string]string {
	if p == nil || p.collectors[key] == nil {
		return map[string]string{}
	}

	return maps.Clone(p.collectors[key])
}

// Links returns the UID map applied to dashboard links of a collector
// copy: the merged map overlaid with the collector map.
func (p *Identifiers) Links(collector string) map[string]string {
	return common.Merge(p.Global(), p.Collector(collector))
}

// Len returns the number of planned UIDs.
func (p *Identifiers) Len() int {
	if p == nil {
		return 0
	}

	n := len(p.global)
	for _, m := range p.collectors {
		n += len(m)
	}

	return n
}
