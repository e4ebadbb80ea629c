package options

import (
	"strings"
)

type ModeEnum int

const (
	ModeMerged       ModeEnum = 1 << iota // one global dashboard folding every collector in
	ModePerCollector                      // one copy of the dashboard per collector
	ModeApplication                       // one dashboard per other application context
)

const (
	ModeNone       ModeEnum = 0                             // no modes selected
	ModeAll        ModeEnum = ModeApplication<<1 - 1        // all modes combined
	ModeCollectors ModeEnum = ModeMerged | ModePerCollector // both collector conversions
)

var modeNames = []struct {
	mode ModeEnum
	name string
}{
	{ModeMerged, "merged"},
	{ModePerCollector, "per-collector"},
	{ModeApplication, "application"},
}

// Has reports whether every mode of m is set.
func (s ModeEnum) Has(m ModeEnum) bool { return s&m == m }

// String lists the set modes joined by "|".
func (s ModeEnum) String() string {
	if s == ModeNone {
		return "none"
	}

	var parts []string

	for _, mn := range modeNames {
		if s.Has(mn.mode) {
			parts = append(parts, mn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseMode parses a comma or "|" separated list of mode names.
func ParseMode(s string) (ModeEnum, bool) {
	mode := ModeNone

	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		part = strings.ToLower(strings.TrimSpace(part))

		switch part {
		case "collectors":
			mode |= ModeCollectors
			continue
		case "all":
			mode |= ModeAll
			continue
		}

		found := false

		for _, mn := range modeNames {
			if mn.name == part {
				mode |= mn.mode
				found = true
			}
		}

		if !found {
			return ModeNone, false
		}
	}

	return mode, true
}
