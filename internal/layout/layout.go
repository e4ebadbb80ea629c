// Package layout recomputes the vertical position of dashboard panels.
//
// Positions are accounted in a single column: each panel starts where the
// previous sibling ended. Dashboards placing several panels side by side
// get wrong offsets; CheckSingleColumn reports them.
package layout

import (
	"dashboard-converter/node"
)

// FullWidth is the width of the dashboard grid.
const FullWidth = 24

// Place sets the panel's gridPos.y to offset and returns the offset below
// it. A panel without gridPos takes no room.
func Place(panel *node.Node, offset int) int {
	pos := panel.Get("gridPos")
	if !pos.IsMap() {
		return offset
	}

	pos.Set("y", node.Int(offset))

	h, _ := pos.Get("h").IntValue()

	return offset + h
}

// Reflow places panels in order starting at offset and returns the offset
// below the last one. The children of a row start right below the row and
// are counted separately: they do not push the row's later siblings down.
func Reflow(panels []*node.Node, offset int) int {
	for _, p := range panels {
		offset = Place(p, offset)

		if IsRow(p) {
			Reflow(p.Get("panels").Items(), offset)
		}
	}

	return offset
}

func IsRow(panel *node.Node) bool {
	return panel.Get("type").Text() == "row"
}

// Narrow is a panel that does not span the whole grid.
type Narrow struct {
	Title string
	Width int
}

// CheckSingleColumn lists the panels, row children included, narrower than
// FullWidth. Rows are exempt.
func CheckSingleColumn(panels []*node.Node) []Narrow {
	var out []Narrow

	for _, p := range panels {
		if IsRow(p) {
			out = append(out, CheckSingleColumn(p.Get("panels").Items())...)
			continue
		}

		w, ok := p.Path("gridPos", "w").IntValue()
		if ok && w < FullWidth {
			out = append(out, Narrow{Title: p.Get("title").Text(), Width: w})
		}
	}

	return out
}
