package collector

import (
	"fmt"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/node"
	"dashboard-converter/utils"
)

const (
	firstRefID = 'A'
	lastRefID  = 'Z'
)

// refIDs hands out query reference ids of one panel. Ids continue after the
// highest one in use and are never reused.
type refIDs struct {
	next rune
}

func newRefIDs(targets []*node.Node) *refIDs {
	ids := &refIDs{next: firstRefID}

	for _, t := range targets {
		if r, ok := refIDOf(t); ok && r >= ids.next {
			ids.next = r + 1
		}
	}

	return ids
}

// refIDOf returns the single letter refId of a target.
func refIDOf(target *node.Node) (rune, bool) {
	s := target.Get("refId").Text()
	if len(s) != 1 {
		return 0, false
	}

	r := rune(s[0])

	return r, utils.InRange(firstRefID, r, lastRefID)
}

func (ids *refIDs) take() (string, error) {
	if !utils.InRange(firstRefID, ids.next, lastRefID) {
		return "", diagnostic.NewTransformError(diagnostic.CodeRefIDExhausted,
			fmt.Sprintf("no query reference id left after %q", string(lastRefID)), nil)
	}

	id := string(ids.next)
	ids.next++

	return id, nil
}
