package analyze

import (
	"fmt"
	"path/filepath"

	"dashboard-converter/internal/common"
	"dashboard-converter/internal/diagnostic"
)

// Class tells how a dashboard is converted for collectors.
type Class int

const (
	ClassNone     Class = iota // not converted for collectors
	ClassMerged                // folded into one global dashboard
	ClassSeparate              // copied once per collector
)

// String returns a human-readable representation of the Class.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassMerged:
		return "merged"
	case ClassSeparate:
		return "separate"
	default:
		return common.UnknownStr
	}
}

// Classifier decides the class of a folder by its base name.
type Classifier interface {
	IsMergedFolder(name string) bool
	IsSeparateFolder(name string) bool
}

// Dashboard describes one scanned dashboard file.
type Dashboard struct {
	Path   string // as found on disk
	Rel    string // slash-separated, relative to the scan root
	Folder string // base name of the containing folder
	UID    string
	Title  string
	Class  Class
}

// Skipped is a file the scan could not read as a dashboard.
type Skipped struct {
	Path string
	Err  error
}

// Inventory is the result of a scan.
type Inventory struct {
	Root       string
	Dashboards []Dashboard
	Skipped    []Skipped

	byPath map[string]int
	byUID  map[string]int
}

// NewInventory creates an empty inventory rooted at root.
func NewInventory(root string) *Inventory {
	return &Inventory{
		Root:   root,
		byPath: make(map[string]int),
		byUID:  make(map[string]int),
	}
}

// Add records d. A UID already held by another dashboard is a ConfigError.
func (inv *Inventory) Add(d Dashboard) error {
	if d.UID != "" {
		if i, dup := inv.byUID[d.UID]; dup {
			return diagnostic.NewConfigError(diagnostic.CodeDuplicateUID,
				fmt.Sprintf("duplicate dashboard UID %q in %s and %s", d.UID, inv.Dashboards[i].Path, d.Path), nil)
		}

		inv.byUID[d.UID] = len(inv.Dashboards)
	}

	inv.byPath[filepath.Clean(d.Path)] = len(inv.Dashboards)
	inv.Dashboards = append(inv.Dashboards, d)

	return nil
}

// Lookup finds the dashboard scanned at path.
func (inv *Inventory) Lookup(path string) (Dashboard, bool) {
	i, ok := inv.byPath[filepath.Clean(path)]
	if !ok {
		return Dashboard{}, false
	}

	return inv.Dashboards[i], true
}

// ByUID finds the dashboard holding uid.
func (inv *Inventory) ByUID(uid string) (Dashboard, bool) {
	i, ok := inv.byUID[uid]
	if !ok {
		return Dashboard{}, false
	}

	return inv.Dashboards[i], true
}

// UIDs returns the UIDs of the dashboards of class c in scan order.
func (inv *Inventory) UIDs(c Class) []string {
	var uids []string

	for _, d := range inv.Dashboards {
		if d.UID != "" && d.Class == c {
			uids = append(uids, d.UID)
		}
	}

	return uids
}

// Len returns the number of scanned dashboards.
func (inv *Inventory) Len() int { return len(inv.Dashboards) }
