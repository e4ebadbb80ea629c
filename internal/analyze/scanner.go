package analyze

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"dashboard-converter/node"
)

// DefaultInclude matches every dashboard file below the root.
const DefaultInclude = "**/*.json"

// Scanner walks an input folder and builds an Inventory.
type Scanner struct {
	include  []string
	exclude  []string
	classify Classifier
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithInclude replaces the include globs. Paths are matched relative to the
// scan root with forward slashes.
func WithInclude(patterns ...string) Option {
	return func(s *Scanner) { s.include = patterns }
}

// WithExclude adds exclude globs. A matching folder is not descended into.
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) { s.exclude = append(s.exclude, patterns...) }
}

// WithClassifier sets the folder classifier. Without one every dashboard is ClassNone.
func WithClassifier(c Classifier) Option {
	return func(s *Scanner) { s.classify = c }
}

// NewScanner creates a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{include: []string{DefaultInclude}}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan builds the inventory of root, which may be a folder or a single
// dashboard file. Unreadable dashboards are listed in Inventory.Skipped;
// a duplicate UID aborts the scan.
func (s *Scanner) Scan(root string) (*Inventory, error) {
	for _, p := range append(append([]string{}, s.include...), s.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if !info.IsDir() {
		inv := NewInventory(filepath.Dir(root))
		if err := s.addFile(inv, root, filepath.Base(root)); err != nil {
			return nil, err
		}

		return inv, nil
	}

	inv := NewInventory(root)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if s.excluded(rel) || s.excluded(rel+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !s.included(rel) || s.excluded(rel) {
			return nil
		}

		return s.addFile(inv, path, rel)
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Scanner) addFile(inv *Inventory, path, rel string) error {
	doc, err := node.ReadFile(path)
	if err != nil {
		inv.Skipped = append(inv.Skipped, Skipped{Path: path, Err: err})
		return nil
	}

	d := Dashboard{
		Path:   path,
		Rel:    rel,
		Folder: filepath.Base(filepath.Dir(path)),
	}

	if doc.IsMap() {
		d.UID = strings.TrimSpace(doc.Get("uid").Text())
		d.Title = doc.Get("title").Text()
	}

	d.Class = s.classOf(d.Folder)

	return inv.Add(d)
}

func (s *Scanner) classOf(folder string) Class {
	switch {
	case s.classify == nil:
		return ClassNone
	case s.classify.IsMergedFolder(folder):
		return ClassMerged
	case s.classify.IsSeparateFolder(folder):
		return ClassSeparate
	default:
		return ClassNone
	}
}

func (s *Scanner) included(rel string) bool {
	for _, pattern := range s.include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	return false
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	return false
}
