package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"dashboard-converter/node"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer stores dashboards below a root directory.
type Writer struct {
	root string
}

// NewWriter creates a Writer for root. The directory is created on the first write.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

func (w *Writer) Root() string { return w.root }

// Path returns the absolute location of rel.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// Write encodes doc into rel, creating parent directories. It reports false
// when the file already held the same content.
func (w *Writer) Write(rel string, doc *node.Node) (bool, error) {
	content, err := doc.Encode()
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", rel, err)
	}

	return w.WriteBytes(rel, content)
}

// WriteBytes stores content into rel unless the file holds it already.
func (w *Writer) WriteBytes(rel string, content []byte) (bool, error) {
	path := w.Path(rel)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if xxhash.Sum64(existing) == xxhash.Sum64(content) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("reading %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return false, fmt.Errorf("writing file %s: %w", rel, err)
	}

	return true, nil
}

// Clear removes the root directory and everything below it.
func (w *Writer) Clear() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("clearing %s: %w", w.root, err)
	}

	return nil
}
