package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"dashboard-converter/internal/common"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/removal"
)

// Format is the encoding of a mapping file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return common.UnknownStr
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported mapping file extension %q", filepath.Ext(path))
	}
}

// Load reads, validates and indexes the mapping file at path.
func Load(path string) (*Table, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return New(f)
}

// LoadFile loads and parses a mapping file from the given path.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigMissing, "mapping file not specified", nil)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid, path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := diagnostic.CodeConfigInvalid
		if errors.Is(err, os.ErrNotExist) {
			code = diagnostic.CodeConfigMissing
		}

		return nil, diagnostic.NewConfigError(code, "failed to read mapping file "+path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid, path, err)
	}

	return f, nil
}

// Parse decodes data in the given format into a File. Unknown keys are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(StripComments(data)))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported mapping format %v", format)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	o := &f.Options

	if o.NameKey == "" {
		o.NameKey = DefaultNameKey
	}

	if o.VariablesDatasource == "" {
		o.VariablesDatasource = DefaultVariablesDatasource
	}

	if o.GlobalKey == "" {
		o.GlobalKey = DefaultGlobalKey
	}

	if o.GlobalLabel == "" {
		o.GlobalLabel = DefaultGlobalLabel
	}

	if o.MergedFolders == nil {
		o.MergedFolders = DefaultMergedFolders()
	}

	if o.SeparateFolders == nil {
		o.SeparateFolders = DefaultSeparateFolders()
	}

	if o.FolderPerCollector == nil {
		perCollector := true
		o.FolderPerCollector = &perCollector
	}

	if o.Removal == (removal.Dimension{}) {
		o.Removal = removal.NetworkMonitor
	}

	for i := range f.Collectors {
		f.Collectors[i].Key = strings.TrimSpace(f.Collectors[i].Key)
	}
}

// StripComments removes // line comments and /* block */ comments from
// JSON text. Comment markers inside string literals are kept.
func StripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); i++ {
		c := data[i]

		switch {
		case c == '"':
			j := i + 1
			for j < len(data) && data[j] != '"' {
				if data[j] == '\\' {
					j++
				}
				j++
			}

			end := min(j+1, len(data))
			out = append(out, data[i:end]...)
			i = end - 1
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}

			if i < len(data) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			end := bytes.Index(data[i+2:], []byte("*/"))
			if end < 0 {
				return out
			}

			// keep line numbers stable for decode errors
			out = append(out, bytes.Repeat([]byte{'\n'}, bytes.Count(data[i:i+2+end], []byte{'\n'}))...)
			i += end + 3
		default:
			out = append(out, c)
		}
	}

	return out
}
