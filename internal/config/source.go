package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceKind identifies the syntax of a configuration source.
type SourceKind int

const (
	SourceJSON SourceKind = iota + 1
	SourceHCL
	SourceYAML
)

func (k SourceKind) String() string {
	switch k {
	case SourceJSON:
		return "json"
	case SourceHCL:
		return "hcl"
	case SourceYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectSource maps a file name to its source kind. Files without an
// extension are JSON.
func DetectSource(path string) (SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return SourceJSON, true
	case ".hcl":
		return SourceHCL, true
	case ".yaml", ".yml":
		return SourceYAML, true
	default:
		return 0, false
	}
}

// FileSource loads a configuration from a file on disk.
type FileSource struct {
	Path string
	// Environ supplies the env.* variables of HCL files. Defaults to os.Environ.
	Environ func() []string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Environ: os.Environ}
}

// LoadFile is shorthand for NewFileSource(path).Load().
func LoadFile(path string) (*Config, error) {
	return NewFileSource(path).Load()
}

// Load reads, decodes and validates the file. Every failure is a
// *ConfigError.
func (s *FileSource) Load() (*Config, error) {
	kind, ok := DetectSource(s.Path)
	if !ok {
		return nil, &ConfigError{Kind: UnsupportedSource, Path: s.Path}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Kind: NotFound, Path: s.Path, Err: err}
		}
		return nil, &ConfigError{Kind: Unreadable, Path: s.Path, Err: err}
	}

	environ := s.Environ
	if environ == nil {
		environ = os.Environ
	}
	return Parse(kind, s.Path, data, environ())
}

// Parse decodes and validates data of the given kind. filename is used in
// diagnostics only.
func Parse(kind SourceKind, filename string, data []byte, environ []string) (*Config, error) {
	var (
		doc *document
		err error
	)
	switch kind {
	case SourceJSON:
		doc, err = decodeJSON(data)
	case SourceHCL:
		doc, err = decodeHCL(filename, data, environ)
	case SourceYAML:
		doc, err = decodeYAML(data)
	default:
		return nil, &ConfigError{Kind: UnsupportedSource, Path: filename}
	}
	if err != nil {
		return nil, &ConfigError{Kind: Malformed, Path: filename, Err: err}
	}

	cfg, missing := doc.config()
	if missing.HasErrors() {
		return nil, &ConfigError{Kind: Invalid, Path: filename, Err: missing}
	}
	if err := Validate(cfg); err != nil {
		return nil, &ConfigError{Kind: Invalid, Path: filename, Err: err}
	}
	return cfg, nil
}
