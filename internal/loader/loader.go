// Package loader reads the knowledge-base document set from disk.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"tripguide/internal/domain"
	"tripguide/internal/logger"
)

var (
	// ErrUnsupportedFormat is returned for knowledge-base files of unknown type.
	ErrUnsupportedFormat = errors.New("unsupported knowledge base format")
	// ErrDuplicateID is returned when two documents share an id.
	ErrDuplicateID = errors.New("duplicate document id")
)

// DefaultExtensions are the markdown extensions read from a directory.
var DefaultExtensions = []string{".md", ".markdown"}

// Loader reads documents from a single structured file (.json, .yaml, .yml,
// .toml) or from a directory of markdown files.
type Loader struct {
	path       string
	extensions []string
}

// New creates a loader for path. extensions selects the markdown files read
// when path is a directory.
func New(path string, extensions []string) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Loader{path: path, extensions: extensions}
}

// Path returns the knowledge-base location.
func (l *Loader) Path() string { return l.path }

// Extensions returns the file extensions that make up the knowledge base.
func (l *Loader) Extensions() []string {
	info, err := os.Stat(l.path)
	if err == nil && !info.IsDir() {
		return []string{strings.ToLower(filepath.Ext(l.path))}
	}
	return l.extensions
}

// Load reads and validates the document set in source order.
func (l *Loader) Load() ([]domain.Document, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("knowledge base: %w", err)
	}
	var docs []domain.Document
	if info.IsDir() {
		docs, err = l.loadDir()
	} else {
		docs, err = loadFile(l.path)
	}
	if err != nil {
		return nil, err
	}
	return validate(docs)
}

func loadFile(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var set documentSet
	switch ext {
	case ".json":
		err = set.decode(data, sonic.ConfigStd.Unmarshal)
	case ".yaml", ".yml":
		err = set.decode(data, yaml.Unmarshal)
	case ".toml":
		err = toml.Unmarshal(data, &set)
	case ".md", ".markdown":
		var doc domain.Document
		doc, err = parseMarkdown(path, filepath.Base(path), data)
		set.Documents = []domain.Document{doc}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return set.Documents, nil
}

func (l *Loader) loadDir() ([]domain.Document, error) {
	var docs []domain.Document
	err := filepath.WalkDir(l.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExtension(path, l.extensions) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.path, path)
		if err != nil {
			return err
		}
		doc, err := parseMarkdown(path, rel, data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("read %d markdown files from %s", len(docs), l.path)
	return docs, nil
}

// documentSet accepts either a bare list of documents or an object with a
// "documents" key.
type documentSet struct {
	Documents []domain.Document `json:"documents" yaml:"documents" toml:"documents"`
}

func (s *documentSet) decode(data []byte, unmarshal func([]byte, any) error) error {
	var list []domain.Document
	if err := unmarshal(data, &list); err == nil {
		s.Documents = list
		return nil
	}
	return unmarshal(data, s)
}

func validate(docs []domain.Document) ([]domain.Document, error) {
	seen := make(map[string]struct{}, len(docs))
	out := make([]domain.Document, 0, len(docs))
	for i, d := range docs {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			logger.Warn("skipping document %d: missing id", i+1)
			continue
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
