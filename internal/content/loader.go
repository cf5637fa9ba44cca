// Package content discovers content files, parses them into raw records and
// validates them against the schema registry.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// File patterns per collection type, relative to the collection directory.
const (
	contentPattern = "**/*.{md,markdown,mdx}"
	dataPattern    = "**/*.{yaml,yml,json}"
)

// Entry is one content file parsed into a raw, unvalidated record.
type Entry struct {
	Collection string
	// ID is the slash-separated path below the collection dir, without extension.
	ID   string
	Path string
	Dir  string
	Raw  map[string]any
	// Body is the Markdown below the front matter; nil for data files.
	Body []byte
}

// Loader reads collection directories below ContentDir.
type Loader struct {
	ContentDir string
	Logger     logrus.FieldLogger
}

// NewLoader creates a loader for contentDir.
func NewLoader(contentDir string, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{ContentDir: contentDir, Logger: logger}
}

// Load parses every file of the collection described by s. A missing
// collection directory yields no entries.
func (l *Loader) Load(s *schema.Schema) ([]Entry, error) {
	dir := filepath.Join(l.ContentDir, s.Name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		l.Logger.WithField("collection", s.Name).Warn("Collection directory not found, skipping")
		return nil, nil
	}

	pattern := dataPattern
	if s.Type == schema.ContentCollection {
		pattern = contentPattern
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files in '%s': %w", s.Name, dir, err)
	}
	sort.Strings(matches)

	entries := make([]Entry, 0, len(matches))
	for _, rel := range matches {
		if strings.HasPrefix(path.Base(rel), "_") {
			continue
		}
		file := filepath.Join(dir, filepath.FromSlash(rel))
		l.Logger.WithFields(logrus.Fields{"collection": s.Name, "file": file}).Debug("Processing file")

		entry, err := l.parse(s, file, rel)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *Loader) parse(s *schema.Schema, file, rel string) (Entry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read file '%s': %w", file, err)
	}

	entry := Entry{
		Collection: s.Name,
		ID:         strings.TrimSuffix(rel, path.Ext(rel)),
		Path:       file,
		Dir:        filepath.Dir(file),
	}

	if s.Type == schema.ContentCollection {
		entry.Raw, entry.Body, err = ParseMarkdown(data)
	} else {
		entry.Raw, err = ParseData(data)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse '%s': %w", file, err)
	}
	return entry, nil
}

// ParseMarkdown splits a Markdown document into its front matter (YAML,
// TOML or JSON) and body. A document without front matter has an empty record.
func ParseMarkdown(data []byte) (map[string]any, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid front matter: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Normalize(raw), body, nil
}

// ParseData parses a YAML or JSON data file whose top level is a mapping.
func ParseData(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid data file: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Normalize(raw), nil
}
