// Package flowfile loads dialogue graphs from chatbot scenario exports
// (JSON or YAML documents made of sections and buttons).
package flowfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/flowant/internal/dto"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension. YAML is the default.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Loader implements ports.GraphLoader over a flow document on disk.
type Loader struct {
	Path string
}

// New creates a loader for the document at path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the document.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow: %w", err)
	}
	g, err := Parse(data, FormatFromPath(l.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(l.Path), err)
	}
	return g, nil
}

// Read decodes a document from r.
func Read(r io.Reader, format Format) (*domain.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a document and builds its graph.
//
// Sections become nodes in document order, labelled by their text. Buttons become
// edges labelled by their text, except on stop sections. The root is the document's
// "root" field or, when absent, the first section.
func Parse(data []byte, format Format) (*domain.Graph, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse flow json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse flow yaml: %w", err)
		}
	}

	var doc dto.FlowDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode flow: %w", err)
	}

	return Build(doc)
}

// Build turns a decoded document into a graph.
func Build(doc dto.FlowDocument) (*domain.Graph, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("flow has no sections")
	}

	root := doc.Root
	if root == "" {
		root = doc.Sections[0].ID
	}

	seen := make(map[string]bool, len(doc.Sections))
	for i, s := range doc.Sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %d has no id", i)
		}
		if !domain.ValidNodeID(s.ID) {
			return nil, fmt.Errorf("section id %q contains whitespace", s.ID)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if !seen[root] {
		return nil, fmt.Errorf("root section %q: %w", root, domain.ErrNotFound)
	}

	g := domain.NewGraph(root)
	for _, s := range doc.Sections {
		g.AddNode(s.ID, s.Text)
	}

	for _, s := range doc.Sections {
		if s.Type == dto.SectionTypeStop {
			continue
		}
		for _, b := range s.Buttons {
			target := b.Target()
			if target == "" {
				continue
			}
			if err := g.AddEdge(s.ID, target, b.Text); err != nil {
				return nil, fmt.Errorf("section %s button %q: %w", s.ID, b.Text, err)
			}
		}
	}

	return g, nil
}
