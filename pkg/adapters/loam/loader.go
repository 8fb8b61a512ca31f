package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/loam"
)

// DefaultRoot is the id of the entry state when none is configured.
const DefaultRoot = "start"

// NodeTypeStop marks a terminal state. Its transitions are ignored.
const NodeTypeStop = "stop"

// Loader adapts the Loam library to the GraphLoader interface.
// Every document in the repository is one dialogue state.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
	root string
}

// Option configures the Loader.
type Option func(*Loader)

// WithRoot sets the id of the entry state.
func WithRoot(id string) Option {
	return func(l *Loader) {
		l.root = id
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata], opts ...Option) *Loader {
	l := &Loader{
		Repo: repo,
		root: DefaultRoot,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type document struct {
	id   string
	path string
	meta NodeMetadata
	body string
}

// Load reads every document and builds the graph.
// Nodes are ordered root first, then by id. A node is labelled by its "text"
// field or, failing that, by its trimmed body.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	docs, err := l.list(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]document, len(docs))
	for _, d := range docs {
		byID[d.id] = d
	}
	if _, ok := byID[l.root]; !ok {
		return nil, fmt.Errorf("root node %q: %w", l.root, domain.ErrNotFound)
	}

	g := domain.NewGraph(l.root)
	for _, d := range docs {
		label, err := l.label(ctx, d)
		if err != nil {
			return nil, err
		}
		g.AddNode(d.id, label)
	}

	for _, d := range docs {
		if d.meta.Type == NodeTypeStop {
			continue
		}
		for _, lt := range append(d.meta.Options, d.meta.Transitions...) {
			if err := addEdge(g, d.id, lt.target(), lt.label()); err != nil {
				return nil, err
			}
		}
		if d.meta.To != "" {
			if err := addEdge(g, d.id, d.meta.To, ""); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// label returns the "text" field of d or its trimmed body.
// Listings may omit bodies, so the body is fetched when it is missing.
func (l *Loader) label(ctx context.Context, d document) (string, error) {
	if d.meta.Text != "" {
		return d.meta.Text, nil
	}
	body := d.body
	if body == "" {
		doc, err := l.Repo.Get(ctx, d.path)
		if err != nil {
			return "", fmt.Errorf("loam get failed for %s: %w", d.path, err)
		}
		body = doc.Content
	}
	return strings.TrimSpace(body), nil
}

func addEdge(g *domain.Graph, from, to, label string) error {
	if to == "" {
		return nil
	}
	if err := g.AddEdge(from, trimExtension(to), label); err != nil {
		return fmt.Errorf("transition %s -> %s: %w", from, to, err)
	}
	return nil
}

// ListNodes lists all node ids in the repository, root first.
func (l *Loader) ListNodes(ctx context.Context) ([]string, error) {
	docs, err := l.list(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.id
	}
	return ids, nil
}

func (l *Loader) list(ctx context.Context) ([]document, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	out := make([]document, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)
		if !domain.ValidNodeID(id) {
			return nil, fmt.Errorf("document %q: node id %q contains whitespace", doc.ID, id)
		}

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		out = append(out, document{id: id, path: doc.ID, meta: doc.Data, body: doc.Content})
	}

	sort.Slice(out, func(i, j int) bool {
		if (out[i].id == l.root) != (out[j].id == l.root) {
			return out[i].id == l.root
		}
		return out[i].id < out[j].id
	})
	return out, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
