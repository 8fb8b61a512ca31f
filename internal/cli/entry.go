package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
)

var entryExtensions = []string{".md", ".json", ".yaml", ".yml"}

// determineEntryPoint picks the root document of a flow directory:
// start, main, index or a document named after the directory, in that order.
func determineEntryPoint(dir string) string {
	candidates := []string{"start", "main", "index", filepath.Base(dir)}
	for _, name := range candidates {
		if hasDocument(dir, name) {
			return name
		}
	}
	return "start"
}

func hasDocument(dir, name string) bool {
	for _, ext := range entryExtensions {
		if _, err := os.Stat(filepath.Join(dir, name+ext)); err == nil {
			return true
		}
	}
	return false
}

// openFlow returns a loader for path. For directories the root document is
// root when given and the conventional entry point otherwise.
func openFlow(path, root string) (ports.GraphLoader, error) {
	if root == "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			root = determineEntryPoint(path)
		}
	}
	return flowant.Open(path, root)
}

// loadFlow opens and reads a flow in one step.
func loadFlow(ctx context.Context, path, root string) (*domain.Graph, ports.GraphLoader, error) {
	loader, err := openFlow(path, root)
	if err != nil {
		return nil, nil, err
	}
	g, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return g, loader, nil
}
