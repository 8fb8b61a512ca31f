package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineEntryPoint(t *testing.T) {
	// Helper to create a temp dir with specific files
	createDir := func(t *testing.T, files []string) string {
		dir := t.TempDir()
		for _, f := range files {
			err := os.WriteFile(filepath.Join(dir, f), []byte("content"), 0644)
			require.NoError(t, err)
		}
		return dir
	}

	t.Run("Default to start if exists", func(t *testing.T) {
		dir := createDir(t, []string{"start.md", "main.md"})
		assert.Equal(t, "start", determineEntryPoint(dir))
	})

	t.Run("Fallback to main", func(t *testing.T) {
		dir := createDir(t, []string{"main.json", "index.md"})
		assert.Equal(t, "main", determineEntryPoint(dir))
	})

	t.Run("Fallback to index", func(t *testing.T) {
		dir := createDir(t, []string{"index.yaml", "other.md"})
		assert.Equal(t, "index", determineEntryPoint(dir))
	})

	t.Run("Fallback to DirectoryName", func(t *testing.T) {
		tmpRoot := t.TempDir()
		moduleDir := filepath.Join(tmpRoot, "checkout")
		require.NoError(t, os.Mkdir(moduleDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(moduleDir, "checkout.md"), []byte("content"), 0644))

		assert.Equal(t, "checkout", determineEntryPoint(moduleDir))
	})

	t.Run("Default to start if nothing matches", func(t *testing.T) {
		dir := createDir(t, []string{"other.md"})
		assert.Equal(t, "start", determineEntryPoint(dir))
	})
}

func TestLoadFlow_DirectoryUsesEntryPoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.md"), []byte(`---
transitions:
  - to: help
    text: Help
---
Main menu`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "help.md"), []byte(`---
type: stop
---
Help text`), 0644))

	g, loader, err := loadFlow(context.Background(), dir, "")
	require.NoError(t, err)
	require.NotNil(t, loader)

	assert.Equal(t, "main", g.Root())
	assert.True(t, g.HasEdge("main", "help"))
}

func TestLoadFlow_MissingPath(t *testing.T) {
	_, _, err := loadFlow(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "")
	assert.Error(t, err)
}
