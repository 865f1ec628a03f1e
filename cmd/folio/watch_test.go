package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const minimalContent = "profile:\n  first_name: Ada\n  headline: Engineer\n"

func TestContentWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o644))

	cw, err := watchContent(path, zap.NewNop())
	require.NoError(t, err)
	defer cw.Close()

	// A broken save is skipped; the next good one is delivered.
	require.NoError(t, os.WriteFile(path, []byte("profile: [\n"), 0o644))
	time.Sleep(2 * reloadDebounce)
	require.NoError(t, os.WriteFile(path, []byte(minimalContent+"  last_name: Lovelace\n"), 0o644))

	select {
	case c := <-cw.Reloads():
		assert.Equal(t, "Lovelace", c.Profile.LastName)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the content changed")
	}
}

func TestContentWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o644))

	cw, err := watchContent(path, zap.NewNop())
	require.NoError(t, err)
	defer cw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(minimalContent), 0o644))
	select {
	case <-cw.Reloads():
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(3 * reloadDebounce):
	}
}

func TestContentWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o644))

	cw, err := watchContent(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, cw.Close())
	assert.NoError(t, cw.Close())
}

func TestWatchContentMissingDirectory(t *testing.T) {
	_, err := watchContent(filepath.Join(t.TempDir(), "nope", "content.yaml"), zap.NewNop())
	assert.Error(t, err)
}
