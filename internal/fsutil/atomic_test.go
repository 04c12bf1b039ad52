package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agent.md")

	require.NoError(t, WriteFile(path, []byte("body"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should not survive an atomic write")
	assert.Equal(t, "agent.md", entries[0].Name())
}

func TestWriteFile_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFile(path, []byte("new"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestReplaceDir_FreshDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "steps")

	written, err := ReplaceDir(dir, map[string][]byte{
		"step-1-2.md": []byte("b"),
		"step-1-1.md": []byte("a"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "step-1-1.md"),
		filepath.Join(dir, "step-1-2.md"),
	}, written)

	data, err := os.ReadFile(filepath.Join(dir, "step-1-1.md"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestReplaceDir_RemovesOrphansKeepsOtherFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "steps")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "step-9-9.md"), []byte("orphan"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "step-1-1.md"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("mine"), 0644))

	_, err := ReplaceDir(dir, map[string][]byte{"step-1-1.md": []byte("new")})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "step-9-9.md"))
	assert.True(t, os.IsNotExist(err), "orphaned step file should be gone")

	data, err := os.ReadFile(filepath.Join(dir, "step-1-1.md"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
	assert.DirExists(t, filepath.Join(dir, "notes"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staging and backup directories are cleaned up")
	assert.Equal(t, "steps", entries[0].Name())
}
