package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	out, err := NewWriteFileTool(dir).Execute(ctx, "notes/a.txt\nline one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "File written successfully: notes/a.txt", out)

	data, err := os.ReadFile(filepath.Join(dir, "notes", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(data))

	got, err := NewReadFileTool(dir).Execute(ctx, "  notes/a.txt \n")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestWriteFile_PathOnly(t *testing.T) {
	dir := t.TempDir()

	_, err := NewWriteFileTool(dir).Execute(context.Background(), "empty.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "empty.txt"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteFile_EmptyInput(t *testing.T) {
	_, err := NewWriteFileTool(t.TempDir()).Execute(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidWriteInput)

	_, err = NewWriteFileTool(t.TempDir()).Execute(context.Background(), "  \ncontent")
	assert.ErrorIs(t, err, ErrInvalidWriteInput)
}

func TestReadFile_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.txt")
	require.NoError(t, os.WriteFile(path, []byte("abs"), 0o644))

	got, err := NewReadFileTool("/nonexistent").Execute(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "abs", got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewReadFileTool(t.TempDir()).Execute(context.Background(), "nope.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
