package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"miniclaw/internal/domain/entity"
	"miniclaw/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalTool_Success(t *testing.T) {
	tool := NewTerminalTool(t.TempDir(), logger.NewNop())

	assert.Equal(t, entity.ToolTerminal, tool.Name())

	out, err := tool.Execute(context.Background(), "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestTerminalTool_RunsInWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	tool := NewTerminalTool(dir, logger.NewNop())
	out, err := tool.Execute(context.Background(), "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "marker.txt")
}

func TestTerminalTool_NonZeroExitIsObservation(t *testing.T) {
	tool := NewTerminalTool(t.TempDir(), logger.NewNop())

	out, err := tool.Execute(context.Background(), "echo out; echo err 1>&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, "Error (exit 3):\nout\nerr\n", out)
}

func TestTerminalTool_Timeout(t *testing.T) {
	tool := NewTerminalTool(t.TempDir(), logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tool.Execute(ctx, "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
