package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
)

var (
	_ output.ToolPort = (*ReadFileTool)(nil)
	_ output.ToolPort = (*WriteFileTool)(nil)
)

var ErrInvalidWriteInput = errors.New("invalid input for write_file")

type ReadFileTool struct {
	workspace string
}

func NewReadFileTool(workspace string) *ReadFileTool {
	return &ReadFileTool{workspace: workspace}
}

func (t *ReadFileTool) Name() entity.ToolName { return entity.ToolReadFile }
func (t *ReadFileTool) Description() string   { return "Read a file from disk" }

func (t *ReadFileTool) Execute(ctx context.Context, input string) (string, error) {
	path := resolvePath(t.workspace, strings.TrimSpace(input))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// WriteFileTool expects "<path>\n<content>". Everything after the first
// line break is written verbatim.
type WriteFileTool struct {
	workspace string
}

func NewWriteFileTool(workspace string) *WriteFileTool {
	return &WriteFileTool{workspace: workspace}
}

func (t *WriteFileTool) Name() entity.ToolName { return entity.ToolWriteFile }
func (t *WriteFileTool) Description() string {
	return "Write a file to disk. Input format: <path>\\n<content>"
}

func (t *WriteFileTool) Execute(ctx context.Context, input string) (string, error) {
	first, content, _ := strings.Cut(input, "\n")
	name := strings.TrimSpace(first)
	if name == "" {
		return "", ErrInvalidWriteInput
	}

	path := resolvePath(t.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("File written successfully: %s", name), nil
}

func resolvePath(workspace, path string) string {
	if workspace == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}
