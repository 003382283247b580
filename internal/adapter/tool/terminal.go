package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
)

var _ output.ToolPort = (*TerminalTool)(nil)

// waitDelay bounds how long Run waits for orphaned children holding the pipes.
const waitDelay = time.Second

// TerminalTool runs its input through sh -c inside the workspace.
// A non-zero exit status is reported as an observation, not an error.
type TerminalTool struct {
	workspace string
	logger    output.LoggerPort
}

func NewTerminalTool(workspace string, logger output.LoggerPort) *TerminalTool {
	return &TerminalTool{workspace: workspace, logger: logger}
}

func (t *TerminalTool) Name() entity.ToolName { return entity.ToolTerminal }
func (t *TerminalTool) Description() string   { return "Execute a shell command" }

func (t *TerminalTool) Execute(ctx context.Context, input string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", input)
	if t.workspace != "" {
		cmd.Dir = t.workspace
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	t.logger.Debug("Running command", "command", input, "dir", cmd.Dir)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("command interrupted: %w", ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Sprintf("Error (exit %d):\n%s%s", exitErr.ExitCode(), stdout.String(), stderr.String()), nil
		}
		return "", fmt.Errorf("failed to run command: %w", err)
	}

	return stdout.String(), nil
}
