package di

import (
	"os"
	"path/filepath"
	"testing"

	"miniclaw/internal/domain/entity"
	"miniclaw/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolNames(c *Container) []entity.ToolName {
	var names []entity.ToolName
	for _, t := range c.Tools.All() {
		names = append(names, t.Name())
	}
	return names
}

func TestNewContainer_CoreTools(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.WorkspaceDir = filepath.Join(t.TempDir(), "ws")

	c, err := newContainer(cfg, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Browser)
	assert.NotNil(t, c.Runner)
	assert.DirExists(t, cfg.WorkspaceDir)
	assert.Equal(t, []entity.ToolName{
		entity.ToolCalculator,
		entity.ToolReadFile,
		entity.ToolTerminal,
		entity.ToolWebFetch,
		entity.ToolWebSearch,
		entity.ToolWriteFile,
	}, toolNames(c))
}

func TestNewContainer_BrowserTools(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.BrowserEnabled = true

	c, err := newContainer(cfg, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Browser)
	_, ok := c.Tools.Get(entity.ToolBrowser)
	assert.True(t, ok)
	_, ok = c.Tools.Get(entity.ToolBrowserScreenshot)
	assert.True(t, ok)
}

func TestNewContainer_BadPromptTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SystemPrompt = "{{range .Tools}"

	_, err := newContainer(cfg, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system prompt")
}

func TestNewContainer_WorkspacePrompt(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "AGENTS.md"), []byte("Answer in French."), 0o644))

	cfg := DefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.WorkspaceDir = ws

	c, err := newContainer(cfg, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()
	prompt, err := c.Prompt.SystemPrompt(nil)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Answer in French.")

	cfg.WorkspacePrompt = true
	c2, err := newContainer(cfg, logger.NewNop())
	require.NoError(t, err)
	defer c2.Close()
	prompt, err = c2.Prompt.SystemPrompt(nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "## AGENTS.md\n\nAnswer in French.")
}
