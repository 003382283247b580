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
	"miniclaw/internal/infrastructure/htmltext"

	"github.com/google/uuid"
)

var (
	_ output.ToolPort = (*BrowserTool)(nil)
	_ output.ToolPort = (*ScreenshotTool)(nil)
)

const (
	maxBrowserChars = 4000
	screenshotDir   = "screenshots"
)

var ErrNoURL = errors.New("url is required")

// BrowserTool renders a page in a real browser and returns its text.
type BrowserTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewBrowserTool(browser output.BrowserPort, logger output.LoggerPort) *BrowserTool {
	return &BrowserTool{browser: browser, logger: logger}
}

func (t *BrowserTool) Name() entity.ToolName { return entity.ToolBrowser }
func (t *BrowserTool) Description() string {
	return "Open a URL in a headless browser and return the rendered page text"
}

func (t *BrowserTool) Execute(ctx context.Context, input string) (string, error) {
	target := strings.TrimSpace(input)
	if target == "" {
		return "", ErrNoURL
	}

	if err := t.browser.Navigate(ctx, target); err != nil {
		return "", err
	}

	content, err := t.browser.GetPageContent(ctx)
	if err != nil {
		return "", err
	}

	t.logger.Debug("Page rendered", "url", content.URL, "title", content.Title)

	return fmt.Sprintf("URL: %s\nTitle: %s\n\n%s",
		content.URL, content.Title, htmltext.Truncate(content.Text, maxBrowserChars)), nil
}

// ScreenshotTool captures the current page, or the page at the given URL,
// and stores it as a JPEG under the workspace.
type ScreenshotTool struct {
	browser   output.BrowserPort
	workspace string
	logger    output.LoggerPort
}

func NewScreenshotTool(browser output.BrowserPort, workspace string, logger output.LoggerPort) *ScreenshotTool {
	return &ScreenshotTool{browser: browser, workspace: workspace, logger: logger}
}

func (t *ScreenshotTool) Name() entity.ToolName { return entity.ToolBrowserScreenshot }
func (t *ScreenshotTool) Description() string {
	return "Take a screenshot of a URL (or the current page when input is empty) and save it to the workspace"
}

func (t *ScreenshotTool) Execute(ctx context.Context, input string) (string, error) {
	if target := strings.TrimSpace(input); target != "" {
		if err := t.browser.Navigate(ctx, target); err != nil {
			return "", err
		}
	}

	shot, err := t.browser.Screenshot(ctx)
	if err != nil {
		return "", err
	}

	name := filepath.Join(screenshotDir, fmt.Sprintf("screenshot-%s.%s", uuid.NewString(), shot.Format))
	path := resolvePath(t.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}

	t.logger.Info("Screenshot saved", "path", path, "url", t.browser.CurrentURL())

	return fmt.Sprintf("Screenshot of %s saved to %s (%dx%d)", t.browser.CurrentURL(), name, shot.Width, shot.Height), nil
}
