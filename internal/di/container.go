package di

import (
	"fmt"
	"os"

	"miniclaw/internal/adapter/tool"
	"miniclaw/internal/application/port/input"
	"miniclaw/internal/application/port/output"
	"miniclaw/internal/application/service"
	"miniclaw/internal/infrastructure/browser/rod"
	"miniclaw/internal/infrastructure/llm/chatstream"
	"miniclaw/internal/infrastructure/logger"
	"miniclaw/internal/infrastructure/prompts"
	"miniclaw/internal/usecase/executor"
)

type Container struct {
	Browser output.BrowserPort
	LLM     output.CompletionPort
	Logger  output.LoggerPort
	Tools   output.ToolRegistry
	Prompt  output.PromptPort
	Runner  input.AgentRunner
}

func NewContainer(cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	logCfg.File = cfg.LogFile
	logCfg.Development = cfg.LogDevelopment
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := newContainer(cfg, log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	return c, nil
}

// newContainer wires everything around an existing logger.
func newContainer(cfg Config, log output.LoggerPort) (*Container, error) {
	workspace := cfg.WorkspaceDir
	if workspace != "" {
		if err := os.MkdirAll(workspace, 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare workspace: %w", err)
		}
	}

	llmCfg := chatstream.DefaultConfig(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if cfg.OpenAIAPIBase != "" {
		llmCfg.BaseURL = cfg.OpenAIAPIBase
	}
	llmCfg.Logger = log
	llmCfg.DebugHTTP = cfg.DebugHTTP
	llm := chatstream.NewClient(llmCfg)

	registry := service.NewToolRegistry()
	registerCoreTools(registry, cfg, workspace, log)

	var browser output.BrowserPort
	if cfg.BrowserEnabled {
		browserCfg := rod.DefaultConfig()
		browserCfg.Headless = cfg.BrowserHeadless
		browser = rod.NewBrowserAdapter(browserCfg, log)
		registerBrowserTools(registry, browser, workspace, log)
	}

	template := cfg.SystemPrompt
	if template == "" {
		template = prompts.DefaultSystemPrompt
	}
	var promptOpts []prompts.Option
	if cfg.WorkspacePrompt {
		promptOpts = append(promptOpts, prompts.WithWorkspaceContext(prompts.NewWorkspaceContext(workspace)))
	}
	prompt, err := prompts.NewGenerator(template, promptOpts...)
	if err != nil {
		if browser != nil {
			browser.Close()
		}
		return nil, fmt.Errorf("failed to load system prompt: %w", err)
	}

	runner := executor.New(llm, registry, prompt, log, executor.Config{
		MaxIterations:     cfg.MaxIterations,
		MaxObservationLen: cfg.MaxObservationLen,
		ToolTimeout:       cfg.ToolTimeout,
		EventBuffer:       cfg.EventBuffer,
	})

	log.Info("Agent ready",
		"model", llmCfg.Model,
		"tools", registry.Len(),
		"browser", cfg.BrowserEnabled,
		"workspace", workspace,
	)

	return &Container{
		Browser: browser,
		LLM:     llm,
		Logger:  log,
		Tools:   registry,
		Prompt:  prompt,
		Runner:  runner,
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}

func registerCoreTools(registry *service.ToolRegistryImpl, cfg Config, workspace string, log output.LoggerPort) {
	registry.Register(tool.NewTerminalTool(workspace, log))
	registry.Register(tool.NewReadFileTool(workspace))
	registry.Register(tool.NewWriteFileTool(workspace))
	registry.Register(tool.NewWebSearchTool(tool.WebSearchConfig{APIKey: cfg.BraveAPIKey}, log))
	registry.Register(tool.NewWebFetchTool(nil, log))
	registry.Register(tool.NewCalculatorTool())
}

func registerBrowserTools(registry *service.ToolRegistryImpl, browser output.BrowserPort, workspace string, log output.LoggerPort) {
	registry.Register(tool.NewBrowserTool(browser, log))
	registry.Register(tool.NewScreenshotTool(browser, workspace, log))
}
