package di

import (
	"errors"
	"time"

	"miniclaw/internal/application/port/output"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

const (
	defaultAPIBase    = "https://api.openai.com/v1"
	defaultModel      = "gpt-4-turbo"
	defaultServerAddr = "0.0.0.0:8081"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIAPIBase string
	OpenAIModel   string

	// WorkspaceDir is where file and terminal tools operate. Empty means the
	// process working directory.
	WorkspaceDir string
	BraveAPIKey  string

	MaxIterations     int
	MaxObservationLen int
	ToolTimeout       time.Duration
	EventBuffer       int

	BrowserEnabled  bool
	BrowserHeadless bool

	ServerAddr string

	LogLevel string
	LogFile  string
	// LogDevelopment switches to zap's console encoder.
	LogDevelopment bool
	DebugHTTP      bool

	// SystemPrompt replaces the built-in template when set.
	SystemPrompt string
	// WorkspacePrompt appends the workspace bootstrap files and skills
	// summary to the system prompt.
	WorkspacePrompt bool
}

func DefaultConfig() Config {
	return Config{
		OpenAIAPIBase:     defaultAPIBase,
		OpenAIModel:       defaultModel,
		MaxIterations:     10,
		MaxObservationLen: 20000,
		ToolTimeout:       60 * time.Second,
		EventBuffer:       100,
		BrowserHeadless:   true,
		ServerAddr:        defaultServerAddr,
		LogLevel:          "info",
	}
}

// ConfigFromEnv reads the process configuration. Only the API key is
// mandatory.
func ConfigFromEnv(env output.ConfigPort) (Config, error) {
	d := DefaultConfig()

	cfg := Config{
		OpenAIAPIKey:      env.Get("OPENAI_API_KEY"),
		OpenAIAPIBase:     env.GetWithDefault("OPENAI_API_BASE", d.OpenAIAPIBase),
		OpenAIModel:       env.GetWithDefault("OPENAI_MODEL", d.OpenAIModel),
		WorkspaceDir:      env.Get("WORKSPACE_DIR"),
		BraveAPIKey:       env.Get("BRAVE_API_KEY"),
		MaxIterations:     env.GetInt("AGENT_MAX_ITERATIONS", d.MaxIterations),
		MaxObservationLen: env.GetInt("AGENT_MAX_OBSERVATION_LEN", d.MaxObservationLen),
		ToolTimeout:       env.GetDuration("TOOL_TIMEOUT", d.ToolTimeout),
		EventBuffer:       env.GetInt("EVENT_BUFFER", d.EventBuffer),
		BrowserEnabled:    env.GetBool("BROWSER_ENABLED", false),
		BrowserHeadless:   env.GetBool("BROWSER_HEADLESS", d.BrowserHeadless),
		ServerAddr:        env.GetWithDefault("SERVER_ADDR", d.ServerAddr),
		LogLevel:          env.GetWithDefault("LOG_LEVEL", d.LogLevel),
		LogFile:           env.Get("LOG_FILE"),
		LogDevelopment:    env.Get("APP_ENV") == "development",
		DebugHTTP:         env.GetBool("LLM_DEBUG_HTTP", false),
		WorkspacePrompt:   env.GetBool("PROMPT_WORKSPACE_CONTEXT", false),
	}

	if cfg.OpenAIAPIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}
