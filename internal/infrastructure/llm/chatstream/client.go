package chatstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.CompletionPort = (*Client)(nil)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4-turbo"

	maxErrorBodyBytes = 64 * 1024
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient overrides the default client. Streaming responses are long
	// lived, so it should not carry a short overall Timeout.
	HTTPClient *http.Client
	Logger     output.LoggerPort
	// DebugHTTP logs every request and response status through Logger.
	DebugHTTP bool
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
	}
}

// Client talks to an OpenAI compatible /chat/completions endpoint in
// streaming mode. One Complete call issues exactly one request; there is no
// retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     output.LoggerPort
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.DebugHTTP && cfg.Logger != nil {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport:     &loggingTransport{base: base, logger: cfg.Logger},
			CheckRedirect: httpClient.CheckRedirect,
			Jar:           httpClient.Jar,
			Timeout:       httpClient.Timeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		logger:     cfg.Logger,
	}
}

func (c *Client) Complete(ctx context.Context, messages []entity.Message, sink output.EventSink) (string, error) {
	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: convertMessages(messages),
		Stream:   true,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.debug("Creating chat completion stream", "model", c.model, "messagesCount", len(messages), "bodyBytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(errBody),
		}
	}

	var full strings.Builder
	dec := NewDecoder(resp.Body)
	fragments := 0
	start := time.Now()

	for {
		fragment, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &TransportError{Op: "read stream", Err: err}
		}

		fragments++
		full.WriteString(fragment)

		if sink != nil {
			if err := sink.Emit(ctx, entity.TokenEvent(fragment)); err != nil {
				c.debug("Token not delivered", "error", err)
			}
		}
	}

	c.debug("Stream completed", "fragments", fragments, "textLen", full.Len(), "durationMs", time.Since(start).Milliseconds())

	return full.String(), nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

// loggingTransport records method, URL and status of every call. Bodies are
// not logged because requests carry the whole conversation.
type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Info("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"contentLength", req.ContentLength,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed", "url", req.URL.String(), "error", err)
		return resp, err
	}

	t.logger.Info("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}
