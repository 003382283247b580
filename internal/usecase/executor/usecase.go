package executor

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"miniclaw/internal/application/port/input"
	"miniclaw/internal/application/port/output"
	"miniclaw/internal/application/service"
	"miniclaw/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.AgentRunner = (*UseCase)(nil)

const (
	defaultMaxIterations     = 10
	defaultMaxObservationLen = 20000
	defaultToolTimeout       = 60 * time.Second
	defaultEventBuffer       = 100

	truncatedSuffix = "\n... (truncated)"
)

type Config struct {
	MaxIterations int
	// MaxObservationLen caps tool output in bytes. Zero disables the cap.
	MaxObservationLen int
	// ToolTimeout bounds a single tool execution. Zero disables the bound.
	ToolTimeout time.Duration
	EventBuffer int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations:     defaultMaxIterations,
		MaxObservationLen: defaultMaxObservationLen,
		ToolTimeout:       defaultToolTimeout,
		EventBuffer:       defaultEventBuffer,
	}
}

type UseCase struct {
	llm    output.CompletionPort
	tools  output.ToolRegistry
	prompt output.PromptPort
	logger output.LoggerPort
	cfg    Config
}

func New(
	llm output.CompletionPort,
	tools output.ToolRegistry,
	prompt output.PromptPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.MaxObservationLen < 0 {
		cfg.MaxObservationLen = 0
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}
	return &UseCase{
		llm:    llm,
		tools:  tools,
		prompt: prompt,
		logger: logger,
		cfg:    cfg,
	}
}

// Execute runs one conversation to completion. Only completion failures and
// context cancellation end a run with an error; tool failures are handed back
// to the model as observations.
func (uc *UseCase) Execute(ctx context.Context, message string, sink output.EventSink) (*input.RunResult, error) {
	if sink == nil {
		sink = service.NopSink{}
	}

	runID := uuid.NewString()
	log := uc.logger.WithField("run_id", runID)

	systemPrompt, err := uc.prompt.SystemPrompt(uc.tools.All())
	if err != nil {
		return nil, fmt.Errorf("build system prompt: %w", err)
	}

	history := []entity.Message{
		entity.NewSystemMessage(systemPrompt),
		entity.NewUserMessage(message),
	}
	result := &input.RunResult{RunID: runID}

	log.Info("Run started", "messageLen", len(message), "maxIterations", uc.cfg.MaxIterations)

	for iteration := 1; iteration <= uc.cfg.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled", "iteration", iteration, "error", err)
			return nil, err
		}

		log.Debug("Starting iteration", "iteration", iteration, "historyLen", len(history))

		text, err := uc.llm.Complete(ctx, history, sink)
		if err != nil {
			log.Error("Completion failed", "iteration", iteration, "error", err)
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		history = append(history, entity.NewAssistantMessage(text))
		result.Iterations = iteration

		call, ok := service.ExtractToolCall(text)
		if !ok {
			result.FinalAnswer = text
			result.History = history
			uc.emit(ctx, log, sink, entity.DoneEvent(""))
			log.Info("Run completed", "iterations", iteration)
			return result, nil
		}

		uc.emit(ctx, log, sink, entity.ToolStartEvent(call))
		observation := uc.truncate(uc.executeTool(ctx, log, call))
		uc.emit(ctx, log, sink, entity.ToolEndEvent(observation))

		history = append(history, entity.NewObservation(observation))
	}

	result.History = history
	result.Exhausted = true
	uc.emit(ctx, log, sink, entity.DoneEvent(entity.DoneReasonMaxIterations))
	log.Warn("Run stopped on iteration budget", "iterations", result.Iterations)

	return result, nil
}

func (uc *UseCase) executeTool(ctx context.Context, log output.LoggerPort, call entity.ToolInvocation) string {
	tool, ok := uc.tools.Get(call.Name)
	if !ok {
		log.Warn("Unknown tool called", "name", call.Name)
		return fmt.Sprintf("Error: Tool '%s' not found", call.Name)
	}

	if uc.cfg.ToolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.ToolTimeout)
		defer cancel()
	}

	log.Info("Executing tool", "name", call.Name, "input", call.Input)
	start := time.Now()

	result, err := tool.Execute(ctx, call.Input)
	if err != nil {
		log.Warn("Tool execution failed", "name", call.Name, "error", err, "durationMs", time.Since(start).Milliseconds())
		return "Error executing tool: " + err.Error()
	}

	log.Debug("Tool completed", "name", call.Name, "resultLen", len(result), "durationMs", time.Since(start).Milliseconds())
	return result
}

func (uc *UseCase) truncate(observation string) string {
	limit := uc.cfg.MaxObservationLen
	if limit == 0 || len(observation) <= limit {
		return observation
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(observation[cut]) {
		cut--
	}
	return observation[:cut] + truncatedSuffix
}

func (uc *UseCase) emit(ctx context.Context, log output.LoggerPort, sink output.EventSink, event entity.AgentEvent) {
	if err := sink.Emit(ctx, event); err != nil {
		log.Debug("Event not delivered", "kind", event.Kind, "error", err)
	}
}
