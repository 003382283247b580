package tool

import (
	"context"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"

	"github.com/tmc/langchaingo/tools"
)

var _ output.ToolPort = (*LangchainTool)(nil)

// LangchainTool exposes a langchaingo tool under a registry name.
type LangchainTool struct {
	name  entity.ToolName
	inner tools.Tool
}

func NewLangchainTool(name entity.ToolName, inner tools.Tool) *LangchainTool {
	return &LangchainTool{name: name, inner: inner}
}

// NewCalculatorTool evaluates arithmetic with the starlark based calculator.
func NewCalculatorTool() *LangchainTool {
	return NewLangchainTool(entity.ToolCalculator, tools.Calculator{})
}

func (t *LangchainTool) Name() entity.ToolName { return t.name }
func (t *LangchainTool) Description() string   { return t.inner.Description() }

func (t *LangchainTool) Execute(ctx context.Context, input string) (string, error) {
	return t.inner.Call(ctx, input)
}
