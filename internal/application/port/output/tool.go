package output

import (
	"context"

	"miniclaw/internal/domain/entity"
)

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Execute(ctx context.Context, input string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
}
