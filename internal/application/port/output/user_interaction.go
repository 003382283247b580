package output

import "context"

type UserInteractionPort interface {
	ShowToken(ctx context.Context, fragment string)
	ShowToolStart(ctx context.Context, call string)
	ShowToolResult(ctx context.Context, result string)
	ShowDone(ctx context.Context, reason string)
	ShowError(ctx context.Context, message string)
}
