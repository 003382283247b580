package output

import (
	"context"

	"miniclaw/internal/domain/entity"
)

// CompletionPort produces one assistant turn for the given history. Every
// text fragment received from the model is emitted to sink as a token event,
// in arrival order, before Complete returns the concatenated text.
type CompletionPort interface {
	Complete(ctx context.Context, messages []entity.Message, sink EventSink) (string, error)
}
