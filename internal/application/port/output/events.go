package output

import (
	"context"

	"miniclaw/internal/domain/entity"
)

// EventSink receives the events of a single run in order. Emit errors are
// reported to the producer but never stop a run.
type EventSink interface {
	Emit(ctx context.Context, event entity.AgentEvent) error
}
