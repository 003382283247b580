// Package servicetest holds event sinks for tests of code that emits
// AgentEvents.
package servicetest

import (
	"context"
	"sync"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
)

var (
	_ output.EventSink = (*Recorder)(nil)
	_ output.EventSink = SinkFunc(nil)
)

// SinkFunc adapts a function to output.EventSink.
type SinkFunc func(ctx context.Context, event entity.AgentEvent) error

func (f SinkFunc) Emit(ctx context.Context, event entity.AgentEvent) error {
	return f(ctx, event)
}

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []entity.AgentEvent
}

func (r *Recorder) Emit(_ context.Context, event entity.AgentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []entity.AgentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AgentEvent, len(r.events))
	copy(out, r.events)
	return out
}
