package input

import (
	"context"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
)

type RunResult struct {
	RunID       string
	FinalAnswer string
	Iterations  int
	History     []entity.Message
	Exhausted   bool
}

// EventStream is a run executing in the background.
type EventStream interface {
	// Events is closed after the last event of the run.
	Events() <-chan entity.AgentEvent
	// Stop tells the run nobody is reading anymore. The run keeps going.
	Stop()
	// Wait blocks until the run is over.
	Wait() (*RunResult, error)
}

type AgentRunner interface {
	Execute(ctx context.Context, message string, sink output.EventSink) (*RunResult, error)
	Run(ctx context.Context, message string) EventStream
}
