package executor

import (
	"context"

	"miniclaw/internal/application/port/input"
	"miniclaw/internal/application/service"
	"miniclaw/internal/domain/entity"
)

var _ input.EventStream = (*RunStream)(nil)

type RunStream struct {
	sink   *service.ChannelSink
	done   chan struct{}
	result *input.RunResult
	err    error
}

// Run starts a conversation in its own goroutine and streams its events.
// A failed run ends with an error event carrying the failure message; the
// error itself is returned by Wait.
func (uc *UseCase) Run(ctx context.Context, message string) input.EventStream {
	rs := &RunStream{
		sink: service.NewChannelSink(uc.cfg.EventBuffer),
		done: make(chan struct{}),
	}

	go func() {
		defer close(rs.done)
		defer rs.sink.Seal()

		result, err := uc.Execute(ctx, message, rs.sink)
		if err != nil {
			if emitErr := rs.sink.Emit(context.WithoutCancel(ctx), entity.ErrorEvent(err)); emitErr != nil {
				uc.logger.Debug("Error event not delivered", "error", emitErr)
			}
		}
		rs.result, rs.err = result, err
	}()

	return rs
}

func (r *RunStream) Events() <-chan entity.AgentEvent {
	return r.sink.Events()
}

func (r *RunStream) Stop() {
	r.sink.Close()
}

func (r *RunStream) Wait() (*input.RunResult, error) {
	<-r.done
	return r.result, r.err
}
