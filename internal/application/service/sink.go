package service

import (
	"context"
	"errors"
	"sync"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
)

var ErrSinkClosed = errors.New("event sink closed")

const defaultSinkBuffer = 100

var (
	_ output.EventSink = (*ChannelSink)(nil)
	_ output.EventSink = NopSink{}
)

// ChannelSink delivers events over a buffered channel. Emit blocks while the
// buffer is full, so nothing is dropped while the consumer keeps reading.
// The consumer calls Close when it walks away; the producer calls Seal after
// its last Emit.
type ChannelSink struct {
	ch        chan entity.AgentEvent
	done      chan struct{}
	closeOnce sync.Once
	sealOnce  sync.Once
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = defaultSinkBuffer
	}
	return &ChannelSink{
		ch:   make(chan entity.AgentEvent, buffer),
		done: make(chan struct{}),
	}
}

func (s *ChannelSink) Events() <-chan entity.AgentEvent {
	return s.ch
}

func (s *ChannelSink) Emit(ctx context.Context, event entity.AgentEvent) error {
	select {
	case <-s.done:
		return ErrSinkClosed
	default:
	}

	// Buffer space wins over a cancelled context.
	select {
	case s.ch <- event:
		return nil
	default:
	}

	select {
	case s.ch <- event:
		return nil
	case <-s.done:
		return ErrSinkClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches the consumer. Pending and future Emit calls fail fast.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Seal closes the event channel. Emit must not be called afterwards.
func (s *ChannelSink) Seal() {
	s.sealOnce.Do(func() {
		close(s.ch)
	})
}

type NopSink struct{}

func (NopSink) Emit(context.Context, entity.AgentEvent) error {
	return nil
}
