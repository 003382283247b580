package service

import (
	"context"
	"testing"
	"time"

	"miniclaw/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSink_DeliversInOrder(t *testing.T) {
	sink := NewChannelSink(1)
	ctx := context.Background()

	go func() {
		defer sink.Seal()
		for _, tok := range []string{"a", "b", "c"} {
			_ = sink.Emit(ctx, entity.TokenEvent(tok))
		}
		_ = sink.Emit(ctx, entity.DoneEvent(""))
	}()

	var got []entity.AgentEvent
	for ev := range sink.Events() {
		got = append(got, ev)
	}

	assert.Equal(t, []entity.AgentEvent{
		entity.TokenEvent("a"),
		entity.TokenEvent("b"),
		entity.TokenEvent("c"),
		entity.DoneEvent(""),
	}, got)
}

func TestChannelSink_EmitAfterCloseFails(t *testing.T) {
	sink := NewChannelSink(1)
	sink.Close()
	sink.Close()

	err := sink.Emit(context.Background(), entity.TokenEvent("x"))
	assert.ErrorIs(t, err, ErrSinkClosed)
}

func TestChannelSink_CloseUnblocksFullBuffer(t *testing.T) {
	sink := NewChannelSink(1)
	ctx := context.Background()
	require.NoError(t, sink.Emit(ctx, entity.TokenEvent("fills the buffer")))

	errc := make(chan error, 1)
	go func() {
		errc <- sink.Emit(ctx, entity.TokenEvent("blocked"))
	}()

	sink.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrSinkClosed)
	case <-time.After(time.Second):
		t.Fatal("Emit stayed blocked after Close")
	}
}

func TestChannelSink_ContextCancelUnblocks(t *testing.T) {
	sink := NewChannelSink(1)
	require.NoError(t, sink.Emit(context.Background(), entity.TokenEvent("x")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Emit(ctx, entity.TokenEvent("y"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChannelSink_CancelledContextStillUsesFreeBuffer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 100; i++ {
		sink := NewChannelSink(1)
		require.NoError(t, sink.Emit(ctx, entity.TokenEvent("x")))
		assert.Equal(t, entity.TokenEvent("x"), <-sink.Events())
	}
}
