package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_RunsAndCollectsErrors(t *testing.T) {
	m := NewManager(4)
	boom := errors.New("boom")

	var ran atomic.Int32
	assert.True(t, m.Go(context.Background(), "ok", func(context.Context) error {
		ran.Add(1)
		return nil
	}))
	assert.True(t, m.Go(context.Background(), "fail", func(context.Context) error {
		ran.Add(1)
		return boom
	}))
	assert.True(t, m.Go(context.Background(), "panic", func(context.Context) error {
		ran.Add(1)
		panic("bad")
	}))

	err := m.Wait()
	assert.Equal(t, int32(3), ran.Load())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrPanic)
}

func TestManager_DetachesCancellation(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ctxErr atomic.Value
	m.Go(ctx, "detached", func(ctx context.Context) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	})

	assert.NoError(t, m.Wait())
	assert.Equal(t, true, ctxErr.Load())
}

func TestManager_ClosedAndSaturated(t *testing.T) {
	m := NewManager(1)
	block := make(chan struct{})

	assert.True(t, m.Go(context.Background(), "hold", func(context.Context) error {
		<-block
		return nil
	}))
	assert.False(t, m.Go(context.Background(), "extra", func(context.Context) error { return nil }))

	close(block)
	assert.NoError(t, m.Wait())
	assert.False(t, m.Go(context.Background(), "late", func(context.Context) error { return nil }))

	var nilMgr *Manager
	assert.False(t, nilMgr.Go(context.Background(), "nil", nil))
	assert.NoError(t, nilMgr.Wait())
}
