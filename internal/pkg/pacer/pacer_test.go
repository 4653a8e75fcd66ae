package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedIntervalWaits(t *testing.T) {
	p := NewFixedInterval(20 * time.Millisecond)

	start := time.Now()
	err := p.Pause(context.Background())

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFixedIntervalHonorsCancellation(t *testing.T) {
	p := NewFixedInterval(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := p.Pause(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestFixedIntervalZeroReturnsImmediately(t *testing.T) {
	p := NewFixedInterval(0)

	start := time.Now()
	assert.NoError(t, p.Pause(context.Background()))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestNoopNeverBlocks(t *testing.T) {
	p := NewNoop()

	start := time.Now()
	assert.NoError(t, p.Pause(context.Background()))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}
