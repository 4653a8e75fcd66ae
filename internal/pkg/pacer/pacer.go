package pacer

import (
	"context"
	"time"
)

// Pacer throttles batch loops so external vendors are not hammered with
// back-to-back calls. Pause blocks for the policy's interval or until the
// context is cancelled, whichever comes first.
type Pacer interface {
	Pause(ctx context.Context) error
}

type fixedIntervalPacer struct {
	interval time.Duration
}

// NewFixedInterval returns a pacer that waits the same interval between
// every item.
func NewFixedInterval(interval time.Duration) Pacer {
	return &fixedIntervalPacer{interval: interval}
}

func (p *fixedIntervalPacer) Pause(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noopPacer struct{}

// NewNoop returns a pacer that never waits. Tests and manual runs use it.
func NewNoop() Pacer {
	return noopPacer{}
}

func (noopPacer) Pause(ctx context.Context) error {
	return ctx.Err()
}
