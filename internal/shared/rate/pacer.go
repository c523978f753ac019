package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Pacer hands out at most limit tokens per second, with a small burst buffered ahead.
type Pacer struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

// NewPacer starts the token provider; it stops and closes the channel when ctx is done.
func NewPacer(ctx context.Context, limit int) *Pacer {
	brst := max(int(float64(limit)*0.1), 1)
	p := &Pacer{
		limit: limit,
		ch:    make(chan struct{}, brst),
		l:     ratelimit.New(limit),
	}
	go p.provider(ctx)
	return p
}

func (p *Pacer) provider(ctx context.Context) {
	defer close(p.ch)
	for {
		p.l.Take()
		select {
		case <-ctx.Done():
			return
		case p.ch <- struct{}{}:
		}
	}
}

// Wait blocks for the next token or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-p.ch:
		if !ok {
			return context.Canceled
		}
		return nil
	}
}

func (p *Pacer) Limit() int { return p.limit }
