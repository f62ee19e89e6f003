// Package poller watches the pending-account count on a fixed interval and
// reports when it rises.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

const DefaultInterval = 30 * time.Second

// CountFunc fetches the current count.
type CountFunc func(ctx context.Context) (int, error)

type Poller struct {
	Interval time.Duration
	Count    CountFunc

	// OnBaseline is called once with the first successful count, so a
	// backlog that already exists can be shown.
	OnBaseline func(n int)

	// OnIncrease is called with the previous and the new count whenever the
	// count goes above the last observed value.
	OnIncrease func(prev, cur int)

	// OnError is optional; failed polls are logged either way and do not
	// change the last observed value.
	OnError func(err error)
}

// Run polls until ctx is cancelled. The first successful observation is the
// baseline: it goes to OnBaseline and never triggers OnIncrease. Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	if p.Count == nil {
		return errors.New("poller: Count is required")
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	l := slogx.FromContext(ctx)

	last, seen := 0, false
	observe := func() {
		n, err := p.Count(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.Warn("pending count poll failed", "err", err)
			if p.OnError != nil {
				p.OnError(err)
			}
			return
		}

		switch {
		case !seen:
			if p.OnBaseline != nil {
				p.OnBaseline(n)
			}
		case n > last && p.OnIncrease != nil:
			p.OnIncrease(last, n)
		}
		last, seen = n, true
	}

	observe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			observe()
		}
	}
}
