// internal/browser/humanoid/instant.go
package humanoid

import (
	"context"
	"sync"
	"time"
)

// Instant is a Pacer that never sleeps. It records every requested range so
// tests can assert on the pacing a flow asked for.
type Instant struct {
	mu     sync.Mutex
	ranges []Range
}

var _ Pacer = (*Instant)(nil)

// Duration always returns zero.
func (i *Instant) Duration(r Range) time.Duration {
	i.record(r)
	return 0
}

// Pause records r and returns immediately unless ctx is already done.
func (i *Instant) Pause(ctx context.Context, r Range) error {
	i.record(r)
	return ctx.Err()
}

// Requested returns a copy of every range passed to Duration or Pause.
func (i *Instant) Requested() []Range {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]Range, len(i.ranges))
	copy(out, i.ranges)
	return out
}

func (i *Instant) record(r Range) {
	i.mu.Lock()
	i.ranges = append(i.ranges, r)
	i.mu.Unlock()
}
