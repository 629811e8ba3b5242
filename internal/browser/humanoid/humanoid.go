// internal/browser/humanoid/humanoid.go
package humanoid

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Humanoid draws uniformly distributed pauses from configured ranges so that
// scripted input arrives with the irregular rhythm of a person at a keyboard.
type Humanoid struct {
	// mu guards rng; *rand.Rand is not safe for concurrent use.
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.Logger
}

var _ Pacer = (*Humanoid)(nil)

// New creates a Humanoid. A nil rng is replaced by a time-seeded source.
func New(rng *rand.Rand, logger *zap.Logger) *Humanoid {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Humanoid{rng: rng, logger: logger}
}

// NewTestHumanoid creates a Humanoid with a deterministic seed.
func NewTestHumanoid(seed int64) *Humanoid {
	return New(rand.New(rand.NewSource(seed)), zap.NewNop())
}

// Duration draws a delay uniformly from r.
func (h *Humanoid) Duration(r Range) time.Duration {
	r = r.normalized()
	span := int64(r.Max - r.Min)
	if span <= 0 {
		return r.Min
	}

	h.mu.Lock()
	offset := h.rng.Int63n(span + 1)
	h.mu.Unlock()

	return r.Min + time.Duration(offset)
}

// Pause sleeps for a delay drawn from r. It returns ctx.Err() if the context
// ends first.
func (h *Humanoid) Pause(ctx context.Context, r Range) error {
	d := h.Duration(r)
	if d <= 0 {
		return ctx.Err()
	}
	h.logger.Debug("Pausing.", zap.Duration("duration", d))
	return Sleep(ctx, d)
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
