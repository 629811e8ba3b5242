// internal/browser/humanoid/interface.go
package humanoid

import (
	"context"
	"time"
)

// Pacer schedules the artificial pauses of a scripted interaction.
// Production code uses *Humanoid; tests inject Instant.
type Pacer interface {
	// Duration draws a delay from r without sleeping.
	Duration(r Range) time.Duration
	// Pause blocks for a delay drawn from r or until ctx is done.
	Pause(ctx context.Context, r Range) error
}

// KeySender is the low-level keyboard primitive Type drives.
type KeySender interface {
	SendKeys(ctx context.Context, keys string) error
}

// Range is a closed [Min, Max] interval of pause durations.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Between is shorthand for a Range literal.
func Between(min, max time.Duration) Range {
	return Range{Min: min, Max: max}
}

// IsZero reports whether the range disables the pause entirely.
func (r Range) IsZero() bool {
	return r.Min <= 0 && r.Max <= 0
}

// normalized clamps negative bounds and swaps an inverted range.
func (r Range) normalized() Range {
	if r.Min < 0 {
		r.Min = 0
	}
	if r.Max < 0 {
		r.Max = 0
	}
	if r.Max < r.Min {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}
