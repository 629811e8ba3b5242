// internal/browser/session/context_utils.go
package session

import (
	"context"
	"time"
)

// CombineContext derives a context from primary that is also cancelled when
// secondary is done. Values (including the chromedp target) come from primary
// only, so CDP actions keep their connection while honouring the caller's
// deadline carried by secondary.
func CombineContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(primary)

	go func() {
		select {
		case <-secondary.Done():
			cancel()
		case <-combined.Done():
		}
	}()

	return combined, cancel
}

// valueOnlyContext keeps the values of its parent but none of its lifecycle.
type valueOnlyContext struct {
	context.Context
}

func (valueOnlyContext) Deadline() (deadline time.Time, ok bool) { return }

func (valueOnlyContext) Done() <-chan struct{} { return nil }

func (valueOnlyContext) Err() error { return nil }

// Detach returns a context carrying ctx's values that is never cancelled.
// Browser processes are launched from a detached context so that they live
// until Close rather than until the request that started them returns.
func Detach(ctx context.Context) context.Context {
	return valueOnlyContext{ctx}
}
