// internal/browser/session/interfaces.go
package session

import (
	"context"

	"github.com/chromedp/chromedp"
)

// ActionExecutor runs chromedp actions against a live page. The operational
// ctx bounds the call; the implementation supplies the CDP target.
type ActionExecutor interface {
	RunActions(ctx context.Context, actions ...chromedp.Action) error
}

var _ ActionExecutor = (*Session)(nil)
