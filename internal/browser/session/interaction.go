// internal/browser/session/interaction.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

const (
	navigationTimeout = 60 * time.Second
	actionTimeout     = 10 * time.Second
)

// Navigate loads url and waits for the document to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))
	return s.timed(ctx, navigationTimeout, "navigation to "+url, chromedp.Navigate(url))
}

// Click clicks the first element matching sel once it is visible.
func (s *Session) Click(ctx context.Context, sel string) error {
	return s.timed(ctx, actionTimeout, "click on "+sel, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
}

type point struct {
	Found bool    `json:"found"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ClickNth clicks the index-th element matching sel, or the first descendant
// of it matching inner when inner is set and present. The list is queried at
// call time so a re-rendered page never yields a stale node.
func (s *Session) ClickNth(ctx context.Context, sel string, index int, inner string) error {
	var p point
	if err := s.timed(ctx, actionTimeout, "locate "+sel, chromedp.Evaluate(nthCenterJS(sel, index, inner), &p)); err != nil {
		return err
	}
	if !p.Found {
		return fmt.Errorf("no element at index %d for %q", index, sel)
	}
	return s.timed(ctx, actionTimeout, fmt.Sprintf("click on %s[%d]", sel, index), chromedp.MouseClickXY(p.X, p.Y))
}

// SendKeys dispatches key events for keys to the focused element.
func (s *Session) SendKeys(ctx context.Context, keys string) error {
	return s.timed(ctx, actionTimeout, "send keys", chromedp.KeyEvent(keys))
}

// PressEnter dispatches a single Enter key press.
func (s *Session) PressEnter(ctx context.Context) error {
	return s.timed(ctx, actionTimeout, "press enter", chromedp.KeyEvent(kb.Enter))
}

// SetCookies installs cookies into the browser before the first navigation.
func (s *Session) SetCookies(ctx context.Context, cookies []*network.CookieParam) error {
	if len(cookies) == 0 {
		return nil
	}
	if err := s.timed(ctx, actionTimeout, "set cookies", network.SetCookies(cookies)); err != nil {
		return err
	}
	s.logger.Debug("Cookies injected.", zap.Int("count", len(cookies)))
	return nil
}

// timed runs actions under their own timeout. A timeout is reported as an
// error wrapping context.DeadlineExceeded; cancellation of ctx is returned
// unchanged.
func (s *Session) timed(ctx context.Context, timeout time.Duration, what string, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.RunActions(opCtx, actions...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if opCtx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %v: %w", what, timeout, context.DeadlineExceeded)
	}
	return fmt.Errorf("%s failed: %w", what, err)
}
