// internal/browser/session/query.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const pollInterval = 150 * time.Millisecond

// Location returns the page's current URL.
func (s *Session) Location(ctx context.Context) (string, error) {
	var loc string
	err := s.timed(ctx, actionTimeout, "read location", chromedp.Location(&loc))
	return loc, err
}

// Count returns how many elements currently match sel.
func (s *Session) Count(ctx context.Context, sel string) (int, error) {
	var n int
	err := s.timed(ctx, actionTimeout, "count "+sel,
		chromedp.Evaluate(fmt.Sprintf("document.querySelectorAll(%s).length", jsString(sel)), &n))
	return n, err
}

// Exists reports whether at least one element matches sel.
func (s *Session) Exists(ctx context.Context, sel string) (bool, error) {
	n, err := s.Count(ctx, sel)
	return n > 0, err
}

// HTML returns the serialized document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	err := s.timed(ctx, actionTimeout, "read document", chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Text returns the rendered text of the document body.
func (s *Session) Text(ctx context.Context) (string, error) {
	var text string
	err := s.timed(ctx, actionTimeout, "read text",
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &text))
	return text, err
}

// WaitVisible blocks until sel is visible or timeout elapses.
func (s *Session) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	return s.timed(ctx, timeout, "wait for "+sel, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

// WaitNotPresent blocks until no element matches sel or timeout elapses.
func (s *Session) WaitNotPresent(ctx context.Context, sel string, timeout time.Duration) error {
	return s.timed(ctx, timeout, "wait for removal of "+sel, chromedp.WaitNotPresent(sel, chromedp.ByQuery))
}

// WaitAnyVisible blocks until one of sels is visible and returns the first
// one, in order, that is.
func (s *Session) WaitAnyVisible(ctx context.Context, sels []string, timeout time.Duration) (string, error) {
	script := firstVisibleJS(sels)
	var matched string
	err := Poll(ctx, timeout, pollInterval, func(pollCtx context.Context) (bool, error) {
		var sel string
		if err := s.RunActions(pollCtx, chromedp.Evaluate(script, &sel)); err != nil {
			return false, err
		}
		matched = sel
		return sel != "", nil
	})
	if err != nil {
		return "", fmt.Errorf("wait for any of %v: %w", sels, err)
	}
	return matched, nil
}

// WaitURL blocks until pred accepts the page's URL.
func (s *Session) WaitURL(ctx context.Context, pred func(string) bool, timeout time.Duration) error {
	var last string
	err := Poll(ctx, timeout, pollInterval, func(pollCtx context.Context) (bool, error) {
		if err := s.RunActions(pollCtx, chromedp.Location(&last)); err != nil {
			return false, err
		}
		return pred(last), nil
	})
	if err != nil {
		s.logger.Debug("URL did not reach the expected state.", zap.String("url", last), zap.Error(err))
		return fmt.Errorf("wait for url: %w", err)
	}
	return nil
}

// Poll evaluates cond every interval until it reports true or timeout
// elapses. Errors from cond are treated as "not yet" since the page may be
// mid-navigation; the last one is attached to the timeout error.
// Cancellation of ctx is returned as is.
func Poll(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := cond(opCtx)
		if err == nil && ok {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-opCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if lastErr != nil {
				return fmt.Errorf("timed out after %v (last error: %v): %w", timeout, lastErr, context.DeadlineExceeded)
			}
			return fmt.Errorf("timed out after %v: %w", timeout, context.DeadlineExceeded)
		case <-ticker.C:
		}
	}
}

func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshalling a string cannot fail.
		panic(err)
	}
	return string(b)
}

func firstVisibleJS(sels []string) string {
	list, _ := json.Marshal(sels)
	return fmt.Sprintf(`(function(sels) {
	for (const s of sels) {
		const el = document.querySelector(s);
		if (el && (el.offsetWidth || el.offsetHeight || el.getClientRects().length)) {
			return s;
		}
	}
	return "";
})(%s)`, list)
}

func nthCenterJS(sel string, index int, inner string) string {
	return fmt.Sprintf(`(function(sel, index, inner) {
	const item = document.querySelectorAll(sel)[index];
	if (!item) {
		return {found: false, x: 0, y: 0};
	}
	const target = (inner && item.querySelector(inner)) || item;
	target.scrollIntoView({block: "center", inline: "center"});
	const r = target.getBoundingClientRect();
	return {found: true, x: r.left + r.width / 2, y: r.top + r.height / 2};
})(%s, %d, %s)`, jsString(sel), index, jsString(inner))
}
