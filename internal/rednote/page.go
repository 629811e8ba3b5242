// internal/rednote/page.go
package rednote

import (
	"context"
	"time"
)

// Page is the browser surface the scraping flows drive. *session.Session
// implements it.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	Count(ctx context.Context, sel string) (int, error)
	Exists(ctx context.Context, sel string) (bool, error)
	HTML(ctx context.Context) (string, error)
	Text(ctx context.Context) (string, error)

	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error
	// WaitAnyVisible returns the first of sels that became visible.
	WaitAnyVisible(ctx context.Context, sels []string, timeout time.Duration) (string, error)
	WaitNotPresent(ctx context.Context, sel string, timeout time.Duration) error
	WaitURL(ctx context.Context, pred func(string) bool, timeout time.Duration) error

	Click(ctx context.Context, sel string) error
	// ClickNth re-queries sel at call time and clicks its index-th match (or
	// that match's inner descendant).
	ClickNth(ctx context.Context, sel string, index int, inner string) error
	SendKeys(ctx context.Context, keys string) error
	PressEnter(ctx context.Context) error

	// Close releases the page and its browser. It is safe to call twice.
	Close(ctx context.Context) error
}

// Provider hands out a fresh Page with saved cookies installed. Each Page
// is exclusively owned by the caller until closed.
type Provider interface {
	Acquire(ctx context.Context) (Page, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Page, error)

func (f ProviderFunc) Acquire(ctx context.Context) (Page, error) {
	return f(ctx)
}
