// internal/rednote/client.go
package rednote

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/internal/browser/humanoid"
)

// Client runs the scraping flows. Each public call acquires its own page
// and releases it on every exit path, so calls share no browser state; a
// single call is strictly sequential.
type Client struct {
	provider Provider
	pacer    humanoid.Pacer
	opts     Options
	logger   *zap.Logger
}

// NewClient wires a client. A nil pacer means production randomized pacing.
func NewClient(provider Provider, pacer humanoid.Pacer, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pacer == nil {
		pacer = humanoid.New(nil, logger.Named("humanoid"))
	}
	return &Client{
		provider: provider,
		pacer:    pacer,
		opts:     opts,
		logger:   logger.Named("rednote"),
	}
}

// withPage brackets fn with acquire and release. When requireLoggedIn is
// set the login probe runs first.
func (c *Client) withPage(ctx context.Context, requireLoggedIn bool, fn func(ctx context.Context, page Page) error) error {
	page, err := c.provider.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire browser session: %w", err)
	}
	if page == nil {
		return ErrPageNotInitialized
	}
	defer c.release(ctx, page)

	if requireLoggedIn {
		if err := c.ensureLoggedIn(ctx, page); err != nil {
			return err
		}
	}
	return fn(ctx, page)
}

// release closes the page even if ctx is already cancelled. Failures are
// logged only.
func (c *Client) release(ctx context.Context, page Page) {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.CloseTimeout)
	defer cancel()

	if err := page.Close(closeCtx); err != nil {
		c.logger.Warn("Failed to release browser session.", zap.Error(fmt.Errorf("%w: %w", ErrCleanupFailure, err)))
	}
}

// ensureLoggedIn opens the home page and looks for signed-in chrome.
func (c *Client) ensureLoggedIn(ctx context.Context, page Page) error {
	if err := page.Navigate(ctx, c.opts.HomeURL); err != nil {
		return fmt.Errorf("%w: failed to open home page: %w", ErrNavigationFailure, err)
	}
	if err := c.pacer.Pause(ctx, c.opts.Pacing.PageSettle); err != nil {
		return err
	}
	if _, err := page.WaitAnyVisible(ctx, loginProbeSelectors, c.opts.ProbeTimeout); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: login probe failed on %s", ErrNotAuthenticated, c.opts.HomeURL)
	}
	c.logger.Debug("Login state confirmed.")
	return nil
}

// findErrorMarker returns the first configured error marker found in text.
func findErrorMarker(text string, markers []string) (string, bool) {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return m, true
		}
	}
	return "", false
}
