// internal/browser/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/internal/config"
)

const defaultCloseTimeout = 10 * time.Second

// Session is one browser process with a single page. It is owned by exactly
// one operation at a time and must be closed on every exit path.
type Session struct {
	id     string
	logger *zap.Logger

	// ctx is the page; browserCtx is the browser it lives in.
	ctx           context.Context
	cancel        context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	closeTimeout time.Duration
	onClose      func()
	closeOnce    sync.Once
	closeErr     error
}

// New launches a browser and opens a blank page in it. ctx bounds the launch
// only; the browser itself lives until Close.
func New(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	id := uuid.New().String()
	log := logger.With(zap.String("session_id", id))

	allocCtx, allocCancel := chromedp.NewExecAllocator(Detach(ctx), AllocatorOptions(cfg)...)

	var ctxOpts []chromedp.ContextOption
	if cfg.Debug {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(log.Sugar().Debugf))
	}
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, ctxOpts...)

	s := &Session{
		id:            id,
		logger:        log,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		closeTimeout:  cfg.CloseTimeout,
	}
	if s.closeTimeout <= 0 {
		s.closeTimeout = defaultCloseTimeout
	}

	launchTimeout := cfg.LaunchTimeout
	if launchTimeout <= 0 {
		launchTimeout = 30 * time.Second
	}
	launchCtx, launchCancel := context.WithTimeout(ctx, launchTimeout)
	defer launchCancel()

	// The first Run on browserCtx starts the process.
	if err := firstRun(launchCtx, browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// The page is a second target so that closing it leaves the browser up
	// until the browser is closed explicitly.
	s.ctx, s.cancel = chromedp.NewContext(browserCtx)
	if err := firstRun(launchCtx, s.ctx, chromedp.Navigate("about:blank")); err != nil {
		s.cancel()
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.Debug("Browser session launched.", zap.Bool("headless", cfg.Headless))
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SetOnClose registers a callback run once after the session has closed.
func (s *Session) SetOnClose(fn func()) {
	s.onClose = fn
}

// RunActions executes actions on the page, bounded by both ctx and the
// session lifetime.
func (s *Session) RunActions(ctx context.Context, actions ...chromedp.Action) error {
	return s.runIn(ctx, s.ctx, actions...)
}

// firstRun performs the allocating Run on target itself, since chromedp ties
// the browser or tab to the context of that first call, and bounds the wait
// by ctx instead.
func firstRun(ctx, target context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(target, actions...)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) runIn(ctx, target context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(target, ctx)
	defer cancel()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		// Report the caller's deadline rather than the derived cancellation.
		return ctx.Err()
	}
	return err
}

// Close shuts the page and then the browser. Both steps always run; their
// errors are logged and joined. Further calls are no-ops.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing browser session.")

		closeCtx, cancel := context.WithTimeout(ctx, s.closeTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- s.shutdown()
		}()

		select {
		case err := <-done:
			s.closeErr = err
		case <-closeCtx.Done():
			s.logger.Warn("Browser did not close in time; killing the process.", zap.Duration("timeout", s.closeTimeout))
			s.closeErr = fmt.Errorf("close timed out: %w", closeCtx.Err())
		}

		// Killing the allocator reaps the process even if a graceful close hung.
		if s.allocCancel != nil {
			s.allocCancel()
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
	return s.closeErr
}

func (s *Session) shutdown() error {
	var errs []error

	if s.ctx != nil {
		if err := chromedp.Cancel(s.ctx); err != nil {
			s.logger.Warn("Failed to close page.", zap.Error(err))
			errs = append(errs, fmt.Errorf("page: %w", err))
		}
		if s.cancel != nil {
			s.cancel()
		}
	}
	if s.browserCtx != nil {
		if err := chromedp.Cancel(s.browserCtx); err != nil {
			s.logger.Warn("Failed to close browser.", zap.Error(err))
			errs = append(errs, fmt.Errorf("browser: %w", err))
		}
		if s.browserCancel != nil {
			s.browserCancel()
		}
	}
	return errors.Join(errs...)
}
