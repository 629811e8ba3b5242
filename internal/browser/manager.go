// internal/browser/manager.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/rednote-cli/internal/browser/session"
	"github.com/xkilldash9x/rednote-cli/internal/config"
)

// LaunchFunc starts a new browser session.
type LaunchFunc func(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*session.Session, error)

// Manager hands out fresh browser sessions with the saved login cookies
// already installed, and tracks them so Shutdown can reap stragglers.
type Manager struct {
	logger     *zap.Logger
	browserCfg config.BrowserConfig
	sessionCfg config.SessionConfig
	limiter    *rate.Limiter
	launch     LaunchFunc

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewManager creates a manager. Nothing is launched until Acquire.
func NewManager(cfg *config.Config, logger *zap.Logger) *Manager {
	limit := rate.Inf
	if cfg.Browser.LaunchRate > 0 {
		limit = rate.Limit(cfg.Browser.LaunchRate)
	}
	return &Manager{
		logger:     logger.Named("browser_manager"),
		browserCfg: cfg.Browser,
		sessionCfg: cfg.Session,
		limiter:    rate.NewLimiter(limit, 1),
		launch:     session.New,
		sessions:   make(map[string]*session.Session),
	}
}

// WithLauncher replaces the function used to start browsers.
func (m *Manager) WithLauncher(fn LaunchFunc) *Manager {
	m.launch = fn
	return m
}

// Acquire launches a browser session and injects the cookies from the
// configured cookie file. A missing cookie file is not an error; the session
// then simply is not logged in.
func (m *Manager) Acquire(ctx context.Context) (*session.Session, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for launch slot: %w", err)
	}

	s, err := m.launch(ctx, m.browserCfg, m.logger)
	if err != nil {
		return nil, err
	}
	m.register(s)

	if err := m.injectCookies(ctx, s); err != nil {
		if closeErr := s.Close(ctx); closeErr != nil {
			m.logger.Warn("Failed to close session after cookie error.", zap.String("session_id", s.ID()), zap.Error(closeErr))
		}
		return nil, err
	}

	m.logger.Debug("Session acquired.", zap.String("session_id", s.ID()))
	return s, nil
}

func (m *Manager) injectCookies(ctx context.Context, s *session.Session) error {
	if m.sessionCfg.CookieFile == "" {
		return nil
	}
	cookies, err := LoadCookies(m.sessionCfg.CookieFile)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("Cookie file not found; continuing without a login session.", zap.String("path", m.sessionCfg.CookieFile))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cookies from %s: %w", m.sessionCfg.CookieFile, err)
	}
	if err := s.SetCookies(ctx, CookieParams(cookies)); err != nil {
		return fmt.Errorf("failed to inject cookies: %w", err)
	}
	return nil
}

func (m *Manager) register(s *session.Session) {
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	s.SetOnClose(func() {
		m.mu.Lock()
		delete(m.sessions, s.ID())
		m.mu.Unlock()
	})
}

// Active returns the number of sessions not yet closed.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every live session concurrently.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	live := make([]*session.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()

	if len(live) == 0 {
		return nil
	}
	m.logger.Info("Closing remaining browser sessions.", zap.Int("count", len(live)))

	var g errgroup.Group
	for _, s := range live {
		g.Go(func() error {
			if err := s.Close(ctx); err != nil {
				return fmt.Errorf("session %s: %w", s.ID(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
