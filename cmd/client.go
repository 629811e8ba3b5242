// cmd/client.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/browser"
	"github.com/xkilldash9x/rednote-cli/internal/browser/session"
	"github.com/xkilldash9x/rednote-cli/internal/config"
	"github.com/xkilldash9x/rednote-cli/internal/rednote"
	"github.com/xkilldash9x/rednote-cli/internal/reporting"
)

var _ rednote.Page = (*session.Session)(nil)

// scraper is the part of *rednote.Client the commands use.
type scraper interface {
	SearchNotes(ctx context.Context, keywords string, limit int) ([]schemas.Note, error)
	GetNoteContent(ctx context.Context, input string) (*schemas.NoteDetail, error)
	GetNoteComments(ctx context.Context, input string) ([]schemas.Comment, error)
}

// newScraper builds the client and returns its teardown. Tests replace it.
var newScraper = newBrowserScraper

func newBrowserScraper(cfg *config.Config, logger *zap.Logger) (scraper, func(context.Context) error) {
	mgr := browser.NewManager(cfg, logger)
	provider := rednote.ProviderFunc(func(ctx context.Context) (rednote.Page, error) {
		s, err := mgr.Acquire(ctx)
		if err != nil {
			// A nil *Session must not become a non-nil Page.
			return nil, err
		}
		return s, nil
	})
	client := rednote.NewClient(provider, nil, rednote.OptionsFromConfig(cfg), logger)
	return client, mgr.Shutdown
}

// withScraper runs fn against a fresh scraper and shuts every browser down
// afterwards, even when ctx has been cancelled.
func withScraper(ctx context.Context, cfg *config.Config, logger *zap.Logger, fn func(scraper) error) error {
	s, shutdown := newScraper(cfg, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Browser.CloseTimeout+5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("Error during browser shutdown", zap.Error(err))
		}
	}()
	return fn(s)
}

// newEnvelope stamps a result with a fresh run ID.
func newEnvelope(op schemas.Operation, query string) *schemas.ResultEnvelope {
	return &schemas.ResultEnvelope{
		RunID:     uuid.New().String(),
		Operation: op,
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
}

// writeReport emits the envelope in the configured format.
func writeReport(cfg *config.Config, env *schemas.ResultEnvelope, logger *zap.Logger) error {
	reporter, err := reporting.New(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize reporter: %w", err)
	}
	if err := reporter.Write(env); err != nil {
		_ = reporter.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := reporter.Close(); err != nil {
		return err
	}
	if cfg.Output.Path != "" {
		logger.Info("Results written.", zap.String("path", cfg.Output.Path), zap.String("run_id", env.RunID))
	}
	return nil
}
