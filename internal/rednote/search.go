// internal/rednote/search.go
package rednote

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/rednote-cli/internal/rednote/dom"
)

// SearchNotes searches for keywords and extracts up to limit notes in
// on-page order. A limit of zero or less uses the configured default.
// Failed items are skipped; only a spent attempt budget is an error.
func (c *Client) SearchNotes(ctx context.Context, keywords string, limit int) ([]schemas.Note, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, fmt.Errorf("%w: empty search keywords", ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = c.opts.DefaultLimit
	}

	logger := c.logger.With(zap.String("keywords", keywords), zap.Int("limit", limit))

	var notes []schemas.Note
	err := Do(ctx, c.pacer, c.opts.Attempts, func(ctx context.Context, attempt int) error {
		logger.Info("Search attempt started.", zap.Int("attempt", attempt))
		err := c.withPage(ctx, false, func(ctx context.Context, page Page) error {
			found, err := c.searchOnce(ctx, page, keywords, limit, logger)
			if err != nil {
				return err
			}
			notes = found
			return nil
		})
		if err != nil {
			logger.Warn("Search attempt failed.", zap.Int("attempt", attempt), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Search completed.", zap.Int("notes", len(notes)))
	return notes, nil
}

func (c *Client) searchOnce(ctx context.Context, page Page, keywords string, limit int, logger *zap.Logger) ([]schemas.Note, error) {
	if err := c.ensureLoggedIn(ctx, page); err != nil {
		return nil, err
	}
	if err := c.enterQuery(ctx, page, keywords); err != nil {
		return nil, err
	}
	if err := c.submitQuery(ctx, page); err != nil {
		return nil, err
	}
	if err := c.waitForResults(ctx, page, logger); err != nil {
		return nil, err
	}

	if err := c.pacer.Pause(ctx, c.opts.Pacing.ResultSettle); err != nil {
		return nil, err
	}
	count, err := page.Count(ctx, resultItemSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate results: %w", err)
	}
	if count == 0 {
		return nil, ErrNoResults
	}

	n := min(count, limit)
	logger.Debug("Result items enumerated.", zap.Int("found", count), zap.Int("extracting", n))

	notes := make([]schemas.Note, 0, n)
	for i := 0; i < n; i++ {
		note, err := c.openAndExtract(ctx, page, i)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		switch {
		case err != nil:
			logger.Warn("Skipping result item.", zap.Int("index", i), zap.Error(err))
		case note == nil:
			logger.Debug("Result item had no detail container; dropped.", zap.Int("index", i))
		default:
			notes = append(notes, *note)
		}

		// The overlay is closed whether or not extraction worked.
		if err := c.closeDetail(ctx, page); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Failed to close detail overlay.", zap.Int("index", i), zap.Error(err))
		}
	}
	return notes, nil
}

// enterQuery focuses the search box and types keywords like a person would.
func (c *Client) enterQuery(ctx context.Context, page Page, keywords string) error {
	input, err := page.WaitAnyVisible(ctx, searchInputSelectors, c.opts.ProbeTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: search box not found: %w", ErrNavigationFailure, err)
	}
	if err := page.Click(ctx, input); err != nil {
		return fmt.Errorf("failed to focus search box: %w", err)
	}
	if err := c.pacer.Pause(ctx, c.opts.Pacing.Settle); err != nil {
		return err
	}
	if err := humanoid.Type(ctx, c.pacer, page, keywords, c.opts.Pacing.Keystroke); err != nil {
		return err
	}
	return c.pacer.Pause(ctx, c.opts.Pacing.PreSubmit)
}

// submitQuery presses Enter until the URL shows search results.
func (c *Client) submitQuery(ctx context.Context, page Page) error {
	err := Do(ctx, c.pacer, c.opts.Submit, func(ctx context.Context, attempt int) error {
		if err := page.PressEnter(ctx); err != nil {
			return err
		}
		if err := page.WaitURL(ctx, isSearchResultURL, c.opts.SubmitTimeout); err != nil {
			c.logger.Debug("Search submission not reflected in URL.", zap.Int("submit_attempt", attempt), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: search was not submitted: %w", ErrNavigationFailure, err)
	}
	return nil
}

// waitForResults waits for the result list. A slow page without a known
// error marker is accepted; enumeration decides whether anything rendered.
func (c *Client) waitForResults(ctx context.Context, page Page, logger *zap.Logger) error {
	if _, err := page.WaitAnyVisible(ctx, resultContainerSelectors, c.opts.ResultsTimeout); err == nil {
		return nil
	} else if ctx.Err() != nil {
		return ctx.Err()
	}

	text, err := page.Text(ctx)
	if err != nil {
		logger.Debug("Could not read page text after results timeout.", zap.Error(err))
		return nil
	}
	if marker, found := findErrorMarker(text, c.opts.ErrorMarkers); found {
		return fmt.Errorf("%w: error page detected (%q)", ErrNavigationFailure, marker)
	}
	logger.Warn("Results container did not appear; continuing.", zap.Duration("timeout", c.opts.ResultsTimeout))
	return nil
}

// openAndExtract opens the index-th result and reads its detail. A nil note
// with a nil error means the overlay had no detail container.
func (c *Client) openAndExtract(ctx context.Context, page Page, index int) (*schemas.Note, error) {
	if err := page.ClickNth(ctx, resultItemSelector, index, resultCoverSelector); err != nil {
		return nil, fmt.Errorf("%w: open item %d: %w", ErrExtractionSkip, index, err)
	}
	if _, err := page.WaitAnyVisible(ctx, detailSelectors, c.opts.DetailTimeout); err != nil {
		return nil, fmt.Errorf("%w: detail of item %d did not render: %w", ErrExtractionSkip, index, err)
	}
	if err := c.pacer.Pause(ctx, c.opts.Pacing.DetailSettle); err != nil {
		return nil, err
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot item %d: %w", ErrExtractionSkip, index, err)
	}
	doc, err := dom.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionSkip, err)
	}
	note, ok := dom.ExtractNote(doc)
	if !ok {
		return nil, nil
	}

	// The overlay pushes the note's own URL.
	if loc, err := page.Location(ctx); err == nil {
		note.URL = loc
	} else {
		c.logger.Debug("Could not read note URL.", zap.Int("index", index), zap.Error(err))
	}
	return note, nil
}

// closeDetail dismisses the detail overlay and waits for it to detach.
func (c *Client) closeDetail(ctx context.Context, page Page) error {
	if err := c.pacer.Pause(ctx, c.opts.Pacing.PostItem); err != nil {
		return err
	}

	// A present control can still be hidden behind the mask, so a failed
	// click falls through to the next candidate.
	var clickErr error
	clicked := false
	for _, sel := range closeSelectors {
		ok, err := page.Exists(ctx, sel)
		if err != nil || !ok {
			continue
		}
		if err := page.Click(ctx, sel); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			clickErr = fmt.Errorf("close control %s: %w", sel, err)
			c.logger.Debug("Close control click failed; trying next.", zap.String("selector", sel), zap.Error(err))
			continue
		}
		clicked = true
		break
	}
	if !clicked {
		if clickErr != nil {
			return fmt.Errorf("%w: %w", ErrExtractionSkip, clickErr)
		}
		return fmt.Errorf("%w: no close control present", ErrExtractionSkip)
	}

	for _, sel := range detailSelectors {
		if ok, err := page.Exists(ctx, sel); err == nil && ok {
			if err := page.WaitNotPresent(ctx, sel, c.opts.CloseTimeout); err != nil {
				return fmt.Errorf("%w: detail overlay stayed open: %w", ErrExtractionSkip, err)
			}
		}
	}
	return nil
}
