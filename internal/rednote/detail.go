// internal/rednote/detail.go
package rednote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/rednote/dom"
)

// GetNoteContent opens a note by URL or by app share text and extracts it
// with its media.
func (c *Client) GetNoteContent(ctx context.Context, input string) (*schemas.NoteDetail, error) {
	url, err := noteURL(input)
	if err != nil {
		return nil, err
	}
	logger := c.logger.With(zap.String("url", url))

	var detail *schemas.NoteDetail
	err = c.withPage(ctx, true, func(ctx context.Context, page Page) error {
		doc, err := c.openNotePage(ctx, page, url, detailSelectors, c.opts.DetailTimeout)
		if err != nil {
			return err
		}

		d, ok := dom.ExtractNoteDetail(doc)
		if !ok {
			return fmt.Errorf("%w: note detail not rendered at %s", ErrPageNotInitialized, url)
		}
		d.URL = url
		if loc, err := page.Location(ctx); err == nil && loc != "" {
			d.URL = loc
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Note extracted.", zap.String("title", detail.Title), zap.Int("images", len(detail.Images)))
	return detail, nil
}

// openNotePage navigates to url, waits for one of ready to render and
// returns a snapshot of the page.
func (c *Client) openNotePage(ctx context.Context, page Page, url string, ready []string, timeout time.Duration) (*goquery.Document, error) {
	if err := page.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrNavigationFailure, url, err)
	}
	if _, err := page.WaitAnyVisible(ctx, ready, timeout); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s did not render: %w", ErrNavigationFailure, url, err)
	}
	if err := c.pacer.Pause(ctx, c.opts.Pacing.PageSettle); err != nil {
		return nil, err
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", url, err)
	}
	return dom.Parse(html)
}

// noteURL normalizes share text into a note URL.
func noteURL(input string) (string, error) {
	url := strings.TrimSpace(ExtractRedBookURL(strings.TrimSpace(input)))
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("%w: no note URL in %q", ErrInvalidArgument, input)
	}
	return url, nil
}
