// internal/rednote/comments.go
package rednote

import (
	"context"

	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/rednote/dom"
)

// GetNoteComments opens a note and returns its currently rendered comments.
// "Load more" is never clicked.
func (c *Client) GetNoteComments(ctx context.Context, input string) ([]schemas.Comment, error) {
	url, err := noteURL(input)
	if err != nil {
		return nil, err
	}

	var comments []schemas.Comment
	err = c.withPage(ctx, true, func(ctx context.Context, page Page) error {
		doc, err := c.openNotePage(ctx, page, url, commentListSelectors, c.opts.CommentsTimeout)
		if err != nil {
			return err
		}
		comments = dom.ExtractComments(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("Comments extracted.", zap.String("url", url), zap.Int("comments", len(comments)))
	return comments, nil
}
