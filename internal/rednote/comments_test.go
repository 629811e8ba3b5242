// internal/rednote/comments_test.go
package rednote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
)

const commentsFixture = `<html><body>
<div role="dialog"><div role="list">
  <div role="listitem">
    <span data-testid="user-name">阿花</span>
    <span data-testid="comment-content">好看！求链接</span>
    <span data-testid="likes-count">12</span>
    <time>2天前</time>
  </div>
  <div role="listitem">
    <span data-testid="user-name">小李</span>
    <span data-testid="comment-content">同款沙发</span>
    <span data-testid="likes-count">1.1万</span>
    <time>10-01</time>
  </div>
</div></div>
</body></html>`

func TestGetNoteComments(t *testing.T) {
	t.Run("extracts rendered comments", func(t *testing.T) {
		site := &fakeSite{loggedIn: true, noteHTML: commentsFixture}
		client, _ := newTestClient(t, site)

		comments, err := client.GetNoteComments(context.Background(), "https://www.xiaohongshu.com/explore/abc")
		require.NoError(t, err)
		assert.Equal(t, []schemas.Comment{
			{Author: "阿花", Content: "好看！求链接", Likes: 12, Time: "2天前"},
			{Author: "小李", Content: "同款沙发", Likes: 11000, Time: "10-01"},
		}, comments)
		assert.Equal(t, 1, site.closes)
	})

	t.Run("no comments is an empty list", func(t *testing.T) {
		site := &fakeSite{loggedIn: true, noteHTML: `<html><body><div role="dialog"><div role="list"></div></div></body></html>`}
		client, _ := newTestClient(t, site)

		comments, err := client.GetNoteComments(context.Background(), "https://www.xiaohongshu.com/explore/abc")
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("not logged in", func(t *testing.T) {
		site := &fakeSite{loggedIn: false, noteHTML: commentsFixture}
		client, _ := newTestClient(t, site)

		_, err := client.GetNoteComments(context.Background(), "https://www.xiaohongshu.com/explore/abc")
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, 1, site.closes)
	})

	t.Run("invalid input", func(t *testing.T) {
		site := &fakeSite{loggedIn: true}
		client, _ := newTestClient(t, site)

		_, err := client.GetNoteComments(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, 0, site.acquires)
	})
}
