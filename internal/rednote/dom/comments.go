// internal/rednote/dom/comments.go
package dom

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
)

// ExtractComments maps every rendered comment item to a Comment. Only what is
// currently in the DOM is read; nothing is paginated.
func ExtractComments(doc *goquery.Document) []schemas.Comment {
	comments := []schemas.Comment{}

	list := CommentList.Find(doc, nil)
	if list.Length() == 0 {
		return comments
	}

	CommentItem.Find(doc, list.First()).Each(func(_ int, item *goquery.Selection) {
		comments = append(comments, schemas.Comment{
			Author:  CommentAuthor.Text(doc, item),
			Content: CommentContent.Text(doc, item),
			Likes:   ParseCount(CommentLikes.Text(doc, item)),
			Time:    CommentTime.Text(doc, item),
		})
	})
	return comments
}
