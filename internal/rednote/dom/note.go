// internal/rednote/dom/note.go
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
)

// Parse builds a queryable snapshot from serialized HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page snapshot: %w", err)
	}
	return doc, nil
}

// ExtractNote reads a Note from an open detail view. It reports false when
// no detail container is present at all. The URL is not part of the markup
// and is left for the caller.
func ExtractNote(doc *goquery.Document) (*schemas.Note, bool) {
	container := DetailContainer.Find(doc, nil)
	if container.Length() == 0 {
		return nil, false
	}
	container = container.First()

	note := &schemas.Note{
		Title:   Title.Text(doc, container),
		Content: Content.Text(doc, container),
		Author:  Author.Text(doc, container),
		Tags:    extractTags(doc, container),
	}

	if bar := EngageBar.Find(doc, container); bar.Length() > 0 {
		bar = bar.First()
		note.Likes = ParseCount(LikeCount.Text(doc, bar))
		note.Collects = ParseCount(CollectCount.Text(doc, bar))
		note.Comments = ParseCount(CommentCount.Text(doc, bar))
	}

	note.Normalize()
	return note, true
}

// ExtractNoteDetail reads a Note plus its media.
func ExtractNoteDetail(doc *goquery.Document) (*schemas.NoteDetail, bool) {
	note, ok := ExtractNote(doc)
	if !ok {
		return nil, false
	}
	container := DetailContainer.Find(doc, nil).First()

	detail := &schemas.NoteDetail{Note: *note}
	detail.Images = Images.Attr(doc, container, "src")
	if video := Video.Attr(doc, container, "src"); len(video) > 0 {
		detail.Video = video[0]
	}
	detail.Normalize()
	return detail, true
}

func extractTags(doc *goquery.Document, container *goquery.Selection) []string {
	var tags []string
	seen := make(map[string]bool)
	Tags.Find(doc, container).Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimSpace(strings.TrimPrefix(cleanText(s.Text()), "#"))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	})
	return tags
}

// uniqueAttr collects distinct non-empty attribute values, skipping inline
// data: placeholders.
func uniqueAttr(sel *goquery.Selection, attr string) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr(attr)
		v = strings.TrimSpace(v)
		if !ok || v == "" || strings.HasPrefix(v, "data:") || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	})
	return out
}
