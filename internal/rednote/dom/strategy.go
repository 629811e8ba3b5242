// internal/rednote/dom/strategy.go
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Scope says where a Candidate selector is evaluated.
type Scope int

const (
	// InContainer searches below the detail container.
	InContainer Scope = iota
	// InDocument searches the whole page; the site sometimes renders
	// interaction chrome outside the note container.
	InDocument
)

// Candidate is one way of locating a field. Candidates are tried in order
// and the first non-empty, accepted text wins.
type Candidate struct {
	Selector string
	Scope    Scope
	// Accept optionally rejects a match, e.g. a "title" that is really the body.
	Accept func(text string) bool
}

// Chain is an ordered list of candidates for one field.
type Chain []Candidate

// Text returns the first accepted text produced by the chain, or "". Every
// match of a candidate is tried in document order, so an empty decorative
// node does not hide a populated one behind it.
func (c Chain) Text(doc *goquery.Document, container *goquery.Selection) string {
	for _, cand := range c {
		if text := cand.firstText(cand.root(doc, container).Find(cand.Selector)); text != "" {
			return text
		}
	}
	return ""
}

func (cand Candidate) firstText(matches *goquery.Selection) string {
	var found string
	matches.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := cleanText(sel.Text())
		if text == "" || (cand.Accept != nil && !cand.Accept(text)) {
			return true
		}
		found = text
		return false
	})
	return found
}

// Find returns the matches of the first candidate that matches anything.
func (c Chain) Find(doc *goquery.Document, container *goquery.Selection) *goquery.Selection {
	for _, cand := range c {
		if sel := cand.root(doc, container).Find(cand.Selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection.Slice(0, 0)
}

// Attr returns the distinct values of attr from the first candidate that
// yields any.
func (c Chain) Attr(doc *goquery.Document, container *goquery.Selection, attr string) []string {
	for _, cand := range c {
		if values := uniqueAttr(cand.root(doc, container).Find(cand.Selector), attr); len(values) > 0 {
			return values
		}
	}
	return nil
}

func (cand Candidate) root(doc *goquery.Document, container *goquery.Selection) *goquery.Selection {
	if cand.Scope == InDocument || container == nil {
		return doc.Selection
	}
	return container
}

// shorterThan accepts texts of fewer than n runes.
func shorterThan(n int) func(string) bool {
	return func(s string) bool {
		return len([]rune(s)) < n
	}
}

// cleanText collapses whitespace within each line and drops blank lines.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Selectors lists the chain's CSS selectors in order.
func (c Chain) Selectors() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Selector
	}
	return out
}
