// internal/rednote/url.go
package rednote

import (
	"regexp"
	"strings"
)

var (
	shortLinkPattern = regexp.MustCompile(`https?://xhslink\.com/[A-Za-z0-9/_\-]+`)
	fullLinkPattern  = regexp.MustCompile(`https?://(?:www\.)?xiaohongshu\.com/[^\s，。！、]+`)
)

// ExtractRedBookURL pulls a note link out of app share text. A short link
// wins over a full-domain link; text with neither is returned unchanged.
func ExtractRedBookURL(shareText string) string {
	if m := shortLinkPattern.FindString(shareText); m != "" {
		return m
	}
	if m := fullLinkPattern.FindString(shareText); m != "" {
		return m
	}
	return shareText
}

// isSearchResultURL reports whether the page has moved to search results.
func isSearchResultURL(u string) bool {
	return strings.Contains(u, "search_result") || strings.Contains(u, "keyword=")
}
