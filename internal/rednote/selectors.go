// internal/rednote/selectors.go
package rednote

import "github.com/xkilldash9x/rednote-cli/internal/rednote/dom"

// Selectors for the interactive flow. Field extraction selectors live in
// the dom package.
var (
	// A signed-in sidebar shows the "me" channel.
	loginProbeSelectors = []string{
		".user.side-bar-component .channel",
		".side-bar .user .link-wrapper",
	}

	searchInputSelectors = []string{
		"#search-input",
		"input.search-input",
	}

	resultContainerSelectors = []string{
		".feeds-container",
		".search-result-container",
	}

	resultItemSelector  = "section.note-item"
	resultCoverSelector = "a.cover"

	closeSelectors = []string{
		".close-circle",
		".close-mask-dark",
		`[class*="close"]`,
	}

	detailSelectors      = dom.DetailContainer.Selectors()
	commentListSelectors = dom.CommentList.Selectors()
)
