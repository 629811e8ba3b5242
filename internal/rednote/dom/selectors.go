// internal/rednote/dom/selectors.go
package dom

// Detail view.
var (
	// DetailContainer locates the note detail; the scroller is the fallback
	// when the dedicated id is missing.
	DetailContainer = Chain{
		{Selector: "#noteContainer"},
		{Selector: ".note-scroller"},
	}

	Title = Chain{
		{Selector: "#detail-title"},
		{Selector: ".title"},
		{Selector: `[class*="title"]`},
		// A large block here is the note body, not a title.
		{Selector: "div", Accept: shorterThan(100)},
	}

	Content = Chain{
		{Selector: "#detail-desc .note-text"},
		{Selector: ".desc"},
		{Selector: `[class*="desc"]`},
		{Selector: ".content"},
	}

	Author = Chain{
		{Selector: ".author-wrapper .username"},
		{Selector: ".name span"},
		{Selector: ".name"},
		{Selector: ".author-container .username", Scope: InDocument},
	}

	Tags = Chain{
		{Selector: "#detail-desc a.tag"},
		{Selector: `a[id^="hash-tag"]`},
		{Selector: "a.tag", Scope: InDocument},
	}

	EngageBar = Chain{
		{Selector: ".engage-bar", Scope: InDocument},
		{Selector: ".interact-container", Scope: InDocument},
	}

	// Counts are evaluated inside the engagement bar.
	LikeCount = Chain{
		{Selector: ".like-wrapper .count"},
		{Selector: `[class*="like"] .count`},
	}
	CollectCount = Chain{
		{Selector: ".collect-wrapper .count"},
		{Selector: `[class*="collect"] .count`},
	}
	CommentCount = Chain{
		{Selector: ".chat-wrapper .count"},
		{Selector: `[class*="chat"] .count`},
	}

	Images = Chain{
		{Selector: ".swiper-slide img"},
		{Selector: ".media-container img"},
		{Selector: ".note-slider img"},
	}

	Video = Chain{
		{Selector: "video", Scope: InDocument},
		{Selector: "video source", Scope: InDocument},
	}
)

// Comment panel.
var (
	CommentList = Chain{
		{Selector: `[role="dialog"] [role="list"]`, Scope: InDocument},
		{Selector: ".comments-container .list-container", Scope: InDocument},
	}

	CommentItem = Chain{
		{Selector: `[role="listitem"]`},
		{Selector: ".parent-comment"},
	}

	CommentAuthor = Chain{
		{Selector: `[data-testid="user-name"]`},
		{Selector: ".author .name"},
	}
	CommentContent = Chain{
		{Selector: `[data-testid="comment-content"]`},
		{Selector: ".content .note-text"},
		{Selector: ".content"},
	}
	CommentLikes = Chain{
		{Selector: `[data-testid="likes-count"]`},
		{Selector: ".like .count"},
	}
	CommentTime = Chain{
		{Selector: "time"},
		{Selector: ".date span"},
		{Selector: ".date"},
	}
)
