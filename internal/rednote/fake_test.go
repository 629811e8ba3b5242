// internal/rednote/fake_test.go
package rednote

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

var errFakeTimeout = fmt.Errorf("fake wait timed out: %w", context.DeadlineExceeded)

// fakeItem is one search result of the simulated site.
type fakeItem struct {
	title  string
	author string
	likes  string
	// brokenSnapshot makes reading the detail DOM fail.
	brokenSnapshot bool
	// noContainer renders an overlay without a detail container.
	noContainer bool
	closeFault  closeFault
}

// closeFault describes how an item's overlay misbehaves when dismissed.
type closeFault int

const (
	closeOK closeFault = iota
	// primaryHidden: the first close control exists but cannot be clicked.
	primaryHidden
	// primaryMissing: only the second close control is rendered.
	primaryMissing
	// allHidden: every close control exists and none can be clicked.
	allHidden
	// noControl: the overlay has no close control at all.
	noControl
	// stuckOpen: the click lands but the overlay never detaches.
	stuckOpen
)

var errNotVisible = fmt.Errorf("element not visible: %w", context.DeadlineExceeded)

// fakeSite is the shared state behind every page a fakeProvider hands out.
type fakeSite struct {
	mu sync.Mutex

	loggedIn bool
	// items served per attempt; the last entry repeats.
	itemsPerAttempt [][]fakeItem
	// enterFailures is how many Enter presses are ignored per page.
	enterFailures int
	resultsHidden bool
	pageText      string
	noteHTML      string
	acquireErr    error

	acquires int
	closes   int
	pages    []*fakePage
}

type fakeProvider struct {
	site *fakeSite
}

func (p *fakeProvider) Acquire(ctx context.Context) (Page, error) {
	s := p.site
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acquires++
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	idx := min(len(s.pages), len(s.itemsPerAttempt)-1)
	var items []fakeItem
	if idx >= 0 {
		items = s.itemsPerAttempt[idx]
	}
	page := &fakePage{site: s, items: items, open: -1}
	s.pages = append(s.pages, page)
	return page, nil
}

// fakePage is a hand-written Page with call recording.
type fakePage struct {
	site  *fakeSite
	items []fakeItem

	mu         sync.Mutex
	location   string
	typed      strings.Builder
	keyEvents  int
	enters     int
	open       int
	navigated  []string
	clicked    []string
	openedNth  []int
	closeCalls int
	// closeClicks records close-control clicks by the item open at the time.
	closeClicks map[int][]string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = url
	p.navigated = append(p.navigated, url)
	return ctx.Err()
}

func (p *fakePage) Location(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location, nil
}

func (p *fakePage) Count(ctx context.Context, sel string) (int, error) {
	if sel == resultItemSelector {
		return len(p.items), nil
	}
	return 0, nil
}

func (p *fakePage) Exists(ctx context.Context, sel string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open < 0 {
		return false, nil
	}
	if sel == detailSelectors[0] {
		return true, nil
	}
	switch p.openFault() {
	case primaryHidden:
		return sel == closeSelectors[0] || sel == closeSelectors[1], nil
	case primaryMissing:
		return sel == closeSelectors[1], nil
	case allHidden:
		return slices.Contains(closeSelectors, sel), nil
	case noControl:
		return false, nil
	}
	return sel == closeSelectors[0], nil
}

// openFault reports the close behaviour of the open item. Callers hold p.mu.
func (p *fakePage) openFault() closeFault {
	if p.open < 0 || p.open >= len(p.items) {
		return closeOK
	}
	return p.items[p.open].closeFault
}

func (p *fakePage) HTML(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.site.noteHTML != "" {
		return p.site.noteHTML, nil
	}
	if p.open < 0 {
		return "<html><body></body></html>", nil
	}
	item := p.items[p.open]
	if item.brokenSnapshot {
		return "", errors.New("Execution context was destroyed")
	}
	if item.noContainer {
		return `<div class="overlay"><span class="close-circle"></span></div>`, nil
	}
	return fmt.Sprintf(`<html><body><div id="noteContainer">
<div class="author-wrapper"><span class="username">%s</span></div>
<div class="note-scroller"><div id="detail-title">%s</div><div id="detail-desc"><span class="note-text">正文</span></div></div>
<div class="engage-bar"><span class="like-wrapper"><span class="count">%s</span></span></div>
</div><span class="close-circle"></span></body></html>`, item.author, item.title, item.likes), nil
}

func (p *fakePage) Text(ctx context.Context) (string, error) {
	return p.site.pageText, nil
}

func (p *fakePage) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	return errFakeTimeout
}

func (p *fakePage) WaitAnyVisible(ctx context.Context, sels []string, timeout time.Duration) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch sels[0] {
	case loginProbeSelectors[0]:
		if p.site.loggedIn {
			return sels[0], nil
		}
	case searchInputSelectors[0]:
		return sels[1], nil
	case resultContainerSelectors[0]:
		if !p.site.resultsHidden {
			return sels[0], nil
		}
	case detailSelectors[0]:
		if p.site.noteHTML != "" || p.open >= 0 {
			return sels[0], nil
		}
	case commentListSelectors[0]:
		return sels[0], nil
	}
	return "", errFakeTimeout
}

func (p *fakePage) WaitNotPresent(ctx context.Context, sel string, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sel == detailSelectors[0] && p.open >= 0 {
		return errFakeTimeout
	}
	return nil
}

func (p *fakePage) WaitURL(ctx context.Context, pred func(string) bool, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pred(p.location) {
		return nil
	}
	return errFakeTimeout
}

func (p *fakePage) Click(ctx context.Context, sel string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clicked = append(p.clicked, sel)
	if !slices.Contains(closeSelectors, sel) {
		return nil
	}
	if p.closeClicks == nil {
		p.closeClicks = make(map[int][]string)
	}
	p.closeClicks[p.open] = append(p.closeClicks[p.open], sel)
	switch fault := p.openFault(); {
	case fault == allHidden, fault == primaryHidden && sel == closeSelectors[0]:
		return errNotVisible
	case fault == stuckOpen:
		p.closeCalls++
		return nil
	}
	p.open = -1
	p.closeCalls++
	return nil
}

func (p *fakePage) ClickNth(ctx context.Context, sel string, index int, inner string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sel != resultItemSelector || inner != resultCoverSelector {
		return fmt.Errorf("unexpected target %s %s", sel, inner)
	}
	if index >= len(p.items) {
		return fmt.Errorf("no element at index %d", index)
	}
	p.open = index
	p.openedNth = append(p.openedNth, index)
	p.location = fmt.Sprintf("https://www.xiaohongshu.com/explore/note-%d", index)
	return nil
}

func (p *fakePage) SendKeys(ctx context.Context, keys string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keyEvents++
	p.typed.WriteString(keys)
	return nil
}

func (p *fakePage) PressEnter(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enters++
	if p.enters > p.site.enterFailures {
		p.location = "https://www.xiaohongshu.com/search_result?keyword=" + p.typed.String()
	}
	return nil
}

func (p *fakePage) Close(ctx context.Context) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	p.site.closes++
	return nil
}

func makeItems(n int) []fakeItem {
	items := make([]fakeItem, n)
	for i := range items {
		items[i] = fakeItem{
			title:  fmt.Sprintf("装修笔记 %d", i+1),
			author: fmt.Sprintf("作者%d", i+1),
			likes:  fmt.Sprintf("%d赞", (i+1)*100),
		}
	}
	return items
}
