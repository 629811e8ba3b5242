// internal/rednote/client_test.go
package rednote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/rednote-cli/internal/browser/humanoid"
)

// testOptions uses distinct pacing ranges so recorded pauses can be told apart.
func testOptions() Options {
	ms := time.Millisecond
	return Options{
		HomeURL:         "https://www.xiaohongshu.com",
		DefaultLimit:    10,
		Attempts:        RetryPolicy{MaxAttempts: 3, Backoff: humanoid.Between(2000*ms, 5000*ms)},
		Submit:          RetryPolicy{MaxAttempts: 3, Backoff: humanoid.Between(1000*ms, 2000*ms)},
		ProbeTimeout:    time.Second,
		SubmitTimeout:   time.Second,
		ResultsTimeout:  time.Second,
		DetailTimeout:   time.Second,
		CloseTimeout:    time.Second,
		CommentsTimeout: time.Second,
		Pacing: Pacing{
			Settle:       humanoid.Between(200*ms, 700*ms),
			Keystroke:    humanoid.Between(50*ms, 250*ms),
			PreSubmit:    humanoid.Between(201*ms, 701*ms),
			ResultSettle: humanoid.Between(1500*ms, 3000*ms),
			DetailSettle: humanoid.Between(1000*ms, 1500*ms),
			PostItem:     humanoid.Between(500*ms, 1000*ms),
			PageSettle:   humanoid.Between(300*ms, 800*ms),
		},
		ErrorMarkers: []string{"安全限制", "访问频繁"},
	}
}

func newTestClient(t *testing.T, site *fakeSite) (*Client, *humanoid.Instant) {
	t.Helper()
	pacer := &humanoid.Instant{}
	return NewClient(&fakeProvider{site: site}, pacer, testOptions(), zaptest.NewLogger(t)), pacer
}

func countRange(ranges []humanoid.Range, r humanoid.Range) int {
	n := 0
	for _, got := range ranges {
		if got == r {
			n++
		}
	}
	return n
}

func TestWithPage(t *testing.T) {
	t.Run("acquire failure is wrapped", func(t *testing.T) {
		boom := errors.New("chrome not found")
		site := &fakeSite{acquireErr: boom}
		client, _ := newTestClient(t, site)

		err := client.withPage(context.Background(), false, func(context.Context, Page) error {
			t.Fatal("callback must not run")
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to acquire browser session")
		assert.Equal(t, 0, site.closes)
	})

	t.Run("nil page", func(t *testing.T) {
		provider := ProviderFunc(func(context.Context) (Page, error) { return nil, nil })
		client := NewClient(provider, &humanoid.Instant{}, testOptions(), nil)

		err := client.withPage(context.Background(), false, func(context.Context, Page) error { return nil })
		assert.ErrorIs(t, err, ErrPageNotInitialized)
	})

	t.Run("page released after callback error", func(t *testing.T) {
		site := &fakeSite{loggedIn: true}
		client, _ := newTestClient(t, site)
		boom := errors.New("boom")

		err := client.withPage(context.Background(), false, func(context.Context, Page) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, site.acquires)
		assert.Equal(t, 1, site.closes)
	})

	t.Run("page released after cancellation", func(t *testing.T) {
		site := &fakeSite{loggedIn: true}
		client, _ := newTestClient(t, site)
		ctx, cancel := context.WithCancel(context.Background())

		err := client.withPage(ctx, false, func(ctx context.Context, _ Page) error {
			cancel()
			return ctx.Err()
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, site.closes)
	})

	t.Run("login required", func(t *testing.T) {
		site := &fakeSite{loggedIn: false}
		client, _ := newTestClient(t, site)

		err := client.withPage(context.Background(), true, func(context.Context, Page) error {
			t.Fatal("callback must not run when logged out")
			return nil
		})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, 1, site.closes)
		assert.Equal(t, []string{"https://www.xiaohongshu.com"}, site.pages[0].navigated)
	})
}

func TestFindErrorMarker(t *testing.T) {
	markers := []string{"", "安全限制", "访问频繁"}

	marker, found := findErrorMarker("抱歉，访问频繁，请稍后再试", markers)
	assert.True(t, found)
	assert.Equal(t, "访问频繁", marker)

	_, found = findErrorMarker("客厅装修", markers)
	assert.False(t, found)

	_, found = findErrorMarker("anything", nil)
	assert.False(t, found)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "https://www.xiaohongshu.com", opts.HomeURL)
	assert.Equal(t, 10, opts.DefaultLimit)
	assert.Equal(t, 3, opts.Attempts.MaxAttempts)
	assert.Equal(t, humanoid.Between(2*time.Second, 5*time.Second), opts.Attempts.Backoff)
	assert.Equal(t, 3, opts.Submit.MaxAttempts)
	assert.Equal(t, humanoid.Between(50*time.Millisecond, 250*time.Millisecond), opts.Pacing.Keystroke)
	assert.Equal(t, 30*time.Second, opts.DetailTimeout)
	assert.NotEmpty(t, opts.ErrorMarkers)
}
