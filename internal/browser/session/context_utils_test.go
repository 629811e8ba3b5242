// internal/browser/session/context_utils_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type ctxKey string

func TestCombineContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("values come from the primary context only", func(t *testing.T) {
		primary := context.WithValue(context.Background(), ctxKey("target"), "page-1")
		secondary := context.WithValue(context.Background(), ctxKey("other"), "ignored")

		combined, cancel := CombineContext(primary, secondary)
		defer cancel()

		assert.Equal(t, "page-1", combined.Value(ctxKey("target")))
		assert.Nil(t, combined.Value(ctxKey("other")))
		assert.NoError(t, combined.Err())
	})

	t.Run("primary cancellation propagates", func(t *testing.T) {
		primary, cancelPrimary := context.WithCancel(context.Background())
		combined, cancel := CombineContext(primary, context.Background())
		defer cancel()

		cancelPrimary()
		<-combined.Done()
		assert.ErrorIs(t, combined.Err(), context.Canceled)
	})

	t.Run("secondary deadline cancels the combination", func(t *testing.T) {
		primary, cancelPrimary := context.WithTimeout(context.Background(), time.Minute)
		defer cancelPrimary()
		secondary, cancelSecondary := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancelSecondary()

		combined, cancel := CombineContext(primary, secondary)
		defer cancel()

		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context outlived the secondary deadline")
		}
		assert.ErrorIs(t, secondary.Err(), context.DeadlineExceeded)
		assert.ErrorIs(t, combined.Err(), context.Canceled)
		assert.NoError(t, primary.Err())
	})

	t.Run("primary deadline is inherited", func(t *testing.T) {
		deadline := time.Now().Add(time.Hour)
		primary, cancelPrimary := context.WithDeadline(context.Background(), deadline)
		defer cancelPrimary()

		combined, cancel := CombineContext(primary, context.Background())
		defer cancel()

		got, ok := combined.Deadline()
		require.True(t, ok)
		assert.True(t, got.Equal(deadline))
	})
}

func TestDetach(t *testing.T) {
	parent, cancel := context.WithTimeout(context.WithValue(context.Background(), ctxKey("k"), "v"), time.Millisecond)
	defer cancel()
	<-parent.Done()

	detached := Detach(parent)
	assert.Equal(t, "v", detached.Value(ctxKey("k")))
	assert.NoError(t, detached.Err())
	assert.Nil(t, detached.Done())
	_, ok := detached.Deadline()
	assert.False(t, ok)

	// Children of a detached context get their own lifecycle.
	child, cancelChild := context.WithCancel(detached)
	assert.NoError(t, child.Err())
	cancelChild()
	assert.ErrorIs(t, child.Err(), context.Canceled)
}
