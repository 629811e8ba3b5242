// internal/rednote/errors.go
package rednote

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the login probe did not find a signed-in user.
	ErrNotAuthenticated = errors.New("rednote: session is not logged in")
	// ErrNavigationFailure means a submission or page transition did not
	// reach the expected state in time, or landed on an error page.
	ErrNavigationFailure = errors.New("rednote: navigation failed")
	// ErrNoResults means the results page rendered zero items.
	ErrNoResults = errors.New("rednote: no search results")
	// ErrPageNotInitialized means there is no usable page to work on.
	ErrPageNotInitialized = errors.New("rednote: page not initialized")
	// ErrExtractionSkip marks a single result item that was skipped. It is
	// logged and never returned to callers.
	ErrExtractionSkip = errors.New("rednote: item skipped")
	// ErrCleanupFailure marks a failed page or browser close. It is logged
	// and never returned to callers.
	ErrCleanupFailure = errors.New("rednote: cleanup failed")
	// ErrInvalidArgument rejects unusable input before any browser work.
	ErrInvalidArgument = errors.New("rednote: invalid argument")
)

// AttemptError is returned when a retry budget is spent. It wraps the error
// of the final attempt.
type AttemptError struct {
	Attempts int
	Err      error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("giving up after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
