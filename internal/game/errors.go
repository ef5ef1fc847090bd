package game

import "errors"

var (
	// ErrPrecondition means the action does not apply to the current screen.
	// It is the expected result of stale or duplicate UI events and is never
	// shown to players.
	ErrPrecondition = errors.New("action not allowed on this screen")

	// ErrNoChange means the action was accepted but produced the same state,
	// e.g. a timer sync within the same second.
	ErrNoChange = errors.New("no change")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNoCurrentItem = errors.New("no item is being presented")
)

// ValidationError is a user-facing rejection of setup or word entry input.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(reason string, err error) *ValidationError {
	return &ValidationError{Reason: reason, Err: err}
}
